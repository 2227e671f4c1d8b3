package kinds

// Kind es la clase de mascota (perro, gato, ...) con su comida y sonido.
type Kind struct {
	ID    string
	Name  string
	Food  string
	Sound string
}
