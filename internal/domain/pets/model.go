package pets

// Pet es la fila tal como se guarda: el kind va por referencia.
type Pet struct {
	ID     string
	Name   string
	Age    int
	Owner  string
	KindID string
}

// View es la mascota con los datos de su kind ya resueltos (el JOIN del listado).
type View struct {
	Pet

	KindName string
	Food     string
	Sound    string
}
