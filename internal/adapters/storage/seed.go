package storage

import (
	"context"
	"fmt"

	"pets-catalog/internal/domain/kinds"
	"pets-catalog/internal/domain/pets"
)

var sampleKinds = []kinds.CreateInput{
	{Name: "dog", Food: "dogfood", Sound: "bark"},
	{Name: "cat", Food: "catfood", Sound: "meow"},
	{Name: "fish", Food: "fishfood", Sound: "blub"},
	{Name: "hamster", Food: "hamsterchow", Sound: "squeak"},
}

var samplePets = []struct {
	Name, Owner, Kind string
	Age               int
}{
	{Name: "dorothy", Owner: "greg", Kind: "dog", Age: 9},
	{Name: "suzy", Owner: "greg", Kind: "dog", Age: 9},
	{Name: "casey", Owner: "greg", Kind: "cat", Age: 9},
	{Name: "heidi", Owner: "david", Kind: "cat", Age: 15},
}

// Seed carga los datos de ejemplo pasando por los services (mismas validaciones
// que la app). No es idempotente: correrlo dos veces duplica filas.
func Seed(ctx context.Context, ks *kinds.Service, ps *pets.Service) error {
	ids := make(map[string]string, len(sampleKinds))
	for _, in := range sampleKinds {
		k, err := ks.Create(ctx, in)
		if err != nil {
			return fmt.Errorf("seed kind %s: %w", in.Name, err)
		}
		ids[k.Name] = k.ID
	}

	for _, p := range samplePets {
		if _, err := ps.Create(ctx, pets.CreateInput{
			Name:   p.Name,
			Age:    p.Age,
			Owner:  p.Owner,
			KindID: ids[p.Kind],
		}); err != nil {
			return fmt.Errorf("seed pet %s: %w", p.Name, err)
		}
	}
	return nil
}
