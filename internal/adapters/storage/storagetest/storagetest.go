// Package storagetest tiene los tests de contrato que todo adapter de
// storage debe pasar (memory, sqlstore, mongo).
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pets-catalog/internal/domain/kinds"
	"pets-catalog/internal/domain/pets"
)

// Repos abre repos vacíos para un subtest.
type Repos func(t *testing.T) (kinds.Repository, pets.Repository)

// Run corre el contrato completo. missingID debe ser un id bien formado que no exista.
func Run(t *testing.T, open Repos, missingID string) {
	t.Run("KindsCRUD", func(t *testing.T) { testKindsCRUD(t, open, missingID) })
	t.Run("PetsCRUD", func(t *testing.T) { testPetsCRUD(t, open, missingID) })
	t.Run("PetRejectsUnknownKind", func(t *testing.T) { testUnknownKind(t, open, missingID) })
	t.Run("KindDeleteRestricted", func(t *testing.T) { testDeleteRestricted(t, open) })
	t.Run("MalformedIDs", func(t *testing.T) { testMalformedIDs(t, open) })
}

func testKindsCRUD(t *testing.T, open Repos, missingID string) {
	ctx := context.Background()
	kr, _ := open(t)

	dog, err := kr.Create(ctx, kinds.Kind{Name: "dog", Food: "dogfood", Sound: "bark"})
	require.NoError(t, err)
	require.NotEmpty(t, dog.ID)

	cat, err := kr.Create(ctx, kinds.Kind{Name: "cat", Food: "catfood"})
	require.NoError(t, err)
	require.NotEqual(t, dog.ID, cat.ID)

	got, err := kr.GetByID(ctx, dog.ID)
	require.NoError(t, err)
	assert.Equal(t, dog, got)

	list, err := kr.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "cat", list[0].Name, "ordenado por nombre")
	assert.Equal(t, "", list[0].Sound)
	assert.Equal(t, "dog", list[1].Name)

	dog.Sound = "woof"
	require.NoError(t, kr.Update(ctx, dog))
	got, err = kr.GetByID(ctx, dog.ID)
	require.NoError(t, err)
	assert.Equal(t, "woof", got.Sound)

	require.NoError(t, kr.Delete(ctx, cat.ID))
	_, err = kr.GetByID(ctx, cat.ID)
	require.ErrorIs(t, err, kinds.ErrNotFound)

	require.ErrorIs(t, kr.Delete(ctx, missingID), kinds.ErrNotFound)
	require.ErrorIs(t, kr.Update(ctx, kinds.Kind{ID: missingID, Name: "x"}), kinds.ErrNotFound)
}

func testPetsCRUD(t *testing.T, open Repos, missingID string) {
	ctx := context.Background()
	kr, pr := open(t)

	dog, err := kr.Create(ctx, kinds.Kind{Name: "dog", Food: "dogfood", Sound: "bark"})
	require.NoError(t, err)
	cat, err := kr.Create(ctx, kinds.Kind{Name: "cat", Food: "catfood", Sound: "meow"})
	require.NoError(t, err)

	suzy, err := pr.Create(ctx, pets.Pet{Name: "suzy", Age: 9, Owner: "greg", KindID: dog.ID})
	require.NoError(t, err)
	require.NotEmpty(t, suzy.ID)

	casey, err := pr.Create(ctx, pets.Pet{Name: "casey", Age: 9, Owner: "greg", KindID: cat.ID})
	require.NoError(t, err)

	got, err := pr.GetByID(ctx, suzy.ID)
	require.NoError(t, err)
	assert.Equal(t, suzy, got)

	views, err := pr.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, pets.View{Pet: casey, KindName: "cat", Food: "catfood", Sound: "meow"}, views[0])
	assert.Equal(t, pets.View{Pet: suzy, KindName: "dog", Food: "dogfood", Sound: "bark"}, views[1])

	suzy.Age = 10
	suzy.KindID = cat.ID
	require.NoError(t, pr.Update(ctx, suzy))
	got, err = pr.GetByID(ctx, suzy.ID)
	require.NoError(t, err)
	assert.Equal(t, suzy, got)

	require.NoError(t, pr.Delete(ctx, casey.ID))
	_, err = pr.GetByID(ctx, casey.ID)
	require.ErrorIs(t, err, pets.ErrNotFound)

	require.ErrorIs(t, pr.Delete(ctx, missingID), pets.ErrNotFound)
	require.ErrorIs(t, pr.Update(ctx, pets.Pet{ID: missingID, Name: "x", KindID: cat.ID}), pets.ErrNotFound)
}

func testUnknownKind(t *testing.T, open Repos, missingID string) {
	ctx := context.Background()
	kr, pr := open(t)

	_, err := pr.Create(ctx, pets.Pet{Name: "orphan", KindID: missingID})
	require.ErrorIs(t, err, pets.ErrUnknownKind)

	dog, err := kr.Create(ctx, kinds.Kind{Name: "dog"})
	require.NoError(t, err)
	p, err := pr.Create(ctx, pets.Pet{Name: "dorothy", KindID: dog.ID})
	require.NoError(t, err)

	p.KindID = missingID
	require.ErrorIs(t, pr.Update(ctx, p), pets.ErrUnknownKind)

	views, err := pr.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, dog.ID, views[0].KindID)
}

func testDeleteRestricted(t *testing.T, open Repos) {
	ctx := context.Background()
	kr, pr := open(t)

	dog, err := kr.Create(ctx, kinds.Kind{Name: "dog"})
	require.NoError(t, err)
	p, err := pr.Create(ctx, pets.Pet{Name: "heidi", Age: 15, Owner: "david", KindID: dog.ID})
	require.NoError(t, err)

	require.ErrorIs(t, kr.Delete(ctx, dog.ID), kinds.ErrInUse)

	_, err = kr.GetByID(ctx, dog.ID)
	require.NoError(t, err, "el kind sigue ahí")

	require.NoError(t, pr.Delete(ctx, p.ID))
	require.NoError(t, kr.Delete(ctx, dog.ID))
}

func testMalformedIDs(t *testing.T, open Repos) {
	ctx := context.Background()
	kr, pr := open(t)

	_, err := kr.GetByID(ctx, "not-an-id")
	require.ErrorIs(t, err, kinds.ErrNotFound)
	_, err = pr.GetByID(ctx, "not-an-id")
	require.ErrorIs(t, err, pets.ErrNotFound)
	require.ErrorIs(t, pr.Delete(ctx, "not-an-id"), pets.ErrNotFound)
	_, err = pr.Create(ctx, pets.Pet{Name: "x", KindID: "not-an-id"})
	require.ErrorIs(t, err, pets.ErrUnknownKind)
}
