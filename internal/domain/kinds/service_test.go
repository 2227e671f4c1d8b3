package kinds

import (
	"context"
	"strconv"
	"testing"

	"github.com/AlekSi/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	seq  int
	byID map[string]Kind
	// inUse simula la FK: ids que tienen mascotas apuntando.
	inUse map[string]bool
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Kind{}, inUse: map[string]bool{}}
}

func (r *testRepo) List(ctx context.Context) ([]Kind, error) {
	out := make([]Kind, 0, len(r.byID))
	for _, k := range r.byID {
		out = append(out, k)
	}
	return out, nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Kind, error) {
	k, ok := r.byID[id]
	if !ok {
		return Kind{}, ErrNotFound
	}
	return k, nil
}

func (r *testRepo) Create(ctx context.Context, k Kind) (Kind, error) {
	r.seq++
	k.ID = strconv.Itoa(r.seq)
	r.byID[k.ID] = k
	return k, nil
}

func (r *testRepo) Update(ctx context.Context, k Kind) error {
	if _, ok := r.byID[k.ID]; !ok {
		return ErrNotFound
	}
	r.byID[k.ID] = k
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	if r.inUse[id] {
		return ErrInUse
	}
	delete(r.byID, id)
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_TrimsAndRequiresName(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "   ", Food: "dogfood"})
	require.ErrorIs(t, err, ErrInvalidInput)

	k, err := svc.Create(ctx, CreateInput{Name: " dog ", Food: " dogfood", Sound: "bark "})
	require.NoError(t, err)
	assert.Equal(t, Kind{ID: "1", Name: "dog", Food: "dogfood", Sound: "bark"}, k)
}

func TestService_Update_PartialFields(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	k, err := svc.Create(ctx, CreateInput{Name: "dog", Food: "dogfood", Sound: "bark"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, k.ID, UpdateInput{Sound: pointer.ToString("woof")})
	require.NoError(t, err)
	assert.Equal(t, "dog", updated.Name)
	assert.Equal(t, "dogfood", updated.Food)
	assert.Equal(t, "woof", updated.Sound)
	assert.Equal(t, updated, repo.byID[k.ID])

	_, err = svc.Update(ctx, k.ID, UpdateInput{Name: pointer.ToString("")})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "dog", repo.byID[k.ID].Name, "una validación fallida no debe persistir")

	_, err = svc.Update(ctx, "404", UpdateInput{Name: pointer.ToString("cat")})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete_RestrictedWhenReferenced(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	k, err := svc.Create(ctx, CreateInput{Name: "cat"})
	require.NoError(t, err)

	repo.inUse[k.ID] = true
	err = svc.Delete(ctx, k.ID)
	require.ErrorIs(t, err, ErrInUse)
	assert.Equal(t, "cannot delete kind: pets still reference it", err.Error())

	repo.inUse[k.ID] = false
	require.NoError(t, svc.Delete(ctx, k.ID))
	require.ErrorIs(t, svc.Delete(ctx, k.ID), ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, " "), ErrNotFound)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, 400, StatusFor(ErrInvalidInput))
	assert.Equal(t, 404, StatusFor(ErrNotFound))
	assert.Equal(t, 409, StatusFor(ErrInUse))
	assert.Equal(t, 500, StatusFor(assert.AnError))
}
