package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"pets-catalog/internal/domain/kinds"
)

type kindRepo struct {
	s *Store
}

func (r *kindRepo) List(ctx context.Context) ([]kinds.Kind, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]kinds.Kind, 0, len(r.s.kinds))
	for _, k := range r.s.kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *kindRepo) GetByID(ctx context.Context, id string) (kinds.Kind, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	k, ok := r.s.kinds[id]
	if !ok {
		return kinds.Kind{}, kinds.ErrNotFound
	}
	return k, nil
}

func (r *kindRepo) Create(ctx context.Context, k kinds.Kind) (kinds.Kind, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k.ID = uuid.NewString()
	r.s.kinds[k.ID] = k
	return k, nil
}

func (r *kindRepo) Update(ctx context.Context, k kinds.Kind) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.kinds[k.ID]; !ok {
		return kinds.ErrNotFound
	}
	r.s.kinds[k.ID] = k
	return nil
}

func (r *kindRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.kinds[id]; !ok {
		return kinds.ErrNotFound
	}
	// ON DELETE RESTRICT
	if r.s.kindInUse(id) {
		return kinds.ErrInUse
	}
	delete(r.s.kinds, id)
	return nil
}
