package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"pets-catalog/internal/domain/pets"
)

type petRepo struct {
	s *Store
}

func (r *petRepo) List(ctx context.Context) ([]pets.View, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.View, 0, len(r.s.pets))
	for _, p := range r.s.pets {
		// INNER JOIN: una mascota sin kind no aparece (no debería pasar con la FK).
		k, ok := r.s.kinds[p.KindID]
		if !ok {
			continue
		}
		out = append(out, pets.View{
			Pet:      p,
			KindName: k.Name,
			Food:     k.Food,
			Sound:    k.Sound,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.kinds[p.KindID]; !ok {
		return pets.Pet{}, pets.ErrUnknownKind
	}
	p.ID = uuid.NewString()
	r.s.pets[p.ID] = p
	return p, nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[p.ID]; !ok {
		return pets.ErrNotFound
	}
	if _, ok := r.s.kinds[p.KindID]; !ok {
		return pets.ErrUnknownKind
	}
	r.s.pets[p.ID] = p
	return nil
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[id]; !ok {
		return pets.ErrNotFound
	}
	delete(r.s.pets, id)
	return nil
}
