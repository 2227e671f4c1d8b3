package memory

import (
	"context"
	"sync"

	"pets-catalog/internal/domain/kinds"
	"pets-catalog/internal/domain/pets"
)

// Store guarda kinds y pets juntos: la FK pet.kind_id -> kind.id
// solo se puede validar viendo ambas tablas bajo el mismo lock.
type Store struct {
	mu    sync.RWMutex
	kinds map[string]kinds.Kind
	pets  map[string]pets.Pet
}

func NewStore() *Store {
	return &Store{
		kinds: make(map[string]kinds.Kind),
		pets:  make(map[string]pets.Pet),
	}
}

func (s *Store) Kinds() kinds.Repository { return &kindRepo{s: s} }
func (s *Store) Pets() pets.Repository   { return &petRepo{s: s} }

// Reset vacía el store (seed --reset).
func (s *Store) Reset(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.kinds = make(map[string]kinds.Kind)
	s.pets = make(map[string]pets.Pet)
	return nil
}

func (s *Store) kindInUse(id string) bool {
	for _, p := range s.pets {
		if p.KindID == id {
			return true
		}
	}
	return false
}
