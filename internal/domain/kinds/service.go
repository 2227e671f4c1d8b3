package kinds

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("kind not found")
	// ErrInUse: el motor rechazó el delete porque hay mascotas que apuntan al kind.
	ErrInUse = errors.New("cannot delete kind: pets still reference it")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name  string
	Food  string
	Sound string
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name  *string
	Food  *string
	Sound *string
}

func (s *Service) List(ctx context.Context) ([]Kind, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Kind, error) {
	if strings.TrimSpace(id) == "" {
		return Kind{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Kind, error) {
	k := Kind{
		Name:  strings.TrimSpace(in.Name),
		Food:  strings.TrimSpace(in.Food),
		Sound: strings.TrimSpace(in.Sound),
	}
	if k.Name == "" {
		return Kind{}, ErrInvalidInput
	}
	return s.repo.Create(ctx, k)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Kind, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Kind{}, err
	}

	if in.Name != nil {
		current.Name = strings.TrimSpace(*in.Name)
	}
	if in.Food != nil {
		current.Food = strings.TrimSpace(*in.Food)
	}
	if in.Sound != nil {
		current.Sound = strings.TrimSpace(*in.Sound)
	}
	if current.Name == "" {
		return Kind{}, ErrInvalidInput
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return Kind{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}
