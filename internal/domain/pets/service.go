package pets

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	// ErrUnknownKind: la FK kind_id no apunta a ningún kind.
	ErrUnknownKind = errors.New("unknown kind")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name   string
	Age    int
	Owner  string
	KindID string
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name   *string
	Age    *int
	Owner  *string
	KindID *string
}

// ParseAge convierte la edad que llega de un form/TSV; vacía o inválida => 0.
func ParseAge(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (s *Service) List(ctx context.Context) ([]View, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Pet, error) {
	if strings.TrimSpace(id) == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	p := Pet{
		Name:   strings.TrimSpace(in.Name),
		Age:    in.Age,
		Owner:  strings.TrimSpace(in.Owner),
		KindID: strings.TrimSpace(in.KindID),
	}
	if err := validate(p); err != nil {
		return Pet{}, err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		current.Name = strings.TrimSpace(*in.Name)
	}
	if in.Age != nil {
		current.Age = *in.Age
	}
	if in.Owner != nil {
		current.Owner = strings.TrimSpace(*in.Owner)
	}
	if in.KindID != nil {
		current.KindID = strings.TrimSpace(*in.KindID)
	}
	if err := validate(current); err != nil {
		return Pet{}, err
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return Pet{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

func validate(p Pet) error {
	if p.Name == "" || p.KindID == "" || p.Age < 0 {
		return ErrInvalidInput
	}
	return nil
}
