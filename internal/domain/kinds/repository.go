package kinds

import "context"

type Repository interface {
	List(ctx context.Context) ([]Kind, error)
	GetByID(ctx context.Context, id string) (Kind, error)
	Create(ctx context.Context, k Kind) (Kind, error)
	Update(ctx context.Context, k Kind) error
	Delete(ctx context.Context, id string) error
}
