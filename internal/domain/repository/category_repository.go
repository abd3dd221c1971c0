package repository

import (
	"context"

	"github.com/kumawatvinit/ShopSpot/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id string) error
}
