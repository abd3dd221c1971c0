package repository

import (
	"context"

	"github.com/kumawatvinit/ShopSpot/internal/domain/entity"
)

// ProductRepository defines the interface for product persistence.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}
