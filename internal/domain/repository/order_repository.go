package repository

import (
	"context"

	"github.com/kumawatvinit/ShopSpot/internal/domain/entity"
)

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error)
	List(ctx context.Context) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*entity.Order, error)
}
