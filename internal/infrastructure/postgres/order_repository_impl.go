package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kumawatvinit/ShopSpot/internal/domain/entity"
	"github.com/kumawatvinit/ShopSpot/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	lines, err := json.Marshal(o.Lines)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO orders (buyer_id, lines, payment, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, o.BuyerID, lines, []byte(o.Payment), o.Status)

	return row.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	o := &entity.Order{}
	var lines []byte
	var payment []byte
	err := row.Scan(&o.ID, &o.BuyerID, &lines, &payment, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(lines, &o.Lines); err != nil {
		return nil, err
	}
	o.Payment = payment
	return o, nil
}

const orderCols = `id, buyer_id, lines, payment, status, created_at, updated_at`

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id = $1`, id))
}

func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderCols+` FROM orders WHERE buyer_id = $1 ORDER BY created_at DESC
	`, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *OrderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderCols+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]*entity.Order, error) {
	var orders []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) (*entity.Order, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE orders SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING `+orderCols+`
	`, status, time.Now(), id)
	return scanOrder(row)
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
