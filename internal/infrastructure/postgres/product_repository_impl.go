package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kumawatvinit/ShopSpot/internal/domain/entity"
	"github.com/kumawatvinit/ShopSpot/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productCols = `id, name, slug, description, price_cents, category_id, quantity, shipping, image_url, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.PriceCents,
		&p.CategoryID, &p.Quantity, &p.Shipping, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, slug, description, price_cents, category_id, quantity, shipping, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Slug, p.Description, p.PriceCents, p.CategoryID, p.Quantity, p.Shipping, p.ImageURL)

	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id = $1`, id))
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE slug = $1`, slug))
}

func (r *ProductRepository) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE name = $1`, name))
}

func (r *ProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productCols+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $1, slug = $2, description = $3, price_cents = $4, category_id = $5,
		    quantity = $6, shipping = $7, image_url = $8, updated_at = $9
		WHERE id = $10
	`, p.Name, p.Slug, p.Description, p.PriceCents, p.CategoryID, p.Quantity, p.Shipping,
		p.ImageURL, p.UpdatedAt, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
