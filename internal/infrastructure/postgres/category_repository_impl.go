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

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, c.Name, c.Slug)

	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getBy(ctx, "id", id)
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return r.getBy(ctx, "slug", slug)
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getBy(ctx, "name", name)
}

func (r *CategoryRepository) getBy(ctx context.Context, col, val string) (*entity.Category, error) {
	c := &entity.Category{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, slug, created_at, updated_at
		FROM categories
		WHERE `+col+` = $1
	`, val)

	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug, created_at, updated_at
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []*entity.Category
	for rows.Next() {
		c := &entity.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	c.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE categories
		SET name = $1, slug = $2, updated_at = $3
		WHERE id = $4
	`, c.Name, c.Slug, c.UpdatedAt, c.ID)
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

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
