package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamdb/yamdb/internal/domain/entity"
	"github.com/yamdb/yamdb/internal/domain/repository"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id
	`, c.Name, c.Slug)
	return translateErr(row.Scan(&c.ID))
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	c := &entity.Category{}
	row := r.pool.QueryRow(ctx, `SELECT id, name, slug FROM categories WHERE slug = $1`, slug)
	if err := row.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
		return nil, translateErr(err)
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context, f repository.TermFilter) ([]entity.Category, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug
		FROM categories
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`, f.Search, limit, f.Offset)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var cats []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *CategoryRepository) Delete(ctx context.Context, slug string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE slug = $1`, slug)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
