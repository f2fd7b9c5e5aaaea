package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamdb/yamdb/internal/domain/entity"
	"github.com/yamdb/yamdb/internal/domain/repository"
)

type GenreRepository struct {
	pool *pgxpool.Pool
}

func NewGenreRepository(pool *pgxpool.Pool) *GenreRepository {
	return &GenreRepository{pool: pool}
}

func (r *GenreRepository) Create(ctx context.Context, g *entity.Genre) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO genres (name, slug) VALUES ($1, $2) RETURNING id
	`, g.Name, g.Slug)
	return translateErr(row.Scan(&g.ID))
}

func (r *GenreRepository) GetBySlug(ctx context.Context, slug string) (*entity.Genre, error) {
	g := &entity.Genre{}
	row := r.pool.QueryRow(ctx, `SELECT id, name, slug FROM genres WHERE slug = $1`, slug)
	if err := row.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
		return nil, translateErr(err)
	}
	return g, nil
}

// GetBySlugs resolves slugs preserving uniqueness; a missing slug is the
// caller's problem to detect (len mismatch).
func (r *GenreRepository) GetBySlugs(ctx context.Context, slugs []string) ([]entity.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT id, name, slug FROM genres WHERE slug = ANY($1)`, slugs)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var genres []entity.Genre
	for rows.Next() {
		var g entity.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func (r *GenreRepository) List(ctx context.Context, f repository.TermFilter) ([]entity.Genre, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug
		FROM genres
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`, f.Search, limit, f.Offset)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var genres []entity.Genre
	for rows.Next() {
		var g entity.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func (r *GenreRepository) Delete(ctx context.Context, slug string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM genres WHERE slug = $1`, slug)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.GenreRepository = (*GenreRepository)(nil)
