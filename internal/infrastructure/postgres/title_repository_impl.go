package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamdb/yamdb/internal/domain/entity"
	"github.com/yamdb/yamdb/internal/domain/repository"
)

// titleSelect is the one aggregate query both Get and List build on, so
// the rating a client sees in a list can never differ from the detail
// view. AVG over zero reviews yields NULL, which scans into a nil
// *float64.
const titleSelect = `
	SELECT t.id, t.name, t.year, t.description, t.created_at,
	       c.id, c.name, c.slug,
	       AVG(r.score)::float8 AS rating
	FROM titles t
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN reviews r ON r.title_id = t.id
`

type TitleRepository struct {
	pool *pgxpool.Pool
}

func NewTitleRepository(pool *pgxpool.Pool) *TitleRepository {
	return &TitleRepository{pool: pool}
}

func (r *TitleRepository) Create(ctx context.Context, t *entity.Title, genreIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translateErr(err)
	}
	defer tx.Rollback(ctx)

	var categoryID *int64
	if t.Category != nil {
		categoryID = &t.Category.ID
	}
	row := tx.QueryRow(ctx, `
		INSERT INTO titles (name, year, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, t.Name, t.Year, t.Description, categoryID)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return translateErr(err)
	}
	if err := replaceGenres(ctx, tx, t.ID, genreIDs); err != nil {
		return translateErr(err)
	}
	return translateErr(tx.Commit(ctx))
}

func (r *TitleRepository) Update(ctx context.Context, t *entity.Title, genreIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translateErr(err)
	}
	defer tx.Rollback(ctx)

	var categoryID *int64
	if t.Category != nil {
		categoryID = &t.Category.ID
	}
	res, err := tx.Exec(ctx, `
		UPDATE titles SET name = $1, year = $2, description = $3, category_id = $4
		WHERE id = $5
	`, t.Name, t.Year, t.Description, categoryID, t.ID)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	if err := replaceGenres(ctx, tx, t.ID, genreIDs); err != nil {
		return translateErr(err)
	}
	return translateErr(tx.Commit(ctx))
}

func replaceGenres(ctx context.Context, tx pgx.Tx, titleID int64, genreIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM title_genres WHERE title_id = $1`, titleID); err != nil {
		return err
	}
	for _, gid := range genreIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO title_genres (title_id, genre_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, titleID, gid); err != nil {
			return err
		}
	}
	return nil
}

func (r *TitleRepository) Get(ctx context.Context, id int64) (*entity.Title, error) {
	row := r.pool.QueryRow(ctx, titleSelect+`
		WHERE t.id = $1
		GROUP BY t.id, c.id
	`, id)
	t, err := scanTitle(row)
	if err != nil {
		return nil, translateErr(err)
	}
	if err := r.attachGenres(ctx, []*entity.Title{t}); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TitleRepository) List(ctx context.Context, f repository.TitleFilter) ([]entity.Title, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 6)

	if f.Name != "" {
		args = append(args, f.Name)
		where = append(where, fmt.Sprintf("t.name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if f.CategorySlug != "" {
		args = append(args, f.CategorySlug)
		where = append(where, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if f.GenreSlug != "" {
		args = append(args, f.GenreSlug)
		where = append(where, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM title_genres tg
			JOIN genres g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug = $%d
		)`, len(args)))
	}
	if f.Year != 0 {
		args = append(args, f.Year)
		where = append(where, fmt.Sprintf("t.year = $%d", len(args)))
	}

	query := titleSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)
	query += fmt.Sprintf(" GROUP BY t.id, c.id ORDER BY t.name LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var titles []entity.Title
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, err
		}
		titles = append(titles, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// take addresses only after the slice stops growing
	refs := make([]*entity.Title, len(titles))
	for i := range titles {
		refs[i] = &titles[i]
	}
	if err := r.attachGenres(ctx, refs); err != nil {
		return nil, err
	}
	return titles, nil
}

func (r *TitleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM titles WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanTitle(row pgx.Row) (*entity.Title, error) {
	t := &entity.Title{}
	var catID *int64
	var catName, catSlug *string
	if err := row.Scan(&t.ID, &t.Name, &t.Year, &t.Description, &t.CreatedAt,
		&catID, &catName, &catSlug, &t.Rating); err != nil {
		return nil, err
	}
	if catID != nil {
		t.Category = &entity.Category{ID: *catID, Name: *catName, Slug: *catSlug}
	}
	return t, nil
}

// attachGenres loads genre tags for the given titles in one query.
func (r *TitleRepository) attachGenres(ctx context.Context, titles []*entity.Title) error {
	if len(titles) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(titles))
	byID := make(map[int64]*entity.Title, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
		byID[t.ID] = t
		t.Genres = []entity.Genre{}
	}
	rows, err := r.pool.Query(ctx, `
		SELECT tg.title_id, g.id, g.name, g.slug
		FROM title_genres tg
		JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id = ANY($1)
		ORDER BY g.name
	`, ids)
	if err != nil {
		return translateErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int64
		var g entity.Genre
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return err
		}
		if t, ok := byID[titleID]; ok {
			t.Genres = append(t.Genres, g)
		}
	}
	return rows.Err()
}

var _ repository.TitleRepository = (*TitleRepository)(nil)
