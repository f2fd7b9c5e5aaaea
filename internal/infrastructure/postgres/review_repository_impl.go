package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamdb/yamdb/internal/domain/entity"
	"github.com/yamdb/yamdb/internal/domain/repository"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create relies on the reviews_author_title_key constraint: a second
// insert for the same (author, title) comes back as ErrDuplicate even
// when two requests race past any application-level pre-check.
func (r *ReviewRepository) Create(ctx context.Context, rev *entity.Review) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (title_id, author_id, text, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, rev.TitleID, rev.AuthorID, rev.Text, rev.Score)
	return translateErr(row.Scan(&rev.ID, &rev.CreatedAt))
}

func (r *ReviewRepository) Get(ctx context.Context, titleID, id int64) (*entity.Review, error) {
	rev := &entity.Review{}
	row := r.pool.QueryRow(ctx, `
		SELECT r.id, r.title_id, r.author_id, u.username, r.text, r.score, r.created_at
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.title_id = $1 AND r.id = $2
	`, titleID, id)
	if err := row.Scan(&rev.ID, &rev.TitleID, &rev.AuthorID, &rev.Author,
		&rev.Text, &rev.Score, &rev.CreatedAt); err != nil {
		return nil, translateErr(err)
	}
	return rev, nil
}

func (r *ReviewRepository) ListByTitle(ctx context.Context, titleID int64, f repository.PageFilter) ([]entity.Review, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.title_id, r.author_id, u.username, r.text, r.score, r.created_at
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.title_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`, titleID, limit, f.Offset)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var reviews []entity.Review
	for rows.Next() {
		var rev entity.Review
		if err := rows.Scan(&rev.ID, &rev.TitleID, &rev.AuthorID, &rev.Author,
			&rev.Text, &rev.Score, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) ExistsByAuthorAndTitle(ctx context.Context, authorID string, titleID int64) (bool, error) {
	var exists bool
	row := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM reviews WHERE author_id = $1 AND title_id = $2)
	`, authorID, titleID)
	if err := row.Scan(&exists); err != nil {
		return false, translateErr(err)
	}
	return exists, nil
}

func (r *ReviewRepository) Update(ctx context.Context, rev *entity.Review) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE reviews SET text = $1, score = $2 WHERE id = $3 AND title_id = $4
	`, rev.Text, rev.Score, rev.ID, rev.TitleID)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, titleID, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE title_id = $1 AND id = $2`, titleID, id)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
