package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamdb/yamdb/internal/domain/entity"
	"github.com/yamdb/yamdb/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (review_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.ReviewID, c.AuthorID, c.Text)
	return translateErr(row.Scan(&c.ID, &c.CreatedAt))
}

func (r *CommentRepository) Get(ctx context.Context, reviewID, id int64) (*entity.Comment, error) {
	c := &entity.Comment{}
	row := r.pool.QueryRow(ctx, `
		SELECT c.id, c.review_id, c.author_id, u.username, c.text, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.review_id = $1 AND c.id = $2
	`, reviewID, id)
	if err := row.Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.CreatedAt); err != nil {
		return nil, translateErr(err)
	}
	return c, nil
}

func (r *CommentRepository) ListByReview(ctx context.Context, reviewID int64, f repository.PageFilter) ([]entity.Comment, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.review_id, c.author_id, u.username, c.text, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.review_id = $1
		ORDER BY c.created_at
		LIMIT $2 OFFSET $3
	`, reviewID, limit, f.Offset)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var comments []entity.Comment
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Update(ctx context.Context, c *entity.Comment) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE comments SET text = $1 WHERE id = $2 AND review_id = $3
	`, c.Text, c.ID, c.ReviewID)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, reviewID, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE review_id = $1 AND id = $2`, reviewID, id)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
