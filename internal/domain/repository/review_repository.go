package repository

import (
	"context"

	"github.com/yamdb/yamdb/internal/domain/entity"
)

// PageFilter is plain limit/offset pagination.
type PageFilter struct {
	Limit  int
	Offset int
}

// ReviewRepository persists reviews. Create must surface the store's
// (author, title) unique-constraint violation as ErrDuplicate so a
// concurrent double-submit cannot slip past an application pre-check.
type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	Get(ctx context.Context, titleID, id int64) (*entity.Review, error)
	ListByTitle(ctx context.Context, titleID int64, f PageFilter) ([]entity.Review, error)
	ExistsByAuthorAndTitle(ctx context.Context, authorID string, titleID int64) (bool, error)
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, titleID, id int64) error
}

// CommentRepository persists review comments.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	Get(ctx context.Context, reviewID, id int64) (*entity.Comment, error)
	ListByReview(ctx context.Context, reviewID int64, f PageFilter) ([]entity.Comment, error)
	Update(ctx context.Context, c *entity.Comment) error
	Delete(ctx context.Context, reviewID, id int64) error
}
