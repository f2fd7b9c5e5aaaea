package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/yamdb/yamdb/internal/domain/entity"
	"github.com/yamdb/yamdb/internal/domain/repository"
)

// ReviewService manages reviews and their comments. Nested-resource
// semantics: every operation first proves the parent chain exists so a
// bad title or review id yields a not-found, never an empty success.
type ReviewService struct {
	Titles   repository.TitleRepository
	Reviews  repository.ReviewRepository
	Comments repository.CommentRepository
	Logger   *logrus.Logger
}

func NewReviewService(titles repository.TitleRepository, reviews repository.ReviewRepository,
	comments repository.CommentRepository, logger *logrus.Logger) *ReviewService {
	return &ReviewService{Titles: titles, Reviews: reviews, Comments: comments, Logger: logger}
}

func (s *ReviewService) requireTitle(ctx context.Context, titleID int64) error {
	if _, err := s.Titles.Get(ctx, titleID); err != nil {
		return mapRepoErr(err)
	}
	return nil
}

// CreateReview inserts a review. The friendly duplicate answer comes
// from a pre-check, but the store's unique constraint is the authority:
// a concurrent duplicate surfaces as repository.ErrDuplicate and maps to
// the same client-facing error.
func (s *ReviewService) CreateReview(ctx context.Context, authorID string, titleID int64, text string, score int) (*entity.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	rev := &entity.Review{TitleID: titleID, AuthorID: authorID, Text: text, Score: score}
	if fields := rev.Validate(); len(fields) > 0 {
		return nil, validationErr(fields)
	}
	exists, err := s.Reviews.ExistsByAuthorAndTitle(ctx, authorID, titleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}
	if err := s.Reviews.Create(ctx, rev); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}
	return s.GetReview(ctx, titleID, rev.ID)
}

func (s *ReviewService) GetReview(ctx context.Context, titleID, id int64) (*entity.Review, error) {
	rev, err := s.Reviews.Get(ctx, titleID, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return rev, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, titleID int64, f repository.PageFilter) ([]entity.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	return s.Reviews.ListByTitle(ctx, titleID, f)
}

// ReviewInput is a partial update.
type ReviewInput struct {
	Text  *string
	Score *int
}

func (s *ReviewService) UpdateReview(ctx context.Context, titleID, id int64, in ReviewInput) (*entity.Review, error) {
	rev, err := s.Reviews.Get(ctx, titleID, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if in.Text != nil {
		rev.Text = *in.Text
	}
	if in.Score != nil {
		rev.Score = *in.Score
	}
	if fields := rev.Validate(); len(fields) > 0 {
		return nil, validationErr(fields)
	}
	if err := s.Reviews.Update(ctx, rev); err != nil {
		return nil, mapRepoErr(err)
	}
	return rev, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, titleID, id int64) error {
	return mapRepoErr(s.Reviews.Delete(ctx, titleID, id))
}

// requireReview proves the (title, review) chain exists.
func (s *ReviewService) requireReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.Reviews.Get(ctx, titleID, reviewID); err != nil {
		return mapRepoErr(err)
	}
	return nil
}

func (s *ReviewService) CreateComment(ctx context.Context, authorID string, titleID, reviewID int64, text string) (*entity.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	c := &entity.Comment{ReviewID: reviewID, AuthorID: authorID, Text: text}
	if fields := c.Validate(); len(fields) > 0 {
		return nil, validationErr(fields)
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.GetComment(ctx, titleID, reviewID, c.ID)
}

func (s *ReviewService) GetComment(ctx context.Context, titleID, reviewID, id int64) (*entity.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	c, err := s.Comments.Get(ctx, reviewID, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return c, nil
}

func (s *ReviewService) ListComments(ctx context.Context, titleID, reviewID int64, f repository.PageFilter) ([]entity.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.Comments.ListByReview(ctx, reviewID, f)
}

func (s *ReviewService) UpdateComment(ctx context.Context, titleID, reviewID, id int64, text string) (*entity.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	c, err := s.Comments.Get(ctx, reviewID, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	c.Text = text
	if fields := c.Validate(); len(fields) > 0 {
		return nil, validationErr(fields)
	}
	if err := s.Comments.Update(ctx, c); err != nil {
		return nil, mapRepoErr(err)
	}
	return c, nil
}

func (s *ReviewService) DeleteComment(ctx context.Context, titleID, reviewID, id int64) error {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return err
	}
	return mapRepoErr(s.Comments.Delete(ctx, reviewID, id))
}
