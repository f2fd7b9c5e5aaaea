package repository

import (
	"context"

	"github.com/yamdb/yamdb/internal/domain/entity"
)

// TermFilter narrows category/genre lists.
type TermFilter struct {
	Search string // name substring, case-insensitive
	Limit  int
	Offset int
}

// TitleFilter narrows title lists. Zero values mean "no filter".
type TitleFilter struct {
	Name         string // substring, case-insensitive
	CategorySlug string
	GenreSlug    string
	Year         int
	Limit        int
	Offset       int
}

// CategoryRepository persists categories. No update: the external
// surface is list/create/delete only.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	List(ctx context.Context, f TermFilter) ([]entity.Category, error)
	Delete(ctx context.Context, slug string) error
}

// GenreRepository persists genres.
type GenreRepository interface {
	Create(ctx context.Context, g *entity.Genre) error
	GetBySlug(ctx context.Context, slug string) (*entity.Genre, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]entity.Genre, error)
	List(ctx context.Context, f TermFilter) ([]entity.Genre, error)
	Delete(ctx context.Context, slug string) error
}

// TitleRepository persists titles. Get and List must compute the rating
// aggregate with the same expression so the two never diverge.
type TitleRepository interface {
	Create(ctx context.Context, t *entity.Title, genreIDs []int64) error
	Get(ctx context.Context, id int64) (*entity.Title, error)
	List(ctx context.Context, f TitleFilter) ([]entity.Title, error)
	Update(ctx context.Context, t *entity.Title, genreIDs []int64) error
	Delete(ctx context.Context, id int64) error
}
