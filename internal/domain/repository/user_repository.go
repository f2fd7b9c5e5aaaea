package repository

import (
	"context"

	"github.com/yamdb/yamdb/internal/domain/entity"
)

// UserFilter narrows List results.
type UserFilter struct {
	Username string // exact match, empty = all
	Limit    int
	Offset   int
}

// UserRepository defines user-directory persistence operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context, f UserFilter) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, username string) error
}
