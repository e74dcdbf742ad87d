package repository

import (
	"context"

	"github.com/oksasatya/blog-seed/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// CreateMany is atomic: either every user in the batch is stored or none is.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	CreateMany(ctx context.Context, users []*entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
