package repository

import (
	"context"

	"github.com/oksasatya/blog-seed/internal/domain/entity"
)

// PostRepository defines the interface for post-related database operations.
// CreateMany is atomic: either every post in the batch is stored or none is.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	CreateMany(ctx context.Context, posts []*entity.Post) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Post, error)
	List(ctx context.Context) ([]*entity.Post, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
