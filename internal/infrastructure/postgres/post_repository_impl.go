package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/blog-seed/internal/domain/entity"
	"github.com/oksasatya/blog-seed/internal/domain/repository"
)

const (
	insertPostSQL = `
		INSERT INTO posts (id, user_id, title, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	selectPostSQL = `
		SELECT id::text, user_id::text, title, body, created_at, updated_at
		FROM posts
	`
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	_, err := r.pool.Exec(ctx, insertPostSQL, p.ID, p.UserID, p.Title, p.Body, p.CreatedAt, p.UpdatedAt)
	return translate("create post", "post", err)
}

func (r *PostRepository) CreateMany(ctx context.Context, posts []*entity.Post) error {
	if len(posts) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range posts {
		batch.Queue(insertPostSQL, p.ID, p.UserID, p.Title, p.Body, p.CreatedAt, p.UpdatedAt)
	}
	return translate("create posts", "post", insertBatch(ctx, r.pool, batch))
}

func (r *PostRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Post, error) {
	return r.list(ctx, selectPostSQL+" WHERE user_id = $1 ORDER BY created_at, id", userID)
}

func (r *PostRepository) List(ctx context.Context) ([]*entity.Post, error) {
	return r.list(ctx, selectPostSQL+" ORDER BY created_at, id")
}

func (r *PostRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate("list posts", "post", err)
	}
	defer rows.Close()

	var out []*entity.Post
	for rows.Next() {
		p := &entity.Post{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, translate("list posts", "post", rows.Err())
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM posts`).Scan(&n); err != nil {
		return 0, translate("count posts", "post", err)
	}
	return n, nil
}

func (r *PostRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts`)
	if err != nil {
		return 0, translate("delete posts", "post", err)
	}
	return res.RowsAffected(), nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
