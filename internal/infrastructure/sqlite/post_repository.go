package sqlite

import (
	"context"
	"database/sql"

	"github.com/oksasatya/blog-seed/internal/domain/entity"
	"github.com/oksasatya/blog-seed/internal/domain/repository"
)

const (
	insertPostSQL = `INSERT INTO posts (id, user_id, title, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	selectPostSQL = `SELECT id, user_id, title, body, created_at, updated_at FROM posts`
)

type PostRepository struct {
	db *sql.DB
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	_, err := r.db.ExecContext(ctx, insertPostSQL, postArgs(p)...)
	return translate("post", "user_id", err)
}

func (r *PostRepository) CreateMany(ctx context.Context, posts []*entity.Post) error {
	if len(posts) == 0 {
		return nil
	}
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insertPostSQL)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, p := range posts {
			if _, err := stmt.ExecContext(ctx, postArgs(p)...); err != nil {
				return err
			}
		}
		return nil
	})
	return translate("post", "user_id", err)
}

func postArgs(p *entity.Post) []any {
	return []any{p.ID, p.UserID, p.Title, p.Body, formatTime(p.CreatedAt), formatTime(p.UpdatedAt)}
}

func (r *PostRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Post, error) {
	return r.list(ctx, selectPostSQL+` WHERE user_id = ? ORDER BY created_at, id`, userID)
}

func (r *PostRepository) List(ctx context.Context) ([]*entity.Post, error) {
	return r.list(ctx, selectPostSQL+` ORDER BY created_at, id`)
}

func (r *PostRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate("post", "", err)
	}
	defer rows.Close()

	var out []*entity.Post
	for rows.Next() {
		var (
			p                entity.Post
			created, updated string
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Body, &created, &updated); err != nil {
			return nil, err
		}
		if p.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		if p.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM posts`).Scan(&n); err != nil {
		return 0, translate("post", "", err)
	}
	return n, nil
}

func (r *PostRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts`)
	if err != nil {
		return 0, translate("post", "", err)
	}
	return res.RowsAffected()
}

var _ repository.PostRepository = (*PostRepository)(nil)
