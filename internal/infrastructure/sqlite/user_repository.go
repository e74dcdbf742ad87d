package sqlite

import (
	"context"
	"database/sql"

	"github.com/oksasatya/blog-seed/internal/domain/entity"
	"github.com/oksasatya/blog-seed/internal/domain/repository"
)

const (
	insertUserSQL = `INSERT INTO users (id, name, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	selectUserSQL = `SELECT id, name, email, password_hash, created_at, updated_at FROM users`
)

type UserRepository struct {
	db *sql.DB
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	_, err := r.db.ExecContext(ctx, insertUserSQL, userArgs(u)...)
	return translate("user", "email", err)
}

func (r *UserRepository) CreateMany(ctx context.Context, users []*entity.User) error {
	if len(users) == 0 {
		return nil
	}
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insertUserSQL)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, u := range users {
			if _, err := stmt.ExecContext(ctx, userArgs(u)...); err != nil {
				return err
			}
		}
		return nil
	})
	return translate("user", "email", err)
}

func userArgs(u *entity.User) []any {
	return []any{u.ID, u.Name, u.Email, u.Password, formatTime(u.CreatedAt), formatTime(u.UpdatedAt)}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUserSQL+` WHERE id = ?`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUserSQL+` WHERE email = ?`, email))
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUserSQL+` ORDER BY created_at, id`)
	if err != nil {
		return nil, translate("user", "", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*entity.User, error) {
	var (
		u                entity.User
		created, updated string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &created, &updated); err != nil {
		return nil, translate("user", "", err)
	}
	var err error
	if u.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, translate("user", "", err)
	}
	return n, nil
}

func (r *UserRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users`)
	if err != nil {
		return 0, translate("user", "posts", err)
	}
	return res.RowsAffected()
}

var _ repository.UserRepository = (*UserRepository)(nil)
