package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/blog-seed/internal/domain/entity"
	"github.com/oksasatya/blog-seed/internal/domain/repository"
)

const (
	insertUserSQL = `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	selectUserSQL = `
		SELECT id::text, name, email, password_hash, created_at, updated_at
		FROM users
	`
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	_, err := r.pool.Exec(ctx, insertUserSQL, u.ID, u.Name, u.Email, u.Password, u.CreatedAt, u.UpdatedAt)
	return translate("create user", "user", err)
}

func (r *UserRepository) CreateMany(ctx context.Context, users []*entity.User) error {
	if len(users) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, u := range users {
		batch.Queue(insertUserSQL, u.ID, u.Name, u.Email, u.Password, u.CreatedAt, u.UpdatedAt)
	}
	return translate("create users", "user", insertBatch(ctx, r.pool, batch))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "get user", selectUserSQL+" WHERE id = $1", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "get user", selectUserSQL+" WHERE email = $1", email)
}

func (r *UserRepository) getOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translate(op, "user", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, selectUserSQL+" ORDER BY created_at, id")
	if err != nil {
		return nil, translate("list users", "user", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u := &entity.User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, translate("list users", "user", rows.Err())
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, translate("count users", "user", err)
	}
	return n, nil
}

func (r *UserRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM users`)
	if err != nil {
		return 0, translate("delete users", "user", err)
	}
	return res.RowsAffected(), nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
