package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/blog-seed/internal/domain/entity"
	"github.com/oksasatya/blog-seed/internal/domain/repository"
	"github.com/oksasatya/blog-seed/pkg/validation"
)

const migrationsDir = "../../../db/migrations/sqlite"

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blog.db")
	require.NoError(t, RunMigrations(path, migrationsDir, false, nil))
	store, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newUser(email string) *entity.User {
	now := time.Now().UTC()
	return &entity.User{ID: uuid.NewString(), Name: "Someone", Email: email, Password: "hash", CreatedAt: now, UpdatedAt: now}
}

func TestUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	users := newTestStore(t).Users()

	u := newUser("alice@example.com")
	require.NoError(t, users.Create(ctx, u))

	got, err := users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.Password)
	assert.True(t, u.CreatedAt.Equal(got.CreatedAt))

	byID, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)

	_, err = users.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserCreateManyIsAtomic(t *testing.T) {
	ctx := context.Background()
	users := newTestStore(t).Users()

	batch := []*entity.User{newUser("a@example.com"), newUser("b@example.com"), newUser("a@example.com")}
	err := users.CreateMany(ctx, batch)

	ve, ok := validation.AsValidationError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "has already been taken", ve.Fields["email"])

	n, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostRequiresExistingUser(t *testing.T) {
	ctx := context.Background()
	posts := newTestStore(t).Posts()

	ghost := newUser("ghost@example.com")
	p := entity.NewPost(ghost, "Title", "Body")
	p.ID = uuid.NewString()

	err := posts.Create(ctx, p)
	ve, ok := validation.AsValidationError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "must reference an existing record", ve.Fields["user_id"])
}

func TestDeleteUsersWithPostsIsRestricted(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	u := newUser("owner@example.com")
	require.NoError(t, store.Users().Create(ctx, u))
	p := entity.NewPost(u, "Title", "Body")
	p.ID = uuid.NewString()
	require.NoError(t, store.Posts().Create(ctx, p))

	_, err := store.Users().DeleteAll(ctx)
	_, ok := validation.AsValidationError(err)
	assert.True(t, ok, "got %v", err)

	deleted, err := store.Posts().DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = store.Users().DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestPostListByUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	a, b := newUser("a@example.com"), newUser("b@example.com")
	require.NoError(t, store.Users().CreateMany(ctx, []*entity.User{a, b}))

	var batch []*entity.Post
	for i, owner := range []*entity.User{a, b, a} {
		p := entity.NewPost(owner, "T", "B")
		p.ID = uuid.Must(uuid.NewV7()).String()
		p.CreatedAt = time.Unix(1700000000+int64(i), 0)
		p.UpdatedAt = p.CreatedAt
		batch = append(batch, p)
	}
	require.NoError(t, store.Posts().CreateMany(ctx, batch))

	all, err := store.Posts().List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := range batch {
		assert.Equal(t, batch[i].ID, all[i].ID)
		assert.Equal(t, batch[i].UserID, all[i].UserID)
	}

	mine, err := store.Posts().ListByUser(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	n, err := store.Posts().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestOpenUnreachablePath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Open(context.Background(), filepath.Join(blocker, "nested", "blog.db"))
	assert.ErrorIs(t, err, repository.ErrStorageUnavailable)
}

func TestRunMigrationsUpAndDown(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "blog.db")

	require.NoError(t, RunMigrations(path, migrationsDir, false, nil))
	// already at the latest version
	require.NoError(t, RunMigrations(path, migrationsDir, false, nil))

	store, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(ctx, newUser("alice@example.com")))
	n, err := store.Users().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, store.Close())

	require.NoError(t, RunMigrations(path, migrationsDir, true, nil))

	store, err = Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	_, err = store.Users().Count(ctx)
	assert.Error(t, err)
	_, err = store.Posts().Count(ctx)
	assert.Error(t, err)
}

func TestRunMigrationsMissingDir(t *testing.T) {
	err := RunMigrations(filepath.Join(t.TempDir(), "blog.db"), filepath.Join(t.TempDir(), "nope"), false, nil)
	assert.Error(t, err)
}
