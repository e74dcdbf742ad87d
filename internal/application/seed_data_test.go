package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/blog-seed/pkg/validation"
)

func TestLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"users": [
			{"name": "Dana", "email": "dana@example.com", "password": "hunter2hunter2", "password_confirmation": "hunter2hunter2"}
		],
		"posts": [
			{"title": "Hello", "body": "First post", "author": "Dana@Example.com"}
		]
	}`), 0o644))

	d, err := LoadDataset(path)
	require.NoError(t, err)
	require.Len(t, d.Users, 1)
	require.Len(t, d.Posts, 1)
	assert.Equal(t, "Dana", d.Users[0].Name)
	assert.NoError(t, d.normalized().Validate())
}

func TestLoadDatasetErrors(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users": [`), 0o644))
	_, err = LoadDataset(path)
	ve, ok := validation.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid json", ve.Fields["payload"])
}

func TestDatasetValidateRequiresUsers(t *testing.T) {
	ve, ok := validation.AsValidationError(Dataset{}.Validate())
	require.True(t, ok)
	assert.Equal(t, "is required", ve.Fields["users"])
}

func TestNormalizedDoesNotMutate(t *testing.T) {
	d := DefaultDataset()
	d.Users[0].Email = " Alice@Example.com"

	n := d.normalized()
	assert.Equal(t, "alice@example.com", n.Users[0].Email)
	assert.Equal(t, " Alice@Example.com", d.Users[0].Email)
}
