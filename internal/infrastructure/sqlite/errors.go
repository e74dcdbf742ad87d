package sqlite

import (
	"database/sql"
	"errors"
	"regexp"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/oksasatya/blog-seed/internal/domain/repository"
	"github.com/oksasatya/blog-seed/pkg/validation"
)

var constraintColumn = regexp.MustCompile(`constraint failed: \w+\.(\w+)`)

// translate maps SQLite result codes onto the domain taxonomy. fallbackField
// names the column reported when SQLite does not say which one failed
// (foreign key violations).
func translate(entityName, fallbackField string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}

	var se *msqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	field := fallbackField
	if m := constraintColumn.FindStringSubmatch(se.Error()); m != nil {
		field = m[1]
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return validation.NewFieldError(entityName, field, "has already been taken", err)
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return validation.NewFieldError(entityName, field, "is required", err)
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return validation.NewFieldError(entityName, field, "must reference an existing record", err)
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return validation.NewFieldError(entityName, field, "is invalid", err)
	case sqlite3.SQLITE_CONSTRAINT:
		if strings.Contains(se.Error(), "UNIQUE") {
			return validation.NewFieldError(entityName, field, "has already been taken", err)
		}
		return validation.NewFieldError(entityName, field, "is invalid", err)
	case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_IOERR:
		return repository.Unavailable(entityName+" store", err)
	}
	return err
}
