package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/blog-seed/internal/domain/repository"
	"github.com/oksasatya/blog-seed/pkg/validation"
)

// SQLSTATE class 23 codes we surface as validation failures.
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// translate maps driver errors onto the domain taxonomy: constraint
// violations become *validation.ValidationError, connectivity failures become
// *repository.StorageUnavailableError. Anything else is returned as is.
func translate(op, entityName string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		field := constraintField(pgErr.TableName, pgErr.ConstraintName, pgErr.ColumnName)
		switch pgErr.Code {
		case codeUniqueViolation:
			return validation.NewFieldError(entityName, field, "has already been taken", err)
		case codeNotNullViolation:
			return validation.NewFieldError(entityName, field, "is required", err)
		case codeForeignKeyViolation:
			return validation.NewFieldError(entityName, field, "must reference an existing record", err)
		case codeCheckViolation:
			return validation.NewFieldError(entityName, field, "is invalid", err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || (pgconn.Timeout(err) && !errors.Is(err, context.Canceled)) {
		return repository.Unavailable(op, err)
	}
	return err
}

// constraintField recovers the column behind a constraint such as
// users_email_key or posts_user_id_fkey.
func constraintField(table, constraint, column string) string {
	if column != "" {
		return column
	}
	name := constraint
	if table != "" {
		name = strings.TrimPrefix(name, table+"_")
	}
	for _, suffix := range []string{"_fkey", "_key", "_check", "_not_null"} {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			break
		}
	}
	if name == "" {
		return "record"
	}
	return name
}
