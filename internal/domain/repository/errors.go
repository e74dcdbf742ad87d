package repository

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// StorageUnavailableError means the persistence layer could not be reached.
type StorageUnavailableError struct {
	Op  string
	Err error
}

func (e *StorageUnavailableError) Error() string {
	if e.Err == nil {
		return e.Op + ": storage unavailable"
	}
	return e.Op + ": storage unavailable: " + e.Err.Error()
}

func (e *StorageUnavailableError) Unwrap() error { return e.Err }

func (e *StorageUnavailableError) Is(target error) bool { return target == ErrStorageUnavailable }

// Unavailable wraps err as a StorageUnavailableError for op.
func Unavailable(op string, err error) error {
	return &StorageUnavailableError{Op: op, Err: err}
}
