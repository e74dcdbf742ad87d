package entity

import (
	"time"
)

// User is an author account.
// Password holds the bcrypt hash; the plain text and its confirmation never reach the store.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
