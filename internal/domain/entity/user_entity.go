package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Password holds the bcrypt hash and is never serialized; every API
// response goes through the struct's json tags, so the credential
// cannot leak through a handler that returns the entity directly.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
