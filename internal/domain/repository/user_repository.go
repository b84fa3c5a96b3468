package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/user-management-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when the referenced user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when a write violates the unique email constraint.
	ErrEmailTaken = errors.New("email already taken")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// List returns one page of users ordered by ascending id, plus the
	// total number of rows matching the search filter. An empty search
	// matches every user; a non-empty search matches users whose name or
	// email contains it (case-insensitive).
	List(ctx context.Context, search string, page, perPage int) ([]entity.User, int64, error)
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id int64) error
}
