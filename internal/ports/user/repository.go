package user

import (
	"context"
	"time"

	"blogly/internal/core/user"

	"github.com/gofrs/uuid"
)

// UserRepository is the storage port for users.
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// UserDTO is the user as seen by handlers and templates. It never carries the
// password hash.
type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is an issued session token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}
