package domain

import (
	"context"
	"time"
)

// RoleAdmin is the token role allowed to moderate events.
const RoleAdmin = "admin"

// User is a registered user. Users are managed outside this service; it only reads them.
// swagger:model User
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Category groups events. Categories are managed outside this service.
// swagger:model Category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserRepository looks users up by id. A miss is ErrNotFound.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

// CategoryRepository looks categories up by id. A miss is ErrNotFound.
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*Category, error)
}

// Principal is the authenticated caller extracted from a token.
type Principal struct {
	UserID string
	Roles  []string
}

// HasRole reports whether the principal carries role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// TokenIssuer issues tokens (e.g. JWT) for a user.
type TokenIssuer interface {
	Issue(userID string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated principal.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
}
