package ports

import (
	"context"

	"github.com/postqode/nexus-console/internal/core/domain"
)

// LoginResult is the auth endpoint's response. The backend returns the
// token plus flat username/role fields rather than a nested user object.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// AuthAPI wraps the /auth endpoints.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Logout tells the backend to discard the session. Best-effort: the
	// caller clears local state regardless of the outcome.
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, error)
}

// Credentials is the durable local state: the bearer token and the profile
// of the user it belongs to. Nothing else is ever persisted client-side.
type Credentials struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// CredentialStore abstracts the durable local key-value storage
// (browser localStorage / device async-storage equivalents).
type CredentialStore interface {
	// Load returns the stored credentials, or nil when none exist.
	Load() (*Credentials, error)
	Save(creds *Credentials) error
	Clear() error
}
