package ports

import (
	"context"

	"github.com/postqode/nexus-console/internal/core/domain"
)

// CreateUserInput carries a validated user create payload.
type CreateUserInput struct {
	Username string
	Password string
	Email    string
	Role     string
}

// UpdateUserInput carries a validated user update payload. An empty
// Password keeps the current one.
type UpdateUserInput struct {
	Username string
	Password string
	Email    string
	Role     string
}

// UserAPI wraps the /users endpoints (admin only by backend policy).
type UserAPI interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Enable(ctx context.Context, id string) (*domain.User, error)
	Disable(ctx context.Context, id string) (*domain.User, error)
	// SetEnabled is the single-call form used by the optimistic toggle.
	SetEnabled(ctx context.Context, id string, enabled bool) (*domain.User, error)
}
