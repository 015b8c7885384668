package domain

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User models an account as mirrored from the backend. The client never owns
// user state; role gating on this side is cosmetic and the backend enforces
// authorization on every call.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	Enabled  bool   `json:"enabled"`
}

// IsAdmin reports whether the user carries the ADMIN role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
