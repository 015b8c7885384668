package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
)

// Session is the application-scoped auth state, constructed once at startup
// and injected wherever the token or profile is needed. The transport reads
// the token through the TokenSource interface; nothing reads ambient storage.
type Session struct {
	store ports.CredentialStore
	log   zerolog.Logger

	mu    sync.RWMutex
	auth  ports.AuthAPI
	token string
	user  *domain.User
}

func NewSession(store ports.CredentialStore, log zerolog.Logger) *Session {
	return &Session{store: store, log: log}
}

// AttachAuth wires the auth API after the transport exists. The transport
// needs the session as its token source, so the two are built in that order.
func (s *Session) AttachAuth(auth ports.AuthAPI) {
	s.mu.Lock()
	s.auth = auth
	s.mu.Unlock()
}

// Restore loads stored credentials synchronously, before anything renders,
// so an existing session never flashes as logged-out. Credentials whose
// token is already expired are dropped on the spot.
func (s *Session) Restore() error {
	creds, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if creds == nil {
		return nil
	}

	if expired(creds.Token) {
		s.log.Info().Str("username", creds.User.Username).Msg("stored token expired, clearing session")
		if err := s.store.Clear(); err != nil {
			return fmt.Errorf("clear expired session: %w", err)
		}
		return nil
	}

	s.mu.Lock()
	s.token = creds.Token
	s.user = creds.User
	s.mu.Unlock()
	s.log.Debug().Str("username", creds.User.Username).Msg("session restored")
	return nil
}

// expired inspects the token's exp claim without verifying the signature;
// the client has no key and the backend is the authority anyway. Tokens
// without an exp claim, or unparseable ones, are kept and left for the
// backend to reject.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Login authenticates against the backend and establishes the session:
// credentials are persisted and swapped into memory as one step, so a
// storage failure leaves the session unchanged.
func (s *Session) Login(ctx context.Context, username, password string) (*domain.User, error) {
	s.mu.RLock()
	auth := s.auth
	s.mu.RUnlock()

	res, err := auth.Login(ctx, username, password)
	if err != nil {
		s.log.Debug().Err(err).Str("username", username).Msg("login rejected")
		return nil, err
	}

	// The login response carries flat username/role fields, not a user
	// object; the profile is assembled from them.
	user := &domain.User{
		ID:       res.Username,
		Username: res.Username,
		Role:     res.Role,
		Enabled:  true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(&ports.Credentials{Token: res.Token, User: user}); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	s.token = res.Token
	s.user = user
	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("session established")
	return user, nil
}

// Logout notifies the backend best-effort and unconditionally clears local
// state. A failed logout call is swallowed: the token is discarded locally
// either way.
func (s *Session) Logout(ctx context.Context) {
	s.mu.RLock()
	auth := s.auth
	s.mu.RUnlock()

	if auth != nil {
		if err := auth.Logout(ctx); err != nil {
			s.log.Warn().Err(err).Msg("logout call failed, clearing session anyway")
		}
	}
	s.Invalidate()
}

// Invalidate clears the session without a network call. It is the target of
// the transport's 401 hook, so any unauthorized response from any screen
// ends the session exactly once through this path.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear stored credentials")
	}
	s.token = ""
	s.user = nil
}

// Token implements the transport's token source.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current profile, or nil when logged out.
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether both token and profile are present.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// IsAdmin reports whether the current user carries the ADMIN role.
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin()
}
