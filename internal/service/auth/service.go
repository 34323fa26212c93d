// Package auth handles credentials, token issuance and session expiry.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"iotshop/internal/domain"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSessionExpired is returned once the token TTL has elapsed.
	ErrSessionExpired = errors.New("session expired")
	// ErrInvalidToken is returned for malformed or tampered tokens.
	ErrInvalidToken = errors.New("invalid token")
)

type userRepository interface {
	ByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

// Session is the authenticated state returned to handlers.
type Session struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Service authenticates users and tracks one live session per client
// session id. A timer fires at token expiry and drops the session, so a
// client that never calls logout is still signed out server-side.
type Service struct {
	users  userRepository
	issuer tokenIssuer

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func New(users userRepository, secret string, ttl time.Duration) *Service {
	return &Service{
		users:  users,
		issuer: tokenIssuer{secret: []byte(secret), ttl: ttl},
		timers: make(map[string]*time.Timer),
	}
}

// Login verifies credentials and issues a token. Re-login on the same
// session id replaces the previous expiry timer.
func (s *Service) Login(ctx context.Context, sessionID, email, password string) (Session, error) {
	u, err := s.users.ByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.open(sessionID, u)
}

// Register creates the account and signs it straight in.
func (s *Service) Register(ctx context.Context, sessionID, name, email, password string) (Session, error) {
	if err := validateRegistration(name, email, password); err != nil {
		return Session{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, err
	}

	u, err := s.users.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return Session{}, err
	}
	return s.open(sessionID, u)
}

func (s *Service) open(sessionID string, u domain.User) (Session, error) {
	token, err := s.issuer.issue(u, time.Now())
	if err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	if t, ok := s.timers[sessionID]; ok {
		t.Stop()
	}
	s.timers[sessionID] = time.AfterFunc(s.issuer.ttl, func() {
		s.mu.Lock()
		delete(s.timers, sessionID)
		s.mu.Unlock()
	})
	s.mu.Unlock()

	return Session{Token: token, User: u}, nil
}

// Logout stops the expiry timer and forgets the session. Unknown session
// ids are a no-op.
func (s *Service) Logout(sessionID string) {
	s.mu.Lock()
	if t, ok := s.timers[sessionID]; ok {
		t.Stop()
		delete(s.timers, sessionID)
	}
	s.mu.Unlock()
}

// Active reports whether the session id still has a live login.
func (s *Service) Active(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[sessionID]
	return ok
}

// Verify checks a bearer token's signature and expiry. This is the
// authorization path; display-only reads go through DecodeUnverified.
func (s *Service) Verify(token string) (Claims, error) {
	return s.issuer.verify(token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(name, email, password string) error {
	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "Name is required"
	}
	e := normalizeEmail(email)
	if e == "" {
		fields["email"] = "Email is required"
	} else if !strings.Contains(e, "@") || strings.HasPrefix(e, "@") || strings.HasSuffix(e, "@") {
		fields["email"] = "Invalid email address"
	}
	if len(password) < 6 {
		fields["password"] = "Password must be at least 6 characters"
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}
