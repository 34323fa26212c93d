package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"iotshop/internal/domain"
)

type stubUsers struct {
	byEmail map[string]domain.User
	created []domain.User
}

func (s *stubUsers) ByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (s *stubUsers) Create(_ context.Context, u domain.User) (domain.User, error) {
	if _, ok := s.byEmail[u.Email]; ok {
		return domain.User{}, domain.ErrAlreadyExists
	}
	s.created = append(s.created, u)
	if s.byEmail == nil {
		s.byEmail = map[string]domain.User{}
	}
	s.byEmail[u.Email] = u
	return u, nil
}

func seededUsers(t *testing.T) *stubUsers {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &stubUsers{byEmail: map[string]domain.User{
		"user@example.com": {
			ID:           "u1",
			Name:         "Demo User",
			Email:        "user@example.com",
			PasswordHash: string(hash),
		},
	}}
}

func TestLoginSuccess(t *testing.T) {
	svc := New(seededUsers(t), "test-secret", time.Hour)

	sess, err := svc.Login(context.Background(), "s1", "User@Example.com ", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token == "" {
		t.Fatalf("expected a token")
	}
	if sess.User.ID != "u1" {
		t.Fatalf("unexpected user: %+v", sess.User)
	}
	if !svc.Active("s1") {
		t.Fatalf("session should be active after login")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := New(seededUsers(t), "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "s1", "user@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "s1", "nobody@example.com", "password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if svc.Active("s1") {
		t.Fatalf("failed login must not open a session")
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	svc := New(seededUsers(t), "test-secret", time.Hour)

	sess, err := svc.Login(context.Background(), "s1", "user@example.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.Verify(sess.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "user@example.com" || claims.IsAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsForgedToken(t *testing.T) {
	issuing := New(seededUsers(t), "other-secret", time.Hour)
	sess, err := issuing.Login(context.Background(), "s1", "user@example.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	svc := New(seededUsers(t), "test-secret", time.Hour)
	if _, err := svc.Verify(sess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := New(seededUsers(t), "test-secret", -time.Minute)
	sess, err := svc.Login(context.Background(), "s1", "user@example.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Verify(sess.Token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestDecodeUnverifiedReadsDisplayFields(t *testing.T) {
	svc := New(seededUsers(t), "test-secret", time.Hour)
	sess, err := svc.Login(context.Background(), "s1", "user@example.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := DecodeUnverified(sess.Token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.Name != "Demo User" || claims.Email != "user@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestSessionExpiresViaTimer(t *testing.T) {
	svc := New(seededUsers(t), "test-secret", 10*time.Millisecond)
	if _, err := svc.Login(context.Background(), "s1", "user@example.com", "password"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !svc.Active("s1") {
		t.Fatalf("session should start active")
	}
	time.Sleep(30 * time.Millisecond)
	if svc.Active("s1") {
		t.Fatalf("session should expire once the TTL elapses")
	}
}

func TestReloginReplacesExpiryTimer(t *testing.T) {
	svc := New(seededUsers(t), "test-secret", 25*time.Millisecond)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "s1", "user@example.com", "password"); err != nil {
		t.Fatalf("first login: %v", err)
	}
	time.Sleep(15 * time.Millisecond)
	if _, err := svc.Login(ctx, "s1", "user@example.com", "password"); err != nil {
		t.Fatalf("second login: %v", err)
	}

	// The first timer would fire here; the replacement must keep the
	// session alive for its own full TTL.
	time.Sleep(15 * time.Millisecond)
	if !svc.Active("s1") {
		t.Fatalf("re-login must reset the expiry clock")
	}
	time.Sleep(25 * time.Millisecond)
	if svc.Active("s1") {
		t.Fatalf("session should expire after the second TTL")
	}
}

func TestLogoutStopsTimer(t *testing.T) {
	svc := New(seededUsers(t), "test-secret", time.Hour)
	if _, err := svc.Login(context.Background(), "s1", "user@example.com", "password"); err != nil {
		t.Fatalf("login: %v", err)
	}
	svc.Logout("s1")
	if svc.Active("s1") {
		t.Fatalf("session should be gone after logout")
	}
	// Logging out twice must not panic.
	svc.Logout("s1")
}

func TestRegisterCreatesAndSignsIn(t *testing.T) {
	users := seededUsers(t)
	svc := New(users, "test-secret", time.Hour)

	sess, err := svc.Register(context.Background(), "s1", "New Maker", "New@Example.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(users.created) != 1 {
		t.Fatalf("expected one created user, got %d", len(users.created))
	}
	created := users.created[0]
	if created.Email != "new@example.com" {
		t.Fatalf("email not normalized: %q", created.Email)
	}
	if created.PasswordHash == "secret1" || created.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
	if sess.User.ID == "" || sess.Token == "" {
		t.Fatalf("registration should sign the user in: %+v", sess)
	}
	if !svc.Active("s1") {
		t.Fatalf("session should be active after registration")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := New(seededUsers(t), "test-secret", time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "s1", " ", "not-an-email", "123")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"name", "email", "password"} {
		if verr.Fields[field] == "" {
			t.Fatalf("expected violation on %s: %v", field, verr.Fields)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := New(seededUsers(t), "test-secret", time.Hour)
	_, err := svc.Register(context.Background(), "s1", "Dup", "user@example.com", "secret1")
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}
