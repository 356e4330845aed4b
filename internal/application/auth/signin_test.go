package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	app "github.com/orgstack/orgstack/internal/application/auth"
	domain "github.com/orgstack/orgstack/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type fakeCredentialsRepo struct {
	user domain.User
	hash string
	err  error
}

func (f *fakeCredentialsRepo) GetCredentialsByUsername(ctx context.Context, username string) (domain.User, string, error) {
	if f.err != nil {
		return domain.User{}, "", f.err
	}
	return f.user, f.hash, nil
}

type fakeSessionStore struct {
	userID    uint64
	tokenHash string
	expiresAt time.Time
}

func (f *fakeSessionStore) Store(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error {
	f.userID, f.tokenHash, f.expiresAt = userID, tokenHash, expiresAt
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func TestSigninIssuesOpaqueToken(t *testing.T) {
	t.Parallel()

	users := &fakeCredentialsRepo{
		user: domain.User{ID: 5, Username: "alice", Active: true},
		hash: mustHash(t, "correct-horse"),
	}
	sessions := &fakeSessionStore{}
	uc := app.NewSignin(users, sessions)

	out, err := uc.Execute(context.Background(), app.SigninInput{Username: "alice", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if out.Token == "" {
		t.Fatal("expected a token")
	}
	if sessions.userID != 5 {
		t.Fatalf("expected session for user 5, got %d", sessions.userID)
	}
	// Only the digest is persisted.
	if sessions.tokenHash == out.Token {
		t.Fatal("expected stored hash to differ from the token")
	}
	if sessions.tokenHash != app.HashToken(out.Token) {
		t.Fatal("stored hash does not match the issued token")
	}
	if !out.ExpiresAt.After(time.Now()) {
		t.Fatal("expected a future expiry")
	}
}

func TestSigninWrongPassword(t *testing.T) {
	t.Parallel()

	users := &fakeCredentialsRepo{
		user: domain.User{ID: 5, Username: "alice", Active: true},
		hash: mustHash(t, "correct-horse"),
	}
	uc := app.NewSignin(users, &fakeSessionStore{})

	_, err := uc.Execute(context.Background(), app.SigninInput{Username: "alice", Password: "wrong"})
	if !errors.Is(err, app.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSigninUnknownUser(t *testing.T) {
	t.Parallel()

	users := &fakeCredentialsRepo{err: domain.ErrUserNotFound}
	uc := app.NewSignin(users, &fakeSessionStore{})

	_, err := uc.Execute(context.Background(), app.SigninInput{Username: "ghost", Password: "whatever"})
	if !errors.Is(err, app.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSigninInactiveAccount(t *testing.T) {
	t.Parallel()

	users := &fakeCredentialsRepo{
		user: domain.User{ID: 5, Username: "alice", Active: false},
		hash: mustHash(t, "correct-horse"),
	}
	uc := app.NewSignin(users, &fakeSessionStore{})

	_, err := uc.Execute(context.Background(), app.SigninInput{Username: "alice", Password: "correct-horse"})
	if !errors.Is(err, app.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestSigninImportedAccountPlaceholderRejected(t *testing.T) {
	t.Parallel()

	// Accounts created by the membership import stay inactive, so the
	// deterministic placeholder password can never open a session.
	users := &fakeCredentialsRepo{
		user: domain.User{ID: 5, Username: "alice", Active: false, MustResetPassword: true},
		hash: mustHash(t, domain.PlaceholderPassword("alice")),
	}
	uc := app.NewSignin(users, &fakeSessionStore{})

	_, err := uc.Execute(context.Background(), app.SigninInput{
		Username: "alice",
		Password: domain.PlaceholderPassword("alice"),
	})
	if !errors.Is(err, app.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}
