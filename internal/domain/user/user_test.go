package user_test

import (
	"testing"

	domain "github.com/orgstack/orgstack/internal/domain/user"
)

func TestNewUserValid(t *testing.T) {
	t.Parallel()

	u, err := domain.NewUser("alice", "alice@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("unexpected username: %s", u.Username)
	}
	if u.Active {
		t.Fatal("new users must start inactive")
	}
}

func TestNewUserTrimsUsername(t *testing.T) {
	t.Parallel()

	u, err := domain.NewUser("  bob ", "bob@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if u.Username != "bob" {
		t.Fatalf("unexpected username: %q", u.Username)
	}
}

func TestNewUserInvalidEmail(t *testing.T) {
	t.Parallel()

	_, err := domain.NewUser("alice", "alice-at-example.com")
	if err != domain.ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestNewUserEmptyUsername(t *testing.T) {
	t.Parallel()

	_, err := domain.NewUser("   ", "alice@example.com")
	if err != domain.ErrInvalidUsername {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
}

func TestPlaceholderPassword(t *testing.T) {
	t.Parallel()

	if got := domain.PlaceholderPassword("alice"); got != "alice-t3m9p" {
		t.Fatalf("unexpected placeholder: %s", got)
	}
}
