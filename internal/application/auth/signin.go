package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	domain "github.com/orgstack/orgstack/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 72 * time.Hour

type SigninInput struct {
	Username string
	Password string
}

type SigninOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Signin interface {
	Execute(ctx context.Context, in SigninInput) (SigninOutput, error)
}

type credentialsRepo interface {
	GetCredentialsByUsername(ctx context.Context, username string) (domain.User, string, error)
}

type sessionTokenStore interface {
	Store(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error
}

type signin struct {
	users    credentialsRepo
	sessions sessionTokenStore
}

func NewSignin(users credentialsRepo, sessions sessionTokenStore) Signin {
	return &signin{users: users, sessions: sessions}
}

// Execute verifies credentials and mints an opaque session token. Only
// the SHA-256 digest is stored; the plaintext token exists in the
// response body and nowhere else.
func (uc *signin) Execute(ctx context.Context, in SigninInput) (SigninOutput, error) {
	u, hash, err := uc.users.GetCredentialsByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return SigninOutput{}, ErrInvalidCredentials
		}
		return SigninOutput{}, fmt.Errorf("get credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.Password)); err != nil {
		return SigninOutput{}, ErrInvalidCredentials
	}
	if !u.Active {
		return SigninOutput{}, ErrAccountInactive
	}

	token, err := newSessionToken()
	if err != nil {
		return SigninOutput{}, err
	}
	expiresAt := time.Now().Add(sessionTTL)
	if err := uc.sessions.Store(ctx, u.ID, HashToken(token), expiresAt); err != nil {
		return SigninOutput{}, fmt.Errorf("store session: %w", err)
	}

	return SigninOutput{Token: token, ExpiresAt: expiresAt}, nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashToken is the digest stored and looked up in place of the token
// itself.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
