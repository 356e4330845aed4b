package auth

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/orgstack/orgstack/internal/domain/user"
)

type VerifyEmail interface {
	Execute(ctx context.Context, token string) error
}

type verifyEmailUserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	SetActive(ctx context.Context, userID uint64) error
}

type verifyEmail struct {
	users  verifyEmailUserRepo
	tokens *EmailTokenCodec
}

func NewVerifyEmail(users verifyEmailUserRepo, tokens *EmailTokenCodec) VerifyEmail {
	return &verifyEmail{users: users, tokens: tokens}
}

func (uc *verifyEmail) Execute(ctx context.Context, token string) error {
	email, err := uc.tokens.Parse(token)
	if err != nil {
		return ErrInvalidToken
	}

	u, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("get user by email: %w", err)
	}
	if u.Active {
		return ErrAlreadyVerified
	}

	if err := uc.users.SetActive(ctx, u.ID); err != nil {
		return fmt.Errorf("activate user: %w", err)
	}
	return nil
}
