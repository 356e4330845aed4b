package auth

import (
	"context"
	"fmt"
)

type Logout interface {
	Execute(ctx context.Context, token string) error
}

type LogoutAll interface {
	Execute(ctx context.Context, userID uint64) error
}

type sessionTokenDeleter interface {
	Delete(ctx context.Context, tokenHash string) error
	DeleteAllForUser(ctx context.Context, userID uint64) error
}

type logout struct {
	sessions sessionTokenDeleter
}

func NewLogout(sessions sessionTokenDeleter) Logout {
	return &logout{sessions: sessions}
}

func (uc *logout) Execute(ctx context.Context, token string) error {
	if err := uc.sessions.Delete(ctx, HashToken(token)); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

type logoutAll struct {
	sessions sessionTokenDeleter
}

func NewLogoutAll(sessions sessionTokenDeleter) LogoutAll {
	return &logoutAll{sessions: sessions}
}

func (uc *logoutAll) Execute(ctx context.Context, userID uint64) error {
	if err := uc.sessions.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("logout all: %w", err)
	}
	return nil
}
