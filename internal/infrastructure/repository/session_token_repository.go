package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/orgstack/orgstack/internal/domain/user"
	"github.com/orgstack/orgstack/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type SessionTokenRepository struct {
	db *gorm.DB
}

func NewSessionTokenRepository(db *gorm.DB) *SessionTokenRepository {
	return &SessionTokenRepository{db: db}
}

func (r *SessionTokenRepository) Store(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error {
	row := models.SessionToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("store session token: %w", err)
	}
	return nil
}

// FindUser resolves a token digest to its user, rejecting expired
// tokens.
func (r *SessionTokenRepository) FindUser(ctx context.Context, tokenHash string) (domain.User, error) {
	var row models.SessionToken
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&row, "token_hash = ? AND expires_at > ?", tokenHash, time.Now()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("find session token: %w", err)
	}
	return toDomainUser(row.User), nil
}

func (r *SessionTokenRepository) Delete(ctx context.Context, tokenHash string) error {
	err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&models.SessionToken{}).Error
	if err != nil {
		return fmt.Errorf("delete session token: %w", err)
	}
	return nil
}

func (r *SessionTokenRepository) DeleteAllForUser(ctx context.Context, userID uint64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.SessionToken{}).Error
	if err != nil {
		return fmt.Errorf("delete session tokens: %w", err)
	}
	return nil
}
