package repository

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/orgstack/orgstack/internal/domain/user"
	"github.com/orgstack/orgstack/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateInactive persists a signup. The account stays inactive until the
// verification email is confirmed.
func (r *UserRepository) CreateInactive(ctx context.Context, u domain.User, passwordHash string) (domain.User, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", u.Username).Count(&count).Error; err != nil {
		return domain.User{}, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return domain.User{}, domain.ErrUsernameTaken
	}

	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", u.Email).Count(&count).Error; err != nil {
		return domain.User{}, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return domain.User{}, domain.ErrEmailTaken
	}

	row := models.User{
		Username:     u.Username,
		Email:        nullableText(u.Email),
		PasswordHash: passwordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Active:       false,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.User{}, domain.ErrUsernameTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	return toDomainUser(row), nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uint64) (domain.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).First(&row, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return toDomainUser(row), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).First(&row, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return toDomainUser(row), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).First(&row, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user by username: %w", err)
	}
	return toDomainUser(row), nil
}

// GetCredentialsByUsername returns the user together with the stored
// password hash for signin verification.
func (r *UserRepository) GetCredentialsByUsername(ctx context.Context, username string) (domain.User, string, error) {
	var row models.User
	err := r.db.WithContext(ctx).First(&row, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, "", domain.ErrUserNotFound
		}
		return domain.User{}, "", fmt.Errorf("get user by username: %w", err)
	}
	return toDomainUser(row), row.PasswordHash, nil
}

func (r *UserRepository) SetActive(ctx context.Context, userID uint64) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("active", true)
	if result.Error != nil {
		return fmt.Errorf("activate user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
