package repository

import (
	"encoding/json"

	domain "github.com/orgstack/orgstack/internal/domain/user"
	"github.com/orgstack/orgstack/internal/infrastructure/db/models"
)

func toDomainUser(row models.User) domain.User {
	var settings map[string]any
	if len(row.Settings) > 0 {
		_ = json.Unmarshal(row.Settings, &settings)
	}

	email := ""
	if row.Email != nil {
		email = *row.Email
	}

	return domain.User{
		ID:                row.ID,
		Username:          row.Username,
		Email:             email,
		FirstName:         row.FirstName,
		LastName:          row.LastName,
		Picture:           row.Picture,
		Settings:          settings,
		Active:            row.Active,
		MustResetPassword: row.MustResetPassword,
	}
}

func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
