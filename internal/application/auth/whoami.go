package auth

import (
	domain "github.com/orgstack/orgstack/internal/domain/user"
)

type WhoamiOutput struct {
	ID                uint64 `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Picture           string `json:"picture,omitempty"`
	MustResetPassword bool   `json:"must_reset_password"`
}

// ToWhoamiOutput shapes the authenticated user for the profile
// endpoint.
func ToWhoamiOutput(u domain.User) WhoamiOutput {
	return WhoamiOutput{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Picture:           u.Picture,
		MustResetPassword: u.MustResetPassword,
	}
}
