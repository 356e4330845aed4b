package user

import (
	"net/mail"
	"strings"
)

type User struct {
	ID                uint64
	Username          string
	Email             string
	FirstName         string
	LastName          string
	Picture           string
	Settings          map[string]any
	Active            bool
	MustResetPassword bool
}

func NewUser(username, email string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, ErrInvalidUsername
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, ErrInvalidEmail
	}

	return User{
		Username: username,
		Email:    email,
	}, nil
}

// PlaceholderPassword is the deterministic credential assigned to
// accounts created by the membership import. Such accounts stay
// inactive with MustResetPassword set, so the placeholder can never be
// used to sign in.
func PlaceholderPassword(username string) string {
	return username + "-t3m9p"
}
