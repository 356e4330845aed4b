package org

import "strings"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole normalizes raw to lower case and validates it against the
// fixed role set.
func ParseRole(raw string) (Role, error) {
	switch role := Role(strings.ToLower(strings.TrimSpace(raw))); role {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return role, nil
	default:
		return "", ErrInvalidRole
	}
}
