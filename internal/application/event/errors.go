package event

import "errors"

var (
	ErrInvalidEvent         = errors.New("invalid event")
	ErrEventNotFound        = errors.New("event not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrDeleteForbidden      = errors.New("only the creator or an organization admin may delete an event")
)
