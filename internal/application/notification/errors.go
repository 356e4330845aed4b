package notification

import "errors"

var (
	ErrInvalidFilter        = errors.New("invalid filter")
	ErrNotificationNotFound = errors.New("notification not found")
)
