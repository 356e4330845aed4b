package notification

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidFilter        = errors.New("invalid notification filter")
)
