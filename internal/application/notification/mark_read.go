package notification

import (
	"context"
	"fmt"
)

type MarkRead interface {
	Execute(ctx context.Context, recipientID, notificationID uint64) error
}

type MarkAllRead interface {
	Execute(ctx context.Context, recipientID uint64) error
}

type notificationMarker interface {
	MarkRead(ctx context.Context, recipientID, notificationID uint64) (bool, error)
	MarkAllRead(ctx context.Context, recipientID uint64) error
}

type markRead struct {
	notifications notificationMarker
}

func NewMarkRead(notifications notificationMarker) MarkRead {
	return &markRead{notifications: notifications}
}

// Execute marks one unread notification as read. Already-read rows and
// other users' rows both read as not-found.
func (uc *markRead) Execute(ctx context.Context, recipientID, notificationID uint64) error {
	marked, err := uc.notifications.MarkRead(ctx, recipientID, notificationID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if !marked {
		return ErrNotificationNotFound
	}
	return nil
}

type markAllRead struct {
	notifications notificationMarker
}

func NewMarkAllRead(notifications notificationMarker) MarkAllRead {
	return &markAllRead{notifications: notifications}
}

func (uc *markAllRead) Execute(ctx context.Context, recipientID uint64) error {
	if err := uc.notifications.MarkAllRead(ctx, recipientID); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
