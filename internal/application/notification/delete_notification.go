package notification

import (
	"context"
	"fmt"
)

type DeleteNotification interface {
	Execute(ctx context.Context, recipientID, notificationID uint64) error
}

type DeleteAllNotifications interface {
	Execute(ctx context.Context, recipientID uint64) error
}

type notificationDeleter interface {
	DeleteUnread(ctx context.Context, recipientID, notificationID uint64) (bool, error)
	DeleteAll(ctx context.Context, recipientID uint64) error
}

type deleteNotification struct {
	notifications notificationDeleter
}

func NewDeleteNotification(notifications notificationDeleter) DeleteNotification {
	return &deleteNotification{notifications: notifications}
}

// Execute removes one unread notification; read rows stay for the
// delete-all sweep.
func (uc *deleteNotification) Execute(ctx context.Context, recipientID, notificationID uint64) error {
	deleted, err := uc.notifications.DeleteUnread(ctx, recipientID, notificationID)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if !deleted {
		return ErrNotificationNotFound
	}
	return nil
}

type deleteAllNotifications struct {
	notifications notificationDeleter
}

func NewDeleteAllNotifications(notifications notificationDeleter) DeleteAllNotifications {
	return &deleteAllNotifications{notifications: notifications}
}

func (uc *deleteAllNotifications) Execute(ctx context.Context, recipientID uint64) error {
	if err := uc.notifications.DeleteAll(ctx, recipientID); err != nil {
		return fmt.Errorf("delete all notifications: %w", err)
	}
	return nil
}
