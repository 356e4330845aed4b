package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/orgstack/orgstack/internal/domain/notification"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type ListNotificationsInput struct {
	RecipientID uint64
	Filter      string
	Limit       int
	Offset      int
}

type RefOutput struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

type NotificationOutput struct {
	ID           uint64     `json:"id"`
	Actor        string     `json:"actor"`
	Verb         string     `json:"verb"`
	ActionObject RefOutput  `json:"action_object"`
	Target       *RefOutput `json:"target,omitempty"`
	Unread       bool       `json:"unread"`
	CreatedAt    time.Time  `json:"created_at"`
}

type ListNotificationsOutput struct {
	Count   int64                `json:"count"`
	Results []NotificationOutput `json:"results"`
}

type ListNotifications interface {
	Execute(ctx context.Context, in ListNotificationsInput) (ListNotificationsOutput, error)
}

type notificationLister interface {
	List(ctx context.Context, recipientID uint64, filter domain.Filter, limit, offset int) ([]domain.Notification, int64, error)
}

type listNotifications struct {
	notifications notificationLister
}

func NewListNotifications(notifications notificationLister) ListNotifications {
	return &listNotifications{notifications: notifications}
}

func (uc *listNotifications) Execute(ctx context.Context, in ListNotificationsInput) (ListNotificationsOutput, error) {
	filter, err := domain.ParseFilter(in.Filter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFilter) {
			return ListNotificationsOutput{}, ErrInvalidFilter
		}
		return ListNotificationsOutput{}, err
	}

	limit, offset := in.Limit, in.Offset
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	rows, total, err := uc.notifications.List(ctx, in.RecipientID, filter, limit, offset)
	if err != nil {
		return ListNotificationsOutput{}, fmt.Errorf("list notifications: %w", err)
	}

	results := make([]NotificationOutput, 0, len(rows))
	for _, row := range rows {
		results = append(results, toNotificationOutput(row))
	}
	return ListNotificationsOutput{Count: total, Results: results}, nil
}

func toNotificationOutput(n domain.Notification) NotificationOutput {
	out := NotificationOutput{
		ID:           n.ID,
		Actor:        n.Actor,
		Verb:         n.Verb,
		ActionObject: RefOutput{Type: n.ActionObject.Type, Label: n.ActionObject.Label},
		Unread:       n.Unread,
		CreatedAt:    n.CreatedAt,
	}
	if n.Target.Type != "" {
		out.Target = &RefOutput{Type: n.Target.Type, Label: n.Target.Label}
	}
	return out
}
