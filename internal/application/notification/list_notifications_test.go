package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	app "github.com/orgstack/orgstack/internal/application/notification"
	domain "github.com/orgstack/orgstack/internal/domain/notification"
)

type fakeNotificationRepo struct {
	filter domain.Filter
	rows   []domain.Notification
}

func (f *fakeNotificationRepo) List(ctx context.Context, recipientID uint64, filter domain.Filter, limit, offset int) ([]domain.Notification, int64, error) {
	f.filter = filter
	return f.rows, int64(len(f.rows)), nil
}

func TestListNotificationsFilters(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{rows: []domain.Notification{{
		ID:           1,
		Actor:        "admin",
		Verb:         "added",
		ActionObject: domain.Ref{Type: "user", Label: "alice"},
		Target:       domain.Ref{Type: "organization", Label: "Acme School"},
		Unread:       true,
		CreatedAt:    time.Now(),
	}}}
	uc := app.NewListNotifications(repo)

	out, err := uc.Execute(context.Background(), app.ListNotificationsInput{RecipientID: 5, Filter: "unread"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.filter != domain.FilterUnread {
		t.Fatalf("expected unread filter, got %q", repo.filter)
	}
	if out.Count != 1 || len(out.Results) != 1 {
		t.Fatalf("unexpected output %+v", out)
	}
	if out.Results[0].Target == nil || out.Results[0].Target.Label != "Acme School" {
		t.Fatalf("unexpected target %+v", out.Results[0].Target)
	}
}

func TestListNotificationsDefaultsToAll(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{}
	uc := app.NewListNotifications(repo)

	if _, err := uc.Execute(context.Background(), app.ListNotificationsInput{RecipientID: 5}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.filter != domain.FilterAll {
		t.Fatalf("expected all filter, got %q", repo.filter)
	}
}

func TestListNotificationsInvalidFilter(t *testing.T) {
	t.Parallel()

	uc := app.NewListNotifications(&fakeNotificationRepo{})

	_, err := uc.Execute(context.Background(), app.ListNotificationsInput{RecipientID: 5, Filter: "starred"})
	if !errors.Is(err, app.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}
