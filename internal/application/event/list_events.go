package event

import (
	"context"
	"fmt"

	domain "github.com/orgstack/orgstack/internal/domain/event"
)

type ListEventsInput struct {
	OrgSlug string
	UserID  uint64
}

type ListEventsOutput struct {
	Results []EventOutput `json:"results"`
}

type ListEvents interface {
	Execute(ctx context.Context, in ListEventsInput) (ListEventsOutput, error)
}

type visibleEventLister interface {
	ListVisible(ctx context.Context, orgSlug string, userID uint64) ([]domain.Event, error)
}

type listEvents struct {
	events visibleEventLister
}

func NewListEvents(events visibleEventLister) ListEvents {
	return &listEvents{events: events}
}

func (uc *listEvents) Execute(ctx context.Context, in ListEventsInput) (ListEventsOutput, error) {
	rows, err := uc.events.ListVisible(ctx, in.OrgSlug, in.UserID)
	if err != nil {
		return ListEventsOutput{}, fmt.Errorf("list events: %w", err)
	}

	results := make([]EventOutput, 0, len(rows))
	for _, row := range rows {
		results = append(results, toEventOutput(row))
	}
	return ListEventsOutput{Results: results}, nil
}
