package event

import (
	"time"

	domain "github.com/orgstack/orgstack/internal/domain/event"
)

type AttendeeOutput struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type EventOutput struct {
	ID          uint64           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	MeetingID   string           `json:"meeting_id,omitempty"`
	StartsAt    time.Time        `json:"starts_at"`
	EndsAt      time.Time        `json:"ends_at"`
	CreatedBy   *uint64          `json:"created_by,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	Attendees   []AttendeeOutput `json:"attendees"`
}

func toEventOutput(e domain.Event) EventOutput {
	attendees := make([]AttendeeOutput, 0, len(e.Attendees))
	for _, attendee := range e.Attendees {
		attendees = append(attendees, AttendeeOutput{ID: attendee.ID, Username: attendee.Username})
	}
	return EventOutput{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		MeetingID:   e.MeetingID,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		Attendees:   attendees,
	}
}
