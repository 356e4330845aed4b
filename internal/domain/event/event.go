package event

import (
	"time"

	"github.com/orgstack/orgstack/internal/domain/user"
)

type Event struct {
	ID          uint64
	OrgID       uint64
	Title       string
	Description string
	MeetingID   string
	StartsAt    time.Time
	EndsAt      time.Time
	CreatedBy   *uint64
	CreatedAt   time.Time
	Attendees   []user.User
}

// VisibleTo reports whether userID may see the event: its creator, any
// attendee, and everyone when the attendee list is empty.
func (e Event) VisibleTo(userID uint64) bool {
	if e.CreatedBy != nil && *e.CreatedBy == userID {
		return true
	}
	if len(e.Attendees) == 0 {
		return true
	}
	for _, attendee := range e.Attendees {
		if attendee.ID == userID {
			return true
		}
	}
	return false
}
