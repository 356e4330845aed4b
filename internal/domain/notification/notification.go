// Package notification models activity records of the form
// "actor verb action_object (on target)" delivered to recipients.
package notification

import "time"

type Ref struct {
	Type  string
	Label string
}

type Notification struct {
	ID           uint64
	RecipientID  uint64
	Actor        string
	Verb         string
	ActionObject Ref
	Target       Ref
	Unread       bool
	CreatedAt    time.Time
}

// Filter selects which notifications to list.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterUnread Filter = "unread"
	FilterRead   Filter = "read"
)

// ParseFilter interprets the query form of a filter; empty means all.
func ParseFilter(raw string) (Filter, error) {
	switch Filter(raw) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterUnread:
		return FilterUnread, nil
	case FilterRead:
		return FilterRead, nil
	default:
		return "", ErrInvalidFilter
	}
}

// Message is a fan-out request: one Notification row is written per
// recipient.
type Message struct {
	Actor        string
	Verb         string
	ActionObject Ref
	Target       Ref
	RecipientIDs []uint64
}
