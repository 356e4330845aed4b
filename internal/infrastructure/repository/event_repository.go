package repository

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/orgstack/orgstack/internal/domain/event"
	userdomain "github.com/orgstack/orgstack/internal/domain/user"
	"github.com/orgstack/orgstack/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e domain.Event, attendeeIDs []uint64) (domain.Event, error) {
	row := models.Event{
		OrgID:       e.OrgID,
		Title:       e.Title,
		Description: e.Description,
		MeetingID:   e.MeetingID,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		CreatedBy:   e.CreatedBy,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		if len(attendeeIDs) == 0 {
			return nil
		}
		attendees := make([]models.User, 0, len(attendeeIDs))
		for _, id := range attendeeIDs {
			attendees = append(attendees, models.User{ID: id})
		}
		if err := tx.Model(&row).Association("Attendees").Append(attendees); err != nil {
			return fmt.Errorf("attach attendees: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}

	return r.GetByID(ctx, row.ID)
}

func (r *EventRepository) GetByID(ctx context.Context, eventID uint64) (domain.Event, error) {
	var row models.Event
	err := r.db.WithContext(ctx).Preload("Attendees").First(&row, "id = ?", eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return toDomainEvent(row), nil
}

func (r *EventRepository) GetForOrg(ctx context.Context, orgSlug string, eventID uint64) (domain.Event, error) {
	var row models.Event
	err := r.db.WithContext(ctx).
		Joins("JOIN organizations o ON o.id = events.organization_id").
		Preload("Attendees").
		First(&row, "events.id = ? AND o.slug = ?", eventID, orgSlug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event for org: %w", err)
	}
	return toDomainEvent(row), nil
}

// ListVisible applies the visibility predicate in the store: events the
// user created, events they attend, and events with no attendees.
func (r *EventRepository) ListVisible(ctx context.Context, orgSlug string, userID uint64) ([]domain.Event, error) {
	var rows []models.Event
	err := r.db.WithContext(ctx).
		Joins("JOIN organizations o ON o.id = events.organization_id").
		Where("o.slug = ?", orgSlug).
		Where(`events.created_by = @uid
			OR events.id IN (SELECT event_id FROM event_attendees WHERE user_id = @uid)
			OR NOT EXISTS (SELECT 1 FROM event_attendees ea WHERE ea.event_id = events.id)`,
			map[string]any{"uid": userID}).
		Preload("Attendees").
		Order("events.starts_at").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]domain.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, toDomainEvent(row))
	}
	return events, nil
}

func (r *EventRepository) GetByMeetingID(ctx context.Context, orgSlug, meetingID string) (domain.Event, error) {
	var row models.Event
	err := r.db.WithContext(ctx).
		Joins("JOIN organizations o ON o.id = events.organization_id").
		Preload("Attendees").
		First(&row, "LOWER(events.meeting_id) = LOWER(?) AND o.slug = ?", meetingID, orgSlug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event by meeting id: %w", err)
	}
	return toDomainEvent(row), nil
}

func (r *EventRepository) Delete(ctx context.Context, eventID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM event_attendees WHERE event_id = ?", eventID).Error; err != nil {
			return fmt.Errorf("delete attendees: %w", err)
		}
		if err := tx.Delete(&models.Event{}, "id = ?", eventID).Error; err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		return nil
	})
}

func toDomainEvent(row models.Event) domain.Event {
	attendees := make([]userdomain.User, 0, len(row.Attendees))
	for _, attendee := range row.Attendees {
		attendees = append(attendees, toDomainUser(attendee))
	}

	return domain.Event{
		ID:          row.ID,
		OrgID:       row.OrgID,
		Title:       row.Title,
		Description: row.Description,
		MeetingID:   row.MeetingID,
		StartsAt:    row.StartsAt,
		EndsAt:      row.EndsAt,
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt,
		Attendees:   attendees,
	}
}
