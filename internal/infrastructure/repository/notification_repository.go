package repository

import (
	"context"
	"fmt"

	domain "github.com/orgstack/orgstack/internal/domain/notification"
	"github.com/orgstack/orgstack/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Notify fans a message out into one notification row per recipient.
func (r *NotificationRepository) Notify(ctx context.Context, msg domain.Message) error {
	if len(msg.RecipientIDs) == 0 {
		return nil
	}

	rows := make([]models.Notification, 0, len(msg.RecipientIDs))
	for _, recipientID := range msg.RecipientIDs {
		rows = append(rows, models.Notification{
			RecipientID:       recipientID,
			Actor:             msg.Actor,
			Verb:              msg.Verb,
			ActionObjectType:  msg.ActionObject.Type,
			ActionObjectLabel: msg.ActionObject.Label,
			TargetType:        msg.Target.Type,
			TargetLabel:       msg.Target.Label,
			Unread:            true,
		})
	}

	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("create notifications: %w", err)
	}
	return nil
}

func (r *NotificationRepository) List(ctx context.Context, recipientID uint64, filter domain.Filter, limit, offset int) ([]domain.Notification, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ?", recipientID)

	switch filter {
	case domain.FilterUnread:
		query = query.Where("unread")
	case domain.FilterRead:
		query = query.Where("NOT unread")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	var rows []models.Notification
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]domain.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainNotification(row))
	}
	return out, total, nil
}

// MarkRead flips one unread notification belonging to the recipient.
func (r *NotificationRepository) MarkRead(ctx context.Context, recipientID, notificationID uint64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ? AND unread", notificationID, recipientID).
		Update("unread", false)
	if result.Error != nil {
		return false, fmt.Errorf("mark notification read: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID uint64) error {
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND unread", recipientID).
		Update("unread", false).Error
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// DeleteUnread removes one unread notification belonging to the
// recipient.
func (r *NotificationRepository) DeleteUnread(ctx context.Context, recipientID, notificationID uint64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ? AND unread", notificationID, recipientID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return false, fmt.Errorf("delete notification: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *NotificationRepository) DeleteAll(ctx context.Context, recipientID uint64) error {
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Delete(&models.Notification{}).Error
	if err != nil {
		return fmt.Errorf("delete all notifications: %w", err)
	}
	return nil
}

func toDomainNotification(row models.Notification) domain.Notification {
	return domain.Notification{
		ID:          row.ID,
		RecipientID: row.RecipientID,
		Actor:       row.Actor,
		Verb:        row.Verb,
		ActionObject: domain.Ref{
			Type:  row.ActionObjectType,
			Label: row.ActionObjectLabel,
		},
		Target: domain.Ref{
			Type:  row.TargetType,
			Label: row.TargetLabel,
		},
		Unread:    row.Unread,
		CreatedAt: row.CreatedAt,
	}
}
