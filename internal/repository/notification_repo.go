package repository

import (
	"context"

	"gorm.io/gorm"

	"facilityhub/internal/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) CreateMany(ctx context.Context, ns []domain.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ns).Error
}

// ListByRecipient returns one page of the recipient's notifications (newest
// first) along with the filtered total and the overall unread count.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID int64, limit, skip int, unreadOnly bool) ([]domain.Notification, int64, int64, error) {
	filter := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("recipient_id = ?", recipientID)
	if unreadOnly {
		filter = filter.Where("is_read = ?", false)
	}

	var total int64
	if err := filter.Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	var unread int64
	err := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&unread).Error
	if err != nil {
		return nil, 0, 0, err
	}

	var out []domain.Notification
	err = filter.
		Order("created_at DESC").
		Limit(limit).
		Offset(skip).
		Find(&out).Error
	if err != nil {
		return nil, 0, 0, err
	}
	return out, total, unread, nil
}

// MarkRead sets is_read for one of the recipient's notifications. Marking an
// already-read row again is a no-op, not an error.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID int64) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&domain.Notification{}).
			Where("id = ? AND recipient_id = ?", id, recipientID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}

func (r *NotificationRepository) Delete(ctx context.Context, id, recipientID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&domain.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) DeleteAllForRecipient(ctx context.Context, recipientID int64) error {
	return r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Delete(&domain.Notification{}).Error
}
