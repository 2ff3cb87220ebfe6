package repository

import (
	"context"

	"aurasocial/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines inbox operations. Mutations are idempotent:
// touching a missing or already-read row is not an error.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, address string, unreadOnly bool, limit, offset int) ([]models.NotificationView, error)
	CountUnread(ctx context.Context, address string) (int64, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context, address string) error
	Delete(ctx context.Context, id uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if n.CreatedAt == 0 {
		n.CreatedAt = nowMillis()
	}
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) List(ctx context.Context, address string, unreadOnly bool, limit, offset int) ([]models.NotificationView, error) {
	q := r.db.WithContext(ctx).
		Table("notifications").
		Select("notifications.*, users.username AS username, users.avatar_url AS avatar_url").
		Joins("LEFT JOIN users ON users.address = notifications.from_address").
		Where("notifications.user_address = ?", address)
	if unreadOnly {
		q = q.Where("notifications.is_read = ?", false)
	}

	var items []models.NotificationView
	err := q.Order("notifications.created_at DESC, notifications.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&items).Error
	return items, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, address string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_address = ? AND is_read = ?", address, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, address string) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_address = ?", address).
		Update("is_read", true).Error
}

func (r *notificationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Notification{}, id).Error
}
