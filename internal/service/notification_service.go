package service

import (
	"context"

	"aurasocial/internal/models"
	"aurasocial/internal/repository"
)

// ListNotificationsInput selects a page of an inbox.
type ListNotificationsInput struct {
	Address    string
	UnreadOnly bool
	Page       Page
}

// NotificationService reads and maintains inboxes. Every mutation is idempotent.
type NotificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) List(ctx context.Context, in ListNotificationsInput) ([]models.NotificationView, error) {
	page := in.Page.Normalize()
	items, err := s.repo.List(ctx, in.Address, in.UnreadOnly, page.Limit, page.Offset)
	return items, internal(err)
}

func (s *NotificationService) UnreadCount(ctx context.Context, address string) (int64, error) {
	n, err := s.repo.CountUnread(ctx, address)
	return n, internal(err)
}

func (s *NotificationService) MarkRead(ctx context.Context, id uint) (err error) {
	defer func() { recordMutation("notification_read", err) }()
	return internal(s.repo.MarkRead(ctx, id))
}

func (s *NotificationService) MarkAllRead(ctx context.Context, address string) (err error) {
	defer func() { recordMutation("notification_read_all", err) }()
	if address == "" {
		return models.NewValidationError("address is required")
	}
	return internal(s.repo.MarkAllRead(ctx, address))
}

func (s *NotificationService) Delete(ctx context.Context, id uint) (err error) {
	defer func() { recordMutation("notification_delete", err) }()
	return internal(s.repo.Delete(ctx, id))
}
