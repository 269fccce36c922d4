package service

import (
	"context"
	"fmt"

	"github.com/eventsync/eventsync-api/internal/domain"
	"github.com/eventsync/eventsync-api/internal/repository"
)

var (
	ErrNotificationNotFound = repository.ErrNotificationNotFound
)

type NotificationRepository interface {
	Create(ctx context.Context, n domain.Notification) (domain.Notification, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type NotificationService struct {
	repo NotificationRepository
}

func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{
		repo: repo,
	}
}

func (s *NotificationService) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	created, err := s.repo.Create(ctx, n)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *NotificationService) ListByUser(ctx context.Context, userID uint) ([]domain.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByUser -> %w", err)
	}

	return notifications, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		return fmt.Errorf("s.repo.MarkRead -> %w", err)
	}

	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("s.repo.MarkAllRead -> %w", err)
	}

	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountUnread -> %w", err)
	}

	return count, nil
}
