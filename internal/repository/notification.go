package repository

import (
	"context"
	"fmt"

	"github.com/eventsync/eventsync-api/internal/domain"
	"github.com/eventsync/eventsync-api/internal/repository/dao"
)

var (
	ErrNotificationNotFound = dao.ErrNotificationNotFound
)

type NotificationDAO interface {
	Insert(ctx context.Context, n dao.Notification) (dao.Notification, error)
	ListByUser(ctx context.Context, userID uint) ([]dao.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type NotificationRepository struct {
	dao NotificationDAO
}

func NewNotificationRepository(dao NotificationDAO) *NotificationRepository {
	return &NotificationRepository{
		dao: dao,
	}
}

func (r *NotificationRepository) daoToDomain(n dao.Notification) domain.Notification {
	return domain.Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      domain.NotificationType(n.Type),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	created, err := r.dao.Insert(ctx, dao.Notification{
		UserID:  n.UserID,
		Title:   n.Title,
		Message: n.Message,
		Type:    string(n.Type),
	})
	if err != nil {
		return domain.Notification{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Notification, error) {
	notifications, err := r.dao.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByUser -> %w", err)
	}

	result := make([]domain.Notification, len(notifications))
	for i, n := range notifications {
		result[i] = r.daoToDomain(n)
	}

	return result, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uint) error {
	if err := r.dao.MarkRead(ctx, id, userID); err != nil {
		return fmt.Errorf("r.dao.MarkRead -> %w", err)
	}

	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	if err := r.dao.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("r.dao.MarkAllRead -> %w", err)
	}

	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	count, err := r.dao.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountUnread -> %w", err)
	}

	return count, nil
}
