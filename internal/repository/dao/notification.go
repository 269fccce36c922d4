package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

type Notification struct {
	ID uint `gorm:"primaryKey"`

	UserID  uint   `gorm:"not null;index"`
	Title   string `gorm:"not null"`
	Message string `gorm:"not null"`
	Type    string `gorm:"not null;default:info"`
	Read    bool   `gorm:"not null;default:false"`

	CreatedAt time.Time
}

type NotificationDAO struct {
	db *gorm.DB
}

func NewNotificationDAO(db *gorm.DB) *NotificationDAO {
	return &NotificationDAO{
		db: db,
	}
}

func (d *NotificationDAO) Insert(ctx context.Context, n Notification) (Notification, error) {
	result := d.db.WithContext(ctx).Create(&n)
	if result.Error != nil {
		return Notification{}, result.Error
	}

	return n, nil
}

func (d *NotificationDAO) ListByUser(ctx context.Context, userID uint) ([]Notification, error) {
	var notifications []Notification

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications)
	if result.Error != nil {
		return nil, result.Error
	}

	return notifications, nil
}

func (d *NotificationDAO) MarkRead(ctx context.Context, id, userID uint) error {
	result := d.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (d *NotificationDAO) MarkAllRead(ctx context.Context, userID uint) error {
	return d.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND read = false", userID).
		Update("read", true).Error
}

func (d *NotificationDAO) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND read = false", userID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
