package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRegistrationNotFound   = errors.New("registration not found")
	ErrAlreadyRegistered      = errors.New("already registered for this event")
	ErrEventNotOpen           = errors.New("event is not open for registration")
	ErrRegistrationNotOpen    = errors.New("registration has not opened yet")
	ErrRegistrationClosed     = errors.New("registration deadline has passed")
	ErrEventFull              = errors.New("event is full")
	ErrPaymentAlreadyVerified = errors.New("payment has already been verified")
)

type Registration struct {
	ID uint `gorm:"primaryKey"`

	EventID uint `gorm:"not null;uniqueIndex:idx_event_user"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_event_user"`

	Reference string `gorm:"not null"`

	Status       string    `gorm:"not null;default:registered"` // "registered" or "attended"
	RegisteredAt time.Time `gorm:"not null"`
	CheckedInAt  *time.Time

	TransactionID    string
	TransactionImage string
	PaymentStatus    string `gorm:"not null;default:none"` // "none", "pending", or "verified"
}

func (Registration) TableName() string {
	return "event_registrations"
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

// Insert creates the registration and bumps the event's registered counter
// in one transaction. The event row is locked first so that the window and
// capacity checks read current state; two racing registrations for the last
// slot serialize on the lock and the loser gets ErrEventFull.
func (d *RegistrationDAO) Insert(ctx context.Context, reg Registration, now time.Time) (Registration, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, reg.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if event.Status != "approved" {
			return ErrEventNotOpen
		}
		if event.RegistrationStartDate != nil && now.Before(*event.RegistrationStartDate) {
			return ErrRegistrationNotOpen
		}
		if event.RegistrationDeadline != nil && now.After(*event.RegistrationDeadline) {
			return ErrRegistrationClosed
		}
		if event.Capacity != nil && event.RegisteredCount >= *event.Capacity {
			return ErrEventFull
		}

		if err := tx.Create(&reg).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) &&
				pgErr.Code == pgerrcode.UniqueViolation &&
				strings.Contains(pgErr.Message, "idx_event_user") {
				return ErrAlreadyRegistered
			}
			return err
		}

		return tx.Model(&event).
			Update("registered_count", gorm.Expr("registered_count + 1")).Error
	})
	if err != nil {
		return Registration{}, err
	}

	return reg, nil
}

// Delete removes every registration row for (event, user) and decrements
// the counter by exactly the number of rows removed, clamped so it never
// goes below zero.
func (d *RegistrationDAO) Delete(ctx context.Context, eventID, userID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		result := tx.Where("event_id = ? AND user_id = ?", eventID, userID).
			Delete(&Registration{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRegistrationNotFound
		}

		removed := int(result.RowsAffected)
		if removed > event.RegisteredCount {
			removed = event.RegisteredCount
		}

		return tx.Model(&event).
			Update("registered_count", gorm.Expr("registered_count - ?", removed)).Error
	})
}

// DeletePendingPayment removes the registration only while its payment is
// still pending. The status condition sits in the DELETE itself, so a
// verification landing between the caller's read and this call leaves the
// registration alone and surfaces ErrPaymentAlreadyVerified.
func (d *RegistrationDAO) DeletePendingPayment(ctx context.Context, eventID, userID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		result := tx.Where("event_id = ? AND user_id = ? AND payment_status = ?",
			eventID, userID, "pending").
			Delete(&Registration{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var reg Registration
			if err := tx.First(&reg, "event_id = ? AND user_id = ?", eventID, userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRegistrationNotFound
				}
				return err
			}
			if reg.PaymentStatus == "verified" {
				return ErrPaymentAlreadyVerified
			}
			return ErrRegistrationNotFound
		}

		removed := int(result.RowsAffected)
		if removed > event.RegisteredCount {
			removed = event.RegisteredCount
		}

		return tx.Model(&event).
			Update("registered_count", gorm.Expr("registered_count - ?", removed)).Error
	})
}

func (d *RegistrationDAO) FindByID(ctx context.Context, id uint) (Registration, error) {
	var reg Registration

	result := d.db.WithContext(ctx).First(&reg, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, result.Error
	}

	return reg, nil
}

func (d *RegistrationDAO) FindByEventAndUser(ctx context.Context, eventID, userID uint) (Registration, error) {
	var reg Registration

	result := d.db.WithContext(ctx).
		First(&reg, "event_id = ? AND user_id = ?", eventID, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, result.Error
	}

	return reg, nil
}

func (d *RegistrationDAO) ListByEvent(ctx context.Context, eventID uint) ([]Registration, error) {
	var regs []Registration

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("registered_at ASC").
		Find(&regs)
	if result.Error != nil {
		return nil, result.Error
	}

	return regs, nil
}

func (d *RegistrationDAO) ListByUser(ctx context.Context, userID uint) ([]Registration, error) {
	var regs []Registration

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("registered_at DESC").
		Find(&regs)
	if result.Error != nil {
		return nil, result.Error
	}

	return regs, nil
}

func (d *RegistrationDAO) UpdatePaymentStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).Model(&Registration{}).
		Where("id = ?", id).
		Update("payment_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

// MarkAttended is a single guarded UPDATE so concurrent scanners cannot
// double-apply a check-in. It reports whether this call performed the
// transition; false means the registration was already attended.
func (d *RegistrationDAO) MarkAttended(ctx context.Context, id uint, at time.Time) (bool, error) {
	result := d.db.WithContext(ctx).Model(&Registration{}).
		Where("id = ? AND status <> ?", id, "attended").
		Updates(map[string]interface{}{
			"status":        "attended",
			"checked_in_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected == 0 {
		// Distinguish "already attended" from "no such registration".
		if _, err := d.FindByID(ctx, id); err != nil {
			return false, err
		}
		return false, nil
	}

	return true, nil
}

// MarkRegistered reverts a check-in, clearing the timestamp.
func (d *RegistrationDAO) MarkRegistered(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Registration{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        "registered",
			"checked_in_at": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}
