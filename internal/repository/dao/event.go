package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEventNotFound           = errors.New("event not found")
	ErrCapacityBelowRegistered = errors.New("capacity cannot be reduced below the registered count")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string
	Location    string `gorm:"not null"`

	StartDate             time.Time `gorm:"not null"`
	EndDate               time.Time `gorm:"not null"`
	RegistrationStartDate *time.Time
	RegistrationDeadline  *time.Time

	CreatedBy     uint   `gorm:"not null"`
	OrganizerID   uint   `gorm:"not null;index"`
	OrganizerName string `gorm:"not null"`
	OrganizerType string `gorm:"not null"` // "club" or "admin"

	Status          string `gorm:"not null;default:pending"`
	Capacity        *int
	RegisteredCount int `gorm:"not null;default:0"`

	EventType string `gorm:"not null;default:free"` // "free" or "paid"
	EventFee  string
	UpiID     string

	Tags []string `gorm:"serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) ListAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Order("start_date ASC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) ListByStatus(ctx context.Context, status string) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Where("status = ?", status).Order("start_date ASC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) ListByOrganizer(ctx context.Context, organizerID uint) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Where("organizer_id = ?", organizerID).Order("start_date ASC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// Update persists organizer-editable fields only. Organizer identity and
// the registered counter are never touched through this path. The event
// row is locked so the capacity check reads the current counter, and a
// capacity below it is refused.
func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&existing, event.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if event.Capacity != nil && *event.Capacity < existing.RegisteredCount {
			return ErrCapacityBelowRegistered
		}

		updates := map[string]interface{}{
			"title":                   event.Title,
			"description":             event.Description,
			"location":                event.Location,
			"start_date":              event.StartDate,
			"end_date":                event.EndDate,
			"registration_start_date": event.RegistrationStartDate,
			"registration_deadline":   event.RegistrationDeadline,
			"capacity":                event.Capacity,
			"event_type":              event.EventType,
			"event_fee":               event.EventFee,
			"upi_id":                  event.UpiID,
			"tags":                    event.Tags,
		}

		return tx.Model(&existing).Updates(updates).Error
	})
	if err != nil {
		return Event{}, err
	}

	return d.FindByID(ctx, event.ID)
}

func (d *EventDAO) UpdateStatus(ctx context.Context, id uint, status string) (Event, error) {
	var event Event

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&event, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		event.Status = status
		return tx.Model(&event).Update("status", status).Error
	})
	if err != nil {
		return Event{}, err
	}

	return event, nil
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&Event{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}

		// Registrations are owned by the event and go with it.
		return tx.Where("event_id = ?", id).Delete(&Registration{}).Error
	})
}
