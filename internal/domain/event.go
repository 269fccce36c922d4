package domain

import "time"

type EventStatus string

const (
	EventStatusPending   EventStatus = "pending"
	EventStatusApproved  EventStatus = "approved"
	EventStatusRejected  EventStatus = "rejected"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

type EventType string

const (
	EventTypeFree EventType = "free"
	EventTypePaid EventType = "paid"
)

type OrganizerType string

const (
	OrganizerClub  OrganizerType = "club"
	OrganizerAdmin OrganizerType = "admin"
)

type Event struct {
	ID                    uint          `json:"id"`
	Title                 string        `json:"title"`
	Description           string        `json:"description"`
	Location              string        `json:"location"`
	StartDate             time.Time     `json:"start_date"`
	EndDate               time.Time     `json:"end_date"`
	RegistrationStartDate *time.Time    `json:"registration_start_date,omitempty"`
	RegistrationDeadline  *time.Time    `json:"registration_deadline,omitempty"`
	CreatedBy             uint          `json:"created_by"`
	OrganizerID           uint          `json:"organizer_id"`
	OrganizerName         string        `json:"organizer_name"`
	OrganizerType         OrganizerType `json:"organizer_type"`
	Status                EventStatus   `json:"status"`
	Capacity              *int          `json:"capacity,omitempty"`
	RegisteredCount       int           `json:"registered_count"`
	EventType             EventType     `json:"event_type"`
	EventFee              string        `json:"event_fee,omitempty"`
	UpiID                 string        `json:"upi_id,omitempty"`
	Tags                  []string      `json:"tags"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

// IsFull reports whether the event has no remaining capacity.
// Events without a capacity are never full.
func (e *Event) IsFull() bool {
	return e.Capacity != nil && e.RegisteredCount >= *e.Capacity
}

// RegistrationWindowOpen reports whether now falls inside the optional
// registration window. An unset bound does not constrain.
func (e *Event) RegistrationWindowOpen(now time.Time) bool {
	if e.RegistrationStartDate != nil && now.Before(*e.RegistrationStartDate) {
		return false
	}
	if e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline) {
		return false
	}
	return true
}
