package notifier

import "github.com/eventsync/eventsync-api/internal/domain"

// Kind discriminates the outbox messages the worker knows how to send.
type Kind string

const (
	KindPaymentVerified   Kind = "payment_verified"
	KindPaymentRejected   Kind = "payment_rejected"
	KindEventAnnouncement Kind = "event_announcement"
	KindAccountStatus     Kind = "account_status"
)

// Recipient is one addressable inbox for an announcement fan-out.
type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Message is the envelope published to the outbox queue after a data
// mutation commits. Only the fields relevant to its Kind are populated.
type Message struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`

	EventID   uint   `json:"event_id,omitempty"`
	EventName string `json:"event_name,omitempty"`
	Location  string `json:"location,omitempty"`
	StartDate string `json:"start_date,omitempty"`

	Reason           string                  `json:"reason,omitempty"`
	OrganizerContact domain.OrganizerContact `json:"organizer_contact,omitempty"`

	Approved bool `json:"approved,omitempty"`

	Recipients []Recipient `json:"recipients,omitempty"`
}
