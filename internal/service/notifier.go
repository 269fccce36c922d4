package service

import (
	"context"

	"github.com/eventsync/eventsync-api/internal/domain"
)

// Notifier enqueues transactional email. Every call is made after the
// related data mutation has committed; failures are logged by the caller
// and never roll anything back.
type Notifier interface {
	PaymentVerified(ctx context.Context, email, name string, eventID uint, eventName string) error
	PaymentRejected(ctx context.Context, email, name, eventName, reason string, contact domain.OrganizerContact) error
	EventAnnouncement(ctx context.Context, event domain.Event, recipients []domain.User) error
	AccountStatus(ctx context.Context, email, name string, approved bool) error
}
