package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/eventsync/eventsync-api/internal/domain"
)

// Publisher enqueues outbox messages onto the queue. It is called by the
// service layer after a transaction commits; delivery from there on is the
// worker's problem.
type Publisher struct {
	rmq *RabbitClient
}

func NewPublisher(rmq *RabbitClient) *Publisher {
	return &Publisher{
		rmq: rmq,
	}
}

func (p *Publisher) publish(msg Message) error {
	msg.ID = uuid.NewString()

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	if err = p.rmq.Publish(body); err != nil {
		return fmt.Errorf("rmq.Publish -> %w", err)
	}

	return nil
}

func (p *Publisher) PaymentVerified(_ context.Context, email, name string, eventID uint, eventName string) error {
	return p.publish(Message{
		Kind:      KindPaymentVerified,
		Email:     email,
		Name:      name,
		EventID:   eventID,
		EventName: eventName,
	})
}

func (p *Publisher) PaymentRejected(_ context.Context, email, name, eventName, reason string, contact domain.OrganizerContact) error {
	return p.publish(Message{
		Kind:             KindPaymentRejected,
		Email:            email,
		Name:             name,
		EventName:        eventName,
		Reason:           reason,
		OrganizerContact: contact,
	})
}

func (p *Publisher) EventAnnouncement(_ context.Context, event domain.Event, recipients []domain.User) error {
	to := make([]Recipient, len(recipients))
	for i, u := range recipients {
		to[i] = Recipient{Email: u.Email, Name: u.Name}
	}

	return p.publish(Message{
		Kind:       KindEventAnnouncement,
		EventID:    event.ID,
		EventName:  event.Title,
		Location:   event.Location,
		StartDate:  event.StartDate.Format("Jan 2, 2006 3:04 PM"),
		Recipients: to,
	})
}

func (p *Publisher) AccountStatus(_ context.Context, email, name string, approved bool) error {
	return p.publish(Message{
		Kind:     KindAccountStatus,
		Email:    email,
		Name:     name,
		Approved: approved,
	})
}
