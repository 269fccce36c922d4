package domain

import (
	"encoding/json"
	"time"
)

type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusAttended   RegistrationStatus = "attended"
)

type PaymentStatus string

const (
	// PaymentStatusNone marks registrations for free events, which carry
	// no payment evidence at all.
	PaymentStatusNone     PaymentStatus = "none"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
)

type Registration struct {
	ID               uint               `json:"id"`
	EventID          uint               `json:"event_id"`
	UserID           uint               `json:"user_id"`
	Reference        string             `json:"reference"`
	Status           RegistrationStatus `json:"status"`
	RegisteredAt     time.Time          `json:"registered_at"`
	CheckedInAt      *time.Time         `json:"checked_in_at,omitempty"`
	TransactionID    string             `json:"transaction_id,omitempty"`
	TransactionImage string             `json:"transaction_image,omitempty"`
	PaymentStatus    PaymentStatus      `json:"payment_status"`
}

// PaymentProof is the evidence a registrant submits for a paid event.
type PaymentProof struct {
	TransactionID    string
	TransactionImage string
}

// TicketPayload is the QR payload printed for a registrant and consumed
// by the check-in scanner. It is plain JSON with no signature; possession
// of the displaying device is the access control.
type TicketPayload struct {
	EventID uint `json:"eventId"`
	UserID  uint `json:"userId"`
}

func (p TicketPayload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

func DecodeTicketPayload(data []byte) (TicketPayload, error) {
	var p TicketPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return TicketPayload{}, err
	}
	return p, nil
}
