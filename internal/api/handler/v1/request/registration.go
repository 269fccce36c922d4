package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// RegisterRequest carries the optional payment proof. Free events send
// an empty body.
type RegisterRequest struct {
	TransactionID    string `json:"transaction_id,omitempty"`
	TransactionImage string `json:"transaction_image,omitempty"`
}

func (req *RegisterRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TransactionID, validation.Length(0, 100)),
	)
}

type RejectPaymentRequest struct {
	Reason string `json:"reason"`
}

func (req *RejectPaymentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reason, validation.Required, validation.Length(2, 500)),
	)
}

type AttendanceRequest struct {
	Present *bool `json:"present"`
}

func (req *AttendanceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Present, validation.NotNil),
	)
}

// CheckInRequest wraps the raw QR payload captured by the scanner.
type CheckInRequest struct {
	Payload string `json:"payload"`
}

func (req *CheckInRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Payload, validation.Required),
	)
}
