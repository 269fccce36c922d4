package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	errEndBeforeStart      = errors.New("end date must not be before the start date")
	errDeadlineAfterStart  = errors.New("registration deadline must not be after the event start")
	errWindowInverted      = errors.New("registration start must not be after the registration deadline")
	errPaidEventNeedsFee   = errors.New("paid events require a fee and a UPI ID")
	errNonPositiveCapacity = errors.New("capacity must be a positive number")
)

type CreateEventRequest struct {
	Title                 string     `json:"title"`
	Description           string     `json:"description"`
	Location              string     `json:"location"`
	StartDate             time.Time  `json:"start_date"`
	EndDate               time.Time  `json:"end_date"`
	RegistrationStartDate *time.Time `json:"registration_start_date,omitempty"`
	RegistrationDeadline  *time.Time `json:"registration_deadline,omitempty"`
	Capacity              *int       `json:"capacity,omitempty"`
	EventType             string     `json:"event_type"`
	EventFee              string     `json:"event_fee,omitempty"`
	UpiID                 string     `json:"upi_id,omitempty"`
	Tags                  []string   `json:"tags,omitempty"`
}

func (req *CreateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Location, validation.Required),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.EventType, validation.Required, validation.In("free", "paid")),
	)
	if err != nil {
		return err
	}

	if req.EndDate.Before(req.StartDate) {
		return errEndBeforeStart
	}
	if req.RegistrationDeadline != nil && req.RegistrationDeadline.After(req.StartDate) {
		return errDeadlineAfterStart
	}
	if req.RegistrationStartDate != nil && req.RegistrationDeadline != nil &&
		req.RegistrationStartDate.After(*req.RegistrationDeadline) {
		return errWindowInverted
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return errNonPositiveCapacity
	}
	if req.EventType == "paid" && (req.EventFee == "" || req.UpiID == "") {
		return errPaidEventNeedsFee
	}

	return nil
}

// UpdateEventRequest carries the mutable fields only. Organizer and
// type identity cannot change after creation.
type UpdateEventRequest struct {
	Title                 string     `json:"title"`
	Description           string     `json:"description"`
	Location              string     `json:"location"`
	StartDate             time.Time  `json:"start_date"`
	EndDate               time.Time  `json:"end_date"`
	RegistrationStartDate *time.Time `json:"registration_start_date,omitempty"`
	RegistrationDeadline  *time.Time `json:"registration_deadline,omitempty"`
	Capacity              *int       `json:"capacity,omitempty"`
	Tags                  []string   `json:"tags,omitempty"`
}

func (req *UpdateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Location, validation.Required),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
	)
	if err != nil {
		return err
	}

	if req.EndDate.Before(req.StartDate) {
		return errEndBeforeStart
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return errNonPositiveCapacity
	}

	return nil
}
