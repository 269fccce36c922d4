package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eventsync/eventsync-api/internal/domain"
	"github.com/eventsync/eventsync-api/internal/repository"
)

var (
	ErrRegistrationNotFound   = repository.ErrRegistrationNotFound
	ErrAlreadyRegistered      = repository.ErrAlreadyRegistered
	ErrEventNotOpen           = repository.ErrEventNotOpen
	ErrRegistrationNotOpen    = repository.ErrRegistrationNotOpen
	ErrRegistrationClosed     = repository.ErrRegistrationClosed
	ErrEventFull              = repository.ErrEventFull
	ErrPaymentAlreadyVerified = repository.ErrPaymentAlreadyVerified

	ErrPaymentProofRequired    = errors.New("transaction id and payment proof are required for paid events")
	ErrRejectionReasonRequired = errors.New("a rejection reason is required")
	ErrNotPaidEvent            = errors.New("event does not require payment")
	ErrPaymentNotVerified      = errors.New("payment has not been verified yet")
	ErrInvalidQRPayload        = errors.New("invalid QR payload")
	ErrWrongEvent              = errors.New("QR code belongs to a different event")
	ErrUnknownRegistrant       = errors.New("no registration found for this attendee")
)

type RegistrationRepository interface {
	Create(ctx context.Context, reg domain.Registration, now time.Time) (domain.Registration, error)
	Delete(ctx context.Context, eventID, userID uint) error
	DeletePendingPayment(ctx context.Context, eventID, userID uint) error
	GetByID(ctx context.Context, id uint) (domain.Registration, error)
	GetByEventAndUser(ctx context.Context, eventID, userID uint) (domain.Registration, error)
	ListByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Registration, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status domain.PaymentStatus) error
	MarkAttended(ctx context.Context, id uint, at time.Time) (bool, error)
	MarkRegistered(ctx context.Context, id uint) error
}

// CheckInResult reports the outcome of a QR scan. AlreadyCheckedIn means
// the scan was a duplicate and nothing changed.
type CheckInResult struct {
	Registration     domain.Registration
	AlreadyCheckedIn bool
}

type RegistrationService struct {
	repo      RegistrationRepository
	eventRepo EventRepository
	userRepo  UserRepository
	clubRepo  ClubRepository
	notifier  Notifier
}

func NewRegistrationService(
	repo RegistrationRepository,
	eventRepo EventRepository,
	userRepo UserRepository,
	clubRepo ClubRepository,
	notifier Notifier,
) *RegistrationService {
	return &RegistrationService{
		repo:      repo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		clubRepo:  clubRepo,
		notifier:  notifier,
	}
}

// Register creates a registration for (event, user). The window, capacity
// and duplicate checks run inside one store transaction together with the
// counter increment, so two racing calls for the last slot cannot both
// succeed.
func (s *RegistrationService) Register(ctx context.Context, eventID, userID uint, proof *domain.PaymentProof) (domain.Registration, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.eventRepo.GetByID -> %w", err)
	}

	reg := domain.Registration{
		EventID:       eventID,
		UserID:        userID,
		Reference:     uuid.NewString(),
		Status:        domain.RegistrationStatusRegistered,
		RegisteredAt:  time.Now().UTC(),
		PaymentStatus: domain.PaymentStatusNone,
	}

	if event.EventType == domain.EventTypePaid {
		if proof == nil || proof.TransactionID == "" || proof.TransactionImage == "" {
			return domain.Registration{}, ErrPaymentProofRequired
		}
		reg.TransactionID = proof.TransactionID
		reg.TransactionImage = proof.TransactionImage
		reg.PaymentStatus = domain.PaymentStatusPending
	}

	created, err := s.repo.Create(ctx, reg, reg.RegisteredAt)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Cancel removes the user's registration and frees the capacity slot.
func (s *RegistrationService) Cancel(ctx context.Context, eventID, userID uint) error {
	if err := s.repo.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *RegistrationService) GetByID(ctx context.Context, id uint) (domain.Registration, error) {
	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return reg, nil
}

func (s *RegistrationService) ListByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	regs, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByEvent -> %w", err)
	}

	return regs, nil
}

func (s *RegistrationService) ListByUser(ctx context.Context, userID uint) ([]domain.Registration, error) {
	regs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByUser -> %w", err)
	}

	return regs, nil
}

// Ticket returns the QR payload for the caller's registration. Paid
// registrations only become a check-in credential once the payment has
// been verified.
func (s *RegistrationService) Ticket(ctx context.Context, eventID, userID uint) (domain.Registration, []byte, error) {
	reg, err := s.repo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return domain.Registration{}, nil, fmt.Errorf("s.repo.GetByEventAndUser -> %w", err)
	}

	if reg.PaymentStatus == domain.PaymentStatusPending {
		return domain.Registration{}, nil, ErrPaymentNotVerified
	}

	payload, err := domain.TicketPayload{EventID: eventID, UserID: userID}.Encode()
	if err != nil {
		return domain.Registration{}, nil, fmt.Errorf("payload.Encode -> %w", err)
	}

	return reg, payload, nil
}

// VerifyPayment marks a paid registration's payment as verified.
// Re-verifying is a no-op and sends no second email.
func (s *RegistrationService) VerifyPayment(ctx context.Context, registrationID uint) error {
	reg, err := s.repo.GetByID(ctx, registrationID)
	if err != nil {
		return fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	if reg.PaymentStatus == domain.PaymentStatusNone {
		return ErrNotPaidEvent
	}
	if reg.PaymentStatus == domain.PaymentStatusVerified {
		return nil
	}

	if err = s.repo.UpdatePaymentStatus(ctx, registrationID, domain.PaymentStatusVerified); err != nil {
		return fmt.Errorf("s.repo.UpdatePaymentStatus -> %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, reg.EventID)
	if err != nil {
		zap.L().Warn("payment verified but event lookup for notification failed",
			zap.Error(err),
			zap.Uint("registration_id", registrationID),
		)
		return nil
	}

	user, err := s.userRepo.FindByID(ctx, reg.UserID)
	if err != nil {
		zap.L().Warn("payment verified but user lookup for notification failed",
			zap.Error(err),
			zap.Uint("registration_id", registrationID),
		)
		return nil
	}

	if err = s.notifier.PaymentVerified(ctx, user.Email, user.Name, event.ID, event.Title); err != nil {
		zap.L().Warn("failed to enqueue payment-verified email",
			zap.Error(err),
			zap.Uint("registration_id", registrationID),
		)
	}

	return nil
}

// RejectPayment removes the registration, frees the slot and notifies the
// registrant with the reason and the organizer's contact details. No
// rejected state is persisted. The delete is guarded on the payment still
// being pending, so a verification racing this call wins.
func (s *RegistrationService) RejectPayment(ctx context.Context, registrationID uint, reason string) error {
	if reason == "" {
		return ErrRejectionReasonRequired
	}

	reg, err := s.repo.GetByID(ctx, registrationID)
	if err != nil {
		return fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	if reg.PaymentStatus == domain.PaymentStatusNone {
		return ErrNotPaidEvent
	}
	if reg.PaymentStatus == domain.PaymentStatusVerified {
		return ErrPaymentAlreadyVerified
	}

	event, err := s.eventRepo.GetByID(ctx, reg.EventID)
	if err != nil {
		return fmt.Errorf("s.eventRepo.GetByID -> %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, reg.UserID)
	if err != nil {
		return fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	if err = s.repo.DeletePendingPayment(ctx, reg.EventID, reg.UserID); err != nil {
		if errors.Is(err, ErrPaymentAlreadyVerified) {
			return ErrPaymentAlreadyVerified
		}
		return fmt.Errorf("s.repo.DeletePendingPayment -> %w", err)
	}

	contact := domain.OrganizerContact{}
	if event.OrganizerType == domain.OrganizerClub {
		if club, clubErr := s.clubRepo.GetByID(ctx, event.OrganizerID); clubErr == nil {
			contact.President = club.President
			contact.PhoneNo = club.PhoneNo
		}
	}

	if err = s.notifier.PaymentRejected(ctx, user.Email, user.Name, event.Title, reason, contact); err != nil {
		zap.L().Warn("failed to enqueue payment-rejected email",
			zap.Error(err),
			zap.Uint("registration_id", registrationID),
		)
	}

	return nil
}

// SetAttendance toggles the attended state. The transition to attended is
// a single guarded update, so concurrent organizers cannot double-apply
// it; the first successful check-in awards attendance points.
func (s *RegistrationService) SetAttendance(ctx context.Context, registrationID uint, present bool) (domain.Registration, error) {
	if !present {
		if err := s.repo.MarkRegistered(ctx, registrationID); err != nil {
			return domain.Registration{}, fmt.Errorf("s.repo.MarkRegistered -> %w", err)
		}
		return s.GetByID(ctx, registrationID)
	}

	changed, err := s.repo.MarkAttended(ctx, registrationID, time.Now().UTC())
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.MarkAttended -> %w", err)
	}

	reg, err := s.GetByID(ctx, registrationID)
	if err != nil {
		return domain.Registration{}, err
	}

	if changed {
		if err := s.userRepo.AddPoints(ctx, reg.UserID, domain.PointsEventAttendance); err != nil {
			zap.L().Warn("failed to award attendance points",
				zap.Error(err),
				zap.Uint("user_id", reg.UserID),
			)
		}
	}

	return reg, nil
}

// CheckInByQR resolves a scanned payload against the active event and
// checks the registrant in. Scanning the same code twice is harmless: the
// second scan reports AlreadyCheckedIn and changes nothing.
func (s *RegistrationService) CheckInByQR(ctx context.Context, activeEventID uint, payload []byte) (CheckInResult, error) {
	ticket, err := domain.DecodeTicketPayload(payload)
	if err != nil {
		return CheckInResult{}, ErrInvalidQRPayload
	}

	if ticket.EventID != activeEventID {
		return CheckInResult{}, ErrWrongEvent
	}

	reg, err := s.repo.GetByEventAndUser(ctx, activeEventID, ticket.UserID)
	if err != nil {
		if errors.Is(err, ErrRegistrationNotFound) {
			return CheckInResult{}, ErrUnknownRegistrant
		}
		return CheckInResult{}, fmt.Errorf("s.repo.GetByEventAndUser -> %w", err)
	}

	if reg.Status == domain.RegistrationStatusAttended {
		return CheckInResult{Registration: reg, AlreadyCheckedIn: true}, nil
	}

	updated, err := s.SetAttendance(ctx, reg.ID, true)
	if err != nil {
		return CheckInResult{}, err
	}

	return CheckInResult{Registration: updated}, nil
}
