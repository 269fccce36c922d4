package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/eventsync/eventsync-api/internal/domain"
	"github.com/eventsync/eventsync-api/internal/repository/dao"
)

var (
	ErrRegistrationNotFound   = dao.ErrRegistrationNotFound
	ErrAlreadyRegistered      = dao.ErrAlreadyRegistered
	ErrEventNotOpen           = dao.ErrEventNotOpen
	ErrRegistrationNotOpen    = dao.ErrRegistrationNotOpen
	ErrRegistrationClosed     = dao.ErrRegistrationClosed
	ErrEventFull              = dao.ErrEventFull
	ErrPaymentAlreadyVerified = dao.ErrPaymentAlreadyVerified
)

type RegistrationDAO interface {
	Insert(ctx context.Context, reg dao.Registration, now time.Time) (dao.Registration, error)
	Delete(ctx context.Context, eventID, userID uint) error
	DeletePendingPayment(ctx context.Context, eventID, userID uint) error
	FindByID(ctx context.Context, id uint) (dao.Registration, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (dao.Registration, error)
	ListByEvent(ctx context.Context, eventID uint) ([]dao.Registration, error)
	ListByUser(ctx context.Context, userID uint) ([]dao.Registration, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status string) error
	MarkAttended(ctx context.Context, id uint, at time.Time) (bool, error)
	MarkRegistered(ctx context.Context, id uint) error
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

func (r *RegistrationRepository) domainToDao(reg domain.Registration) dao.Registration {
	return dao.Registration{
		ID:               reg.ID,
		EventID:          reg.EventID,
		UserID:           reg.UserID,
		Reference:        reg.Reference,
		Status:           string(reg.Status),
		RegisteredAt:     reg.RegisteredAt,
		CheckedInAt:      reg.CheckedInAt,
		TransactionID:    reg.TransactionID,
		TransactionImage: reg.TransactionImage,
		PaymentStatus:    string(reg.PaymentStatus),
	}
}

func (r *RegistrationRepository) daoToDomain(reg dao.Registration) domain.Registration {
	return domain.Registration{
		ID:               reg.ID,
		EventID:          reg.EventID,
		UserID:           reg.UserID,
		Reference:        reg.Reference,
		Status:           domain.RegistrationStatus(reg.Status),
		RegisteredAt:     reg.RegisteredAt,
		CheckedInAt:      reg.CheckedInAt,
		TransactionID:    reg.TransactionID,
		TransactionImage: reg.TransactionImage,
		PaymentStatus:    domain.PaymentStatus(reg.PaymentStatus),
	}
}

func (r *RegistrationRepository) daosToDomain(regs []dao.Registration) []domain.Registration {
	result := make([]domain.Registration, len(regs))
	for i, reg := range regs {
		result[i] = r.daoToDomain(reg)
	}
	return result
}

// Create runs the registration transaction: window, capacity and duplicate
// checks happen inside the dao against a locked event row, together with
// the counter increment.
func (r *RegistrationRepository) Create(ctx context.Context, reg domain.Registration, now time.Time) (domain.Registration, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(reg), now)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, eventID, userID uint) error {
	if err := r.dao.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

// DeletePendingPayment removes the registration only if its payment is
// still pending when the delete runs.
func (r *RegistrationRepository) DeletePendingPayment(ctx context.Context, eventID, userID uint) error {
	if err := r.dao.DeletePendingPayment(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.DeletePendingPayment -> %w", err)
	}

	return nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id uint) (domain.Registration, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RegistrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID uint) (domain.Registration, error) {
	found, err := r.dao.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByEventAndUser -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	regs, err := r.dao.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByEvent -> %w", err)
	}

	return r.daosToDomain(regs), nil
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Registration, error) {
	regs, err := r.dao.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByUser -> %w", err)
	}

	return r.daosToDomain(regs), nil
}

func (r *RegistrationRepository) UpdatePaymentStatus(ctx context.Context, id uint, status domain.PaymentStatus) error {
	if err := r.dao.UpdatePaymentStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdatePaymentStatus -> %w", err)
	}

	return nil
}

// MarkAttended reports whether this call performed the transition; false
// means the registration was already checked in.
func (r *RegistrationRepository) MarkAttended(ctx context.Context, id uint, at time.Time) (bool, error) {
	changed, err := r.dao.MarkAttended(ctx, id, at)
	if err != nil {
		return false, fmt.Errorf("r.dao.MarkAttended -> %w", err)
	}

	return changed, nil
}

func (r *RegistrationRepository) MarkRegistered(ctx context.Context, id uint) error {
	if err := r.dao.MarkRegistered(ctx, id); err != nil {
		return fmt.Errorf("r.dao.MarkRegistered -> %w", err)
	}

	return nil
}
