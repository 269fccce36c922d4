package repository

import (
	"context"
	"fmt"

	"github.com/eventsync/eventsync-api/internal/domain"
	"github.com/eventsync/eventsync-api/internal/repository/dao"
)

var (
	ErrEventNotFound           = dao.ErrEventNotFound
	ErrCapacityBelowRegistered = dao.ErrCapacityBelowRegistered
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	ListAll(ctx context.Context) ([]dao.Event, error)
	ListByStatus(ctx context.Context, status string) ([]dao.Event, error)
	ListByOrganizer(ctx context.Context, organizerID uint) ([]dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	UpdateStatus(ctx context.Context, id uint, status string) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:                    e.ID,
		Title:                 e.Title,
		Description:           e.Description,
		Location:              e.Location,
		StartDate:             e.StartDate,
		EndDate:               e.EndDate,
		RegistrationStartDate: e.RegistrationStartDate,
		RegistrationDeadline:  e.RegistrationDeadline,
		CreatedBy:             e.CreatedBy,
		OrganizerID:           e.OrganizerID,
		OrganizerName:         e.OrganizerName,
		OrganizerType:         string(e.OrganizerType),
		Status:                string(e.Status),
		Capacity:              e.Capacity,
		RegisteredCount:       e.RegisteredCount,
		EventType:             string(e.EventType),
		EventFee:              e.EventFee,
		UpiID:                 e.UpiID,
		Tags:                  e.Tags,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:                    e.ID,
		Title:                 e.Title,
		Description:           e.Description,
		Location:              e.Location,
		StartDate:             e.StartDate,
		EndDate:               e.EndDate,
		RegistrationStartDate: e.RegistrationStartDate,
		RegistrationDeadline:  e.RegistrationDeadline,
		CreatedBy:             e.CreatedBy,
		OrganizerID:           e.OrganizerID,
		OrganizerName:         e.OrganizerName,
		OrganizerType:         domain.OrganizerType(e.OrganizerType),
		Status:                domain.EventStatus(e.Status),
		Capacity:              e.Capacity,
		RegisteredCount:       e.RegisteredCount,
		EventType:             domain.EventType(e.EventType),
		EventFee:              e.EventFee,
		UpiID:                 e.UpiID,
		Tags:                  e.Tags,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

func (r *EventRepository) daosToDomain(events []dao.Event) []domain.Event {
	result := make([]domain.Event, len(events))
	for i, e := range events {
		result[i] = r.daoToDomain(e)
	}
	return result
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) ListAll(ctx context.Context) ([]domain.Event, error) {
	events, err := r.dao.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAll -> %w", err)
	}

	return r.daosToDomain(events), nil
}

func (r *EventRepository) ListByStatus(ctx context.Context, status domain.EventStatus) ([]domain.Event, error) {
	events, err := r.dao.ListByStatus(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByStatus -> %w", err)
	}

	return r.daosToDomain(events), nil
}

func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID uint) ([]domain.Event, error) {
	events, err := r.dao.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByOrganizer -> %w", err)
	}

	return r.daosToDomain(events), nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id uint, status domain.EventStatus) (domain.Event, error) {
	updated, err := r.dao.UpdateStatus(ctx, id, string(status))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
