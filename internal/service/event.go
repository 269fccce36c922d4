package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/eventsync/eventsync-api/internal/domain"
	"github.com/eventsync/eventsync-api/internal/repository"
)

var (
	ErrEventNotFound           = repository.ErrEventNotFound
	ErrCapacityBelowRegistered = repository.ErrCapacityBelowRegistered
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	GetByID(ctx context.Context, id uint) (domain.Event, error)
	ListAll(ctx context.Context) ([]domain.Event, error)
	ListByStatus(ctx context.Context, status domain.EventStatus) ([]domain.Event, error)
	ListByOrganizer(ctx context.Context, organizerID uint) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	UpdateStatus(ctx context.Context, id uint, status domain.EventStatus) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
}

type EventService struct {
	repo     EventRepository
	regRepo  RegistrationRepository
	userRepo UserRepository
	clubRepo ClubRepository
	notifier Notifier
}

func NewEventService(
	repo EventRepository,
	regRepo RegistrationRepository,
	userRepo UserRepository,
	clubRepo ClubRepository,
	notifier Notifier,
) *EventService {
	return &EventService{
		repo:     repo,
		regRepo:  regRepo,
		userRepo: userRepo,
		clubRepo: clubRepo,
		notifier: notifier,
	}
}

// Create stores a new event. Admin-created events are approved on the
// spot and announced to students; club events await admin review.
func (s *EventService) Create(ctx context.Context, event domain.Event, creator domain.User) (domain.Event, error) {
	event.CreatedBy = creator.ID
	event.RegisteredCount = 0

	if creator.Role == domain.RoleAdmin {
		event.OrganizerType = domain.OrganizerAdmin
		event.OrganizerID = creator.ID
		event.OrganizerName = creator.Name
		event.Status = domain.EventStatusApproved
	} else {
		if creator.ClubID == nil {
			return domain.Event{}, ErrClubNotFound
		}

		club, err := s.clubRepo.GetByID(ctx, *creator.ClubID)
		if err != nil {
			return domain.Event{}, fmt.Errorf("s.clubRepo.GetByID -> %w", err)
		}

		event.OrganizerType = domain.OrganizerClub
		event.OrganizerID = club.ID
		event.OrganizerName = club.Name
		event.Status = domain.EventStatusPending
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if created.OrganizerType == domain.OrganizerClub {
		if err := s.clubRepo.AddPoints(ctx, created.OrganizerID, domain.PointsEventCreation); err != nil {
			zap.L().Warn("failed to award event-creation points",
				zap.Error(err),
				zap.Uint("club_id", created.OrganizerID),
			)
		}
	}

	if created.Status == domain.EventStatusApproved {
		s.announce(ctx, created)
	}

	return created, nil
}

// Approve moves a pending event to approved and announces it to students.
func (s *EventService) Approve(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.UpdateStatus(ctx, id, domain.EventStatusApproved)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	if event.OrganizerType == domain.OrganizerClub {
		s.announce(ctx, event)
	}

	return event, nil
}

func (s *EventService) Reject(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.UpdateStatus(ctx, id, domain.EventStatusRejected)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return event, nil
}

// Update applies organizer edits. Organizer identity and the registered
// counter never change through this path.
func (s *EventService) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *EventService) GetByID(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) ListAll(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListByOrganizer(ctx context.Context, organizerID uint) ([]domain.Event, error) {
	events, err := s.repo.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByOrganizer -> %w", err)
	}

	return events, nil
}

// ListRegisteredByUser returns the events a user holds a registration for.
func (s *EventService) ListRegisteredByUser(ctx context.Context, userID uint) ([]domain.Event, error) {
	regs, err := s.regRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.regRepo.ListByUser -> %w", err)
	}

	events := make([]domain.Event, 0, len(regs))
	for _, reg := range regs {
		event, err := s.repo.GetByID(ctx, reg.EventID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.GetByID -> %w", err)
		}
		events = append(events, event)
	}

	return events, nil
}

func (s *EventService) announce(ctx context.Context, event domain.Event) {
	students, err := s.userRepo.FindByRole(ctx, domain.RoleStudent)
	if err != nil {
		zap.L().Warn("failed to list students for event announcement",
			zap.Error(err),
			zap.Uint("event_id", event.ID),
		)
		return
	}
	if len(students) == 0 {
		return
	}

	if err := s.notifier.EventAnnouncement(ctx, event, students); err != nil {
		zap.L().Warn("failed to enqueue event announcement",
			zap.Error(err),
			zap.Uint("event_id", event.ID),
		)
	}
}
