package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eventsync/eventsync-api/internal/domain"
)

func newEventService() (*EventService, *mockEventRepo, *mockRegistrationRepo, *mockUserRepo, *mockClubRepo, *mockNotifier) {
	repo := &mockEventRepo{}
	regRepo := &mockRegistrationRepo{}
	userRepo := &mockUserRepo{}
	clubRepo := &mockClubRepo{}
	notifier := &mockNotifier{}
	svc := NewEventService(repo, regRepo, userRepo, clubRepo, notifier)

	return svc, repo, regRepo, userRepo, clubRepo, notifier
}

func uintPtr(v uint) *uint { return &v }

func TestCreateEvent(t *testing.T) {
	t.Run("admin events are published and announced", func(t *testing.T) {
		svc, repo, _, userRepo, _, notifier := newEventService()

		admin := domain.User{ID: 1, Name: "Dean", Role: domain.RoleAdmin}
		students := []domain.User{{ID: 9, Email: "a@campus.edu", Role: domain.RoleStudent}}

		repo.On("Create", mock.Anything, mock.Anything).
			Return(domain.Event{ID: 5, Title: "Orientation", Status: domain.EventStatusApproved, OrganizerType: domain.OrganizerAdmin}, nil).
			Run(func(args mock.Arguments) {
				event := args.Get(1).(domain.Event)
				assert.Equal(t, domain.EventStatusApproved, event.Status)
				assert.Equal(t, domain.OrganizerAdmin, event.OrganizerType)
				assert.Equal(t, uint(1), event.OrganizerID)
			})
		userRepo.On("FindByRole", mock.Anything, domain.RoleStudent).Return(students, nil)
		notifier.On("EventAnnouncement", mock.Anything, mock.Anything, students).Return(nil)

		created, err := svc.Create(context.Background(), domain.Event{Title: "Orientation"}, admin)
		require.NoError(t, err)
		assert.Equal(t, domain.EventStatusApproved, created.Status)
		notifier.AssertExpectations(t)
	})

	t.Run("club events await review and earn creation points", func(t *testing.T) {
		svc, repo, _, _, clubRepo, notifier := newEventService()

		club := domain.User{ID: 2, Role: domain.RoleClub, ClubID: uintPtr(4)}

		clubRepo.On("GetByID", mock.Anything, uint(4)).
			Return(domain.Club{ID: 4, Name: "Robotics Club"}, nil)
		repo.On("Create", mock.Anything, mock.Anything).
			Return(domain.Event{ID: 6, Status: domain.EventStatusPending, OrganizerType: domain.OrganizerClub, OrganizerID: 4}, nil).
			Run(func(args mock.Arguments) {
				event := args.Get(1).(domain.Event)
				assert.Equal(t, domain.EventStatusPending, event.Status)
				assert.Equal(t, "Robotics Club", event.OrganizerName)
			})
		clubRepo.On("AddPoints", mock.Anything, uint(4), domain.PointsEventCreation).Return(nil)

		created, err := svc.Create(context.Background(), domain.Event{Title: "RoboWars"}, club)
		require.NoError(t, err)
		assert.Equal(t, domain.EventStatusPending, created.Status)
		clubRepo.AssertExpectations(t)
		notifier.AssertNotCalled(t, "EventAnnouncement", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("club account without a club profile", func(t *testing.T) {
		svc, _, _, _, _, _ := newEventService()

		_, err := svc.Create(context.Background(), domain.Event{}, domain.User{ID: 2, Role: domain.RoleClub})
		assert.ErrorIs(t, err, ErrClubNotFound)
	})
}

func TestApproveEvent(t *testing.T) {
	svc, repo, _, userRepo, _, notifier := newEventService()

	students := []domain.User{{ID: 9, Email: "a@campus.edu"}}

	repo.On("UpdateStatus", mock.Anything, uint(6), domain.EventStatusApproved).
		Return(domain.Event{ID: 6, Status: domain.EventStatusApproved, OrganizerType: domain.OrganizerClub}, nil)
	userRepo.On("FindByRole", mock.Anything, domain.RoleStudent).Return(students, nil)
	notifier.On("EventAnnouncement", mock.Anything, mock.Anything, students).Return(nil)

	event, err := svc.Approve(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusApproved, event.Status)
	notifier.AssertExpectations(t)
}

func TestRejectEvent(t *testing.T) {
	svc, repo, _, _, _, notifier := newEventService()

	repo.On("UpdateStatus", mock.Anything, uint(6), domain.EventStatusRejected).
		Return(domain.Event{ID: 6, Status: domain.EventStatusRejected}, nil)

	event, err := svc.Reject(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusRejected, event.Status)
	notifier.AssertNotCalled(t, "EventAnnouncement", mock.Anything, mock.Anything, mock.Anything)
}

func TestListRegisteredByUser(t *testing.T) {
	svc, repo, regRepo, _, _, _ := newEventService()

	regRepo.On("ListByUser", mock.Anything, uint(9)).
		Return([]domain.Registration{{ID: 1, EventID: 5}, {ID: 2, EventID: 6}}, nil)
	repo.On("GetByID", mock.Anything, uint(5)).Return(domain.Event{ID: 5}, nil)
	repo.On("GetByID", mock.Anything, uint(6)).Return(domain.Event{ID: 6}, nil)

	events, err := svc.ListRegisteredByUser(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint(5), events[0].ID)
	assert.Equal(t, uint(6), events[1].ID)
}
