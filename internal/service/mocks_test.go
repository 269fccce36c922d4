package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/eventsync/eventsync-api/internal/domain"
)

type mockRegistrationRepo struct {
	mock.Mock
}

func (m *mockRegistrationRepo) Create(ctx context.Context, reg domain.Registration, now time.Time) (domain.Registration, error) {
	args := m.Called(ctx, reg, now)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) Delete(ctx context.Context, eventID, userID uint) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *mockRegistrationRepo) DeletePendingPayment(ctx context.Context, eventID, userID uint) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *mockRegistrationRepo) GetByID(ctx context.Context, id uint) (domain.Registration, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) GetByEventAndUser(ctx context.Context, eventID, userID uint) (domain.Registration, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) ListByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) ListByUser(ctx context.Context, userID uint) ([]domain.Registration, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) UpdatePaymentStatus(ctx context.Context, id uint, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockRegistrationRepo) MarkAttended(ctx context.Context, id uint, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func (m *mockRegistrationRepo) MarkRegistered(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id uint) (domain.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) ListAll(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *mockEventRepo) ListByStatus(ctx context.Context, status domain.EventStatus) ([]domain.Event, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *mockEventRepo) ListByOrganizer(ctx context.Context, organizerID uint) ([]domain.Event, error) {
	args := m.Called(ctx, organizerID)
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *mockEventRepo) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) UpdateStatus(ctx context.Context, id uint, status domain.EventStatus) (domain.Event, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdateStatus(ctx context.Context, id uint, status domain.UserStatus) (domain.User, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) AddPoints(ctx context.Context, id uint, points int) error {
	args := m.Called(ctx, id, points)
	return args.Error(0)
}

func (m *mockUserRepo) TopStudentsByPoints(ctx context.Context, limit int) ([]domain.User, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdateClubID(ctx context.Context, userID uint, clubID *uint) error {
	args := m.Called(ctx, userID, clubID)
	return args.Error(0)
}

type mockClubRepo struct {
	mock.Mock
}

func (m *mockClubRepo) Create(ctx context.Context, club domain.Club) (domain.Club, error) {
	args := m.Called(ctx, club)
	return args.Get(0).(domain.Club), args.Error(1)
}

func (m *mockClubRepo) GetByID(ctx context.Context, id uint) (domain.Club, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Club), args.Error(1)
}

func (m *mockClubRepo) ListAll(ctx context.Context) ([]domain.Club, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Club), args.Error(1)
}

func (m *mockClubRepo) Update(ctx context.Context, club domain.Club) (domain.Club, error) {
	args := m.Called(ctx, club)
	return args.Get(0).(domain.Club), args.Error(1)
}

func (m *mockClubRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockClubRepo) AddMember(ctx context.Context, clubID, userID uint) error {
	args := m.Called(ctx, clubID, userID)
	return args.Error(0)
}

func (m *mockClubRepo) RemoveMember(ctx context.Context, clubID, userID uint) error {
	args := m.Called(ctx, clubID, userID)
	return args.Error(0)
}

func (m *mockClubRepo) AddPoints(ctx context.Context, id uint, points int) error {
	args := m.Called(ctx, id, points)
	return args.Error(0)
}

func (m *mockClubRepo) TopByPoints(ctx context.Context, limit int) ([]domain.Club, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Club), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) PaymentVerified(ctx context.Context, email, name string, eventID uint, eventName string) error {
	args := m.Called(ctx, email, name, eventID, eventName)
	return args.Error(0)
}

func (m *mockNotifier) PaymentRejected(ctx context.Context, email, name, eventName, reason string, contact domain.OrganizerContact) error {
	args := m.Called(ctx, email, name, eventName, reason, contact)
	return args.Error(0)
}

func (m *mockNotifier) EventAnnouncement(ctx context.Context, event domain.Event, recipients []domain.User) error {
	args := m.Called(ctx, event, recipients)
	return args.Error(0)
}

func (m *mockNotifier) AccountStatus(ctx context.Context, email, name string, approved bool) error {
	args := m.Called(ctx, email, name, approved)
	return args.Error(0)
}
