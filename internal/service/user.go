package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/eventsync/eventsync-api/internal/domain"
	"github.com/eventsync/eventsync-api/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
	UpdateStatus(ctx context.Context, id uint, status domain.UserStatus) (domain.User, error)
	AddPoints(ctx context.Context, id uint, points int) error
	TopStudentsByPoints(ctx context.Context, limit int) ([]domain.User, error)
	UpdateClubID(ctx context.Context, userID uint, clubID *uint) error
}

type UserService struct {
	repo     UserRepository
	notifier Notifier
}

func NewUserService(repo UserRepository, notifier Notifier) *UserService {
	return &UserService{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAll -> %w", err)
	}

	return users, nil
}

// SetAccountStatus is the admin approval/rejection of a pending account.
// The decision is committed first; the status email is best-effort.
func (s *UserService) SetAccountStatus(ctx context.Context, id uint, approved bool) (domain.User, error) {
	status := domain.UserStatusRejected
	if approved {
		status = domain.UserStatusApproved
	}

	user, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	if err = s.notifier.AccountStatus(ctx, user.Email, user.Name, approved); err != nil {
		zap.L().Warn("failed to enqueue account-status email",
			zap.Error(err),
			zap.Uint("user_id", user.ID),
		)
	}

	return user, nil
}
