package repository

import (
	"context"
	"fmt"

	"github.com/eventsync/eventsync-api/internal/domain"
	"github.com/eventsync/eventsync-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindByRole(ctx context.Context, role string) ([]dao.User, error)
	ListAll(ctx context.Context) ([]dao.User, error)
	UpdateStatus(ctx context.Context, id uint, status string) (dao.User, error)
	AddPoints(ctx context.Context, id uint, points int) error
	TopByPoints(ctx context.Context, role string, limit int) ([]dao.User, error)
	UpdateClubID(ctx context.Context, userID uint, clubID *uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:         u.ID,
		Email:      u.Email,
		Password:   u.Password,
		Name:       u.Name,
		Role:       domain.UserRole(u.Role),
		Status:     domain.UserStatus(u.Status),
		Department: u.Department,
		Year:       u.Year,
		ClubID:     u.ClubID,
		Points:     u.Points,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (r *UserRepository) daosToDomain(users []dao.User) []domain.User {
	result := make([]domain.User, len(users))
	for i, u := range users {
		result[i] = r.daoToDomain(u)
	}
	return result
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:      user.Email,
		Password:   user.Password,
		Name:       user.Name,
		Role:       string(user.Role),
		Status:     string(user.Status),
		Department: user.Department,
		Year:       user.Year,
		ClubID:     user.ClubID,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	users, err := r.dao.FindByRole(ctx, string(role))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRole -> %w", err)
	}

	return r.daosToDomain(users), nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	users, err := r.dao.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAll -> %w", err)
	}

	return r.daosToDomain(users), nil
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id uint, status domain.UserStatus) (domain.User, error) {
	updated, err := r.dao.UpdateStatus(ctx, id, string(status))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) AddPoints(ctx context.Context, id uint, points int) error {
	if err := r.dao.AddPoints(ctx, id, points); err != nil {
		return fmt.Errorf("r.dao.AddPoints -> %w", err)
	}

	return nil
}

func (r *UserRepository) TopStudentsByPoints(ctx context.Context, limit int) ([]domain.User, error) {
	users, err := r.dao.TopByPoints(ctx, string(domain.RoleStudent), limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.TopByPoints -> %w", err)
	}

	return r.daosToDomain(users), nil
}

func (r *UserRepository) UpdateClubID(ctx context.Context, userID uint, clubID *uint) error {
	if err := r.dao.UpdateClubID(ctx, userID, clubID); err != nil {
		return fmt.Errorf("r.dao.UpdateClubID -> %w", err)
	}

	return nil
}
