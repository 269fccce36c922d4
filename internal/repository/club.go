package repository

import (
	"context"
	"fmt"

	"github.com/eventsync/eventsync-api/internal/domain"
	"github.com/eventsync/eventsync-api/internal/repository/dao"
)

var (
	ErrClubNotFound = dao.ErrClubNotFound
)

type ClubDAO interface {
	Insert(ctx context.Context, club dao.Club) (dao.Club, error)
	FindByID(ctx context.Context, id uint) (dao.Club, error)
	ListAll(ctx context.Context) ([]dao.Club, error)
	Update(ctx context.Context, club dao.Club) (dao.Club, error)
	Delete(ctx context.Context, id uint) error
	AddMember(ctx context.Context, clubID, userID uint) error
	RemoveMember(ctx context.Context, clubID, userID uint) error
	AddPoints(ctx context.Context, id uint, points int) error
	TopByPoints(ctx context.Context, limit int) ([]dao.Club, error)
}

type ClubRepository struct {
	dao ClubDAO
}

func NewClubRepository(dao ClubDAO) *ClubRepository {
	return &ClubRepository{
		dao: dao,
	}
}

func (r *ClubRepository) domainToDao(c domain.Club) dao.Club {
	return dao.Club{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		President:        c.President,
		PresidentID:      c.PresidentID,
		VicePresident:    c.VicePresident,
		VicePresidentID:  c.VicePresidentID,
		FacultyAdvisor:   c.FacultyAdvisor,
		FacultyAdvisorID: c.FacultyAdvisorID,
		PhoneNo:          c.PhoneNo,
		MemberCount:      c.MemberCount,
		Points:           c.Points,
		Tags:             c.Tags,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func (r *ClubRepository) daoToDomain(c dao.Club) domain.Club {
	return domain.Club{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		President:        c.President,
		PresidentID:      c.PresidentID,
		VicePresident:    c.VicePresident,
		VicePresidentID:  c.VicePresidentID,
		FacultyAdvisor:   c.FacultyAdvisor,
		FacultyAdvisorID: c.FacultyAdvisorID,
		PhoneNo:          c.PhoneNo,
		MemberCount:      c.MemberCount,
		Points:           c.Points,
		Tags:             c.Tags,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func (r *ClubRepository) daosToDomain(clubs []dao.Club) []domain.Club {
	result := make([]domain.Club, len(clubs))
	for i, c := range clubs {
		result[i] = r.daoToDomain(c)
	}
	return result
}

func (r *ClubRepository) Create(ctx context.Context, club domain.Club) (domain.Club, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(club))
	if err != nil {
		return domain.Club{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ClubRepository) GetByID(ctx context.Context, id uint) (domain.Club, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Club{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ClubRepository) ListAll(ctx context.Context) ([]domain.Club, error) {
	clubs, err := r.dao.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAll -> %w", err)
	}

	return r.daosToDomain(clubs), nil
}

func (r *ClubRepository) Update(ctx context.Context, club domain.Club) (domain.Club, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(club))
	if err != nil {
		return domain.Club{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ClubRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ClubRepository) AddMember(ctx context.Context, clubID, userID uint) error {
	if err := r.dao.AddMember(ctx, clubID, userID); err != nil {
		return fmt.Errorf("r.dao.AddMember -> %w", err)
	}

	return nil
}

func (r *ClubRepository) RemoveMember(ctx context.Context, clubID, userID uint) error {
	if err := r.dao.RemoveMember(ctx, clubID, userID); err != nil {
		return fmt.Errorf("r.dao.RemoveMember -> %w", err)
	}

	return nil
}

func (r *ClubRepository) AddPoints(ctx context.Context, id uint, points int) error {
	if err := r.dao.AddPoints(ctx, id, points); err != nil {
		return fmt.Errorf("r.dao.AddPoints -> %w", err)
	}

	return nil
}

func (r *ClubRepository) TopByPoints(ctx context.Context, limit int) ([]domain.Club, error) {
	clubs, err := r.dao.TopByPoints(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.TopByPoints -> %w", err)
	}

	return r.daosToDomain(clubs), nil
}
