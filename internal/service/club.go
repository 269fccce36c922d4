package service

import (
	"context"
	"fmt"

	"github.com/eventsync/eventsync-api/internal/domain"
	"github.com/eventsync/eventsync-api/internal/repository"
)

var (
	ErrClubNotFound = repository.ErrClubNotFound
)

type ClubRepository interface {
	Create(ctx context.Context, club domain.Club) (domain.Club, error)
	GetByID(ctx context.Context, id uint) (domain.Club, error)
	ListAll(ctx context.Context) ([]domain.Club, error)
	Update(ctx context.Context, club domain.Club) (domain.Club, error)
	Delete(ctx context.Context, id uint) error
	AddMember(ctx context.Context, clubID, userID uint) error
	RemoveMember(ctx context.Context, clubID, userID uint) error
	AddPoints(ctx context.Context, id uint, points int) error
	TopByPoints(ctx context.Context, limit int) ([]domain.Club, error)
}

type ClubService struct {
	repo     ClubRepository
	userRepo UserRepository
}

func NewClubService(repo ClubRepository, userRepo UserRepository) *ClubService {
	return &ClubService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// Create stores a new club profile. The creator becomes the president and
// the first counted member.
func (s *ClubService) Create(ctx context.Context, club domain.Club, creator domain.User) (domain.Club, error) {
	club.President = creator.Name
	club.PresidentID = creator.ID
	club.MemberCount = 1

	created, err := s.repo.Create(ctx, club)
	if err != nil {
		return domain.Club{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if err = s.userRepo.UpdateClubID(ctx, creator.ID, &created.ID); err != nil {
		return domain.Club{}, fmt.Errorf("s.userRepo.UpdateClubID -> %w", err)
	}

	return created, nil
}

func (s *ClubService) GetByID(ctx context.Context, id uint) (domain.Club, error) {
	club, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Club{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return club, nil
}

func (s *ClubService) ListAll(ctx context.Context) ([]domain.Club, error) {
	clubs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAll -> %w", err)
	}

	return clubs, nil
}

func (s *ClubService) Update(ctx context.Context, club domain.Club) (domain.Club, error) {
	updated, err := s.repo.Update(ctx, club)
	if err != nil {
		return domain.Club{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ClubService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *ClubService) Join(ctx context.Context, clubID, userID uint) error {
	if err := s.repo.AddMember(ctx, clubID, userID); err != nil {
		return fmt.Errorf("s.repo.AddMember -> %w", err)
	}

	return nil
}

func (s *ClubService) Leave(ctx context.Context, clubID, userID uint) error {
	if err := s.repo.RemoveMember(ctx, clubID, userID); err != nil {
		return fmt.Errorf("s.repo.RemoveMember -> %w", err)
	}

	return nil
}
