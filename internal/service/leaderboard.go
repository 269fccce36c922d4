package service

import (
	"context"
	"fmt"

	"github.com/eventsync/eventsync-api/internal/domain"
)

const leaderboardLimit = 10

type LeaderboardService struct {
	userRepo UserRepository
	clubRepo ClubRepository
}

func NewLeaderboardService(userRepo UserRepository, clubRepo ClubRepository) *LeaderboardService {
	return &LeaderboardService{
		userRepo: userRepo,
		clubRepo: clubRepo,
	}
}

func (s *LeaderboardService) Leaderboard(ctx context.Context) (domain.Leaderboard, error) {
	students, err := s.userRepo.TopStudentsByPoints(ctx, leaderboardLimit)
	if err != nil {
		return domain.Leaderboard{}, fmt.Errorf("s.userRepo.TopStudentsByPoints -> %w", err)
	}

	clubs, err := s.clubRepo.TopByPoints(ctx, leaderboardLimit)
	if err != nil {
		return domain.Leaderboard{}, fmt.Errorf("s.clubRepo.TopByPoints -> %w", err)
	}

	board := domain.Leaderboard{
		Students: make([]domain.StudentRank, len(students)),
		Clubs:    make([]domain.ClubRank, len(clubs)),
	}
	for i, u := range students {
		board.Students[i] = domain.StudentRank{
			UserID:     u.ID,
			Name:       u.Name,
			Department: u.Department,
			Points:     u.Points,
		}
	}
	for i, c := range clubs {
		board.Clubs[i] = domain.ClubRank{
			ClubID: c.ID,
			Name:   c.Name,
			Points: c.Points,
		}
	}

	return board, nil
}
