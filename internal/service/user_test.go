package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eventsync/eventsync-api/internal/domain"
)

func TestSetAccountStatus(t *testing.T) {
	t.Run("approval emails the account owner", func(t *testing.T) {
		repo := &mockUserRepo{}
		notifier := &mockNotifier{}
		svc := NewUserService(repo, notifier)

		repo.On("UpdateStatus", mock.Anything, uint(2), domain.UserStatusApproved).
			Return(domain.User{ID: 2, Email: "club@campus.edu", Name: "Robotics Club", Status: domain.UserStatusApproved}, nil)
		notifier.On("AccountStatus", mock.Anything, "club@campus.edu", "Robotics Club", true).Return(nil)

		user, err := svc.SetAccountStatus(context.Background(), 2, true)
		require.NoError(t, err)
		assert.Equal(t, domain.UserStatusApproved, user.Status)
		notifier.AssertExpectations(t)
	})

	t.Run("rejection still succeeds when the email fails", func(t *testing.T) {
		repo := &mockUserRepo{}
		notifier := &mockNotifier{}
		svc := NewUserService(repo, notifier)

		repo.On("UpdateStatus", mock.Anything, uint(2), domain.UserStatusRejected).
			Return(domain.User{ID: 2, Status: domain.UserStatusRejected}, nil)
		notifier.On("AccountStatus", mock.Anything, mock.Anything, mock.Anything, false).
			Return(assert.AnError)

		user, err := svc.SetAccountStatus(context.Background(), 2, false)
		require.NoError(t, err)
		assert.Equal(t, domain.UserStatusRejected, user.Status)
	})
}

func TestLeaderboard(t *testing.T) {
	userRepo := &mockUserRepo{}
	clubRepo := &mockClubRepo{}
	svc := NewLeaderboardService(userRepo, clubRepo)

	userRepo.On("TopStudentsByPoints", mock.Anything, leaderboardLimit).
		Return([]domain.User{
			{ID: 9, Name: "Aditi", Department: "CSE", Points: 12},
			{ID: 3, Name: "Rohan", Points: 9},
		}, nil)
	clubRepo.On("TopByPoints", mock.Anything, leaderboardLimit).
		Return([]domain.Club{{ID: 4, Name: "Robotics Club", Points: 25}}, nil)

	board, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, board.Students, 2)
	require.Len(t, board.Clubs, 1)
	assert.Equal(t, "Aditi", board.Students[0].Name)
	assert.Equal(t, 12, board.Students[0].Points)
	assert.Equal(t, "Robotics Club", board.Clubs[0].Name)
}

func TestClubCreate(t *testing.T) {
	clubRepo := &mockClubRepo{}
	userRepo := &mockUserRepo{}
	svc := NewClubService(clubRepo, userRepo)

	creator := domain.User{ID: 2, Name: "Priya"}

	clubRepo.On("Create", mock.Anything, mock.Anything).
		Return(domain.Club{ID: 4, Name: "Robotics Club", President: "Priya", PresidentID: 2, MemberCount: 1}, nil).
		Run(func(args mock.Arguments) {
			club := args.Get(1).(domain.Club)
			assert.Equal(t, "Priya", club.President)
			assert.Equal(t, uint(2), club.PresidentID)
			assert.Equal(t, 1, club.MemberCount)
		})
	userRepo.On("UpdateClubID", mock.Anything, uint(2), mock.Anything).Return(nil)

	created, err := svc.Create(context.Background(), domain.Club{Name: "Robotics Club"}, creator)
	require.NoError(t, err)
	assert.Equal(t, uint(4), created.ID)
	userRepo.AssertExpectations(t)
}
