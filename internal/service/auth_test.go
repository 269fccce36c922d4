package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventsync/eventsync-api/internal/domain"
)

func TestSignup(t *testing.T) {
	t.Run("students are approved immediately", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewAuthService(repo)

		repo.On("Create", mock.Anything, mock.Anything).
			Return(domain.User{ID: 1, Role: domain.RoleStudent, Status: domain.UserStatusApproved}, nil).
			Run(func(args mock.Arguments) {
				user := args.Get(1).(domain.User)
				assert.Equal(t, domain.UserStatusApproved, user.Status)
				assert.NotEqual(t, "secret123", user.Password) // hashed
			})

		created, err := svc.Signup(context.Background(), domain.User{
			Email:    "a@campus.edu",
			Password: "secret123",
			Role:     domain.RoleStudent,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.UserStatusApproved, created.Status)
	})

	t.Run("club accounts start pending", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewAuthService(repo)

		repo.On("Create", mock.Anything, mock.Anything).
			Return(domain.User{ID: 2, Role: domain.RoleClub, Status: domain.UserStatusPending}, nil).
			Run(func(args mock.Arguments) {
				user := args.Get(1).(domain.User)
				assert.Equal(t, domain.UserStatusPending, user.Status)
			})

		_, err := svc.Signup(context.Background(), domain.User{
			Email:    "club@campus.edu",
			Password: "secret123",
			Role:     domain.RoleClub,
		})
		require.NoError(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewAuthService(repo)

		repo.On("Create", mock.Anything, mock.Anything).
			Return(domain.User{}, ErrUserEmailExists)

		_, err := svc.Signup(context.Background(), domain.User{
			Email:    "a@campus.edu",
			Password: "secret123",
			Role:     domain.RoleStudent,
		})
		assert.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	t.Run("happy path", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewAuthService(repo)

		repo.On("FindByEmail", mock.Anything, "a@campus.edu").
			Return(domain.User{ID: 1, Email: "a@campus.edu", Password: string(hash), Role: domain.RoleStudent, Status: domain.UserStatusApproved}, nil)

		user, err := svc.Login(context.Background(), "a@campus.edu", "secret123")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewAuthService(repo)

		repo.On("FindByEmail", mock.Anything, "a@campus.edu").
			Return(domain.User{ID: 1, Password: string(hash)}, nil)

		_, err := svc.Login(context.Background(), "a@campus.edu", "nope")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewAuthService(repo)

		repo.On("FindByEmail", mock.Anything, "ghost@campus.edu").
			Return(domain.User{}, ErrUserNotFound)

		_, err := svc.Login(context.Background(), "ghost@campus.edu", "secret123")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("pending club account cannot login", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewAuthService(repo)

		repo.On("FindByEmail", mock.Anything, "club@campus.edu").
			Return(domain.User{ID: 2, Password: string(hash), Role: domain.RoleClub, Status: domain.UserStatusPending}, nil)

		_, err := svc.Login(context.Background(), "club@campus.edu", "secret123")
		assert.ErrorIs(t, err, ErrAccountNotApproved)
	})
}
