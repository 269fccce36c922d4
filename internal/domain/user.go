package domain

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleStudent UserRole = "student"
	RoleClub    UserRole = "club"
)

type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusRejected UserStatus = "rejected"
)

type User struct {
	ID         uint       `json:"id"`
	Email      string     `json:"email"`
	Password   string     `json:"-"`
	Name       string     `json:"name"`
	Role       UserRole   `json:"role"`
	Status     UserStatus `json:"status"`
	Department string     `json:"department,omitempty"`
	Year       int        `json:"year,omitempty"`
	ClubID     *uint      `json:"club_id,omitempty"`
	Points     int        `json:"points"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CanLogin reports whether the account has passed admin review.
// Admin accounts are never gated on approval.
func (u *User) CanLogin() bool {
	return u.Role == RoleAdmin || u.Status == UserStatusApproved
}
