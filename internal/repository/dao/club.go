package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrClubNotFound = errors.New("club not found")
)

type Club struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"unique;not null"`
	Description string

	President        string `gorm:"not null"`
	PresidentID      uint   `gorm:"not null"`
	VicePresident    string
	VicePresidentID  *uint
	FacultyAdvisor   string
	FacultyAdvisorID *uint
	PhoneNo          string

	MemberCount int `gorm:"not null;default:1"`
	Points      int `gorm:"not null;default:0"`

	Tags []string `gorm:"serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ClubDAO struct {
	db *gorm.DB
}

func NewClubDAO(db *gorm.DB) *ClubDAO {
	return &ClubDAO{
		db: db,
	}
}

func (d *ClubDAO) Insert(ctx context.Context, club Club) (Club, error) {
	result := d.db.WithContext(ctx).Create(&club)
	if result.Error != nil {
		return Club{}, result.Error
	}

	return club, nil
}

func (d *ClubDAO) FindByID(ctx context.Context, id uint) (Club, error) {
	var club Club

	result := d.db.WithContext(ctx).First(&club, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Club{}, ErrClubNotFound
		}

		return Club{}, result.Error
	}

	return club, nil
}

func (d *ClubDAO) ListAll(ctx context.Context) ([]Club, error) {
	var clubs []Club

	result := d.db.WithContext(ctx).Order("name ASC").Find(&clubs)
	if result.Error != nil {
		return nil, result.Error
	}

	return clubs, nil
}

func (d *ClubDAO) Update(ctx context.Context, club Club) (Club, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Club
		if err := tx.First(&existing, club.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClubNotFound
			}
			return err
		}

		updates := map[string]interface{}{
			"name":            club.Name,
			"description":     club.Description,
			"vice_president":  club.VicePresident,
			"faculty_advisor": club.FacultyAdvisor,
			"phone_no":        club.PhoneNo,
			"tags":            club.Tags,
		}

		return tx.Model(&existing).Updates(updates).Error
	})
	if err != nil {
		return Club{}, err
	}

	return d.FindByID(ctx, club.ID)
}

func (d *ClubDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Club{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClubNotFound
	}

	return nil
}

// AddMember attaches the user and bumps the member counter in one
// transaction, re-reading the club under a row lock.
func (d *ClubDAO) AddMember(ctx context.Context, clubID, userID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var club Club
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&club, clubID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClubNotFound
			}
			return err
		}

		if err := tx.Model(&User{}).
			Where("id = ?", userID).
			Update("club_id", clubID).Error; err != nil {
			return err
		}

		return tx.Model(&club).
			Update("member_count", gorm.Expr("member_count + 1")).Error
	})
}

// RemoveMember detaches the user and decrements the counter, never going
// below one; the president is always counted.
func (d *ClubDAO) RemoveMember(ctx context.Context, clubID, userID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var club Club
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&club, clubID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClubNotFound
			}
			return err
		}

		if err := tx.Model(&User{}).
			Where("id = ? AND club_id = ?", userID, clubID).
			Update("club_id", nil).Error; err != nil {
			return err
		}

		if club.MemberCount <= 1 {
			return nil
		}

		return tx.Model(&club).
			Update("member_count", gorm.Expr("member_count - 1")).Error
	})
}

// AddPoints atomically bumps a club's leaderboard points.
func (d *ClubDAO) AddPoints(ctx context.Context, id uint, points int) error {
	result := d.db.WithContext(ctx).Model(&Club{}).
		Where("id = ?", id).
		Update("points", gorm.Expr("points + ?", points))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClubNotFound
	}

	return nil
}

func (d *ClubDAO) TopByPoints(ctx context.Context, limit int) ([]Club, error) {
	var clubs []Club

	result := d.db.WithContext(ctx).
		Order("points DESC").
		Limit(limit).
		Find(&clubs)
	if result.Error != nil {
		return nil, result.Error
	}

	return clubs, nil
}
