// Package users provides database operations for end-user accounts and
// admin membership.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByEmail(email)
package users

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

var ErrUserExists = errors.New("user already exists")

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a new user. The caller hashes the password.
func (r *Repository) CreateUser(user *entities.User) error {
	var existing entities.User
	err := r.db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *Repository) GetUserByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAllUsers retrieves all users, newest first.
func (r *Repository) GetAllUsers() ([]entities.User, error) {
	var users []entities.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// SearchUsers searches users by email or name (case-insensitive partial
// match).
func (r *Repository) SearchUsers(query string) ([]entities.User, error) {
	var users []entities.User
	searchPattern := "%" + query + "%"
	err := r.db.
		Where("LOWER(email) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?)", searchPattern, searchPattern).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

// UpdateUser applies exactly the provided profile fields and returns the
// updated row.
func (r *Repository) UpdateUser(id uint, fields map[string]any) (*entities.User, error) {
	if err := r.db.Model(&entities.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.GetUserByID(id)
}

// SetBanned flips the ban flag for a user.
func (r *Repository) SetBanned(id uint, banned bool) error {
	return r.db.Model(&entities.User{}).Where("id = ?", id).Update("is_banned", banned).Error
}

// TouchLastSignIn records a successful sign-in.
func (r *Repository) TouchLastSignIn(id uint, at time.Time) error {
	return r.db.Model(&entities.User{}).Where("id = ?", id).Update("last_sign_in_at", at).Error
}

// DeleteUser removes a user together with their favorites, progress,
// settings and admin membership.
func (r *Repository) DeleteUser(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&entities.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&entities.ListeningProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&entities.Setting{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&entities.Admin{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.User{}, id).Error
	})
}

// CountUsers returns the total number of users.
func (r *Repository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Count(&count).Error
	return count, err
}

// CountUsersSince counts users created at or after the given time.
func (r *Repository) CountUsersSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// IsAdmin reports whether the user has a row in the admins table.
func (r *Repository) IsAdmin(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Admin{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

// GrantAdmin adds the user to the admins table. Granting twice is a no-op.
func (r *Repository) GrantAdmin(userID uint) error {
	isAdmin, err := r.IsAdmin(userID)
	if err != nil {
		return err
	}
	if isAdmin {
		return nil
	}
	return r.db.Create(&entities.Admin{UserID: userID}).Error
}

// RevokeAdmin removes the user from the admins table.
func (r *Repository) RevokeAdmin(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&entities.Admin{}).Error
}
