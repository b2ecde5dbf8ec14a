package entities

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;size:255" json:"email"`
	Name         string `gorm:"size:256" json:"name,omitempty"`
	Phone        string `gorm:"size:32" json:"phone,omitempty"`
	City         string `gorm:"size:100" json:"city,omitempty"`
	Country      string `gorm:"size:100" json:"country,omitempty"`
	Bio          string `gorm:"type:text" json:"bio,omitempty"`
	PasswordHash string `gorm:"size:100" json:"-"`
	IsBanned     bool   `gorm:"default:false" json:"is_banned"`

	LastSignInAt     *time.Time `json:"last_sign_in_at,omitempty"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// Admin marks a user as an administrator. Admin sessions are any
// authenticated identity with a row in this table; there is no role
// column on the user itself.
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (Admin) TableName() string {
	return "admins"
}
