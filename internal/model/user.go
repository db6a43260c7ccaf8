package model

import "time"

// User identity is keyed by email; there is no separate username.
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"size:254;not null;uniqueIndex:uk_users_email"`
	PasswordHash string    `gorm:"column:password_hash;size:128;not null"`
	IsStaff      bool      `gorm:"column:is_staff;not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// UserProfile holds shipping/contact defaults, one per user. It is created
// together with the user account.
type UserProfile struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_profiles_user"`
	IsConfirmed bool      `gorm:"column:is_confirmed;not null;default:false"`
	FirstName   string    `gorm:"size:24"`
	SecondName  string    `gorm:"size:24"`
	Country     string    `gorm:"size:64"`
	City        string    `gorm:"size:24"`
	Street      string    `gorm:"size:128"`
	Phone       string    `gorm:"size:32"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
