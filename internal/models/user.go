package models

import (
	"time"
)

// User is a portal account. Username is the campus roll number and is
// the unique login identifier as well as the display name.
type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	IsStaff      bool      `gorm:"not null;default:false" json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Items    []Item    `gorm:"foreignKey:ReporterID" json:"-"`
	Comments []Comment `gorm:"foreignKey:AuthorID" json:"-"`
}
