package models

import (
	"time"
)

type ItemType string

const (
	ItemTypeLost  ItemType = "lost"
	ItemTypeFound ItemType = "found"
)

// ValidItemType reports whether s is exactly "lost" or "found".
func ValidItemType(s string) bool {
	return s == string(ItemTypeLost) || s == string(ItemTypeFound)
}

// Item is a single lost or found report. Items are created unapproved
// and become publicly visible only after a staff member approves them.
type Item struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	ItemType    ItemType  `gorm:"type:varchar(5);not null;index" json:"item_type"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Location    string    `gorm:"type:varchar(200);not null" json:"location"`
	ReportedAt  time.Time `gorm:"autoCreateTime;index" json:"reported_at"`
	ReporterID  uint64    `gorm:"not null;index" json:"reporter_id"`
	IsApproved  bool      `gorm:"not null;default:false;index" json:"is_approved"`

	// Relations
	Reporter User        `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Images   []ItemImage `gorm:"foreignKey:ItemID" json:"images,omitempty"`
	Comments []Comment   `gorm:"foreignKey:ItemID" json:"comments,omitempty"`
}
