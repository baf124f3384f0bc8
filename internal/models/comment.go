package models

import "time"

// Comment is a remark on an Item. Comments are listed in ascending
// creation order on the detail page.
type Comment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ItemID    uint64    `gorm:"not null;index" json:"item_id"`
	AuthorID  uint64    `gorm:"not null;index" json:"author_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Relations
	Item   Item `gorm:"foreignKey:ItemID" json:"-"`
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
