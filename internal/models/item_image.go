package models

import "time"

// ItemImage is one uploaded photo attached to an Item. Path is the
// storage reference under the media root, of the form
// item_images/{username}_{YYYYMMDD_HHMMSS}{ext}, recorded verbatim.
// Images are ordered by insertion; the first one is the thumbnail.
type ItemImage struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ItemID    uint64    `gorm:"not null;index" json:"item_id"`
	Path      string    `gorm:"type:varchar(255);not null" json:"path"`
	ThumbPath string    `gorm:"type:varchar(255)" json:"thumb_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Item Item `gorm:"foreignKey:ItemID" json:"-"`
}
