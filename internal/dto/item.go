package dto

import (
	"time"

	"github.com/campusportal/lostfound/internal/models"
)

// PlaceholderImageURL is shown for items without photos.
const PlaceholderImageURL = "https://placehold.co/600x400/eeeeee/cccccc?text=No+Image"

// MediaURL maps a stored file path to its public URL.
func MediaURL(path string) string {
	return "/media/" + path
}

// ItemCardDTO is the listing-card view of an item.
type ItemCardDTO struct {
	ID         uint64
	ItemType   models.ItemType
	Title      string
	Location   string
	ReportedAt time.Time
	ImageURL   string
}

// ImageDTO is one photo on the detail page.
type ImageDTO struct {
	URL      string
	ThumbURL string
}

// CommentDTO is one comment on the detail page.
type CommentDTO struct {
	Author    string
	Body      string
	CreatedAt time.Time
}

// ItemDetailDTO is the full detail view of an item.
type ItemDetailDTO struct {
	ID          uint64
	ItemType    models.ItemType
	Title       string
	Description string
	Location    string
	Reporter    string
	ReportedAt  time.Time
	Images      []ImageDTO
	Comments    []CommentDTO
}

// ToItemCardDTO converts an Item to its listing card. The first image
// is the card thumbnail; its downscaled variant is preferred when one
// was generated.
func ToItemCardDTO(item models.Item) ItemCardDTO {
	card := ItemCardDTO{
		ID:         item.ID,
		ItemType:   item.ItemType,
		Title:      item.Title,
		Location:   item.Location,
		ReportedAt: item.ReportedAt,
		ImageURL:   PlaceholderImageURL,
	}
	if len(item.Images) > 0 {
		first := item.Images[0]
		if first.ThumbPath != "" {
			card.ImageURL = MediaURL(first.ThumbPath)
		} else {
			card.ImageURL = MediaURL(first.Path)
		}
	}
	return card
}

// ToItemCardDTOs converts a slice of items to listing cards.
func ToItemCardDTOs(items []models.Item) []ItemCardDTO {
	cards := make([]ItemCardDTO, len(items))
	for i, item := range items {
		cards[i] = ToItemCardDTO(item)
	}
	return cards
}

// ToItemDetailDTO converts an Item with preloaded relations to the
// detail view.
func ToItemDetailDTO(item models.Item) ItemDetailDTO {
	detail := ItemDetailDTO{
		ID:          item.ID,
		ItemType:    item.ItemType,
		Title:       item.Title,
		Description: item.Description,
		Location:    item.Location,
		Reporter:    item.Reporter.Username,
		ReportedAt:  item.ReportedAt,
	}

	for _, img := range item.Images {
		d := ImageDTO{URL: MediaURL(img.Path), ThumbURL: MediaURL(img.Path)}
		if img.ThumbPath != "" {
			d.ThumbURL = MediaURL(img.ThumbPath)
		}
		detail.Images = append(detail.Images, d)
	}

	for _, comment := range item.Comments {
		detail.Comments = append(detail.Comments, CommentDTO{
			Author:    comment.Author.Username,
			Body:      comment.Body,
			CreatedAt: comment.CreatedAt,
		})
	}

	return detail
}
