package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/campusportal/lostfound/internal/constants"
	"github.com/campusportal/lostfound/internal/imaging"
	"github.com/campusportal/lostfound/internal/models"
	"github.com/campusportal/lostfound/internal/repository"
	"github.com/campusportal/lostfound/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound = errors.New("item not found")
)

// ItemService handles reporting, listing and detail retrieval.
type ItemService struct {
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
	media    *storage.MediaStore
}

// NewItemService creates a new ItemService.
func NewItemService(itemRepo repository.ItemRepository, userRepo repository.UserRepository, media *storage.MediaStore) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		userRepo: userRepo,
		media:    media,
	}
}

// UploadedFile is one file from the multipart submission, already read
// into memory by the handler.
type UploadedFile struct {
	Name string
	Data []byte
}

// ReportInput represents a new item submission.
type ReportInput struct {
	Type        string
	Title       string
	Description string
	Location    string
	ReporterID  uint64
	Files       []UploadedFile
}

// Report validates and persists a new item plus its attachments. The
// item is created unapproved. Each file is written to the media store
// under item_images/{username}_{timestamp}{ext}, the timestamp taken
// per file at record creation. The item row and its N image rows
// commit in one transaction; files already on disk are not removed if
// that transaction fails.
func (s *ItemService) Report(input ReportInput) (*models.Item, error) {
	fields := FieldErrors{}

	if !models.ValidItemType(input.Type) {
		fields["item_type"] = "Select whether the item was lost or found."
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		fields["title"] = "Title is required."
	} else if utf8.RuneCountInString(title) > constants.MaxTitleLength {
		fields["title"] = fmt.Sprintf("Title must be %d characters or fewer.", constants.MaxTitleLength)
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		fields["description"] = "Description is required."
	}

	location := strings.TrimSpace(input.Location)
	if location == "" {
		fields["location"] = "Location is required."
	} else if utf8.RuneCountInString(location) > constants.MaxLocationLength {
		fields["location"] = fmt.Sprintf("Location must be %d characters or fewer.", constants.MaxLocationLength)
	}

	for _, f := range input.Files {
		if _, err := imaging.Validate(f.Data); err != nil {
			fields["images"] = fmt.Sprintf("%s: only JPEG, PNG, GIF and WebP images are accepted.", f.Name)
			break
		}
	}

	if len(fields) > 0 {
		return nil, fields
	}

	reporter, err := s.userRepo.FindByID(input.ReporterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reporter: %w", err)
	}

	images := make([]models.ItemImage, 0, len(input.Files))
	for _, f := range input.Files {
		rel := storage.ImagePath(reporter.Username, time.Now(), f.Name)
		saved, err := s.media.Save(rel, f.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}

		img := models.ItemImage{Path: saved}

		// Thumbnails are best effort; the original upload is what counts.
		if thumb, err := imaging.Thumbnail(f.Data); err == nil {
			thumbRel := thumbPath(saved)
			if savedThumb, err := s.media.Save(thumbRel, thumb); err == nil {
				img.ThumbPath = savedThumb
			} else {
				log.Printf("failed to store thumbnail for %s: %v", saved, err)
			}
		} else {
			log.Printf("failed to generate thumbnail for %s: %v", saved, err)
		}

		images = append(images, img)
	}

	item := &models.Item{
		ItemType:    models.ItemType(input.Type),
		Title:       title,
		Description: description,
		Location:    location,
		ReporterID:  input.ReporterID,
	}

	if err := s.itemRepo.CreateWithImages(item, images); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}

// thumbPath derives the thumbnail path from a stored image path:
// item_images/foo.jpg -> item_images/thumbs/foo.jpg.
func thumbPath(imagePath string) string {
	slash := strings.LastIndex(imagePath, "/")
	dir, name := "", imagePath
	if slash >= 0 {
		dir, name = imagePath[:slash], imagePath[slash+1:]
	}
	ext := name
	if dot := strings.LastIndex(name, "."); dot >= 0 {
		ext = name[dot:]
		name = name[:dot]
	} else {
		ext = ""
	}
	if dir != "" {
		return dir + "/thumbs/" + name + ext
	}
	return "thumbs/" + name + ext
}

// ListInput represents the public listing parameters.
type ListInput struct {
	Type  string
	Query string
	Page  int
}

// List returns one page of approved items, newest first. A type value
// other than "lost"/"found" is ignored; an empty query matches
// everything; a page past the end yields an empty page.
func (s *ItemService) List(input ListInput) ([]models.Item, int64, error) {
	filter := repository.ItemFilter{
		Query:    input.Query,
		Page:     input.Page,
		PageSize: constants.ItemPageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if models.ValidItemType(input.Type) {
		t := models.ItemType(input.Type)
		filter.Type = &t
	}

	return s.itemRepo.List(filter)
}

// HomeData carries the two recent-item strips shown on the home page.
type HomeData struct {
	RecentLost  []models.Item
	RecentFound []models.Item
}

// Home returns the newest approved items, five per type.
func (s *ItemService) Home() (*HomeData, error) {
	lost, err := s.itemRepo.ListRecentByType(models.ItemTypeLost, constants.HomeRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent lost items: %w", err)
	}

	found, err := s.itemRepo.ListRecentByType(models.ItemTypeFound, constants.HomeRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent found items: %w", err)
	}

	return &HomeData{RecentLost: lost, RecentFound: found}, nil
}

// GetDetail returns an approved item with its images, comments and
// reporter. Unapproved items are reported as not found, even to their
// owner, so pending reports never leak.
func (s *ItemService) GetDetail(id uint64) (*models.Item, error) {
	item, err := s.itemRepo.FindApprovedByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to load item: %w", err)
	}

	return item, nil
}
