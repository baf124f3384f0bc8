package repository

import (
	"github.com/campusportal/lostfound/internal/models"
)

// ItemRepository defines the interface for item data access
type ItemRepository interface {
	// CreateWithImages persists an item and its image rows in one transaction.
	// Image rows are inserted in slice order.
	CreateWithImages(item *models.Item, images []models.ItemImage) error

	// FindByID finds an item by ID with optional preloading, regardless
	// of approval state.
	FindByID(id uint64, preload ...string) (*models.Item, error)

	// FindApprovedByID finds an approved item by ID with its images,
	// comments (ascending creation time) and reporter preloaded.
	// Unapproved items are indistinguishable from missing ones.
	FindApprovedByID(id uint64) (*models.Item, error)

	// List retrieves approved items with filtering and pagination,
	// newest first.
	List(filter ItemFilter) ([]models.Item, int64, error)

	// ListRecentByType returns the newest approved items of one type.
	ListRecentByType(itemType models.ItemType, limit int) ([]models.Item, error)

	// ListForModeration retrieves items for the staff queue, any
	// approval state, newest first.
	ListForModeration(filter ModerationFilter) ([]models.Item, int64, error)

	// Approve sets the approval flag on the given items. Approving an
	// already-approved item is a no-op. Returns the number of rows
	// actually flipped.
	Approve(ids []uint64) (int64, error)

	// Delete removes an item together with its images and comments.
	Delete(id uint64) error
}

// ItemFilter holds filtering options for the public item list.
// Approval is not an option: the list only ever contains approved items.
type ItemFilter struct {
	Type     *models.ItemType
	Query    string
	Page     int
	PageSize int
}

// ModerationFilter holds filtering options for the staff queue.
type ModerationFilter struct {
	Approved *bool
	Type     *models.ItemType
	Query    string
	Page     int
	PageSize int
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create persists a comment.
	Create(comment *models.Comment) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username (roll number)
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Delete removes a user and everything they own: their comments,
	// their items, and transitively those items' images and comments.
	Delete(id uint64) error
}
