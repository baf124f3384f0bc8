package repository

import (
	"strings"

	"github.com/campusportal/lostfound/internal/models"
	"gorm.io/gorm"
)

// GormItemRepository is a GORM implementation of ItemRepository
type GormItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &GormItemRepository{db: db}
}

// CreateWithImages persists the item and its image rows atomically.
// Images are inserted one by one so their row order matches submission
// order. Files on disk are written by the caller beforehand and are
// not rolled back if the transaction fails.
func (r *GormItemRepository) CreateWithImages(item *models.Item, images []models.ItemImage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}

		for i := range images {
			images[i].ItemID = item.ID
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByID finds an item by ID with optional preloading
func (r *GormItemRepository) FindByID(id uint64, preload ...string) (*models.Item, error) {
	var item models.Item
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&item, id).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

// FindApprovedByID finds an approved item with its relations loaded.
// An unapproved item yields gorm.ErrRecordNotFound, same as a missing
// one, so unapproved reports never leak their existence.
func (r *GormItemRepository) FindApprovedByID(id uint64) (*models.Item, error) {
	var item models.Item
	err := r.db.
		Preload("Reporter").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("item_images.id ASC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Preload("Comments.Author").
		Where("is_approved = ?", true).
		First(&item, id).Error
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// List retrieves approved items, newest first. The type filter is only
// applied when set; the query filter matches a case-insensitive
// substring of title, description or location.
func (r *GormItemRepository) List(filter ItemFilter) ([]models.Item, int64, error) {
	var items []models.Item

	query := r.db.Model(&models.Item{}).Where("is_approved = ?", true)

	if filter.Type != nil {
		query = query.Where("item_type = ?", *filter.Type)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("reported_at DESC, id DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	err := listQuery.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("item_images.id ASC")
		}).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// ListRecentByType returns the newest approved items of a single type.
func (r *GormItemRepository) ListRecentByType(itemType models.ItemType, limit int) ([]models.Item, error) {
	var items []models.Item
	err := r.db.
		Where("is_approved = ? AND item_type = ?", true, itemType).
		Order("reported_at DESC, id DESC").
		Limit(limit).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("item_images.id ASC")
		}).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

// ListForModeration retrieves items for the staff queue regardless of
// approval state. The search also covers the reporter's username.
func (r *GormItemRepository) ListForModeration(filter ModerationFilter) ([]models.Item, int64, error) {
	var items []models.Item

	query := r.db.Model(&models.Item{}).
		Joins("JOIN users ON users.id = items.reporter_id")

	if filter.Approved != nil {
		query = query.Where("items.is_approved = ?", *filter.Approved)
	}
	if filter.Type != nil {
		query = query.Where("items.item_type = ?", *filter.Type)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(items.title) LIKE ? OR LOWER(items.description) LIKE ? OR LOWER(items.location) LIKE ? OR LOWER(users.username) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("items.reported_at DESC, items.id DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("Reporter").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Approve flips the approval flag on the given items. Already-approved
// rows are untouched, which keeps the operation idempotent.
func (r *GormItemRepository) Approve(ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.db.Model(&models.Item{}).
		Where("id IN ? AND is_approved = ?", ids, false).
		Update("is_approved", true)
	return result.RowsAffected, result.Error
}

// Delete removes an item together with its images and comments in one
// transaction. The deletion order is images, comments, then the item.
func (r *GormItemRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&models.ItemImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Item{}, id).Error
	})
}
