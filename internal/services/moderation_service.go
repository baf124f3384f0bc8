package services

import (
	"fmt"

	"github.com/campusportal/lostfound/internal/constants"
	"github.com/campusportal/lostfound/internal/models"
	"github.com/campusportal/lostfound/internal/repository"
)

// ModerationService is the approval gate. Only staff handlers reach it.
type ModerationService struct {
	itemRepo repository.ItemRepository
}

// NewModerationService creates a new ModerationService.
func NewModerationService(itemRepo repository.ItemRepository) *ModerationService {
	return &ModerationService{itemRepo: itemRepo}
}

// QueueInput represents the staff queue filters. Approved and Type are
// tri-state: nil means no restriction.
type QueueInput struct {
	Approved *bool
	Type     string
	Query    string
	Page     int
}

// Queue returns one page of items for the moderation list, any
// approval state, newest first.
func (s *ModerationService) Queue(input QueueInput) ([]models.Item, int64, error) {
	filter := repository.ModerationFilter{
		Approved: input.Approved,
		Query:    input.Query,
		Page:     input.Page,
		PageSize: constants.AdminPageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if models.ValidItemType(input.Type) {
		t := models.ItemType(input.Type)
		filter.Type = &t
	}

	return s.itemRepo.ListForModeration(filter)
}

// Approve sets the approval flag on the given items. Re-approving an
// already-approved item is a no-op; there is no un-approve operation.
// Returns how many rows actually changed.
func (s *ModerationService) Approve(ids []uint64) (int64, error) {
	n, err := s.itemRepo.Approve(ids)
	if err != nil {
		return 0, fmt.Errorf("failed to approve items: %w", err)
	}
	return n, nil
}
