package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/campusportal/lostfound/internal/models"
	"github.com/campusportal/lostfound/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEmptyComment = errors.New("comment body cannot be empty")
)

// CommentService handles the comment workflow.
type CommentService struct {
	commentRepo repository.CommentRepository
	itemRepo    repository.ItemRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, itemRepo repository.ItemRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		itemRepo:    itemRepo,
	}
}

// AddCommentInput represents a new comment submission.
type AddCommentInput struct {
	ItemID   uint64
	AuthorID uint64
	Body     string
}

// AddComment persists a comment on an item. The item must exist, but
// its approval flag is deliberately not re-checked here: the detail
// page that would display the comment is gated instead. See DESIGN.md.
func (s *CommentService) AddComment(input AddCommentInput) (*models.Comment, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, ErrEmptyComment
	}

	if _, err := s.itemRepo.FindByID(input.ItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to load item: %w", err)
	}

	comment := &models.Comment{
		ItemID:   input.ItemID,
		AuthorID: input.AuthorID,
		Body:     body,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}
