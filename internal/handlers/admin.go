package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusportal/lostfound/internal/admin"
	"github.com/campusportal/lostfound/internal/constants"
	apierrors "github.com/campusportal/lostfound/internal/errors"
	"github.com/campusportal/lostfound/internal/middleware"
	"github.com/campusportal/lostfound/internal/services"
	"github.com/campusportal/lostfound/internal/utils"
)

// AdminHandler serves the staff moderation queue. Routes using it sit
// behind the RequireStaff middleware.
type AdminHandler struct {
	moderationService *services.ModerationService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(moderationService *services.ModerationService) *AdminHandler {
	return &AdminHandler{
		moderationService: moderationService,
	}
}

// Queue renders the moderation list. Columns, filters and bulk actions
// come from the declarative admin.ItemModeration config.
func (h *AdminHandler) Queue(c *gin.Context) {
	page := utils.PageParam(c)

	input := services.QueueInput{
		Type:  c.Query("type"),
		Query: c.Query("q"),
		Page:  page,
	}
	switch c.Query("approved") {
	case "pending":
		pending := false
		input.Approved = &pending
	case "approved":
		approved := true
		input.Approved = &approved
	}

	items, total, err := h.moderationService.Queue(input)
	if err != nil {
		apierrors.Internal(c)
		return
	}

	c.HTML(http.StatusOK, "admin_items.html", middleware.PageData(c, "Item Moderation", gin.H{
		"Config": admin.ItemModeration,
		"Items":  items,
		"Query":  input.Query,
		"Selected": map[string]string{
			"approved": c.Query("approved"),
			"type":     c.Query("type"),
		},
		"Pagination": utils.NewPagination(page, constants.AdminPageSize, total),
	}))
}

// Approve bulk-approves the selected items and returns to the queue.
// Re-approving already-approved items is a no-op.
func (h *AdminHandler) Approve(c *gin.Context) {
	ids := make([]uint64, 0, len(c.PostFormArray("ids")))
	for _, raw := range c.PostFormArray("ids") {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	if _, err := h.moderationService.Approve(ids); err != nil {
		apierrors.Internal(c)
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/items")
}
