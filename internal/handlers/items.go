package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusportal/lostfound/internal/constants"
	"github.com/campusportal/lostfound/internal/dto"
	apierrors "github.com/campusportal/lostfound/internal/errors"
	"github.com/campusportal/lostfound/internal/middleware"
	"github.com/campusportal/lostfound/internal/services"
	"github.com/campusportal/lostfound/internal/utils"
)

// ItemHandler serves the public item pages and the reporting workflow.
type ItemHandler struct {
	itemService    *services.ItemService
	commentService *services.CommentService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService *services.ItemService, commentService *services.CommentService) *ItemHandler {
	return &ItemHandler{
		itemService:    itemService,
		commentService: commentService,
	}
}

// Home shows the five most recent approved items of each type.
func (h *ItemHandler) Home(c *gin.Context) {
	data, err := h.itemService.Home()
	if err != nil {
		apierrors.Internal(c)
		return
	}

	c.HTML(http.StatusOK, "home.html", middleware.PageData(c, "Home", gin.H{
		"RecentLost":  dto.ToItemCardDTOs(data.RecentLost),
		"RecentFound": dto.ToItemCardDTOs(data.RecentFound),
	}))
}

// List shows the filtered, paginated approved-item list.
func (h *ItemHandler) List(c *gin.Context) {
	page := utils.PageParam(c)
	itemType := c.Query("type")
	query := c.Query("q")

	items, total, err := h.itemService.List(services.ListInput{
		Type:  itemType,
		Query: query,
		Page:  page,
	})
	if err != nil {
		apierrors.Internal(c)
		return
	}

	c.HTML(http.StatusOK, "item_list.html", middleware.PageData(c, "All Items", gin.H{
		"Items":      dto.ToItemCardDTOs(items),
		"ItemType":   itemType,
		"Query":      query,
		"Pagination": utils.NewPagination(page, constants.ItemPageSize, total),
	}))
}

// Detail shows one approved item with its photos and comments.
// Missing and unapproved items both produce a 404.
func (h *ItemHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c)
		return
	}

	item, err := h.itemService.GetDetail(id)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			apierrors.NotFound(c)
			return
		}
		apierrors.Internal(c)
		return
	}

	c.HTML(http.StatusOK, "item_detail.html", middleware.PageData(c, item.Title, gin.H{
		"Item": dto.ToItemDetailDTO(*item),
	}))
}

// AddComment handles the detail-page comment form. The item must
// exist; its approval state is not re-checked here.
func (h *ItemHandler) AddComment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c)
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		middleware.RedirectToLogin(c)
		return
	}

	_, err = h.commentService.AddComment(services.AddCommentInput{
		ItemID:   id,
		AuthorID: userID,
		Body:     c.PostForm("body"),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			apierrors.NotFound(c)
		case errors.Is(err, services.ErrEmptyComment):
			h.renderDetailWithCommentError(c, id, "Comment cannot be empty.")
		default:
			apierrors.Internal(c)
		}
		return
	}

	c.Redirect(http.StatusSeeOther, "/item/"+strconv.FormatUint(id, 10))
}

func (h *ItemHandler) renderDetailWithCommentError(c *gin.Context, id uint64, msg string) {
	item, err := h.itemService.GetDetail(id)
	if err != nil {
		// The item exists but is unapproved; there is no visible page
		// to re-render, so fall back to its would-be location.
		c.Redirect(http.StatusSeeOther, "/item/"+strconv.FormatUint(id, 10))
		return
	}

	c.HTML(http.StatusOK, "item_detail.html", middleware.PageData(c, item.Title, gin.H{
		"Item":         dto.ToItemDetailDTO(*item),
		"CommentError": msg,
	}))
}

type reportFormValues struct {
	ItemType    string
	Title       string
	Description string
	Location    string
}

// ReportForm renders the empty reporting form.
func (h *ItemHandler) ReportForm(c *gin.Context) {
	c.HTML(http.StatusOK, "report_item.html", middleware.PageData(c, "Report an Item", gin.H{
		"Form":   reportFormValues{ItemType: "lost"},
		"Errors": services.FieldErrors{},
	}))
}

// ReportSubmit accepts the multipart submission: the item fields plus
// zero or more files under the images field. On validation failure the
// form is re-rendered with the entered values; on success the caller
// is sent to the fixed confirmation page.
func (h *ItemHandler) ReportSubmit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		middleware.RedirectToLogin(c)
		return
	}

	form := reportFormValues{
		ItemType:    c.PostForm("item_type"),
		Description: c.PostForm("description"),
		Title:       c.PostForm("title"),
		Location:    c.PostForm("location"),
	}

	files, err := readUploads(c)
	if err != nil {
		apierrors.Internal(c)
		return
	}

	_, err = h.itemService.Report(services.ReportInput{
		Type:        form.ItemType,
		Title:       form.Title,
		Description: form.Description,
		Location:    form.Location,
		ReporterID:  userID,
		Files:       files,
	})
	if err != nil {
		var fields services.FieldErrors
		if errors.As(err, &fields) {
			c.HTML(http.StatusOK, "report_item.html", middleware.PageData(c, "Report an Item", gin.H{
				"Form":   form,
				"Errors": fields,
			}))
			return
		}
		apierrors.Internal(c)
		return
	}

	c.Redirect(http.StatusSeeOther, "/report/success")
}

// ReportSuccess renders the static confirmation page.
func (h *ItemHandler) ReportSuccess(c *gin.Context) {
	c.HTML(http.StatusOK, "report_success.html", middleware.PageData(c, "Report Submitted", nil))
}

// readUploads reads the multipart images into memory in submission
// order. A request without a multipart body simply has no uploads.
func readUploads(c *gin.Context) ([]services.UploadedFile, error) {
	multipartForm, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	headers := multipartForm.File["images"]
	files := make([]services.UploadedFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, services.UploadedFile{
			Name: header.Filename,
			Data: data,
		})
	}

	return files, nil
}
