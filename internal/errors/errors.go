// Package errors renders request-scoped failures for the web UI.
// Every failure is reported to the single caller only; nothing here is
// fatal to the process.
package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusportal/lostfound/internal/middleware"
)

// NotFound renders the 404 page. Used both for genuinely missing items
// and for unapproved ones, so the two cases are indistinguishable.
func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.html", middleware.PageData(c, "Not Found", nil))
}

// Internal renders a plain 500. Details stay in the server log.
func Internal(c *gin.Context) {
	c.String(http.StatusInternalServerError, "500 internal server error")
}
