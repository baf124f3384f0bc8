package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/campusportal/lostfound/internal/constants"
	"github.com/campusportal/lostfound/internal/database"
	"github.com/campusportal/lostfound/internal/models"
)

// LoginURL is where unauthenticated requests to protected pages land.
const LoginURL = "/accounts/login"

// CurrentUser loads the session user, if any, into the request context
// so templates can render the navbar state. Anonymous requests pass
// through untouched.
func CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		rawID := session.Get(constants.ContextKeyUserID)
		if rawID == nil {
			c.Next()
			return
		}

		userID, ok := toUserID(rawID)
		if !ok {
			c.Next()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			// Stale session for a deleted account; drop it.
			session.Clear()
			_ = session.Save()
			c.Next()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// RequireAuth redirects unauthenticated requests to the login page,
// carrying the original path in the next parameter.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := GetUserID(c); !exists {
			RedirectToLogin(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaff allows only staff accounts through. Unauthenticated
// callers are sent to login; authenticated non-staff get a 403.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetUser(c)
		if !exists {
			RedirectToLogin(c)
			c.Abort()
			return
		}
		if !user.IsStaff {
			c.String(http.StatusForbidden, "403 forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectToLogin issues the login redirect with a next parameter.
func RedirectToLogin(c *gin.Context) {
	next := url.QueryEscape(c.Request.URL.RequestURI())
	c.Redirect(http.StatusSeeOther, LoginURL+"?next="+next)
}

// PageData builds template data carrying the shared nav state (page
// title and current user) merged with page-specific values.
func PageData(c *gin.Context, title string, extra gin.H) gin.H {
	data := gin.H{"Title": title, "User": nil}
	if user, ok := GetUser(c); ok {
		data["User"] = user
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// GetUserID retrieves the current user ID from context.
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(userID)
}

// GetUser retrieves the loaded current user from context.
func GetUser(c *gin.Context) (models.User, bool) {
	raw, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := raw.(models.User)
	return user, ok
}

func toUserID(v interface{}) (uint64, bool) {
	switch id := v.(type) {
	case uint64:
		return id, true
	case uint:
		return uint64(id), true
	case int:
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	case int64:
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	default:
		return 0, false
	}
}
