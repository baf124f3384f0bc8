package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/campusportal/lostfound/internal/constants"
	apierrors "github.com/campusportal/lostfound/internal/errors"
	"github.com/campusportal/lostfound/internal/middleware"
	"github.com/campusportal/lostfound/internal/services"
)

// AuthHandler serves the registration and login screens.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterForm renders the signup form.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", middleware.PageData(c, "Register", gin.H{
		"Form":   registerFormValues{},
		"Errors": services.FieldErrors{},
	}))
}

type registerFormValues struct {
	Username string
	Email    string
}

// Register creates a new account. Duplicate roll numbers or emails
// come back as field errors with the entered values re-presented.
func (h *AuthHandler) Register(c *gin.Context) {
	form := registerFormValues{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
	}

	_, err := h.authService.Register(services.RegisterInput{
		Username: form.Username,
		Email:    form.Email,
		Password: c.PostForm("password"),
	})
	if err != nil {
		var fields services.FieldErrors
		if errors.As(err, &fields) {
			c.HTML(http.StatusOK, "register.html", middleware.PageData(c, "Register", gin.H{
				"Form":   form,
				"Errors": fields,
			}))
			return
		}
		apierrors.Internal(c)
		return
	}

	c.Redirect(http.StatusSeeOther, "/accounts/login")
}

// LoginForm renders the login form.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", middleware.PageData(c, "Log in", gin.H{
		"Form": loginFormValues{},
		"Next": c.Query("next"),
	}))
}

type loginFormValues struct {
	Username string
}

// Login authenticates and stores the user ID in the session, then
// follows the next parameter when it points somewhere on this site.
func (h *AuthHandler) Login(c *gin.Context) {
	form := loginFormValues{Username: c.PostForm("username")}

	user, err := h.authService.Login(services.LoginInput{
		Username: form.Username,
		Password: c.PostForm("password"),
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.HTML(http.StatusOK, "login.html", middleware.PageData(c, "Log in", gin.H{
				"Form":       form,
				"Next":       c.PostForm("next"),
				"LoginError": "Invalid Roll No. or password.",
			}))
			return
		}
		apierrors.Internal(c)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.Internal(c)
		return
	}

	c.Redirect(http.StatusSeeOther, safeNext(c.PostForm("next")))
}

// Logout clears the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.Internal(c)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
