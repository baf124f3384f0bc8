package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/campusportal/lostfound/internal/middleware"
)

// RegisterRoutes wires the portal routes onto the engine. The session
// middleware must already be installed; CurrentUser is added here so
// every page sees the logged-in state.
func RegisterRoutes(r *gin.Engine, auth *AuthHandler, items *ItemHandler, admin *AdminHandler, mediaRoot string) {
	r.Use(middleware.CurrentUser())

	// Public pages
	r.GET("/", items.Home)
	r.GET("/items", items.List)
	r.GET("/item/:id", items.Detail)

	// Authenticated workflows
	r.POST("/item/:id/comment", middleware.RequireAuth(), items.AddComment)
	r.GET("/report", middleware.RequireAuth(), items.ReportForm)
	r.POST("/report", middleware.RequireAuth(), items.ReportSubmit)
	r.GET("/report/success", middleware.RequireAuth(), items.ReportSuccess)

	// Accounts
	accounts := r.Group("/accounts")
	{
		accounts.GET("/register", auth.RegisterForm)
		accounts.POST("/register", auth.Register)
		accounts.GET("/login", auth.LoginForm)
		accounts.POST("/login", auth.Login)
		accounts.POST("/logout", auth.Logout)
	}

	// Staff moderation
	staff := r.Group("/admin", middleware.RequireStaff())
	{
		staff.GET("/items", admin.Queue)
		staff.POST("/items/approve", admin.Approve)
	}

	// Uploaded files
	r.Static("/media", mediaRoot)
}
