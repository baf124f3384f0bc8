package handlers

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campusportal/lostfound/internal/constants"
	"github.com/campusportal/lostfound/internal/database"
	"github.com/campusportal/lostfound/internal/models"
	"github.com/campusportal/lostfound/internal/repository"
	"github.com/campusportal/lostfound/internal/services"
	"github.com/campusportal/lostfound/internal/storage"
	"github.com/campusportal/lostfound/web"
)

type webTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	media       *storage.MediaStore
}

func setupWebTestEnv(t *testing.T) webTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.ItemImage{},
		&models.Comment{},
	))
	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	mediaRoot := t.TempDir()
	media, err := storage.NewMediaStore(mediaRoot)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authService := services.NewAuthService(userRepo)
	itemService := services.NewItemService(itemRepo, userRepo, media)
	commentService := services.NewCommentService(commentRepo, itemRepo)
	moderationService := services.NewModerationService(itemRepo)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	tmpl, err := web.Templates()
	require.NoError(t, err)
	r.SetHTMLTemplate(tmpl)

	RegisterRoutes(r,
		NewAuthHandler(authService),
		NewItemHandler(itemService, commentService),
		NewAdminHandler(moderationService),
		mediaRoot,
	)

	return webTestEnv{
		db:          db,
		router:      r,
		authService: authService,
		media:       media,
	}
}

func (env webTestEnv) createUser(t *testing.T, username string, staff bool) *models.User {
	t.Helper()

	user, err := env.authService.Register(services.RegisterInput{
		Username: username,
		Email:    username + "@campus.test",
		Password: "supersecret",
		IsStaff:  staff,
	})
	require.NoError(t, err)
	return user
}

// loginAs authenticates through the login route and returns the
// session cookies for subsequent requests.
func (env webTestEnv) loginAs(t *testing.T, username string) []*http.Cookie {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", "supersecret")

	req := httptest.NewRequest(http.MethodPost, "/accounts/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

func (env webTestEnv) get(t *testing.T, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env webTestEnv) postForm(t *testing.T, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env webTestEnv) seedItem(t *testing.T, reporter *models.User, itemType models.ItemType, title string, approved bool, reportedAt time.Time) *models.Item {
	t.Helper()

	item := &models.Item{
		ItemType:    itemType,
		Title:       title,
		Description: "description of " + title,
		Location:    "Library",
		ReportedAt:  reportedAt,
		ReporterID:  reporter.ID,
		IsApproved:  approved,
	}
	require.NoError(t, env.db.Create(item).Error)
	return item
}

func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestHome(t *testing.T) {
	env := setupWebTestEnv(t)
	user := env.createUser(t, "2021CS101", false)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		env.seedItem(t, user, models.ItemTypeLost, fmt.Sprintf("lost %02d", i), true, base.Add(time.Duration(i)*time.Minute))
	}
	env.seedItem(t, user, models.ItemTypeFound, "found thing", true, base)
	env.seedItem(t, user, models.ItemTypeLost, "hidden pending", false, base.Add(time.Hour))

	w := env.get(t, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	// Only the 5 newest lost items appear.
	require.Contains(t, body, "lost 06")
	require.Contains(t, body, "lost 02")
	require.NotContains(t, body, "lost 01")
	require.NotContains(t, body, "lost 00")
	require.Contains(t, body, "found thing")
	require.NotContains(t, body, "hidden pending")
}

func TestListApprovalGate(t *testing.T) {
	env := setupWebTestEnv(t)
	user := env.createUser(t, "2021CS101", false)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	env.seedItem(t, user, models.ItemTypeLost, "visible wallet", true, base)
	env.seedItem(t, user, models.ItemTypeLost, "invisible wallet", false, base.Add(time.Minute))

	for _, path := range []string{
		"/items",
		"/items?type=lost",
		"/items?q=invisible",
		"/items?q=wallet&type=lost",
	} {
		w := env.get(t, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		require.NotContains(t, w.Body.String(), "invisible wallet", path)
	}
}

func TestListTypeFilter(t *testing.T) {
	env := setupWebTestEnv(t)
	user := env.createUser(t, "2021CS101", false)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	env.seedItem(t, user, models.ItemTypeLost, "lost umbrella", true, base)
	env.seedItem(t, user, models.ItemTypeFound, "found keys", true, base.Add(time.Minute))

	w := env.get(t, "/items?type=lost", nil)
	require.Contains(t, w.Body.String(), "lost umbrella")
	require.NotContains(t, w.Body.String(), "found keys")

	w = env.get(t, "/items?type=found", nil)
	require.Contains(t, w.Body.String(), "found keys")
	require.NotContains(t, w.Body.String(), "lost umbrella")

	// Any other value behaves as if absent.
	w = env.get(t, "/items?type=whatever", nil)
	require.Contains(t, w.Body.String(), "lost umbrella")
	require.Contains(t, w.Body.String(), "found keys")
}

func TestListSearch(t *testing.T) {
	env := setupWebTestEnv(t)
	user := env.createUser(t, "2021CS101", false)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	item := env.seedItem(t, user, models.ItemTypeLost, "Black Wallet", true, base)
	item.Location = "Main Library"
	require.NoError(t, env.db.Save(item).Error)
	env.seedItem(t, user, models.ItemTypeFound, "Steel Bottle", true, base.Add(time.Minute))

	// Case-insensitive substring across title and location.
	for _, q := range []string{"wallet", "WALLET", "main+library"} {
		w := env.get(t, "/items?q="+q, nil)
		require.Contains(t, w.Body.String(), "Black Wallet", q)
		require.NotContains(t, w.Body.String(), "Steel Bottle", q)
	}

	// Empty query returns everything.
	w := env.get(t, "/items?q=", nil)
	require.Contains(t, w.Body.String(), "Black Wallet")
	require.Contains(t, w.Body.String(), "Steel Bottle")
}

func TestListPagination(t *testing.T) {
	env := setupWebTestEnv(t)
	user := env.createUser(t, "2021CS101", false)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 13; i++ {
		env.seedItem(t, user, models.ItemTypeLost, fmt.Sprintf("paged %02d", i), true, base.Add(time.Duration(i)*time.Minute))
	}

	w := env.get(t, "/items", nil)
	body := w.Body.String()
	require.Contains(t, body, "paged 12")
	require.Contains(t, body, "paged 01")
	require.NotContains(t, body, "paged 00", "page size is fixed at 12")

	w = env.get(t, "/items?page=2", nil)
	require.Contains(t, w.Body.String(), "paged 00")

	// Out-of-range page renders an empty page, not an error.
	w = env.get(t, "/items?page=99", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "paged")
}

func TestDetail(t *testing.T) {
	env := setupWebTestEnv(t)
	user := env.createUser(t, "2021CS101", false)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	item := env.seedItem(t, user, models.ItemTypeLost, "phone", true, base)
	for i := 0; i < 2; i++ {
		require.NoError(t, env.db.Create(&models.Comment{
			ItemID:    item.ID,
			AuthorID:  user.ID,
			Body:      fmt.Sprintf("comment %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	w := env.get(t, fmt.Sprintf("/item/%d", item.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	require.Contains(t, body, "phone")
	require.Contains(t, body, user.Username)
	require.Contains(t, body, "comment 0")
	require.Contains(t, body, "comment 1")
	// Oldest comment first.
	require.Less(t, strings.Index(body, "comment 0"), strings.Index(body, "comment 1"))
}

func TestDetailUnapprovedIs404EvenForOwner(t *testing.T) {
	env := setupWebTestEnv(t)
	owner := env.createUser(t, "2021CS101", false)

	item := env.seedItem(t, owner, models.ItemTypeLost, "secret", false, time.Now())

	w := env.get(t, fmt.Sprintf("/item/%d", item.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	cookies := env.loginAs(t, owner.Username)
	w = env.get(t, fmt.Sprintf("/item/%d", item.ID), cookies)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.get(t, "/item/999999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportRequiresLogin(t *testing.T) {
	env := setupWebTestEnv(t)

	form := url.Values{}
	form.Set("item_type", "lost")
	form.Set("title", "Lost wallet")
	form.Set("description", "Black leather")
	form.Set("location", "Library")

	w := env.postForm(t, "/report", form, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.True(t, strings.HasPrefix(w.Header().Get("Location"), "/accounts/login"))

	var count int64
	require.NoError(t, env.db.Model(&models.Item{}).Count(&count).Error)
	require.Zero(t, count, "no row created for unauthenticated submission")
}

func TestReportSubmit(t *testing.T) {
	env := setupWebTestEnv(t)
	user := env.createUser(t, "2021CS101", false)
	cookies := env.loginAs(t, user.Username)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("item_type", "lost"))
	require.NoError(t, mw.WriteField("title", "Lost wallet"))
	require.NoError(t, mw.WriteField("description", "Black leather"))
	require.NoError(t, mw.WriteField("location", "Library"))
	for _, name := range []string{"front.png", "back.png"} {
		part, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write(testPNG(t))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/report", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/report/success", w.Header().Get("Location"))

	var items []models.Item
	require.NoError(t, env.db.Find(&items).Error)
	require.Len(t, items, 1)
	require.False(t, items[0].IsApproved)
	require.Equal(t, "Lost wallet", items[0].Title)

	var images []models.ItemImage
	require.NoError(t, env.db.Where("item_id = ?", items[0].ID).Order("id ASC").Find(&images).Error)
	require.Len(t, images, 2)
	for _, img := range images {
		require.Contains(t, img.Path, user.Username)
	}
}

func TestReportValidationRerendersForm(t *testing.T) {
	env := setupWebTestEnv(t)
	user := env.createUser(t, "2021CS101", false)
	cookies := env.loginAs(t, user.Username)

	form := url.Values{}
	form.Set("item_type", "lost")
	form.Set("title", "")
	form.Set("description", "Black leather")
	form.Set("location", "Library")

	w := env.postForm(t, "/report", form, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Title is required.")
	// Entered values are re-presented.
	require.Contains(t, w.Body.String(), "Black leather")

	var count int64
	require.NoError(t, env.db.Model(&models.Item{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestReportSuccessRequiresLogin(t *testing.T) {
	env := setupWebTestEnv(t)

	w := env.get(t, "/report/success", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.True(t, strings.HasPrefix(w.Header().Get("Location"), "/accounts/login"))

	user := env.createUser(t, "2021CS101", false)
	cookies := env.loginAs(t, user.Username)
	w = env.get(t, "/report/success", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Report submitted")
}

func TestAddComment(t *testing.T) {
	env := setupWebTestEnv(t)
	user := env.createUser(t, "2021CS101", false)
	item := env.seedItem(t, user, models.ItemTypeLost, "phone", true, time.Now())

	// Unauthenticated: redirected to login, no comment created.
	form := url.Values{}
	form.Set("body", "is this yours?")
	w := env.postForm(t, fmt.Sprintf("/item/%d/comment", item.ID), form, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.True(t, strings.HasPrefix(w.Header().Get("Location"), "/accounts/login"))

	var count int64
	require.NoError(t, env.db.Model(&models.Comment{}).Count(&count).Error)
	require.Zero(t, count)

	// Authenticated: comment created, redirected back to detail.
	cookies := env.loginAs(t, user.Username)
	w = env.postForm(t, fmt.Sprintf("/item/%d/comment", item.ID), form, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, fmt.Sprintf("/item/%d", item.ID), w.Header().Get("Location"))

	require.NoError(t, env.db.Model(&models.Comment{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// Missing item: 404.
	w = env.postForm(t, "/item/999999/comment", form, cookies)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	env := setupWebTestEnv(t)
	env.createUser(t, "2021CS101", false)

	form := url.Values{}
	form.Set("username", "2021CS101")
	form.Set("password", "wrong")

	w := env.postForm(t, "/accounts/login", form, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Invalid Roll No. or password.")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := setupWebTestEnv(t)
	env.createUser(t, "2021CS101", false)

	form := url.Values{}
	form.Set("username", "2021CS101")
	form.Set("email", "new@campus.test")
	form.Set("password", "supersecret")

	w := env.postForm(t, "/accounts/register", form, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "A user with that Roll No. already exists.")

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
