package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/campusportal/lostfound/internal/models"
)

func TestAdminQueueAccess(t *testing.T) {
	env := setupWebTestEnv(t)
	env.createUser(t, "2021CS101", false)

	// Anonymous users are sent to login.
	w := env.get(t, "/admin/items", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.True(t, strings.HasPrefix(w.Header().Get("Location"), "/accounts/login"))

	// Non-staff users are forbidden outright.
	cookies := env.loginAs(t, "2021CS101")
	w = env.get(t, "/admin/items", cookies)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminQueueFilters(t *testing.T) {
	env := setupWebTestEnv(t)
	staff := env.createUser(t, "staff01", true)
	reporter := env.createUser(t, "2021CS101", false)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	env.seedItem(t, reporter, models.ItemTypeLost, "pending wallet", false, base)
	env.seedItem(t, reporter, models.ItemTypeFound, "approved keys", true, base.Add(time.Minute))

	cookies := env.loginAs(t, staff.Username)

	// Unfiltered queue shows both, regardless of approval state.
	w := env.get(t, "/admin/items", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "pending wallet")
	require.Contains(t, w.Body.String(), "approved keys")

	w = env.get(t, "/admin/items?approved=pending", cookies)
	require.Contains(t, w.Body.String(), "pending wallet")
	require.NotContains(t, w.Body.String(), "approved keys")

	w = env.get(t, "/admin/items?approved=approved", cookies)
	require.NotContains(t, w.Body.String(), "pending wallet")
	require.Contains(t, w.Body.String(), "approved keys")

	w = env.get(t, "/admin/items?type=found", cookies)
	require.NotContains(t, w.Body.String(), "pending wallet")
	require.Contains(t, w.Body.String(), "approved keys")

	// Search covers the reporter's roll number.
	w = env.get(t, "/admin/items?q=2021cs101", cookies)
	require.Contains(t, w.Body.String(), "pending wallet")
	require.Contains(t, w.Body.String(), "approved keys")
}

func TestAdminApprove(t *testing.T) {
	env := setupWebTestEnv(t)
	staff := env.createUser(t, "staff01", true)
	reporter := env.createUser(t, "2021CS101", false)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	a := env.seedItem(t, reporter, models.ItemTypeLost, "item a", false, base)
	b := env.seedItem(t, reporter, models.ItemTypeLost, "item b", false, base.Add(time.Minute))
	c := env.seedItem(t, reporter, models.ItemTypeLost, "item c", false, base.Add(2*time.Minute))

	cookies := env.loginAs(t, staff.Username)

	form := url.Values{}
	form.Add("ids", fmt.Sprintf("%d", a.ID))
	form.Add("ids", fmt.Sprintf("%d", b.ID))
	form.Add("ids", "not-a-number")

	w := env.postForm(t, "/admin/items/approve", form, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/admin/items", w.Header().Get("Location"))

	var approved int64
	require.NoError(t, env.db.Model(&models.Item{}).Where("is_approved = ?", true).Count(&approved).Error)
	require.EqualValues(t, 2, approved)

	var untouched models.Item
	require.NoError(t, env.db.First(&untouched, c.ID).Error)
	require.False(t, untouched.IsApproved)

	// Re-approving is a no-op and still redirects cleanly.
	w = env.postForm(t, "/admin/items/approve", form, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.NoError(t, env.db.Model(&models.Item{}).Where("is_approved = ?", true).Count(&approved).Error)
	require.EqualValues(t, 2, approved)
}

func TestAdminApproveBlockedForNonStaff(t *testing.T) {
	env := setupWebTestEnv(t)
	reporter := env.createUser(t, "2021CS101", false)
	item := env.seedItem(t, reporter, models.ItemTypeLost, "item a", false, time.Now())

	cookies := env.loginAs(t, reporter.Username)

	form := url.Values{}
	form.Add("ids", fmt.Sprintf("%d", item.ID))

	w := env.postForm(t, "/admin/items/approve", form, cookies)
	require.Equal(t, http.StatusForbidden, w.Code)

	var refreshed models.Item
	require.NoError(t, env.db.First(&refreshed, item.ID).Error)
	require.False(t, refreshed.IsApproved)
}
