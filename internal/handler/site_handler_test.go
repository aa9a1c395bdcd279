package handler

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/intraportal/internal/db"
	"github.com/intraportal/internal/service"
	"github.com/intraportal/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteRoutes(t *testing.T, api *API) http.Handler {
	r := newTestEngine(t)
	r.GET("/api/templates", api.ListTemplates)
	r.GET("/api/templates/:id", api.GetTemplate)
	r.GET("/api/icons", api.ListIcons)
	r.GET("/api/settings/hero", api.GetHeroSettings)
	r.GET("/api/settings/ticker", api.GetTickerSettings)
	r.GET("/api/embed/check", api.CheckEmbed)
	admin := r.Group("/api", api.AuthRequired())
	admin.PUT("/settings/hero", api.UpdateHeroSettings)
	admin.PUT("/settings/ticker", api.UpdateTickerSettings)
	admin.POST("/upload", api.UploadImage)
	admin.POST("/seed", api.Seed)
	admin.GET("/dashboard/stats", api.DashboardStats)
	return r
}

func TestTemplatesAndIcons(t *testing.T) {
	api := setupTestAPI(t)
	r := siteRoutes(t, api)

	var templates []service.PageTemplate
	decodeJSON(t, performJSON(r, http.MethodGet, "/api/templates", nil, ""), &templates)
	assert.Len(t, templates, 8)

	assert.Equal(t, http.StatusOK, performJSON(r, http.MethodGet, "/api/templates/landing", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, performJSON(r, http.MethodGet, "/api/templates/missing", nil, "").Code)

	var icons []view.IconOption
	decodeJSON(t, performJSON(r, http.MethodGet, "/api/icons", nil, ""), &icons)
	assert.Len(t, icons, len(view.IconOptions()))
}

func TestHeroSettingsMergeAndValidate(t *testing.T) {
	api := setupTestAPI(t)
	_, token := createTestUser(t, api, "editor@gys.co.id", db.RoleEditor)
	r := siteRoutes(t, api)

	w := performJSON(r, http.MethodPut, "/api/settings/hero", map[string]any{"hero_title_line1": "Welcome"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var hero service.HeroSettings
	decodeJSON(t, performJSON(r, http.MethodGet, "/api/settings/hero", nil, ""), &hero)
	assert.Equal(t, "Welcome", hero.HeroTitleLine1)
	assert.Equal(t, service.DefaultHeroSettings().HeroTitleLine2, hero.HeroTitleLine2)

	w = performJSON(r, http.MethodPut, "/api/settings/hero", map[string]any{"background_type": "gif"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTickerSettings(t *testing.T) {
	api := setupTestAPI(t)
	_, token := createTestUser(t, api, "editor@gys.co.id", db.RoleEditor)
	r := siteRoutes(t, api)

	var ticker service.TickerSettings
	decodeJSON(t, performJSON(r, http.MethodGet, "/api/settings/ticker", nil, ""), &ticker)
	assert.Equal(t, service.TickerModeDefault, ticker.Mode)

	w := performJSON(r, http.MethodPut, "/api/settings/ticker", map[string]any{"mode": "manual", "manual_text": "Plant closed Friday"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &ticker)
	assert.Equal(t, "Plant closed Friday", ticker.ManualText)

	w = performJSON(r, http.MethodPut, "/api/settings/ticker", map[string]any{"mode": "random"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckEmbed(t *testing.T) {
	api := setupTestAPI(t)
	r := siteRoutes(t, api)

	blocked := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.WriteHeader(http.StatusOK)
	}))
	defer blocked.Close()

	var status service.EmbedStatus
	decodeJSON(t, performJSON(r, http.MethodGet, "/api/embed/check?url="+blocked.URL, nil, ""), &status)
	assert.True(t, status.Reachable)
	assert.False(t, status.Embeddable)

	w := performJSON(r, http.MethodGet, "/api/embed/check?url=ftp://files.local", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeedAndDashboard(t *testing.T) {
	api := setupTestAPI(t)
	_, token := createTestUser(t, api, "editor@gys.co.id", db.RoleEditor)
	r := siteRoutes(t, api)

	w := performJSON(r, http.MethodPost, "/api/seed", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result service.SeedResult
	decodeJSON(t, w, &result)
	assert.True(t, result.MenusSeeded)
	assert.True(t, result.DataSeeded)

	decodeJSON(t, performJSON(r, http.MethodPost, "/api/seed", nil, token), &result)
	assert.False(t, result.DataSeeded)
	assert.Equal(t, "Data already seeded", result.Message)

	var stats service.DashboardStats
	decodeJSON(t, performJSON(r, http.MethodGet, "/api/dashboard/stats", nil, token), &stats)
	assert.EqualValues(t, 5, stats.News)
	assert.EqualValues(t, 16, stats.MenuItems)
	assert.EqualValues(t, 2, stats.Users)
}

func TestUploadImageStoresFile(t *testing.T) {
	api := setupTestAPI(t)
	_, token := createTestUser(t, api, "editor@gys.co.id", db.RoleEditor)
	r := siteRoutes(t, api)

	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	send := func(field string, data []byte) *httptest.ResponseRecorder {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile(field, "photo.png")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send("image", pngBuf.Bytes())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var uploaded service.UploadedImage
	decodeJSON(t, w, &uploaded)
	assert.Equal(t, 4, uploaded.Width)
	assert.Equal(t, 3, uploaded.Height)
	assert.Equal(t, "/uploads/"+uploaded.Filename, uploaded.URL)
	_, err := os.Stat(filepath.Join(api.uploads.Dir(), uploaded.Filename))
	assert.NoError(t, err)

	w = send("file", []byte("plain text, not an image"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send("attachment", pngBuf.Bytes())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
