package handler

import (
	"net/http"
	"testing"

	"github.com/intraportal/internal/db"
	"github.com/intraportal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contentRoutes(t *testing.T, api *API) http.Handler {
	r := newTestEngine(t)
	r.GET("/api/news", api.ListNews)
	r.GET("/api/news/featured", api.FeaturedNews)
	r.GET("/api/news/:id", api.GetNews)
	r.GET("/api/events", api.ListEvents)
	r.GET("/api/events/upcoming", api.UpcomingEvents)
	r.GET("/api/employees", api.ListEmployees)
	r.GET("/api/employees/departments", api.ListDepartments)
	r.GET("/api/albums/:id/photos", api.ListAlbumPhotos)
	r.GET("/api/photos", api.ListPhotos)

	admin := r.Group("/api", api.AuthRequired())
	admin.POST("/news", api.CreateNews)
	admin.PUT("/news/:id", api.UpdateNews)
	admin.DELETE("/news/:id", api.DeleteNews)
	admin.POST("/events", api.CreateEvent)
	admin.POST("/employees", api.CreateEmployee)
	admin.POST("/albums", api.CreateAlbum)
	admin.DELETE("/albums/:id", api.DeleteAlbum)
	admin.POST("/photos", api.CreatePhoto)
	return r
}

func TestNewsCRUD(t *testing.T) {
	api := setupTestAPI(t)
	_, token := createTestUser(t, api, "editor@gys.co.id", db.RoleEditor)
	r := contentRoutes(t, api)

	w := performJSON(r, http.MethodPost, "/api/news", map[string]any{
		"title":    "Plant record",
		"summary":  "500k tons",
		"content":  "Details",
		"category": "production",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created db.News
	decodeJSON(t, w, &created)

	w = performJSON(r, http.MethodPut, "/api/news/"+uintString(created.ID), map[string]any{"is_featured": true}, token)
	require.Equal(t, http.StatusOK, w.Code)
	var updated db.News
	decodeJSON(t, w, &updated)
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, "Plant record", updated.Title)

	w = performJSON(r, http.MethodPost, "/api/news", map[string]any{"title": ""}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(r, http.MethodDelete, "/api/news/"+uintString(created.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "News deleted successfully")

	w = performJSON(r, http.MethodGet, "/api/news/"+uintString(created.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(r, http.MethodGet, "/api/news/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeaturedNewsFallsBackToLatest(t *testing.T) {
	api := setupTestAPI(t)
	r := contentRoutes(t, api)

	for _, title := range []string{"One", "Two", "Three", "Four"} {
		_, err := api.news.Create(service.NewsInput{Title: title, Summary: "s", Content: "c", Category: "general"})
		require.NoError(t, err)
	}

	var items []db.News
	decodeJSON(t, performJSON(r, http.MethodGet, "/api/news/featured", nil, ""), &items)
	assert.Len(t, items, 3)
}

func TestUpcomingEventsUseClock(t *testing.T) {
	api := setupTestAPI(t)
	r := contentRoutes(t, api)

	for _, date := range []string{"2026-01-15", "2026-02-01", "2026-03-10"} {
		_, err := api.events.Create(service.EventInput{Title: "Event " + date, EventDate: date, EventType: "event"})
		require.NoError(t, err)
	}

	var items []db.Event
	decodeJSON(t, performJSON(r, http.MethodGet, "/api/events/upcoming", nil, ""), &items)
	require.Len(t, items, 2)
	assert.Equal(t, "2026-02-01", items[0].EventDate)
}

func TestCreateEventRejectsBadDate(t *testing.T) {
	api := setupTestAPI(t)
	_, token := createTestUser(t, api, "editor@gys.co.id", db.RoleEditor)
	r := contentRoutes(t, api)

	w := performJSON(r, http.MethodPost, "/api/events", map[string]any{
		"title": "AGM", "event_date": "15/02/2026", "event_type": "event",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeSearchAndDepartments(t *testing.T) {
	api := setupTestAPI(t)
	_, token := createTestUser(t, api, "editor@gys.co.id", db.RoleEditor)
	r := contentRoutes(t, api)

	for _, e := range []map[string]string{
		{"name": "Budi Santoso", "email": "budi@gys.co.id", "department": "Production", "position": "Plant Director"},
		{"name": "Rudi Hartono", "email": "rudi@gys.co.id", "department": "IT", "position": "IT Manager"},
	} {
		w := performJSON(r, http.MethodPost, "/api/employees", e, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	var found []db.Employee
	decodeJSON(t, performJSON(r, http.MethodGet, "/api/employees?search=plant", nil, ""), &found)
	require.Len(t, found, 1)
	assert.Equal(t, "Budi Santoso", found[0].Name)

	var departments []string
	decodeJSON(t, performJSON(r, http.MethodGet, "/api/employees/departments", nil, ""), &departments)
	assert.ElementsMatch(t, []string{"IT", "Production"}, departments)
}

func TestAlbumPhotosAndDetachOnDelete(t *testing.T) {
	api := setupTestAPI(t)
	_, token := createTestUser(t, api, "editor@gys.co.id", db.RoleEditor)
	r := contentRoutes(t, api)

	w := performJSON(r, http.MethodPost, "/api/albums", map[string]any{"title": "Gathering 2025"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var album db.Album
	decodeJSON(t, w, &album)

	w = performJSON(r, http.MethodPost, "/api/photos", map[string]any{
		"title": "Stage", "image_url": "/uploads/stage.jpg", "album_id": album.ID,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = performJSON(r, http.MethodPost, "/api/photos", map[string]any{"title": "No image"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var photos []db.Photo
	decodeJSON(t, performJSON(r, http.MethodGet, "/api/albums/"+uintString(album.ID)+"/photos", nil, ""), &photos)
	require.Len(t, photos, 1)
	assert.Equal(t, "Gathering 2025", photos[0].AlbumTitle)

	require.Equal(t, http.StatusOK, performJSON(r, http.MethodDelete, "/api/albums/"+uintString(album.ID), nil, token).Code)

	w = performJSON(r, http.MethodGet, "/api/albums/"+uintString(album.ID)+"/photos", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	decodeJSON(t, performJSON(r, http.MethodGet, "/api/photos", nil, ""), &photos)
	require.Len(t, photos, 1)
	assert.Nil(t, photos[0].AlbumID)
}
