package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/intraportal/internal/service"
)

// defaultFeaturedNews is how many stories the home page carousel shows.
const defaultFeaturedNews = 3

type newsPayload struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Content    string `json:"content"`
	ImageURL   string `json:"image_url"`
	Category   string `json:"category"`
	IsFeatured bool   `json:"is_featured"`
}

func (p newsPayload) toInput() service.NewsInput {
	return service.NewsInput{
		Title:      p.Title,
		Summary:    p.Summary,
		Content:    p.Content,
		ImageURL:   p.ImageURL,
		Category:   p.Category,
		IsFeatured: p.IsFeatured,
	}
}

type newsUpdatePayload struct {
	Title      *string `json:"title"`
	Summary    *string `json:"summary"`
	Content    *string `json:"content"`
	ImageURL   *string `json:"image_url"`
	Category   *string `json:"category"`
	IsFeatured *bool   `json:"is_featured"`
}

func (p newsUpdatePayload) toUpdate() service.NewsUpdate {
	return service.NewsUpdate{
		Title:      p.Title,
		Summary:    p.Summary,
		Content:    p.Content,
		ImageURL:   p.ImageURL,
		Category:   p.Category,
		IsFeatured: p.IsFeatured,
	}
}

// ListNews returns announcements newest first. Supports ?featured= and ?limit=.
func (a *API) ListNews(c *gin.Context) {
	items, err := a.news.List(service.NewsFilter{
		Featured: queryOptionalBool(c, "featured"),
		Limit:    queryInt(c, "limit", 0),
	})
	if err != nil {
		a.respondServiceError(c, err, "failed to load news")
		return
	}
	c.JSON(http.StatusOK, items)
}

// FeaturedNews returns the carousel selection.
func (a *API) FeaturedNews(c *gin.Context) {
	items, err := a.news.Featured(queryInt(c, "limit", defaultFeaturedNews))
	if err != nil {
		a.respondServiceError(c, err, "failed to load news")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (a *API) GetNews(c *gin.Context) {
	id, ok := idParam(c, "invalid news id")
	if !ok {
		return
	}
	item, err := a.news.Get(id)
	if err != nil {
		a.respondServiceError(c, err, "failed to load news")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) CreateNews(c *gin.Context) {
	var payload newsPayload
	if !bindJSON(c, &payload, "invalid news payload") {
		return
	}
	item, err := a.news.Create(payload.toInput())
	if err != nil {
		a.respondServiceError(c, err, "failed to create news")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (a *API) UpdateNews(c *gin.Context) {
	id, ok := idParam(c, "invalid news id")
	if !ok {
		return
	}
	var payload newsUpdatePayload
	if !bindJSON(c, &payload, "invalid news payload") {
		return
	}
	item, err := a.news.Update(id, payload.toUpdate())
	if err != nil {
		a.respondServiceError(c, err, "failed to update news")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) DeleteNews(c *gin.Context) {
	id, ok := idParam(c, "invalid news id")
	if !ok {
		return
	}
	if err := a.news.Delete(id); err != nil {
		a.respondServiceError(c, err, "failed to delete news")
		return
	}
	respondMessage(c, "News deleted successfully")
}
