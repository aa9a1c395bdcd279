package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/intraportal/internal/block"
	"github.com/intraportal/internal/db"
	"github.com/intraportal/internal/menu"
	"github.com/intraportal/internal/service"
)

type pagePayload struct {
	Title           string        `json:"title"`
	Slug            string        `json:"slug"`
	Description     string        `json:"description"`
	Template        string        `json:"template"`
	IsPublished     *bool         `json:"is_published"`
	MetaTitle       string        `json:"meta_title"`
	MetaDescription string        `json:"meta_description"`
	Blocks          []block.Block `json:"blocks"`
}

type pageUpdatePayload struct {
	Title           *string        `json:"title"`
	Slug            *string        `json:"slug"`
	Description     *string        `json:"description"`
	IsPublished     *bool          `json:"is_published"`
	MetaTitle       *string        `json:"meta_title"`
	MetaDescription *string        `json:"meta_description"`
	Blocks          *[]block.Block `json:"blocks"`
}

type publishPayload struct {
	IsPublished *bool `json:"is_published"`
}

// ListPages returns pages, optionally only published ones or matching ?search=.
func (a *API) ListPages(c *gin.Context) {
	pages, err := a.pages.List(service.PageFilter{
		PublishedOnly: queryBool(c, "published_only"),
		Search:        c.Query("search"),
	})
	if err != nil {
		a.respondServiceError(c, err, "failed to load pages")
		return
	}
	c.JSON(http.StatusOK, pages)
}

// GetPage returns a page by id, drafts included.
func (a *API) GetPage(c *gin.Context) {
	id, ok := idParam(c, "invalid page id")
	if !ok {
		return
	}
	page, err := a.pages.Get(id)
	if err != nil {
		a.respondServiceError(c, err, "failed to load page")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPageBySlug returns a published page.
func (a *API) GetPageBySlug(c *gin.Context) {
	page, err := a.pages.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		a.respondServiceError(c, err, "failed to load page")
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreatePage creates a page, seeding blocks from the template when none are sent.
func (a *API) CreatePage(c *gin.Context) {
	var payload pagePayload
	if !bindJSON(c, &payload, "invalid page payload") {
		return
	}
	page, err := a.pages.Create(service.PageInput{
		Title:           payload.Title,
		Slug:            payload.Slug,
		Description:     payload.Description,
		Template:        payload.Template,
		IsPublished:     payload.IsPublished,
		MetaTitle:       payload.MetaTitle,
		MetaDescription: payload.MetaDescription,
		Blocks:          payload.Blocks,
	})
	if err != nil {
		a.respondServiceError(c, err, "failed to create page")
		return
	}
	c.JSON(http.StatusCreated, page)
}

// UpdatePage applies a partial update; a blocks array replaces the whole list.
func (a *API) UpdatePage(c *gin.Context) {
	id, ok := idParam(c, "invalid page id")
	if !ok {
		return
	}
	var payload pageUpdatePayload
	if !bindJSON(c, &payload, "invalid page payload") {
		return
	}
	page, err := a.pages.Update(id, service.PageUpdate{
		Title:           payload.Title,
		Slug:            payload.Slug,
		Description:     payload.Description,
		IsPublished:     payload.IsPublished,
		MetaTitle:       payload.MetaTitle,
		MetaDescription: payload.MetaDescription,
		Blocks:          payload.Blocks,
	})
	if err != nil {
		a.respondServiceError(c, err, "failed to update page")
		return
	}
	c.JSON(http.StatusOK, page)
}

// PublishPage sets is_published, or toggles it when the body omits the flag.
func (a *API) PublishPage(c *gin.Context) {
	id, ok := idParam(c, "invalid page id")
	if !ok {
		return
	}
	var payload publishPayload
	if c.Request.ContentLength > 0 && !bindJSON(c, &payload, "invalid publish payload") {
		return
	}

	published := false
	if payload.IsPublished != nil {
		published = *payload.IsPublished
	} else {
		current, err := a.pages.Get(id)
		if err != nil {
			a.respondServiceError(c, err, "failed to load page")
			return
		}
		published = !current.IsPublished
	}

	page, err := a.pages.SetPublished(id, published)
	if err != nil {
		a.respondServiceError(c, err, "failed to update page")
		return
	}
	c.JSON(http.StatusOK, page)
}

// DuplicatePage copies a page into an unpublished draft.
func (a *API) DuplicatePage(c *gin.Context) {
	id, ok := idParam(c, "invalid page id")
	if !ok {
		return
	}
	page, err := a.pages.Duplicate(id)
	if err != nil {
		a.respondServiceError(c, err, "failed to duplicate page")
		return
	}
	c.JSON(http.StatusCreated, page)
}

// DeletePage removes a page and its blocks.
func (a *API) DeletePage(c *gin.Context) {
	id, ok := idParam(c, "invalid page id")
	if !ok {
		return
	}
	if err := a.pages.Delete(id); err != nil {
		a.respondServiceError(c, err, "failed to delete page")
		return
	}
	respondMessage(c, "Page deleted successfully")
}

// ShowPage renders a published page at /page/:slug.
func (a *API) ShowPage(c *gin.Context) {
	page, err := a.pages.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			a.renderNotFound(c, "")
			return
		}
		a.respondServiceError(c, err, "failed to load page")
		return
	}
	a.renderPage(c, page, false)
}

// PreviewPage renders any page, drafts included, for signed-in editors.
func (a *API) PreviewPage(c *gin.Context) {
	id, ok := idParam(c, "invalid page id")
	if !ok {
		return
	}
	page, err := a.pages.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			a.renderNotFound(c, "")
			return
		}
		a.respondServiceError(c, err, "failed to load page")
		return
	}
	a.renderPage(c, page, true)
}

func (a *API) renderPage(c *gin.Context, page *db.Page, preview bool) {
	blocks := service.PageBlocks(page)
	desktop, mobile, nodes, opts := a.navigation(menu.PagePath(page.Slug))

	var breadcrumbs []menu.Crumb
	if !hasBlock(blocks, block.TypeHeroSimple) {
		breadcrumbs = menu.Breadcrumbs(nodes, opts)
		if len(breadcrumbs) == 0 {
			breadcrumbs = []menu.Crumb{{Label: page.Title}}
		}
	}

	metaTitle := page.MetaTitle
	if metaTitle == "" {
		metaTitle = page.Title
	}
	a.renderHTML(c, http.StatusOK, "page.html", gin.H{
		"page":            page,
		"content":         a.renderer.RenderPage(blocks),
		"breadcrumbs":     breadcrumbs,
		"desktopMenu":     desktop,
		"mobileMenu":      mobile,
		"metaTitle":       metaTitle,
		"metaDescription": page.MetaDescription,
		"preview":         preview,
		"noindex":         preview,
	})
}

func hasBlock(blocks []block.Block, t block.Type) bool {
	for _, b := range blocks {
		if b.Type == t {
			return true
		}
	}
	return false
}
