package handler

import (
	"net/http"
	"testing"

	"github.com/intraportal/internal/block"
	"github.com/intraportal/internal/db"
	"github.com/intraportal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockRoutes(t *testing.T, api *API) http.Handler {
	r := newTestEngine(t)
	r.GET("/api/block-types", api.ListBlockTypes)
	r.GET("/api/block-types/:type/editor", api.BlockEditor)
	admin := r.Group("/api", api.AuthRequired())
	admin.POST("/blocks/render", api.RenderBlock)
	admin.POST("/pages/:id/blocks", api.AddPageBlock)
	admin.PATCH("/pages/:id/blocks/:index/move", api.MovePageBlock)
	admin.DELETE("/pages/:id/blocks/:index", api.DeletePageBlock)
	return r
}

func TestListBlockTypes(t *testing.T) {
	api := setupTestAPI(t)
	r := blockRoutes(t, api)

	var resp struct {
		Types      []block.Definition    `json:"types"`
		Categories []block.CategoryGroup `json:"categories"`
	}
	decodeJSON(t, performJSON(r, http.MethodGet, "/api/block-types", nil, ""), &resp)
	assert.Len(t, resp.Types, 17)
	assert.NotEmpty(t, resp.Categories)
}

func TestBlockEditorReturnsFieldsAndDefaults(t *testing.T) {
	api := setupTestAPI(t)
	r := blockRoutes(t, api)

	w := performJSON(r, http.MethodGet, "/api/block-types/stats/editor", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp blockEditorResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, block.TypeStats, resp.Type)
	assert.NotEmpty(t, resp.Fields)
	assert.Contains(t, resp.Defaults, "items")

	w = performJSON(r, http.MethodGet, "/api/block-types/carousel/editor", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRenderBlockEscapesContent(t *testing.T) {
	api := setupTestAPI(t)
	_, token := createTestUser(t, api, "editor@gys.co.id", db.RoleEditor)
	r := blockRoutes(t, api)

	w := performJSON(r, http.MethodPost, "/api/blocks/render", map[string]any{
		"id": "q", "type": "quote", "content": map[string]any{"text": "<script>alert(1)</script>", "author": "CEO"},
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		HTML string `json:"html"`
	}
	decodeJSON(t, w, &resp)
	assert.NotContains(t, resp.HTML, "<script>")
	assert.Contains(t, resp.HTML, "CEO")

	w = performJSON(r, http.MethodPost, "/api/blocks/render", map[string]any{"type": "marquee"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDraftEndpointsEditPageBlocks(t *testing.T) {
	api := setupTestAPI(t)
	_, token := createTestUser(t, api, "editor@gys.co.id", db.RoleEditor)
	r := blockRoutes(t, api)

	page, err := api.pages.Create(service.PageInput{Title: "Handbook", Blocks: []block.Block{
		{ID: "intro", Type: block.TypeText, Content: block.Content{"heading": "Intro"}},
	}})
	require.NoError(t, err)
	base := "/api/pages/" + uintString(page.ID) + "/blocks"

	w := performJSON(r, http.MethodPost, base, map[string]any{
		"type":    "cta",
		"content": map[string]any{"title": "Ask HR"},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var saved db.Page
	decodeJSON(t, w, &saved)
	require.Len(t, saved.Blocks, 2)
	assert.Equal(t, "cta", saved.Blocks[1].Type)
	assert.Equal(t, "Ask HR", saved.Blocks[1].Content["title"])

	w = performJSON(r, http.MethodPatch, base+"/1/move", map[string]string{"direction": "up"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &saved)
	assert.Equal(t, "cta", saved.Blocks[0].Type)
	assert.Equal(t, 0, saved.Blocks[0].SortOrder)
	assert.Equal(t, 1, saved.Blocks[1].SortOrder)

	w = performJSON(r, http.MethodDelete, base+"/0", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &saved)
	require.Len(t, saved.Blocks, 1)
	assert.Equal(t, "intro", saved.Blocks[0].BlockID)

	w = performJSON(r, http.MethodPost, base, map[string]any{"type": "nope"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(r, http.MethodDelete, base+"/-1", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDraftEndpointsRejectMissingBlockIndex(t *testing.T) {
	api := setupTestAPI(t)
	_, token := createTestUser(t, api, "editor@gys.co.id", db.RoleEditor)
	r := blockRoutes(t, api)

	page, err := api.pages.Create(service.PageInput{Title: "Handbook", Blocks: []block.Block{
		{ID: "intro", Type: block.TypeText, Content: block.Content{"heading": "Intro"}},
	}})
	require.NoError(t, err)
	base := "/api/pages/" + uintString(page.ID) + "/blocks"

	w := performJSON(r, http.MethodDelete, base+"/99", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	w = performJSON(r, http.MethodPatch, base+"/99/move", map[string]string{"direction": "up"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	w = performJSON(r, http.MethodDelete, base+"/1", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	stored, err := api.pages.Get(page.ID)
	require.NoError(t, err)
	require.Len(t, stored.Blocks, 1)
	assert.Equal(t, "intro", stored.Blocks[0].BlockID)
}
