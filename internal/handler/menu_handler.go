package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/intraportal/internal/service"
)

type menuPayload struct {
	Label        string `json:"label"`
	Path         string `json:"path"`
	PageID       *uint  `json:"page_id"`
	Icon         string `json:"icon"`
	ParentID     *uint  `json:"parent_id"`
	Order        *int   `json:"order"`
	IsVisible    *bool  `json:"is_visible"`
	OpenInNewTab bool   `json:"open_in_new_tab"`
}

func (p menuPayload) toInput() service.MenuInput {
	return service.MenuInput{
		Label:        p.Label,
		Path:         p.Path,
		PageID:       p.PageID,
		Icon:         p.Icon,
		ParentID:     p.ParentID,
		Order:        p.Order,
		IsVisible:    p.IsVisible,
		OpenInNewTab: p.OpenInNewTab,
	}
}

type menuUpdatePayload struct {
	Label        *string `json:"label"`
	Path         *string `json:"path"`
	PageID       *uint   `json:"page_id"`
	Icon         *string `json:"icon"`
	ParentID     *uint   `json:"parent_id"`
	Order        *int    `json:"order"`
	IsVisible    *bool   `json:"is_visible"`
	OpenInNewTab *bool   `json:"open_in_new_tab"`
}

func (p menuUpdatePayload) toUpdate() service.MenuUpdate {
	return service.MenuUpdate{
		Label:        p.Label,
		Path:         p.Path,
		PageID:       p.PageID,
		Icon:         p.Icon,
		ParentID:     p.ParentID,
		Order:        p.Order,
		IsVisible:    p.IsVisible,
		OpenInNewTab: p.OpenInNewTab,
	}
}

type menuReorderPayload struct {
	Items []service.MenuOrder `json:"items"`
}

type menuMovePayload struct {
	Direction string `json:"direction"`
}

// MenuTree returns the nested menu. ?visible_only=true hides hidden items
// together with their subtrees.
func (a *API) MenuTree(c *gin.Context) {
	nodes, err := a.menus.Tree(queryBool(c, "visible_only"))
	if err != nil {
		a.respondServiceError(c, err, "failed to load menu")
		return
	}
	c.JSON(http.StatusOK, nodes)
}

// ListMenuItems returns every menu item as a flat list.
func (a *API) ListMenuItems(c *gin.Context) {
	items, err := a.menus.Flat()
	if err != nil {
		a.respondServiceError(c, err, "failed to load menu")
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateMenuItem adds a menu item.
func (a *API) CreateMenuItem(c *gin.Context) {
	var payload menuPayload
	if !bindJSON(c, &payload, "invalid menu payload") {
		return
	}
	item, err := a.menus.Create(payload.toInput())
	if err != nil {
		a.respondServiceError(c, err, "failed to create menu item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem applies a partial update.
func (a *API) UpdateMenuItem(c *gin.Context) {
	id, ok := idParam(c, "invalid menu id")
	if !ok {
		return
	}
	var payload menuUpdatePayload
	if !bindJSON(c, &payload, "invalid menu payload") {
		return
	}
	item, err := a.menus.Update(id, payload.toUpdate())
	if err != nil {
		a.respondServiceError(c, err, "failed to update menu item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// ToggleMenuVisibility flips is_visible.
func (a *API) ToggleMenuVisibility(c *gin.Context) {
	id, ok := idParam(c, "invalid menu id")
	if !ok {
		return
	}
	item, err := a.menus.ToggleVisibility(id)
	if err != nil {
		a.respondServiceError(c, err, "failed to update menu item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem removes an item and its descendants.
func (a *API) DeleteMenuItem(c *gin.Context) {
	id, ok := idParam(c, "invalid menu id")
	if !ok {
		return
	}
	if err := a.menus.Delete(id); err != nil {
		a.respondServiceError(c, err, "failed to delete menu item")
		return
	}
	respondMessage(c, "Menu item deleted successfully")
}

// ReorderMenu applies a batch of order and parent changes atomically.
func (a *API) ReorderMenu(c *gin.Context) {
	var payload menuReorderPayload
	if !bindJSON(c, &payload, "invalid reorder payload") {
		return
	}
	if err := a.menus.Reorder(payload.Items); err != nil {
		a.respondServiceError(c, err, "failed to reorder menu")
		return
	}
	respondMessage(c, "Menu reordered successfully")
}

// MoveMenuItem swaps an item with its previous or next sibling.
func (a *API) MoveMenuItem(c *gin.Context) {
	id, ok := idParam(c, "invalid menu id")
	if !ok {
		return
	}
	var payload menuMovePayload
	if !bindJSON(c, &payload, "invalid move payload") {
		return
	}

	var up bool
	switch strings.ToLower(strings.TrimSpace(payload.Direction)) {
	case "up":
		up = true
	case "down":
	default:
		respondError(c, http.StatusBadRequest, "direction must be up or down")
		return
	}

	if err := a.menus.MoveSibling(id, up); err != nil {
		a.respondServiceError(c, err, "failed to move menu item")
		return
	}
	respondMessage(c, "Menu item moved")
}
