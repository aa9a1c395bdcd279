package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/intraportal/internal/block"
	"github.com/intraportal/internal/service"
)

type blockEditorResponse struct {
	Type       block.Type       `json:"type"`
	Definition block.Definition `json:"definition"`
	Fields     []block.Field    `json:"fields"`
	Defaults   block.Content    `json:"defaults"`
}

type addBlockPayload struct {
	Type    string        `json:"type"`
	Content block.Content `json:"content"`
}

type moveBlockPayload struct {
	Direction string `json:"direction"`
}

// ListBlockTypes returns the block registry and its picker grouping.
func (a *API) ListBlockTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"types":      block.All(),
		"categories": block.Categories(),
	})
}

// BlockEditor returns the form schema of one block type with empty defaults.
func (a *API) BlockEditor(c *gin.Context) {
	t := block.ParseType(c.Param("type"))
	def, ok := block.Lookup(t)
	if !ok {
		respondError(c, http.StatusNotFound, "unknown block type")
		return
	}
	editor := block.EditorFor(t)
	c.JSON(http.StatusOK, blockEditorResponse{
		Type:       t,
		Definition: def,
		Fields:     editor.Fields(),
		Defaults:   editor.Normalize(block.Content{}),
	})
}

// RenderBlock renders a single block to HTML for the editor preview pane.
func (a *API) RenderBlock(c *gin.Context) {
	var payload block.Block
	if !bindJSON(c, &payload, "invalid block payload") {
		return
	}
	payload.Type = block.ParseType(string(payload.Type))
	if !payload.Type.Known() {
		respondError(c, http.StatusBadRequest, "unknown block type")
		return
	}
	c.JSON(http.StatusOK, gin.H{"html": string(a.renderer.Render(payload))})
}

// AddPageBlock appends a block to a page through the editor draft.
func (a *API) AddPageBlock(c *gin.Context) {
	var payload addBlockPayload
	if !bindJSON(c, &payload, "invalid block payload") {
		return
	}
	t := block.ParseType(payload.Type)
	if !t.Known() {
		respondError(c, http.StatusBadRequest, "unknown block type")
		return
	}

	a.editPage(c, func(draft *block.Draft) error {
		if _, err := draft.AddBlock(t); err != nil {
			return err
		}
		if len(payload.Content) == 0 {
			return nil
		}
		return draft.UpdateBlock(len(draft.Blocks())-1, block.EditorFor(t).Normalize(payload.Content))
	}, http.StatusCreated)
}

// MovePageBlock swaps the block at :index with its neighbour.
func (a *API) MovePageBlock(c *gin.Context) {
	index, ok := blockIndexParam(c)
	if !ok {
		return
	}
	var payload moveBlockPayload
	if !bindJSON(c, &payload, "invalid move payload") {
		return
	}
	var dir block.Direction
	switch strings.ToLower(strings.TrimSpace(payload.Direction)) {
	case "up":
		dir = block.Up
	case "down":
		dir = block.Down
	default:
		respondError(c, http.StatusBadRequest, "direction must be up or down")
		return
	}

	a.editPage(c, func(draft *block.Draft) error {
		return draft.MoveBlock(index, dir)
	}, http.StatusOK)
}

// DeletePageBlock removes the block at :index.
func (a *API) DeletePageBlock(c *gin.Context) {
	index, ok := blockIndexParam(c)
	if !ok {
		return
	}
	a.editPage(c, func(draft *block.Draft) error {
		return draft.DeleteBlock(index)
	}, http.StatusOK)
}

// editPage loads :id into a draft, applies edit and saves the snapshot.
func (a *API) editPage(c *gin.Context, edit func(*block.Draft) error, status int) {
	id, ok := idParam(c, "invalid page id")
	if !ok {
		return
	}
	page, err := a.pages.Get(id)
	if err != nil {
		a.respondServiceError(c, err, "failed to load page")
		return
	}

	draft := block.NewDraft()
	draft.Load(service.PageData(page))
	if err := edit(draft); err != nil {
		a.respondServiceError(c, err, "failed to edit page")
		return
	}
	if err := draft.Save(c.Request.Context(), a.pages); err != nil {
		a.respondServiceError(c, err, "failed to save page")
		return
	}

	saved, err := a.pages.Get(id)
	if err != nil {
		a.respondServiceError(c, err, "failed to load page")
		return
	}
	c.JSON(status, saved)
}

func blockIndexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		respondError(c, http.StatusBadRequest, "invalid block index")
		return 0, false
	}
	return index, true
}
