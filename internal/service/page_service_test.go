package service

import (
	"context"
	"testing"

	"github.com/intraportal/internal/block"
	"github.com/intraportal/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPageService(t *testing.T) (*PageService, *MenuService) {
	t.Helper()
	gdb := setupTestDB(t)
	templates, err := NewTemplateService()
	require.NoError(t, err)
	return NewPageService(gdb, templates), NewMenuService(gdb)
}

func textBlock(id, heading string) block.Block {
	return block.Block{ID: id, Type: block.TypeText, Content: block.Content{"heading": heading, "body": "..."}}
}

func TestPageCreateSlugifiesAndDefaultsToPublished(t *testing.T) {
	svc, _ := newTestPageService(t)

	page, err := svc.Create(PageInput{Title: "Corporate Philosophy", Slug: "  Corporate Philosophy!! "})
	require.NoError(t, err)
	assert.Equal(t, "corporate-philosophy", page.Slug)
	assert.True(t, page.IsPublished)
	assert.Empty(t, page.Blocks)

	fromTitle, err := svc.Create(PageInput{Title: "Café Menü"})
	require.NoError(t, err)
	assert.Equal(t, "cafe-menu", fromTitle.Slug)
}

func TestPageCreateRejectsDuplicateSlugAndEmptyTitle(t *testing.T) {
	svc, _ := newTestPageService(t)

	_, err := svc.Create(PageInput{Title: "About", Slug: "about"})
	require.NoError(t, err)

	_, err = svc.Create(PageInput{Title: "About again", Slug: "About"})
	assert.ErrorIs(t, err, ErrSlugTaken)

	_, err = svc.Create(PageInput{Title: "   "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPageCreateSeedsBlocksFromTemplate(t *testing.T) {
	svc, _ := newTestPageService(t)

	page, err := svc.Create(PageInput{Title: "Who we are", Template: "corporate"})
	require.NoError(t, err)
	require.Len(t, page.Blocks, 4)
	assert.Equal(t, "hero_banner", page.Blocks[0].Type)
	assert.Equal(t, "cards", page.Blocks[3].Type)
	for i, row := range page.Blocks {
		assert.Equal(t, i, row.SortOrder)
		assert.NotEmpty(t, row.BlockID)
	}

	second, err := svc.Create(PageInput{Title: "Who we are too", Template: "corporate"})
	require.NoError(t, err)
	assert.NotEqual(t, page.Blocks[0].BlockID, second.Blocks[0].BlockID)

	_, err = svc.Create(PageInput{Title: "Nope", Template: "does-not-exist"})
	assert.ErrorIs(t, err, ErrValidation)

	explicit, err := svc.Create(PageInput{Title: "Explicit", Template: "corporate", Blocks: []block.Block{}})
	require.NoError(t, err)
	assert.Empty(t, explicit.Blocks)
}

func TestPageUpdateReplacesBlockList(t *testing.T) {
	svc, _ := newTestPageService(t)
	page, err := svc.Create(PageInput{Title: "Policies", Blocks: []block.Block{
		textBlock("a", "One"), textBlock("b", "Two"), textBlock("c", "Three"),
	}})
	require.NoError(t, err)
	require.Len(t, page.Blocks, 3)

	replacement := []block.Block{textBlock("c", "Three"), textBlock("a", "One edited")}
	updated, err := svc.Update(page.ID, PageUpdate{Blocks: &replacement})
	require.NoError(t, err)

	blocks := PageBlocks(updated)
	require.Len(t, blocks, 2)
	assert.Equal(t, "c", blocks[0].ID)
	assert.Equal(t, "a", blocks[1].ID)
	assert.Equal(t, "One edited", blocks[1].Content.String("heading"))
	assert.Equal(t, 1, blocks[1].Order)

	var count int64
	require.NoError(t, svc.db.Model(&db.PageBlock{}).Where("page_id = ?", page.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestPageUpdateRollsBackOnInvalidBlock(t *testing.T) {
	svc, _ := newTestPageService(t)
	page, err := svc.Create(PageInput{Title: "Safety", Blocks: []block.Block{textBlock("a", "Keep")}})
	require.NoError(t, err)

	title := "Renamed"
	bad := []block.Block{{ID: "x", Content: block.Content{}}}
	_, err = svc.Update(page.ID, PageUpdate{Title: &title, Blocks: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	stored, err := svc.Get(page.ID)
	require.NoError(t, err)
	assert.Equal(t, "Safety", stored.Title)
	require.Len(t, stored.Blocks, 1)
	assert.Equal(t, "a", stored.Blocks[0].BlockID)
}

func TestPageUpdateRegeneratesDuplicateBlockIDs(t *testing.T) {
	svc, _ := newTestPageService(t)
	page, err := svc.Create(PageInput{Title: "Dupes", Blocks: []block.Block{
		textBlock("same", "One"), textBlock("same", "Two"), textBlock("", "Three"),
	}})
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, row := range page.Blocks {
		assert.NotEmpty(t, row.BlockID)
		assert.False(t, seen[row.BlockID], "duplicate id %s", row.BlockID)
		seen[row.BlockID] = true
	}
}

func TestPageSlugChangeRefreshesMenuPaths(t *testing.T) {
	svc, menus := newTestPageService(t)
	page, err := svc.Create(PageInput{Title: "History", Slug: "history"})
	require.NoError(t, err)

	item, err := menus.Create(MenuInput{Label: "History", PageID: &page.ID})
	require.NoError(t, err)
	assert.Equal(t, "/page/history", item.Path)

	slug := "our-history"
	_, err = svc.Update(page.ID, PageUpdate{Slug: &slug})
	require.NoError(t, err)

	reloaded, err := menus.Get(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "/page/our-history", reloaded.Path)
}

func TestPageGetPublishedBySlugHidesDrafts(t *testing.T) {
	svc, _ := newTestPageService(t)
	draft, err := svc.Create(PageInput{Title: "Draft", IsPublished: boolPtr(false)})
	require.NoError(t, err)

	_, err = svc.GetPublishedBySlug("draft")
	assert.ErrorIs(t, err, ErrPageNotFound)

	_, err = svc.SetPublished(draft.ID, true)
	require.NoError(t, err)
	page, err := svc.GetPublishedBySlug("draft")
	require.NoError(t, err)
	assert.Equal(t, draft.ID, page.ID)
}

func TestPageListFiltersAndSortsByTitle(t *testing.T) {
	svc, _ := newTestPageService(t)
	for _, title := range []string{"Zeta", "Alpha", "Mid"} {
		_, err := svc.Create(PageInput{Title: title})
		require.NoError(t, err)
	}
	_, err := svc.Create(PageInput{Title: "Hidden", IsPublished: boolPtr(false)})
	require.NoError(t, err)

	all, err := svc.List(PageFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Alpha", all[0].Title)

	published, err := svc.List(PageFilter{PublishedOnly: true})
	require.NoError(t, err)
	assert.Len(t, published, 3)

	found, err := svc.List(PageFilter{Search: "ZE"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Zeta", found[0].Title)
}

func TestPageDuplicateCreatesUnpublishedCopy(t *testing.T) {
	svc, _ := newTestPageService(t)
	source, err := svc.Create(PageInput{Title: "Overview", Template: "landing"})
	require.NoError(t, err)

	copyPage, err := svc.Duplicate(source.ID)
	require.NoError(t, err)
	assert.Equal(t, "Overview (Copy)", copyPage.Title)
	assert.Contains(t, copyPage.Slug, "overview-copy-")
	assert.False(t, copyPage.IsPublished)
	require.Len(t, copyPage.Blocks, len(source.Blocks))
	for i := range source.Blocks {
		assert.Equal(t, source.Blocks[i].Type, copyPage.Blocks[i].Type)
		assert.NotEqual(t, source.Blocks[i].BlockID, copyPage.Blocks[i].BlockID)
	}
}

func TestPageDeleteDetachesMenuItems(t *testing.T) {
	svc, menus := newTestPageService(t)
	page, err := svc.Create(PageInput{Title: "SOP", Template: "service"})
	require.NoError(t, err)
	item, err := menus.Create(MenuInput{Label: "SOP", PageID: &page.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(page.ID))
	_, err = svc.Get(page.ID)
	assert.ErrorIs(t, err, ErrPageNotFound)
	assert.ErrorIs(t, svc.Delete(page.ID), ErrPageNotFound)

	reloaded, err := menus.Get(item.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.PageID)
	assert.Equal(t, "/page/sop", reloaded.Path)

	var blocks int64
	require.NoError(t, svc.db.Model(&db.PageBlock{}).Where("page_id = ?", page.ID).Count(&blocks).Error)
	assert.Zero(t, blocks)
}

func TestPageDraftSavesThroughService(t *testing.T) {
	svc, _ := newTestPageService(t)
	page, err := svc.Create(PageInput{Title: "Editor", Blocks: []block.Block{textBlock("a", "First")}})
	require.NoError(t, err)

	draft := block.NewDraft()
	draft.Load(PageData(page))
	_, err = draft.AddBlock(block.TypeDivider)
	require.NoError(t, err)
	require.NoError(t, draft.MoveBlock(1, block.Up))
	require.NoError(t, draft.SetTitle("Editor v2"))
	require.NoError(t, draft.Save(context.Background(), svc))
	assert.Equal(t, block.StateReady, draft.State())

	stored, err := svc.Get(page.ID)
	require.NoError(t, err)
	assert.Equal(t, "Editor v2", stored.Title)
	require.Len(t, stored.Blocks, 2)
	assert.Equal(t, "divider", stored.Blocks[0].Type)
	assert.Equal(t, "a", stored.Blocks[1].BlockID)
}
