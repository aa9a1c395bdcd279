package service

import (
	"testing"
	"time"

	"github.com/intraportal/internal/db"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectFeaturedPrefersFeaturedItems(t *testing.T) {
	items := []db.News{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B", IsFeatured: true},
		{ID: 3, Title: "C"},
	}
	picked := SelectFeatured(items, 3)
	require.NotEmpty(t, picked)
	assert.Equal(t, "B", picked[0].Title)
	assert.Len(t, picked, 1)
}

func TestSelectFeaturedFallsBackToFirstItems(t *testing.T) {
	items := []db.News{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	picked := SelectFeatured(items, 3)
	require.Len(t, picked, 3)
	assert.Equal(t, []uint{1, 2, 3}, []uint{picked[0].ID, picked[1].ID, picked[2].ID})

	assert.Empty(t, SelectFeatured(nil, 3))
	assert.Len(t, SelectFeatured(items, 0), 4)
}

func TestSelectFeaturedProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("result is an ordered subsequence capped at n", prop.ForAll(
		func(flags []bool, n int) bool {
			items := make([]db.News, len(flags))
			for i, f := range flags {
				items[i] = db.News{ID: uint(i + 1), IsFeatured: f}
			}
			picked := SelectFeatured(items, n)
			if n > 0 && len(picked) > n {
				return false
			}
			var last uint
			anyFeatured := false
			for _, f := range flags {
				anyFeatured = anyFeatured || f
			}
			for _, p := range picked {
				if p.ID <= last {
					return false
				}
				if anyFeatured && !p.IsFeatured {
					return false
				}
				last = p.ID
			}
			return len(items) == 0 || len(picked) > 0
		},
		gen.SliceOf(gen.Bool()),
		gen.IntRange(0, 6),
	))

	properties.TestingRun(t)
}

func TestNewsListNewestFirstAndFeaturedFilter(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewNewsService(gdb)

	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"Old", "Middle", "New"} {
		item := db.News{Title: title, Content: "body", Category: "general", IsFeatured: title == "Middle"}
		item.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, gdb.Create(&item).Error)
	}

	items, err := svc.List(NewsFilter{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "New", items[0].Title)

	featured, err := svc.List(NewsFilter{Featured: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Middle", featured[0].Title)

	highlight, err := svc.Featured(3)
	require.NoError(t, err)
	require.Len(t, highlight, 1)
	assert.Equal(t, "Middle", highlight[0].Title)
}

func TestNewsCRUD(t *testing.T) {
	svc := NewNewsService(setupTestDB(t))

	_, err := svc.Create(NewsInput{Title: "No content"})
	assert.ErrorIs(t, err, ErrValidation)

	item, err := svc.Create(NewsInput{Title: " Safety milestone ", Content: "1000 days"})
	require.NoError(t, err)
	assert.Equal(t, "Safety milestone", item.Title)
	assert.Equal(t, "general", item.Category)

	updated, err := svc.Update(item.ID, NewsUpdate{Category: stringPtr("Safety"), IsFeatured: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "safety", updated.Category)
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, "1000 days", updated.Content)

	count, err := svc.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, svc.Delete(item.ID))
	assert.ErrorIs(t, svc.Delete(item.ID), ErrNewsNotFound)
	_, err = svc.Get(item.ID)
	assert.ErrorIs(t, err, ErrNewsNotFound)
}
