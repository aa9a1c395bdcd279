package service

import (
	"testing"
	"time"

	"github.com/intraportal/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedPopulatesEmptyPortalOnce(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewSeedService(gdb)

	first, err := svc.Seed(SeedOptions{})
	require.NoError(t, err)
	assert.True(t, first.MenusSeeded)
	assert.True(t, first.DataSeeded)
	assert.Equal(t, "Data seeded successfully", first.Message)

	tree, err := NewMenuService(gdb).Tree(true)
	require.NoError(t, err)
	require.Len(t, tree, 4)
	for _, root := range tree {
		assert.Len(t, root.Children, 3, root.Label)
	}

	news, err := NewNewsService(gdb).List(NewsFilter{})
	require.NoError(t, err)
	require.Len(t, news, 5)
	assert.True(t, news[0].IsFeatured, "seeded order should survive newest-first sorting")

	_, _, err = NewAuthService(gdb, "secret", time.Hour).Login(DefaultAdminEmail, DefaultAdminPassword)
	require.NoError(t, err)

	second, err := svc.Seed(SeedOptions{})
	require.NoError(t, err)
	assert.False(t, second.MenusSeeded)
	assert.False(t, second.DataSeeded)
	assert.Equal(t, "Data already seeded", second.Message)

	var count int64
	require.NoError(t, gdb.Model(&db.MenuItem{}).Count(&count).Error)
	assert.EqualValues(t, 16, count)
}

func TestSeedUsesConfiguredAdmin(t *testing.T) {
	gdb := setupTestDB(t)
	_, err := NewSeedService(gdb).Seed(SeedOptions{AdminEmail: "ops@example.com", AdminPassword: "correct horse"})
	require.NoError(t, err)

	users, err := NewUserService(gdb).List()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ops@example.com", users[0].Email)
	assert.True(t, users[0].IsAdmin())
}

func TestSeedKeepsExistingMenus(t *testing.T) {
	gdb := setupTestDB(t)
	_, err := NewMenuService(gdb).Create(MenuInput{Label: "Custom"})
	require.NoError(t, err)

	result, err := NewSeedService(gdb).Seed(SeedOptions{})
	require.NoError(t, err)
	assert.False(t, result.MenusSeeded)
	assert.True(t, result.DataSeeded)

	flat, err := NewMenuService(gdb).Flat()
	require.NoError(t, err)
	assert.Len(t, flat, 1)
}
