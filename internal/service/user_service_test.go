package service

import (
	"testing"

	"github.com/intraportal/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserCreateHashesPasswordAndDefaultsRole(t *testing.T) {
	svc := NewUserService(setupTestDB(t))

	user, err := svc.Create(UserInput{
		Email:       " Siti@GYS.co.id ",
		Name:        "Siti",
		Password:    "hunter2",
		Permissions: []string{"news", " news ", "", "pages"},
	})
	require.NoError(t, err)
	assert.Equal(t, "siti@gys.co.id", user.Email)
	assert.Equal(t, db.RoleEditor, user.Role)
	assert.Equal(t, db.StringList{"news", "pages"}, user.Permissions)
	assert.NotEqual(t, "hunter2", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter2")))
}

func TestUserCreateValidatesInput(t *testing.T) {
	svc := NewUserService(setupTestDB(t))
	_, err := svc.Create(UserInput{Email: "a@b.co", Name: "A", Password: "x"})
	require.NoError(t, err)

	cases := map[string]UserInput{
		"email taken":  {Email: "A@B.co", Name: "Dup", Password: "x"},
		"bad email":    {Email: "not-an-email", Name: "N", Password: "x"},
		"missing name": {Email: "n@b.co", Password: "x"},
		"missing pass": {Email: "p@b.co", Name: "P"},
		"bad role":     {Email: "r@b.co", Name: "R", Password: "x", Role: "owner"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(input)
			require.Error(t, err)
			if name == "email taken" {
				assert.ErrorIs(t, err, ErrEmailTaken)
				return
			}
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUserUpdateRehashesPasswordAndKeepsOtherFields(t *testing.T) {
	svc := NewUserService(setupTestDB(t))
	user, err := svc.Create(UserInput{Email: "it@gys.co.id", Name: "IT", Password: "old", Role: "admin"})
	require.NoError(t, err)

	updated, err := svc.Update(user.ID, UserUpdate{Password: stringPtr("new")})
	require.NoError(t, err)
	assert.Equal(t, "IT", updated.Name)
	assert.True(t, updated.IsAdmin())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("new")))

	_, err = svc.Update(999, UserUpdate{Name: stringPtr("ghost")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc := NewUserService(setupTestDB(t))

	first, created, err := svc.EnsureAdmin("admin@gys.co.id", "admin123")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, db.RoleAdmin, first.Role)

	second, created, err := svc.EnsureAdmin("ADMIN@gys.co.id", "different")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	users, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
