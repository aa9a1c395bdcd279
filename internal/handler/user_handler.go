package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/intraportal/internal/service"
)

type userPayload struct {
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

type userUpdatePayload struct {
	Email       *string   `json:"email"`
	Name        *string   `json:"name"`
	Password    *string   `json:"password"`
	Role        *string   `json:"role"`
	Permissions *[]string `json:"permissions"`
}

// ListUsers returns every account.
func (a *API) ListUsers(c *gin.Context) {
	users, err := a.users.List()
	if err != nil {
		a.respondServiceError(c, err, "failed to load users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns one account.
func (a *API) GetUser(c *gin.Context) {
	id, ok := idParam(c, "invalid user id")
	if !ok {
		return
	}
	user, err := a.users.Get(id)
	if err != nil {
		a.respondServiceError(c, err, "failed to load user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser registers an account.
func (a *API) CreateUser(c *gin.Context) {
	var payload userPayload
	if !bindJSON(c, &payload, "invalid user payload") {
		return
	}
	user, err := a.users.Create(service.UserInput{
		Email:       payload.Email,
		Name:        payload.Name,
		Password:    payload.Password,
		Role:        payload.Role,
		Permissions: payload.Permissions,
	})
	if err != nil {
		a.respondServiceError(c, err, "failed to create user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateUser applies a partial update. An empty password keeps the old one.
func (a *API) UpdateUser(c *gin.Context) {
	id, ok := idParam(c, "invalid user id")
	if !ok {
		return
	}
	var payload userUpdatePayload
	if !bindJSON(c, &payload, "invalid user payload") {
		return
	}
	if payload.Password != nil && *payload.Password == "" {
		payload.Password = nil
	}
	user, err := a.users.Update(id, service.UserUpdate{
		Email:       payload.Email,
		Name:        payload.Name,
		Password:    payload.Password,
		Role:        payload.Role,
		Permissions: payload.Permissions,
	})
	if err != nil {
		a.respondServiceError(c, err, "failed to update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (a *API) DeleteUser(c *gin.Context) {
	id, ok := idParam(c, "invalid user id")
	if !ok {
		return
	}
	if me, ok := currentUser(c); ok && me.ID == id {
		respondError(c, http.StatusBadRequest, "Cannot delete your own account")
		return
	}
	if err := a.users.Delete(id); err != nil {
		a.respondServiceError(c, err, "failed to delete user")
		return
	}
	respondMessage(c, "User deleted successfully")
}
