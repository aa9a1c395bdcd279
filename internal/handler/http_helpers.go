package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/intraportal/internal/block"
	"github.com/intraportal/internal/service"
	"go.uber.org/zap"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// idParam parses :id and answers 400 itself when it is malformed.
func idParam(c *gin.Context, message string) (uint, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}

func queryBool(c *gin.Context, key string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return err == nil && value
}

func queryOptionalBool(c *gin.Context, key string) *bool {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

func queryInt(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func queryOptionalUint(c *gin.Context, key string) *uint {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Query(key)), 10, 32)
	if err != nil || value == 0 {
		return nil
	}
	id := uint(value)
	return &id
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, block.ErrTitleRequired),
		errors.Is(err, block.ErrSlugRequired),
		errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrMenuDepthExceeded),
		errors.Is(err, service.ErrMenuCycle),
		errors.Is(err, service.ErrMenuParentNotFound),
		errors.Is(err, service.ErrMenuOrder),
		errors.Is(err, service.ErrEmbedURLInvalid),
		errors.Is(err, service.ErrUploadNotImage),
		errors.Is(err, service.ErrUploadEmpty):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrTokenExpired),
		errors.Is(err, service.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrEmbedTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, service.ErrPageNotFound),
		errors.Is(err, service.ErrMenuItemNotFound),
		errors.Is(err, service.ErrNewsNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrAlbumNotFound),
		errors.Is(err, service.ErrPhotoNotFound),
		errors.Is(err, service.ErrEmployeeNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, block.ErrBlockNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError answers with the mapped status. Client errors carry the
// error text; server errors are logged and answered with fallback.
func (a *API) respondServiceError(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		a.logger.Error(fallback,
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		respondError(c, status, fallback)
		return
	}
	respondError(c, status, err.Error())
}
