package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/intraportal/internal/db"
	"github.com/intraportal/internal/service"
)

const (
	sessionTokenKey  = "token"
	sessionUserIDKey = "user_id"
	currentUserKey   = "current_user"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 校验邮箱密码，返回 JWT 并写入会话
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, "invalid login payload") {
		return
	}

	token, user, err := a.auth.Login(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		a.respondServiceError(c, err, "login failed")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionTokenKey, token)
	session.Set(sessionUserIDKey, user.ID)
	if err := session.Save(); err != nil {
		a.respondServiceError(c, err, "failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout 清除会话中的令牌
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	respondMessage(c, "Logged out")
}

// Me returns the authenticated account.
func (a *API) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	c.JSON(http.StatusOK, user)
}

// AuthRequired accepts a bearer token and falls back to the session token.
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			if stored, ok := sessions.Default(c).Get(sessionTokenKey).(string); ok {
				raw = stored
			}
		}
		if raw == "" {
			respondError(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}

		claims, err := a.auth.Verify(raw)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, service.ErrTokenExpired) {
				message = "Token expired"
			}
			respondError(c, http.StatusUnauthorized, message)
			c.Abort()
			return
		}

		user, err := a.auth.CurrentUser(claims)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				respondError(c, http.StatusUnauthorized, "User not found")
			} else {
				a.respondServiceError(c, err, "failed to load user")
			}
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func (a *API) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok || !user.IsAdmin() {
			respondError(c, http.StatusForbidden, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (*db.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*db.User)
	return user, ok && user != nil
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
