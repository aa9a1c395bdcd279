package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/intraportal/internal/db"
	"github.com/intraportal/internal/service"
	"github.com/intraportal/internal/view"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "handler-test-secret"

func setupTestAPI(t *testing.T) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(db.Models()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	api, err := NewAPI(gdb, Options{
		JWTSecret:    testSecret,
		TokenTTL:     time.Hour,
		UploadDir:    t.TempDir(),
		UploadURL:    "/uploads",
		EmbedTimeout: time.Second,
		SiteBaseURL:  "http://portal.test",
	})
	if err != nil {
		t.Fatalf("failed to build api: %v", err)
	}
	api.now = func() time.Time { return time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC) }
	return api
}

// newTestEngine returns an engine with sessions and the page templates loaded.
func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("session-secret"))))
	tmpl, err := view.Templates()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	r.SetHTMLTemplate(tmpl)
	return r
}

func createTestUser(t *testing.T, api *API, email, role string) (*db.User, string) {
	t.Helper()
	user, err := api.users.Create(service.UserInput{
		Email:    email,
		Name:     strings.Split(email, "@")[0],
		Password: "password123",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	token, err := api.auth.Issue(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return user, token
}

func performJSON(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func uintString(v uint) string { return strconv.FormatUint(uint64(v), 10) }

func boolPtr(v bool) *bool { return &v }
