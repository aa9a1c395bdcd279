package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/intraportal/internal/db"
	"github.com/intraportal/internal/handler"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T, uploadDir string) *gin.Engine {
	return setupRouterWithAssets(t, uploadDir, "")
}

func setupRouterWithAssets(t *testing.T, uploadDir, staticDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_").Replace(t.Name())
	gdb, err := db.Open("file:"+name+"?mode=memory&cache=shared", logger.Silent)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	api, err := handler.NewAPI(gdb, handler.Options{
		JWTSecret: "router-test-secret",
		TokenTTL:  time.Hour,
		UploadDir: uploadDir,
		UploadURL: "/static/uploads",
	})
	if err != nil {
		t.Fatalf("failed to build api: %v", err)
	}

	r, err := SetupRouter(api, Options{
		SessionSecret: "test-secret",
		UploadDir:     uploadDir,
		UploadURLPath: "/static/uploads",
		StaticDir:     staticDir,
	})
	if err != nil {
		t.Fatalf("failed to set up router: %v", err)
	}
	return r
}

func TestSetupRouterServesUploadsAlias(t *testing.T) {
	uploadDir := t.TempDir()
	fileName := "example.txt"
	fileContent := []byte("hello uploads")
	if err := os.WriteFile(filepath.Join(uploadDir, fileName), fileContent, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	r := setupRouter(t, uploadDir)

	for _, path := range []string{"/uploads/" + fileName, "/static/uploads/" + fileName} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusOK, rr.Code)
		}
		if rr.Body.String() != string(fileContent) {
			t.Fatalf("%s: unexpected body, got %q", path, rr.Body.String())
		}
	}
}

func TestSetupRouterProtectsAdminRoutes(t *testing.T) {
	r := setupRouter(t, t.TempDir())

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/ping", http.StatusOK},
		{http.MethodGet, "/api/news", http.StatusOK},
		{http.MethodGet, "/api/menus", http.StatusOK},
		{http.MethodGet, "/api/block-types", http.StatusOK},
		{http.MethodPost, "/api/news", http.StatusUnauthorized},
		{http.MethodPut, "/api/menus/reorder", http.StatusUnauthorized},
		{http.MethodPost, "/api/seed", http.StatusUnauthorized},
		{http.MethodGet, "/api/users", http.StatusUnauthorized},
		{http.MethodGet, "/admin/pages/1/preview", http.StatusUnauthorized},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != tt.want {
			t.Fatalf("%s %s: expected %d, got %d", tt.method, tt.path, tt.want, rr.Code)
		}
	}
}

func TestSetupRouterRendersHTMLNotFound(t *testing.T) {
	r := setupRouter(t, t.TempDir())

	for _, path := range []string{"/page/missing", "/no/such/route"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Page not found") {
			t.Fatalf("%s: expected not found page, got %q", path, rr.Body.String())
		}
	}
}

func TestSetupRouterServesLayoutStylesheet(t *testing.T) {
	staticDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(staticDir, "css"), 0o755); err != nil {
		t.Fatalf("failed to create css dir: %v", err)
	}
	css := []byte("body { margin: 0; }")
	if err := os.WriteFile(filepath.Join(staticDir, "css", "portal.css"), css, 0o644); err != nil {
		t.Fatalf("failed to write stylesheet: %v", err)
	}

	r := setupRouterWithAssets(t, t.TempDir(), staticDir)

	req := httptest.NewRequest(http.MethodGet, "/page/missing", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	href := StaticAssetsPath + "/css/portal.css"
	if !strings.Contains(rr.Body.String(), `href="`+href+`"`) {
		t.Fatalf("expected layout to link %s, got:\n%s", href, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, href, nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected stylesheet to be served, got %d", rr.Code)
	}
	if rr.Body.String() != string(css) {
		t.Fatalf("unexpected stylesheet body %q", rr.Body.String())
	}
}
