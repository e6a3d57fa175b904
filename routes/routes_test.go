package routes_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"inkwell/config"
	"inkwell/handlers"
	"inkwell/routes"
	"inkwell/store"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		JWTSecret:          "routes-test-secret",
		TokenTTLH:          1,
		PublicBaseURL:      "http://localhost:4000",
		UploadDir:          t.TempDir(),
		RateLimitPerMinute: 10000,
	}
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	r := routes.SetupRouter(handlers.New(store.NewMemory(), cfg), cfg)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Fatalf("health check failed: %d %q", w.Code, w.Body.String())
	}
}

func TestStaticImageServing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)

	imagesDir := filepath.Join(cfg.UploadDir, "images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(imagesDir, "post_1.png"), []byte("png bytes"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := routes.SetupRouter(handlers.New(store.NewMemory(), cfg), cfg)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/images/post_1.png", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected static file, got %d", w.Code)
	}
	if w.Body.String() != "png bytes" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	r := routes.SetupRouter(handlers.New(store.NewMemory(), cfg), cfg)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/addpost"},
		{http.MethodGet, "/myposts"},
		{http.MethodPut, "/updatepost/64f000000000000000000000"},
		{http.MethodGet, "/getUser"},
	}

	for _, route := range protected {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without token, got %d", route.method, route.path, w.Code)
		}
	}
}
