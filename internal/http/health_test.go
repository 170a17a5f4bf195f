package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookshelf/internal/demo"
	"github.com/mrlokans/bookshelf/internal/entities"
)

type failingPinger struct{}

func (failingPinger) Ping() error { return errors.New("database is locked") }

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database is connected", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		w := env.do(t, "GET", "/health", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decode[HealthResponse](t, w)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "test", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.NotEmpty(t, response.Time)
	})

	t.Run("returns unavailable when ping fails", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/health", NewHealthController(failingPinger{}, "").Status)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		response := decode[HealthResponse](t, w)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "database is locked")
	})

	t.Run("reports missing database", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/health", NewHealthController(nil, "").Status)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "not configured", decode[HealthResponse](t, w).Checks["database"])
	})
}

func TestNewRouter_OptionalRoutes(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	gin.SetMode(gin.TestMode)

	router := NewRouter(RouterConfig{
		Books:    env.catalog,
		Lookups:  env.catalog,
		Settings: env.catalog,
		Database: env.db,
	})

	for _, path := range []string{"/api/maintenance/cleanup-links", "/api/books/1/enrich"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", path, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestNewRouter_DemoModeIsReadOnly(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	createHobbit(t, env)

	router := NewRouter(RouterConfig{
		Books:          env.catalog,
		Lookups:        env.catalog,
		Settings:       env.catalog,
		Database:       env.db,
		DemoMiddleware: demo.NewMiddleware(true),
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/books", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/api/books/1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	books, err := env.catalog.ListBooks(req.Context(), entities.BookFilter{})
	assert.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestSecurityHeaders(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	w := env.do(t, "GET", "/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'none'")
}
