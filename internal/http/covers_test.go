package http

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func TestCoversController_GetCover(t *testing.T) {
	t.Run("serves the cached file", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()
		id, err := env.catalog.CreateBook(context.Background(), entities.BookDraft{
			Name:     "Dune",
			ImageURL: "https://covers.example/dune.jpg",
		})
		require.NoError(t, err)

		env.covers.path = filepath.Join(t.TempDir(), "cover.jpg")
		require.NoError(t, os.WriteFile(env.covers.path, []byte("jpeg-bytes"), 0644))

		w := env.do(t, "GET", "/api/books/"+strconv.Itoa(int(id))+"/cover", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "jpeg-bytes", w.Body.String())
		assert.Equal(t, []string{"https://covers.example/dune.jpg"}, env.covers.calls)
	})

	t.Run("redirects when the cache fails", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()
		id, err := env.catalog.CreateBook(context.Background(), entities.BookDraft{
			Name:     "Dune",
			ImageURL: "https://covers.example/dune.jpg",
		})
		require.NoError(t, err)
		env.covers.err = errors.New("offline")

		w := env.do(t, "GET", "/api/books/"+strconv.Itoa(int(id))+"/cover", nil)

		assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
		assert.Equal(t, "https://covers.example/dune.jpg", w.Header().Get("Location"))
	})

	t.Run("returns 404 without an image url", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()
		id, err := env.catalog.CreateBook(context.Background(), entities.BookDraft{Name: "Dune"})
		require.NoError(t, err)

		w := env.do(t, "GET", "/api/books/"+strconv.Itoa(int(id))+"/cover", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, env.covers.calls)
	})

	t.Run("returns 404 for a missing book", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		w := env.do(t, "GET", "/api/books/999/cover", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
