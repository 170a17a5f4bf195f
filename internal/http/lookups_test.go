package http

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func TestLookupsController_Lists(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	createHobbit(t, env)

	t.Run("authors", func(t *testing.T) {
		w := env.do(t, "GET", "/api/authors", nil)
		require.Equal(t, http.StatusOK, w.Code)
		response := decode[map[string][]entities.Author](t, w)
		require.Len(t, response["authors"], 1)
		assert.Equal(t, "J.R.R. Tolkien", response["authors"][0].Name)
	})

	t.Run("categories ordered by name", func(t *testing.T) {
		w := env.do(t, "GET", "/api/categories", nil)
		require.Equal(t, http.StatusOK, w.Code)
		response := decode[map[string][]entities.Category](t, w)
		require.Len(t, response["categories"], 2)
		assert.Equal(t, "Classics", response["categories"][0].Name)
		assert.Equal(t, "Fantasy", response["categories"][1].Name)
	})

	t.Run("locations", func(t *testing.T) {
		w := env.do(t, "GET", "/api/locations", nil)
		require.Equal(t, http.StatusOK, w.Code)
		response := decode[map[string][]entities.Location](t, w)
		require.Len(t, response["locations"], 1)
		assert.Equal(t, "Living room", response["locations"][0].Name)
	})
}

func TestLookupsController_EmptyListsAreArrays(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	for _, path := range []string{"/api/authors", "/api/categories", "/api/locations", "/api/settings"} {
		w := env.do(t, "GET", path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "[]", path)
	}
}

func TestLookupsController_DeleteAuthor(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	bookID := createHobbit(t, env)
	authors, err := env.catalog.ListAuthors(context.Background())
	require.NoError(t, err)

	w := env.do(t, "DELETE", "/api/authors/"+strconv.Itoa(int(authors[0].ID)), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	authors, err = env.catalog.ListAuthors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, authors)

	// The dangling link drops out of the hydrated view.
	book, err := env.catalog.GetBook(context.Background(), bookID)
	require.NoError(t, err)
	assert.Empty(t, book.Authors)
	assert.Len(t, book.Categories, 2)
}

func TestLookupsController_DeleteAuthor_InvalidID(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	w := env.do(t, "DELETE", "/api/authors/x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
