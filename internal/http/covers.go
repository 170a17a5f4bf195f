package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CoversController handles book cover requests.
type CoversController struct {
	cache CoverFetcher
	books BookGetter
}

func NewCoversController(cache CoverFetcher, books BookGetter) *CoversController {
	return &CoversController{
		cache: cache,
		books: books,
	}
}

// GetCover serves a cached book cover image.
// GET /api/books/:id/cover
func (cc *CoversController) GetCover(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := cc.books.GetBook(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "get book for cover")
		return
	}
	if book == nil || book.ImageURL == "" {
		c.Status(http.StatusNotFound)
		return
	}

	cachePath, err := cc.cache.GetCover(c.Request.Context(), id, book.ImageURL)
	if err != nil {
		// Fall back to the original URL
		log.Printf("Cover cache miss for book %d: %v", id, err)
		c.Redirect(http.StatusTemporaryRedirect, book.ImageURL)
		return
	}

	c.File(cachePath)
}
