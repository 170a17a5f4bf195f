package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LookupsController serves the flat author, category and location lists.
type LookupsController struct {
	catalog LookupCatalog
}

func NewLookupsController(catalog LookupCatalog) *LookupsController {
	return &LookupsController{catalog: catalog}
}

// ListAuthors handles GET /api/authors
func (lc *LookupsController) ListAuthors(c *gin.Context) {
	authors, err := lc.catalog.ListAuthors(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"authors": authors})
}

// DeleteAuthor handles DELETE /api/authors/:id
// Books keep their link to the author until they are next updated.
func (lc *LookupsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := lc.catalog.DeleteAuthor(c.Request.Context(), id); err != nil {
		respondInternalError(c, err, "delete author")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCategories handles GET /api/categories
func (lc *LookupsController) ListCategories(c *gin.Context) {
	categories, err := lc.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListLocations handles GET /api/locations
func (lc *LookupsController) ListLocations(c *gin.Context) {
	locations, err := lc.catalog.ListLocations(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list locations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}
