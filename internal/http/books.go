package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

type BooksController struct {
	catalog BookCatalog
}

func NewBooksController(catalog BookCatalog) *BooksController {
	return &BooksController{
		catalog: catalog,
	}
}

// ListBooks handles GET /api/books?search=&id=
func (controller *BooksController) ListBooks(c *gin.Context) {
	id, ok := parseOptionalQueryID(c, "id")
	if !ok {
		return
	}

	result, err := controller.catalog.ListBooks(c.Request.Context(), entities.BookFilter{
		Search: c.Query("search"),
		ID:     id,
	})
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": result, "count": len(result)})
}

// GetBook handles GET /api/books/:id
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.catalog.GetBook(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	if book == nil {
		respondNotFound(c, "book")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

// CreateBook handles POST /api/books
func (controller *BooksController) CreateBook(c *gin.Context) {
	var draft entities.BookDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondBadRequest(c, "invalid book: "+err.Error())
		return
	}

	id, err := controller.catalog.CreateBook(c.Request.Context(), draft)
	if err != nil {
		respondWriteError(c, err, "create book")
		return
	}
	respondCreated(c, gin.H{"id": id})
}

// UpdateBook handles PUT /api/books/:id
func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var draft entities.BookDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondBadRequest(c, "invalid book: "+err.Error())
		return
	}

	if err := controller.catalog.UpdateBook(c.Request.Context(), id, draft); err != nil {
		respondWriteError(c, err, "update book")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteBook handles DELETE /api/books/:id
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.catalog.DeleteBook(c.Request.Context(), id); err != nil {
		respondInternalError(c, err, "delete book")
		return
	}
	c.Status(http.StatusNoContent)
}

func respondWriteError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, books.ErrBookNotFound):
		respondNotFound(c, "book")
	case errors.Is(err, books.ErrReferenceNotFound),
		errors.Is(err, services.ErrEmptyBookName):
		respondBadRequest(c, err.Error())
	default:
		respondInternalError(c, err, context)
	}
}
