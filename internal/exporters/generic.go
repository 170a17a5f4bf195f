package exporters

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type BookExporter interface {
	Export(books []entities.Book) (ExportResult, error)
}

// BookLister lists hydrated books.
type BookLister interface {
	ListBooks(ctx context.Context, filter entities.BookFilter) ([]entities.Book, error)
}

type ExportResult struct {
	BooksProcessed int      `json:"books_processed"`
	BooksFailed    int      `json:"books_failed"`
	Files          []string `json:"files,omitempty"`
}
