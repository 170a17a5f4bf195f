package exporters

import (
	"context"
	"fmt"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// CatalogMarkdownExporter exports the books of a catalog to markdown.
type CatalogMarkdownExporter struct {
	books    BookLister
	markdown BookExporter
}

func NewCatalogMarkdownExporter(books BookLister, exportDir string) *CatalogMarkdownExporter {
	return &CatalogMarkdownExporter{
		books:    books,
		markdown: NewMarkdownExporter(exportDir),
	}
}

// ExportAll writes every book in the catalog, or only the books matching
// search when it is non-empty.
func (exporter *CatalogMarkdownExporter) ExportAll(ctx context.Context, search string) (ExportResult, error) {
	books, err := exporter.books.ListBooks(ctx, entities.BookFilter{Search: search})
	if err != nil {
		return ExportResult{}, fmt.Errorf("list books: %w", err)
	}
	return exporter.markdown.Export(books)
}
