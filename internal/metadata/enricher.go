package metadata

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// ErrBookNotFound is returned when the book to enrich does not exist.
var ErrBookNotFound = errors.New("book not found")

// MetadataProvider defines the interface for fetching book metadata.
type MetadataProvider interface {
	SearchByTitle(ctx context.Context, title, author string) (*BookMetadata, error)
}

// BookUpdater defines the interface for reading and patching books.
type BookUpdater interface {
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
	UpdateBookMetadata(ctx context.Context, id uint, fields BookUpdateFields) error
	BooksMissingMetadata(ctx context.Context) ([]entities.Book, error)
}

// CoverInvalidator defines the interface for invalidating cached covers.
type CoverInvalidator interface {
	InvalidateCover(bookID uint) error
}

// BookUpdateFields contains the fields that can be updated via enrichment.
// Nil fields are left untouched.
type BookUpdateFields struct {
	PublishYear   *int
	NumberOfPages *int
	ImageURL      *string
}

// EnrichmentResult contains the result of an enrichment operation.
type EnrichmentResult struct {
	Book          *entities.Book `json:"book"`
	FieldsUpdated []string       `json:"fields_updated"`
	Source        string         `json:"source"`
}

// Enricher fills in missing book metadata from an external provider.
type Enricher struct {
	provider         MetadataProvider
	db               BookUpdater
	coverInvalidator CoverInvalidator
}

// NewEnricher creates a new Enricher with the given metadata provider and database.
func NewEnricher(provider MetadataProvider, db BookUpdater) *Enricher {
	return &Enricher{
		provider: provider,
		db:       db,
	}
}

// SetCoverInvalidator sets the cover cache invalidator (optional).
func (e *Enricher) SetCoverInvalidator(invalidator CoverInvalidator) {
	e.coverInvalidator = invalidator
}

// EnrichBook searches the provider by the book's name and first author and
// writes the publish year, page count and image URL the book is missing.
// Values the book already has are never overwritten.
func (e *Enricher) EnrichBook(ctx context.Context, bookID uint) (*EnrichmentResult, error) {
	book, err := e.db.GetBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if book == nil {
		return nil, fmt.Errorf("%w: %d", ErrBookNotFound, bookID)
	}

	author := ""
	if len(book.Authors) > 0 {
		author = book.Authors[0].Name
	}

	metadata, err := e.provider.SearchByTitle(ctx, book.Name, author)
	if err != nil {
		return nil, fmt.Errorf("metadata search failed: %w", err)
	}

	updates, fieldsUpdated := buildUpdates(book, metadata)

	if len(fieldsUpdated) > 0 {
		if updates.ImageURL != nil && e.coverInvalidator != nil {
			if err := e.coverInvalidator.InvalidateCover(bookID); err != nil {
				log.Printf("Failed to invalidate cover for book %d: %v", bookID, err)
			}
		}

		if err := e.db.UpdateBookMetadata(ctx, bookID, updates); err != nil {
			return nil, fmt.Errorf("update book metadata: %w", err)
		}

		book, err = e.db.GetBook(ctx, bookID)
		if err != nil {
			return nil, fmt.Errorf("refresh book: %w", err)
		}
	}

	return &EnrichmentResult{
		Book:          book,
		FieldsUpdated: fieldsUpdated,
		Source:        "openlibrary",
	}, nil
}

// BulkEnrichmentResult contains the summary of a bulk enrichment operation.
type BulkEnrichmentResult struct {
	TotalBooks int      `json:"total_books"`
	Enriched   int      `json:"enriched"`
	Failed     int      `json:"failed"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors,omitempty"`
}

// EnrichAllMissing enriches every book that lacks a year, page count or image.
func (e *Enricher) EnrichAllMissing(ctx context.Context) (*BulkEnrichmentResult, error) {
	books, err := e.db.BooksMissingMetadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("get books missing metadata: %w", err)
	}

	result := &BulkEnrichmentResult{
		TotalBooks: len(books),
	}

	for _, book := range books {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, "operation cancelled")
			return result, err
		}

		enrichResult, err := e.EnrichBook(ctx, book.ID)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", book.Name, err))
			continue
		}

		if len(enrichResult.FieldsUpdated) > 0 {
			result.Enriched++
		} else {
			result.Skipped++
		}
	}

	return result, nil
}

// buildUpdates returns the fields of metadata that fill a gap in book.
func buildUpdates(book *entities.Book, metadata *BookMetadata) (BookUpdateFields, []string) {
	var updates BookUpdateFields
	var fieldsUpdated []string

	if book.PublishYear == nil && metadata.PublishYear > 0 {
		updates.PublishYear = &metadata.PublishYear
		fieldsUpdated = append(fieldsUpdated, "publish_year")
	}

	if book.NumberOfPages == nil && metadata.PageCount > 0 {
		updates.NumberOfPages = &metadata.PageCount
		fieldsUpdated = append(fieldsUpdated, "number_of_pages")
	}

	if book.ImageURL == "" && metadata.CoverURL != "" {
		updates.ImageURL = &metadata.CoverURL
		fieldsUpdated = append(fieldsUpdated, "image_url")
	}

	return updates, fieldsUpdated
}
