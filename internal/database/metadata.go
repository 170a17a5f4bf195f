package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/metadata"
)

// MetadataUpdater lets the metadata enricher read and patch books held by
// the books repository.
type MetadataUpdater struct {
	books *books.Repository
}

func NewMetadataUpdater(repo *books.Repository) *MetadataUpdater {
	return &MetadataUpdater{books: repo}
}

func (u *MetadataUpdater) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	return u.books.GetBook(ctx, id)
}

func (u *MetadataUpdater) BooksMissingMetadata(ctx context.Context) ([]entities.Book, error) {
	return u.books.BooksMissingMetadata(ctx)
}

// UpdateBookMetadata writes the non-nil fields.
func (u *MetadataUpdater) UpdateBookMetadata(ctx context.Context, id uint, fields metadata.BookUpdateFields) error {
	updates := map[string]any{}
	if fields.PublishYear != nil {
		updates["publish_year"] = *fields.PublishYear
	}
	if fields.NumberOfPages != nil {
		updates["number_of_pages"] = *fields.NumberOfPages
	}
	if fields.ImageURL != nil {
		updates["image_url"] = *fields.ImageURL
	}

	err := u.books.UpdateBookMetadata(ctx, id, updates)
	if errors.Is(err, books.ErrBookNotFound) {
		return fmt.Errorf("%w: %d", metadata.ErrBookNotFound, id)
	}
	return err
}
