// Package books provides the hydrated read path and the reconciling write
// path for books and their author, category and location relations.
//
// This package implements the BookStore interface consumed by
// internal/services.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	id, err := repo.CreateBook(ctx, entities.BookDraft{
//		Name:    "The Hobbit",
//		Authors: []entities.AuthorRef{entities.NewRef("Tolkien")},
//	})
//	book, err := repo.GetBook(ctx, id)
package books

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

var (
	// ErrBookNotFound is returned by writes that target a book id with no row.
	ErrBookNotFound = errors.New("book not found")

	// ErrReferenceNotFound is returned when a draft reuses an author,
	// category or location id that does not exist.
	ErrReferenceNotFound = errors.New("referenced record not found")
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DeleteBook removes the book row. Link rows are left in place.
func (r *Repository) DeleteBook(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.Book{}, id).Error
}

// UpdateBookMetadata writes the given columns of a single book.
func (r *Repository) UpdateBookMetadata(ctx context.Context, id uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entities.Book{ID: id}).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update book %d metadata: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// BooksMissingMetadata returns hydrated books lacking a publish year, page
// count or image URL.
func (r *Repository) BooksMissingMetadata(ctx context.Context) ([]entities.Book, error) {
	missing := r.db.WithContext(ctx).Model(&entities.Book{}).
		Select("id").
		Where("publish_year IS NULL OR number_of_pages IS NULL OR image_url IS NULL OR image_url = ''")

	return r.queryBooks(ctx, func(query *gorm.DB) *gorm.DB {
		return query.Where("books.id IN (?)", missing)
	})
}
