package services

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// BookStore reads hydrated books and applies book drafts.
type BookStore interface {
	ListBooks(ctx context.Context, filter entities.BookFilter) ([]entities.Book, error)
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
	CreateBook(ctx context.Context, draft entities.BookDraft) (uint, error)
	UpdateBook(ctx context.Context, id uint, draft entities.BookDraft) error
	DeleteBook(ctx context.Context, id uint) error
}

// LookupStore lists the flat entity tables and deletes authors.
type LookupStore interface {
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	ListCategories(ctx context.Context) ([]entities.Category, error)
	ListLocations(ctx context.Context) ([]entities.Location, error)
	DeleteAuthor(ctx context.Context, id uint) error
}

// SettingsStore persists key/value settings.
type SettingsStore interface {
	ListSettings(ctx context.Context) ([]entities.Setting, error)
	ReplaceSetting(ctx context.Context, name, value string) error
}
