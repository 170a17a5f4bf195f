package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Each controller depends on the narrowest slice of the catalog it needs.

// BookCatalog reads and writes books.
type BookCatalog interface {
	ListBooks(ctx context.Context, filter entities.BookFilter) ([]entities.Book, error)
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
	CreateBook(ctx context.Context, draft entities.BookDraft) (uint, error)
	UpdateBook(ctx context.Context, id uint, draft entities.BookDraft) error
	DeleteBook(ctx context.Context, id uint) error
}

// BookGetter provides read access to a single book.
type BookGetter interface {
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
}

// LookupCatalog lists authors, categories and locations.
type LookupCatalog interface {
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	ListCategories(ctx context.Context) ([]entities.Category, error)
	ListLocations(ctx context.Context) ([]entities.Location, error)
	DeleteAuthor(ctx context.Context, id uint) error
}

// SettingsCatalog reads and writes settings.
type SettingsCatalog interface {
	ListSettings(ctx context.Context) ([]entities.Setting, error)
	UpsertSetting(ctx context.Context, name, value string) error
}

// TaskQueue enqueues background tasks and reports their status.
type TaskQueue interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// CoverFetcher returns the local path of a cached cover image.
type CoverFetcher interface {
	GetCover(ctx context.Context, bookID uint, coverURL string) (string, error)
}

// Pinger checks storage connectivity.
type Pinger interface {
	Ping() error
}
