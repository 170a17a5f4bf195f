package services

import (
	"context"
	"errors"
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
)

var (
	// ErrEmptyBookName is returned when a draft has no book name.
	ErrEmptyBookName = errors.New("book name is required")

	// ErrEmptySettingName is returned when a setting is written without a name.
	ErrEmptySettingName = errors.New("setting name is required")
)

// Catalog is the single entry point the HTTP handlers and CLI commands use
// to read and change the library.
type Catalog struct {
	books    BookStore
	lookups  LookupStore
	settings SettingsStore
}

// NewCatalog creates a Catalog over the given stores.
func NewCatalog(books BookStore, lookups LookupStore, settings SettingsStore) *Catalog {
	return &Catalog{
		books:    books,
		lookups:  lookups,
		settings: settings,
	}
}

func (c *Catalog) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	return c.lookups.ListAuthors(ctx)
}

func (c *Catalog) ListCategories(ctx context.Context) ([]entities.Category, error) {
	return c.lookups.ListCategories(ctx)
}

func (c *Catalog) ListLocations(ctx context.Context) ([]entities.Location, error) {
	return c.lookups.ListLocations(ctx)
}

func (c *Catalog) ListSettings(ctx context.Context) ([]entities.Setting, error) {
	return c.settings.ListSettings(ctx)
}

// ListBooks returns hydrated books matching filter, ordered by name.
func (c *Catalog) ListBooks(ctx context.Context, filter entities.BookFilter) ([]entities.Book, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return c.books.ListBooks(ctx, filter)
}

// GetBook returns the hydrated book or nil when it does not exist.
func (c *Catalog) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	return c.books.GetBook(ctx, id)
}

// CreateBook stores draft as a new book and returns its id.
func (c *Catalog) CreateBook(ctx context.Context, draft entities.BookDraft) (uint, error) {
	draft, err := normalizeDraft(draft)
	if err != nil {
		return 0, err
	}
	return c.books.CreateBook(ctx, draft)
}

// UpdateBook makes the stored book match draft.
func (c *Catalog) UpdateBook(ctx context.Context, id uint, draft entities.BookDraft) error {
	draft, err := normalizeDraft(draft)
	if err != nil {
		return err
	}
	return c.books.UpdateBook(ctx, id, draft)
}

func (c *Catalog) DeleteBook(ctx context.Context, id uint) error {
	return c.books.DeleteBook(ctx, id)
}

func (c *Catalog) DeleteAuthor(ctx context.Context, id uint) error {
	return c.lookups.DeleteAuthor(ctx, id)
}

// UpsertSetting overwrites the named setting, creating it when absent.
func (c *Catalog) UpsertSetting(ctx context.Context, name, value string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptySettingName
	}
	return c.settings.ReplaceSetting(ctx, name, value)
}

// normalizeDraft trims names. Blank author and category entries are kept;
// the books store drops them.
func normalizeDraft(draft entities.BookDraft) (entities.BookDraft, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return draft, ErrEmptyBookName
	}
	draft.ImageURL = strings.TrimSpace(draft.ImageURL)
	draft.Location.Name = strings.TrimSpace(draft.Location.Name)
	draft.Authors = trimRefs(draft.Authors)
	draft.Categories = trimRefs(draft.Categories)
	return draft, nil
}

func trimRefs(refs []entities.Ref) []entities.Ref {
	trimmed := make([]entities.Ref, len(refs))
	for i, ref := range refs {
		trimmed[i] = entities.Ref{ID: ref.ID, Name: strings.TrimSpace(ref.Name)}
	}
	return trimmed
}
