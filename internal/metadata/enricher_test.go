package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type mockMetadataProvider struct {
	result      *BookMetadata
	err         error
	gotTitle    string
	gotAuthor   string
	searchCalls int
}

func (m *mockMetadataProvider) SearchByTitle(ctx context.Context, title, author string) (*BookMetadata, error) {
	m.searchCalls++
	m.gotTitle = title
	m.gotAuthor = author
	return m.result, m.err
}

type mockBookUpdater struct {
	book                 *entities.Book
	getBookError         error
	updateError          error
	updatedFields        map[string]any
	booksMissingMetadata []entities.Book
}

func (m *mockBookUpdater) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	if m.getBookError != nil {
		return nil, m.getBookError
	}
	return m.book, nil
}

func (m *mockBookUpdater) UpdateBookMetadata(ctx context.Context, id uint, fields BookUpdateFields) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.updatedFields = make(map[string]any)
	if fields.PublishYear != nil {
		m.updatedFields["publish_year"] = *fields.PublishYear
		m.book.PublishYear = fields.PublishYear
	}
	if fields.NumberOfPages != nil {
		m.updatedFields["number_of_pages"] = *fields.NumberOfPages
		m.book.NumberOfPages = fields.NumberOfPages
	}
	if fields.ImageURL != nil {
		m.updatedFields["image_url"] = *fields.ImageURL
		m.book.ImageURL = *fields.ImageURL
	}
	return nil
}

func (m *mockBookUpdater) BooksMissingMetadata(ctx context.Context) ([]entities.Book, error) {
	return m.booksMissingMetadata, nil
}

type mockInvalidator struct {
	invalidated []uint
}

func (m *mockInvalidator) InvalidateCover(bookID uint) error {
	m.invalidated = append(m.invalidated, bookID)
	return nil
}

func intPtr(v int) *int { return &v }

func TestEnrichBook_FillsMissingFields(t *testing.T) {
	book := &entities.Book{
		ID:      1,
		Name:    "The Hobbit",
		Authors: []entities.Author{{ID: 4, Name: "Tolkien"}, {ID: 5, Name: "Illustrator"}},
	}
	provider := &mockMetadataProvider{
		result: &BookMetadata{PublishYear: 1937, PageCount: 310, CoverURL: "https://covers.example/h.jpg"},
	}
	db := &mockBookUpdater{book: book}
	invalidator := &mockInvalidator{}

	enricher := NewEnricher(provider, db)
	enricher.SetCoverInvalidator(invalidator)

	result, err := enricher.EnrichBook(context.Background(), 1)
	if err != nil {
		t.Fatalf("EnrichBook failed: %v", err)
	}

	if provider.gotTitle != "The Hobbit" || provider.gotAuthor != "Tolkien" {
		t.Errorf("unexpected search args: %q, %q", provider.gotTitle, provider.gotAuthor)
	}
	if len(result.FieldsUpdated) != 3 {
		t.Errorf("expected 3 fields updated, got %v", result.FieldsUpdated)
	}
	if db.updatedFields["number_of_pages"] != 310 {
		t.Errorf("expected number_of_pages 310, got %v", db.updatedFields["number_of_pages"])
	}
	if result.Book.ImageURL != "https://covers.example/h.jpg" {
		t.Errorf("expected refreshed book to carry the image URL, got %q", result.Book.ImageURL)
	}
	if len(invalidator.invalidated) != 1 || invalidator.invalidated[0] != 1 {
		t.Errorf("expected cover of book 1 to be invalidated, got %v", invalidator.invalidated)
	}
}

func TestEnrichBook_KeepsExistingValues(t *testing.T) {
	book := &entities.Book{
		ID:            2,
		Name:          "Dune",
		PublishYear:   intPtr(1965),
		NumberOfPages: intPtr(412),
		ImageURL:      "https://example.com/mine.jpg",
	}
	provider := &mockMetadataProvider{
		result: &BookMetadata{PublishYear: 2005, PageCount: 600, CoverURL: "https://covers.example/other.jpg"},
	}
	db := &mockBookUpdater{book: book}

	result, err := NewEnricher(provider, db).EnrichBook(context.Background(), 2)
	if err != nil {
		t.Fatalf("EnrichBook failed: %v", err)
	}

	if len(result.FieldsUpdated) != 0 {
		t.Errorf("expected no fields updated, got %v", result.FieldsUpdated)
	}
	if db.updatedFields != nil {
		t.Errorf("expected no update call, got %v", db.updatedFields)
	}
	if provider.gotAuthor != "" {
		t.Errorf("expected empty author for a book without authors, got %q", provider.gotAuthor)
	}
}

func TestEnrichBook_BookNotFound(t *testing.T) {
	provider := &mockMetadataProvider{}
	db := &mockBookUpdater{}

	_, err := NewEnricher(provider, db).EnrichBook(context.Background(), 999)
	if !errors.Is(err, ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
	if provider.searchCalls != 0 {
		t.Error("provider should not be called for a missing book")
	}
}

func TestEnrichBook_SearchFailed(t *testing.T) {
	provider := &mockMetadataProvider{err: ErrNoMatch}
	db := &mockBookUpdater{book: &entities.Book{ID: 1, Name: "Unknown"}}

	_, err := NewEnricher(provider, db).EnrichBook(context.Background(), 1)
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}

func TestEnrichAllMissing(t *testing.T) {
	book := &entities.Book{ID: 1, Name: "Sparse"}
	provider := &mockMetadataProvider{result: &BookMetadata{PageCount: 99}}
	db := &mockBookUpdater{
		book:                 book,
		booksMissingMetadata: []entities.Book{*book},
	}

	result, err := NewEnricher(provider, db).EnrichAllMissing(context.Background())
	if err != nil {
		t.Fatalf("EnrichAllMissing failed: %v", err)
	}

	if result.TotalBooks != 1 || result.Enriched != 1 || result.Failed != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestEnrichAllMissing_Cancelled(t *testing.T) {
	db := &mockBookUpdater{booksMissingMetadata: []entities.Book{{ID: 1, Name: "A"}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEnricher(&mockMetadataProvider{}, db).EnrichAllMissing(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestBuildUpdates_OnlyEmptyFields(t *testing.T) {
	book := &entities.Book{PublishYear: intPtr(2000)}
	metadata := &BookMetadata{PublishYear: 1999, PageCount: 120}

	updates, fields := buildUpdates(book, metadata)

	if updates.PublishYear != nil {
		t.Error("publish year should not be overwritten")
	}
	if updates.NumberOfPages == nil || *updates.NumberOfPages != 120 {
		t.Error("expected number of pages to be filled")
	}
	if updates.ImageURL != nil {
		t.Error("image URL should stay nil without a cover")
	}
	if len(fields) != 1 || fields[0] != "number_of_pages" {
		t.Errorf("unexpected fields: %v", fields)
	}
}
