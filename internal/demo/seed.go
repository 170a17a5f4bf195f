package demo

import (
	"context"
	"fmt"
	"log"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Catalog is the part of the catalog service the seeder writes through.
type Catalog interface {
	ListBooks(ctx context.Context, filter entities.BookFilter) ([]entities.Book, error)
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
	CreateBook(ctx context.Context, draft entities.BookDraft) (uint, error)
	UpsertSetting(ctx context.Context, name, value string) error
}

// SampleBook describes a demo book by names only.
type SampleBook struct {
	Name       string
	Year       int
	Pages      int
	Authors    []string
	Categories []string
	Location   string
}

// SampleLibrary is a small set of public domain books sharing authors,
// categories and shelves.
func SampleLibrary() []SampleBook {
	return []SampleBook{
		{Name: "Pride and Prejudice", Year: 1813, Pages: 432, Authors: []string{"Jane Austen"}, Categories: []string{"Classics", "Romance"}, Location: "Living room"},
		{Name: "Emma", Year: 1815, Pages: 474, Authors: []string{"Jane Austen"}, Categories: []string{"Classics", "Romance"}, Location: "Living room"},
		{Name: "Moby-Dick", Year: 1851, Pages: 635, Authors: []string{"Herman Melville"}, Categories: []string{"Classics", "Adventure"}, Location: "Study"},
		{Name: "The Adventures of Sherlock Holmes", Year: 1892, Pages: 307, Authors: []string{"Arthur Conan Doyle"}, Categories: []string{"Mystery"}, Location: "Bedroom"},
		{Name: "Frankenstein", Year: 1818, Pages: 280, Authors: []string{"Mary Shelley"}, Categories: []string{"Classics", "Horror"}, Location: "Study"},
		{Name: "The Time Machine", Year: 1895, Pages: 118, Authors: []string{"H. G. Wells"}, Categories: []string{"Science Fiction"}, Location: "Bedroom"},
		{Name: "The War of the Worlds", Year: 1898, Pages: 192, Authors: []string{"H. G. Wells"}, Categories: []string{"Science Fiction"}},
		{Name: "Good Omens", Year: 1990, Pages: 412, Authors: []string{"Terry Pratchett", "Neil Gaiman"}, Categories: []string{"Fantasy", "Humour"}, Location: "Living room"},
	}
}

// Seed writes the sample library into an empty catalog and returns the
// number of books created. A catalog that already holds books is left alone.
// Names seen in earlier books are reused by id so shared authors, categories
// and shelves stay single rows.
func Seed(ctx context.Context, catalog Catalog, library []SampleBook) (int, error) {
	existing, err := catalog.ListBooks(ctx, entities.BookFilter{})
	if err != nil {
		return 0, fmt.Errorf("check catalog: %w", err)
	}
	if len(existing) > 0 {
		log.Printf("Catalog already has %d books, skipping demo seed", len(existing))
		return 0, nil
	}

	known := newRefIndex()
	created := 0
	for _, sample := range library {
		draft := entities.BookDraft{
			Name:       sample.Name,
			Authors:    refsFor(known.authors, sample.Authors),
			Categories: refsFor(known.categories, sample.Categories),
			Location:   refFor(known.locations, sample.Location),
		}
		if sample.Year > 0 {
			year := sample.Year
			draft.PublishYear = &year
		}
		if sample.Pages > 0 {
			pages := sample.Pages
			draft.NumberOfPages = &pages
		}

		id, err := catalog.CreateBook(ctx, draft)
		if err != nil {
			return created, fmt.Errorf("seed %q: %w", sample.Name, err)
		}
		created++

		book, err := catalog.GetBook(ctx, id)
		if err != nil {
			return created, fmt.Errorf("reload %q: %w", sample.Name, err)
		}
		known.learn(book)
		log.Printf("Seeded: %s", sample.Name)
	}

	if err := catalog.UpsertSetting(ctx, entities.SettingNameLanguage, "en"); err != nil {
		return created, fmt.Errorf("seed settings: %w", err)
	}
	return created, nil
}

type refIndex struct {
	authors    map[string]uint
	categories map[string]uint
	locations  map[string]uint
}

func newRefIndex() *refIndex {
	return &refIndex{
		authors:    map[string]uint{},
		categories: map[string]uint{},
		locations:  map[string]uint{},
	}
}

func refFor(ids map[string]uint, name string) entities.Ref {
	if id, ok := ids[name]; ok && name != "" {
		return entities.ExistingRef(id, name)
	}
	return entities.NewRef(name)
}

func refsFor(ids map[string]uint, names []string) []entities.Ref {
	refs := make([]entities.Ref, 0, len(names))
	for _, name := range names {
		refs = append(refs, refFor(ids, name))
	}
	return refs
}

func (idx *refIndex) learn(book *entities.Book) {
	if book == nil {
		return
	}
	for _, a := range book.Authors {
		idx.authors[a.Name] = a.ID
	}
	for _, c := range book.Categories {
		idx.categories[c.Name] = c.ID
	}
	if book.Location != nil {
		idx.locations[book.Location.Name] = book.Location.ID
	}
}
