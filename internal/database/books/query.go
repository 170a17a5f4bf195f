package books

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

const bookColumns = `books.id, books.name, books.publish_year, books.number_of_pages,
	books.image_url, books.location_id AS book_location_id, books.created_at, books.updated_at,
	authors.id AS author_id, authors.name AS author_name,
	categories.id AS category_id, categories.name AS category_name,
	locations.id AS location_id, locations.name AS location_name`

// searchCondition needs the unicode_lower function from sqlitefn; SQLite's
// LOWER leaves non-ASCII letters untouched.
const searchCondition = `unicode_lower(books.name) LIKE unicode_lower(?) ESCAPE '\'
	OR unicode_lower(authors.name) LIKE unicode_lower(?) ESCAPE '\'
	OR unicode_lower(categories.name) LIKE unicode_lower(?) ESCAPE '\'
	OR unicode_lower(locations.name) LIKE unicode_lower(?) ESCAPE '\'`

// bookRow is one row of the joined listing: a book crossed with one of its
// authors and one of its categories. Any relation may be NULL.
type bookRow struct {
	ID             uint
	Name           string
	PublishYear    *int
	NumberOfPages  *int
	ImageURL       *string
	BookLocationID *uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
	AuthorID       *uint
	AuthorName     *string
	CategoryID     *uint
	CategoryName   *string
	LocationID     *uint
	LocationName   *string
}

// ListBooks returns hydrated books ordered by name. A filter ID narrows the
// result to that book; otherwise a non-empty Search keeps books whose name or
// any author, category or location name contains it, ignoring case.
func (r *Repository) ListBooks(ctx context.Context, filter entities.BookFilter) ([]entities.Book, error) {
	return r.queryBooks(ctx, func(query *gorm.DB) *gorm.DB {
		switch {
		case filter.ID != nil:
			return query.Where("books.id = ?", *filter.ID)
		case filter.Search != "":
			return query.Where("books.id IN (?)", r.matchingBookIDs(ctx, filter.Search))
		}
		return query
	})
}

// queryBooks runs the joined listing narrowed by scope and hydrates it.
func (r *Repository) queryBooks(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]entities.Book, error) {
	query := joinRelations(r.db.WithContext(ctx).Table("books")).Select(bookColumns)

	var rows []bookRow
	if err := scope(query).Order("books.name ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return hydrate(rows), nil
}

// GetBook returns the hydrated book, or nil when no book has that id.
func (r *Repository) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	found, err := r.ListBooks(ctx, entities.BookFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// matchingBookIDs selects the ids of books with at least one joined row
// matching search. Filtering ids first lets the outer query return every
// author and category of a matched book, not only the matching ones.
func (r *Repository) matchingBookIDs(ctx context.Context, search string) *gorm.DB {
	pattern := "%" + escapeLike(search) + "%"
	return joinRelations(r.db.WithContext(ctx).Table("books")).
		Distinct("books.id").
		Where(searchCondition, pattern, pattern, pattern, pattern)
}

func joinRelations(db *gorm.DB) *gorm.DB {
	return db.
		Joins("LEFT JOIN author_book ON author_book.book_id = books.id").
		Joins("LEFT JOIN authors ON authors.id = author_book.author_id").
		Joins("LEFT JOIN category_book ON category_book.book_id = books.id").
		Joins("LEFT JOIN categories ON categories.id = category_book.category_id").
		Joins("LEFT JOIN locations ON locations.id = books.location_id")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in s match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// hydrate collapses joined rows into one book per id. Books keep the order in
// which their id first appears; authors and categories keep row order and
// are appended once per id.
func hydrate(rows []bookRow) []entities.Book {
	order := make([]uint, 0, len(rows))
	byID := make(map[uint]*entities.Book, len(rows))

	for _, row := range rows {
		book, seen := byID[row.ID]
		if !seen {
			book = row.newBook()
			byID[row.ID] = book
			order = append(order, row.ID)
		}

		if row.AuthorID != nil && row.AuthorName != nil && !hasAuthor(book.Authors, *row.AuthorID) {
			book.Authors = append(book.Authors, entities.Author{ID: *row.AuthorID, Name: *row.AuthorName})
		}
		if row.CategoryID != nil && row.CategoryName != nil && !hasCategory(book.Categories, *row.CategoryID) {
			book.Categories = append(book.Categories, entities.Category{ID: *row.CategoryID, Name: *row.CategoryName})
		}
	}

	books := make([]entities.Book, 0, len(order))
	for _, id := range order {
		books = append(books, *byID[id])
	}
	return books
}

func (row bookRow) newBook() *entities.Book {
	book := &entities.Book{
		ID:            row.ID,
		Name:          row.Name,
		PublishYear:   row.PublishYear,
		NumberOfPages: row.NumberOfPages,
		LocationID:    row.BookLocationID,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
		Authors:       []entities.Author{},
		Categories:    []entities.Category{},
	}
	if row.ImageURL != nil {
		book.ImageURL = *row.ImageURL
	}
	if row.LocationID != nil && row.LocationName != nil {
		book.Location = &entities.Location{ID: *row.LocationID, Name: *row.LocationName}
	}
	return book
}

func hasAuthor(authors []entities.Author, id uint) bool {
	return slices.ContainsFunc(authors, func(a entities.Author) bool { return a.ID == id })
}

func hasCategory(categories []entities.Category, id uint) bool {
	return slices.ContainsFunc(categories, func(c entities.Category) bool { return c.ID == id })
}
