package entities

import (
	"time"
)

type Author struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;size:256" json:"name"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;size:256" json:"name"`
}

type Location struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;size:256" json:"name"`
}

// Book is both the books row and the hydrated view handed to callers.
// Authors, Categories and Location are never loaded by GORM; the books
// repository fills them from the joined listing query.
type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null;index;size:512" json:"name"`
	PublishYear   *int      `json:"publish_year"`
	NumberOfPages *int      `json:"number_of_pages"`
	ImageURL      string    `gorm:"size:2048" json:"image_url"`
	LocationID    *uint     `gorm:"index" json:"location_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Authors    []Author   `gorm:"-" json:"authors"`
	Categories []Category `gorm:"-" json:"categories"`
	Location   *Location  `gorm:"-" json:"location"`
}

// AuthorBook links an author to a book. The pair is unique.
type AuthorBook struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	AuthorID uint `gorm:"not null;uniqueIndex:idx_author_book" json:"author_id"`
	BookID   uint `gorm:"not null;uniqueIndex:idx_author_book;index" json:"book_id"`
}

// CategoryBook links a category to a book. The pair is unique.
type CategoryBook struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CategoryID uint `gorm:"not null;uniqueIndex:idx_category_book" json:"category_id"`
	BookID     uint `gorm:"not null;uniqueIndex:idx_category_book;index" json:"book_id"`
}

func (Author) TableName() string {
	return "authors"
}

func (Category) TableName() string {
	return "categories"
}

func (Location) TableName() string {
	return "locations"
}

func (Book) TableName() string {
	return "books"
}

func (AuthorBook) TableName() string {
	return "author_book"
}

func (CategoryBook) TableName() string {
	return "category_book"
}

// Named is implemented by the entities that can be created on the fly from
// a name while saving a book.
type Named interface {
	PrimaryKey() uint
	SetName(name string)
}

func (a *Author) PrimaryKey() uint      { return a.ID }
func (a *Author) SetName(name string)   { a.Name = name }
func (c *Category) PrimaryKey() uint    { return c.ID }
func (c *Category) SetName(name string) { c.Name = name }
func (l *Location) PrimaryKey() uint    { return l.ID }
func (l *Location) SetName(name string) { l.Name = name }
