// Package catalog provides the flat listings of authors, categories and
// locations, and explicit author deletion.
//
// Rows in these tables are created implicitly by the books repository when a
// book references a new name.
package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles the author, category and location tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAuthors returns all authors ordered by name.
func (r *Repository) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	return listByName[entities.Author](ctx, r.db, "authors")
}

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]entities.Category, error) {
	return listByName[entities.Category](ctx, r.db, "categories")
}

// ListLocations returns all locations ordered by name.
func (r *Repository) ListLocations(ctx context.Context) ([]entities.Location, error) {
	return listByName[entities.Location](ctx, r.db, "locations")
}

// DeleteAuthor removes the author row. The author's author_book rows are
// left in place; hydration skips them because the author join finds nothing.
func (r *Repository) DeleteAuthor(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entities.Author{}, id).Error; err != nil {
		return fmt.Errorf("delete author %d: %w", id, err)
	}
	return nil
}

func listByName[E any](ctx context.Context, db *gorm.DB, table string) ([]E, error) {
	rows := []E{}
	if err := db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return rows, nil
}
