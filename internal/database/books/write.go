package books

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// linkTable describes one many-to-many table between books and another entity.
type linkTable struct {
	name     string
	column   string
	newModel func() any
	newLink  func(targetID, bookID uint) any
}

var (
	authorLinks = linkTable{
		name:     "author_book",
		column:   "author_id",
		newModel: func() any { return &entities.AuthorBook{} },
		newLink: func(targetID, bookID uint) any {
			return &entities.AuthorBook{AuthorID: targetID, BookID: bookID}
		},
	}
	categoryLinks = linkTable{
		name:     "category_book",
		column:   "category_id",
		newModel: func() any { return &entities.CategoryBook{} },
		newLink: func(targetID, bookID uint) any {
			return &entities.CategoryBook{CategoryID: targetID, BookID: bookID}
		},
	}
)

// CreateBook resolves the draft's references, inserts the book row and links
// it to the resolved authors and categories. It returns the new book id.
//
// The statements are not wrapped in a transaction: when a later step fails,
// rows created by earlier steps remain.
func (r *Repository) CreateBook(ctx context.Context, draft entities.BookDraft) (uint, error) {
	res, err := r.resolve(ctx, draft)
	if err != nil {
		return 0, err
	}

	book := entities.Book{
		Name:          draft.Name,
		PublishYear:   draft.PublishYear,
		NumberOfPages: draft.NumberOfPages,
		ImageURL:      draft.ImageURL,
		LocationID:    res.locationID,
	}
	if err := r.db.WithContext(ctx).Create(&book).Error; err != nil {
		return 0, fmt.Errorf("insert book: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.insertLinks(gctx, authorLinks, book.ID, res.authorIDs) })
	g.Go(func() error { return r.insertLinks(gctx, categoryLinks, book.ID, res.categoryIDs) })
	if err := g.Wait(); err != nil {
		return book.ID, err
	}
	return book.ID, nil
}

// UpdateBook makes the book match draft. Link rows outside the resolved sets
// are deleted, missing ones inserted, and links already present are left
// untouched. Scalar columns and location_id are overwritten last.
func (r *Repository) UpdateBook(ctx context.Context, id uint, draft entities.BookDraft) error {
	exists, err := r.bookExists(ctx, id)
	if err != nil {
		return fmt.Errorf("look up book %d: %w", id, err)
	}
	if !exists {
		return ErrBookNotFound
	}

	res, err := r.resolve(ctx, draft)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.reconcileLinks(gctx, authorLinks, id, res.authorIDs) })
	g.Go(func() error { return r.reconcileLinks(gctx, categoryLinks, id, res.categoryIDs) })
	if err := g.Wait(); err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Model(&entities.Book{ID: id}).Updates(map[string]any{
		"name":            draft.Name,
		"publish_year":    draft.PublishYear,
		"number_of_pages": draft.NumberOfPages,
		"image_url":       draft.ImageURL,
		"location_id":     res.locationID,
	}).Error
	if err != nil {
		return fmt.Errorf("update book %d: %w", id, err)
	}
	return nil
}

// reconcileLinks deletes the book's links whose target is not in targetIDs,
// then inserts the missing ones.
func (r *Repository) reconcileLinks(ctx context.Context, table linkTable, bookID uint, targetIDs []uint) error {
	stale := r.db.WithContext(ctx).Where("book_id = ?", bookID)
	if len(targetIDs) > 0 {
		stale = stale.Where(table.column+" NOT IN ?", targetIDs)
	}
	if err := stale.Delete(table.newModel()).Error; err != nil {
		return fmt.Errorf("delete stale %s rows for book %d: %w", table.name, bookID, err)
	}
	return r.insertLinks(ctx, table, bookID, targetIDs)
}

// insertLinks inserts one link per target id. A link that already exists is
// skipped without error.
func (r *Repository) insertLinks(ctx context.Context, table linkTable, bookID uint, targetIDs []uint) error {
	for _, targetID := range targetIDs {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(table.newLink(targetID, bookID)).Error
		if err != nil {
			return fmt.Errorf("insert %s row (%d, %d): %w", table.name, targetID, bookID, err)
		}
	}
	return nil
}

// DeleteOrphanLinks removes link rows whose book, author or category no
// longer exists. It returns the number of rows removed.
func (r *Repository) DeleteOrphanLinks(ctx context.Context) (int64, error) {
	var total int64

	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM author_book
		WHERE book_id NOT IN (SELECT id FROM books)
		OR author_id NOT IN (SELECT id FROM authors)
	`)
	if result.Error != nil {
		return 0, result.Error
	}
	total += result.RowsAffected

	result = r.db.WithContext(ctx).Exec(`
		DELETE FROM category_book
		WHERE book_id NOT IN (SELECT id FROM books)
		OR category_id NOT IN (SELECT id FROM categories)
	`)
	if result.Error != nil {
		return total, result.Error
	}
	total += result.RowsAffected

	return total, nil
}
