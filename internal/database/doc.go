// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and schema migration
//	├── metadata.go      # Adapter letting the metadata enricher patch books
//	├── books/           # Hydrated book listings and write reconciliation
//	├── catalog/         # Flat author, category and location listings
//	└── settings/        # Key/value application settings
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./bookshelf.db")
//
//	booksRepo := books.NewRepository(db.DB)
//	catalogRepo := catalog.NewRepository(db.DB)
//
//	list, err := booksRepo.ListBooks(ctx, entities.BookFilter{Search: "hobbit"})
//	authors, err := catalogRepo.ListAuthors(ctx)
//
// # Schema
//
// books carries a nullable location_id. Authors and categories are attached
// through the author_book and category_book link tables, each unique on its
// pair of ids. SQLite foreign keys are not enabled; the books repository is
// responsible for never writing a link that points at a missing row.
//
// Writes that span several statements (creating a book with new authors,
// reconciling links on update) are not wrapped in a transaction. A failure
// halfway leaves the statements that already ran in place.
package database
