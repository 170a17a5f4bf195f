// Command generate_demo creates a fresh demo database with sample books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/catalog"
	"github.com/mrlokans/bookshelf/internal/database/settings"
	"github.com/mrlokans/bookshelf/internal/demo"
	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/services"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	exportDir := flag.String("export", "", "also export the demo library as markdown to this directory")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	db, err := database.NewDatabaseWithOptions(*dbPath, database.Options{LogLevel: logger.Warn})
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	svc := services.NewCatalog(
		books.NewRepository(db.DB),
		catalog.NewRepository(db.DB),
		settings.NewRepository(db.DB),
	)

	ctx := context.Background()
	created, err := demo.Seed(ctx, svc, demo.SampleLibrary())
	if err != nil {
		log.Fatalf("Failed to seed demo library: %v", err)
	}
	log.Printf("Demo database generated with %d books", created)

	if *exportDir != "" {
		result, err := exporters.NewCatalogMarkdownExporter(svc, *exportDir).ExportAll(ctx, "")
		if err != nil {
			log.Fatalf("Failed to export demo library: %v", err)
		}
		log.Printf("Exported %d books to %s", result.BooksProcessed, *exportDir)
	}
}
