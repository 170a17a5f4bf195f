package cli

import (
	"fmt"
	"path/filepath"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/catalog"
	"github.com/mrlokans/bookshelf/internal/database/settings"
	"github.com/mrlokans/bookshelf/internal/services"
)

// openCatalog opens the database at dbPath and builds the catalog service
// over it. The caller closes the returned database.
func openCatalog(dbPath string) (*database.Database, *services.Catalog, error) {
	absDBPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabaseWithOptions(absDBPath, database.Options{LogLevel: logger.Warn})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	svc := services.NewCatalog(
		books.NewRepository(db.DB),
		catalog.NewRepository(db.DB),
		settings.NewRepository(db.DB),
	)
	return db, svc, nil
}
