package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/database/sqlitefn"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// busyTimeoutMillis is how long SQLite waits on a locked database before
// giving up on a statement.
const busyTimeoutMillis = 5000

type Database struct {
	DB *gorm.DB
}

// Options tunes how the database is opened.
type Options struct {
	LogLevel logger.LogLevel
}

func NewDatabase(dbPath string) (*Database, error) {
	return NewDatabaseWithOptions(dbPath, Options{LogLevel: logger.Info})
}

func NewDatabaseWithOptions(dbPath string, opts Options) (*Database, error) {
	db, err := gorm.Open(sqlitefn.Open(dsn(dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Concurrent resolutions share this single connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, err
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

// Migrate creates or updates the catalog schema.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entities.Author{},
		&entities.Category{},
		&entities.Location{},
		&entities.Book{},
		&entities.AuthorBook{},
		&entities.CategoryBook{},
		&entities.Setting{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", dbPath, sep, busyTimeoutMillis)
}
