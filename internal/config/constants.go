package config

const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./bookshelf.db"

	// DefaultCoversDir is where downloaded cover images are cached
	DefaultCoversDir = "./covers"

	// DefaultOpenLibraryURL is the OpenLibrary API base URL
	DefaultOpenLibraryURL = "https://openlibrary.org"
)
