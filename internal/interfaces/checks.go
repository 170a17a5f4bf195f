package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/covers"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/catalog"
	"github.com/mrlokans/bookshelf/internal/database/settings"
	"github.com/mrlokans/bookshelf/internal/demo"
	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/metadata"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.BookStore = (*books.Repository)(nil)
var _ services.LookupStore = (*catalog.Repository)(nil)
var _ services.SettingsStore = (*settings.Repository)(nil)

var _ tasks.OrphanLinksCleaner = (*books.Repository)(nil)
var _ metadata.BookUpdater = (*database.MetadataUpdater)(nil)

// =============================================================================
// Catalog Service Consumers
// =============================================================================

var _ http.BookCatalog = (*services.Catalog)(nil)
var _ http.LookupCatalog = (*services.Catalog)(nil)
var _ http.SettingsCatalog = (*services.Catalog)(nil)
var _ http.Pinger = (*database.Database)(nil)
var _ exporters.BookLister = (*services.Catalog)(nil)
var _ demo.Catalog = (*services.Catalog)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ metadata.MetadataProvider = (*metadata.OpenLibraryClient)(nil)
var _ metadata.CoverInvalidator = (*covers.Cache)(nil)
var _ http.CoverFetcher = (*covers.Cache)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ tasks.BookEnricher = (*metadata.Enricher)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.TaskEnqueuer = (*tasks.Client)(nil)
var _ exporters.BookExporter = (*exporters.MarkdownExporter)(nil)
