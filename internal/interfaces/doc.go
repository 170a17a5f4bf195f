// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore, LookupStore, SettingsStore: storage behind the catalog
//     service (internal/services/interfaces.go)
//   - OrphanLinksCleaner: link table maintenance (internal/tasks/cleanup_orphan_links.go)
//   - BookUpdater: metadata patches (internal/metadata/enricher.go)
//
// ## Catalog Consumers
//
// HTTP controllers, exporters and the demo seeder each declare the slice of
// services.Catalog they use:
//
//   - BookCatalog, LookupCatalog, SettingsCatalog (internal/http/stores.go)
//   - BookLister (internal/exporters/generic.go)
//   - Catalog (internal/demo/seed.go)
//
// ## External Service Interfaces
//
//   - MetadataProvider: Book metadata from external APIs (internal/metadata/enricher.go)
//   - CoverFetcher, CoverInvalidator: cover cache (internal/http/stores.go,
//     internal/metadata/enricher.go)
//
// ## Background Tasks
//
//   - TaskQueue, TaskEnqueuer: backlite client (internal/http/stores.go,
//     internal/scheduler/link_cleanup.go)
//   - BookEnricher: enrichment queues (internal/tasks/enrich_book.go)
//
// # Adding a New Metadata Provider
//
// To add a new source of book metadata (e.g., Google Books):
//
//  1. Implement MetadataProvider in internal/metadata/
//
//     type GoogleBooksClient struct {
//         apiKey     string
//         httpClient *http.Client
//     }
//
//     func (c *GoogleBooksClient) SearchByTitle(ctx context.Context, title, author string) (*BookMetadata, error)
//
//     var _ MetadataProvider = (*GoogleBooksClient)(nil)
//
//  2. Pass it to metadata.NewEnricher in entrypoint.go
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the consumer-side interface where it is used
//
//  4. Add compile-time check in checks.go:
//
//     var _ SomeStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
package interfaces
