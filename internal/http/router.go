package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/demo"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
// Optional dependencies left nil disable their routes.
type RouterConfig struct {
	Books    BookCatalog
	Lookups  LookupCatalog
	Settings SettingsCatalog
	Database Pinger

	// Optional
	Covers         CoverFetcher
	TaskQueue      TaskQueue
	DemoMiddleware *demo.Middleware

	Version string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	// Apply demo mode middleware if enabled
	if cfg.DemoMiddleware != nil && cfg.DemoMiddleware.IsEnabled() {
		router.Use(cfg.DemoMiddleware.Handler())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Books)
	lookups := NewLookupsController(cfg.Lookups)
	settings := NewSettingsController(cfg.Settings)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Books
	api.GET("/books", booksController.ListBooks)
	api.POST("/books", booksController.CreateBook)
	api.GET("/books/:id", booksController.GetBook)
	api.PUT("/books/:id", booksController.UpdateBook)
	api.DELETE("/books/:id", booksController.DeleteBook)

	// Lookups
	api.GET("/authors", lookups.ListAuthors)
	api.DELETE("/authors/:id", lookups.DeleteAuthor)
	api.GET("/categories", lookups.ListCategories)
	api.GET("/locations", lookups.ListLocations)

	// Settings
	api.GET("/settings", settings.ListSettings)
	api.PUT("/settings/:name", settings.UpdateSetting)

	if cfg.Covers != nil {
		covers := NewCoversController(cfg.Covers, cfg.Books)
		api.GET("/books/:id/cover", covers.GetCover)
	}

	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue, cfg.Books)
		api.POST("/books/:id/enrich", tasksController.EnrichBook)
		api.POST("/books/enrich-missing", tasksController.EnrichAllMissing)
		api.POST("/maintenance/cleanup-links", tasksController.CleanupLinks)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}
