package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/covers"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/catalog"
	"github.com/mrlokans/bookshelf/internal/database/settings"
	"github.com/mrlokans/bookshelf/internal/demo"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/metadata"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for an interrupt signal, then shut down within the timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookshelf v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	booksRepo := books.NewRepository(db.DB)
	catalogService := services.NewCatalog(
		booksRepo,
		catalog.NewRepository(db.DB),
		settings.NewRepository(db.DB),
	)

	var demoMiddleware *demo.Middleware
	if cfg.Demo.Enabled {
		log.Printf("Demo mode enabled - write operations will be blocked")
		if _, err := demo.Seed(context.Background(), catalogService, demo.SampleLibrary()); err != nil {
			log.Fatalf("Failed to seed demo library: %v", err)
		}
		demoMiddleware = demo.NewMiddleware(true)
	}

	// Create cover cache for locally caching book covers
	coverCache, err := covers.NewCache(cfg.Covers.Dir, cfg.Metadata.RequestTimeout)
	if err != nil {
		log.Printf("WARNING: Failed to initialize cover cache: %v", err)
	} else {
		log.Printf("Cover cache initialized at %s", coverCache.CacheDir())
	}

	// Create metadata enricher for book enrichment from OpenLibrary
	openLibraryClient := metadata.NewOpenLibraryClient(cfg.Metadata.OpenLibraryURL, cfg.Metadata.RequestTimeout)
	metadataEnricher := metadata.NewEnricher(openLibraryClient, database.NewMetadataUpdater(booksRepo))

	// Connect cover cache to enricher for invalidation on metadata refresh
	if coverCache != nil {
		metadataEnricher.SetCoverInvalidator(coverCache)
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var linkCleanup *scheduler.LinkCleanupScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		// Register task queues
		taskClient.Register(
			tasks.NewEnrichBookQueue(metadataEnricher),
			tasks.NewEnrichAllBooksQueue(metadataEnricher),
			tasks.NewCleanupOrphanLinksQueue(booksRepo),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		linkCleanup = scheduler.NewLinkCleanupScheduler(taskClient, scheduler.Config{
			Enabled:  cfg.LinkCleanup.Enabled,
			Schedule: cfg.LinkCleanup.Schedule,
		})
		if err := linkCleanup.Start(taskCtx); err != nil {
			log.Fatalf("Failed to start link cleanup scheduler: %v", err)
		}
	} else if cfg.LinkCleanup.Enabled {
		log.Printf("WARNING: Link cleanup is enabled but the task queue is disabled; cleanup will not run")
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Books:          catalogService,
		Lookups:        catalogService,
		Settings:       catalogService,
		Database:       db,
		Version:        version,
		DemoMiddleware: demoMiddleware,
	}
	if coverCache != nil {
		routerCfg.Covers = coverCache
	}
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if linkCleanup != nil {
			linkCleanup.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
