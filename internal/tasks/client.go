package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// Client runs the catalog's background queues (enrichment and link cleanup)
// on backlite. Task state lives in a separate SQLite file so that queue
// polling never contends with catalog writes.
type Client struct {
	client *backlite.Client
	db     *sql.DB
	config Config

	mu      sync.RWMutex
	started bool
}

// NewClient opens (or creates) the queue database beside mainDBPath, see
// TasksDBPath, and installs the backlite schema in it.
func NewClient(mainDBPath string, cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()

	db, err := openQueueDB(TasksDBPath(mainDBPath), cfg.Workers)
	if err != nil {
		return nil, err
	}

	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          taskLogger{},
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create task client: %w", err)
	}

	if err := client.Install(); err != nil {
		db.Close()
		return nil, fmt.Errorf("install task schema: %w", err)
	}

	return &Client{client: client, db: db, config: cfg}, nil
}

// openQueueDB sizes the pool so every worker plus the dispatcher and the
// HTTP status lookups can hold a connection at once.
func openQueueDB(path string, workers int) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open task database %s: %w", path, err)
	}
	db.SetMaxOpenConns(workers + 5)
	db.SetMaxIdleConns(workers + 2)
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// Register adds queues. All queues must be registered before Start.
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.client.Register(q)
	}
}

// Start launches the dispatcher and workers. Calling it twice is a no-op.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	log.Printf("[TASK] Queue started with %d workers", c.config.Workers)
	c.client.Start(ctx)
}

// Stop waits for running tasks until ctx expires and reports whether all of
// them finished.
func (c *Client) Stop(ctx context.Context) bool {
	c.mu.RLock()
	started := c.started
	c.mu.RUnlock()
	if !started {
		return true
	}

	if !c.client.Stop(ctx) {
		log.Println("[TASK] Queue stopped before all tasks finished")
		return false
	}
	log.Println("[TASK] Queue stopped")
	return true
}

// Close releases the queue database. Call it after Stop.
func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Enqueue stores one task and returns the id the status endpoint accepts.
func (c *Client) Enqueue(ctx context.Context, task backlite.Task) (string, error) {
	ids, err := c.client.Add(task).Ctx(ctx).Save()
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", task.Config().Name, err)
	}
	return ids[0], nil
}

// Status reports a task's state, TaskStatusNotFound once it has been purged
// or when it never existed.
func (c *Client) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return c.client.Status(ctx, taskID)
}

// TasksDBPath returns the queue database path for a catalog database:
// "library.db" becomes "library-tasks.db" in the same directory.
func TasksDBPath(mainDBPath string) string {
	dir := filepath.Dir(mainDBPath)
	base := filepath.Base(mainDBPath)
	ext := filepath.Ext(base)
	return filepath.Join(dir, base[:len(base)-len(ext)]+"-tasks"+ext)
}

type taskLogger struct{}

func (taskLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (taskLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
