package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/metadata"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	client, err := NewClient(dbPath, Config{})
	require.NoError(t, err)
	require.NotNil(t, client)

	_, err = os.Stat(filepath.Join(tmpDir, "test-tasks.db"))
	assert.NoError(t, err, "tasks database should be created")
	assert.Equal(t, 2, client.config.Workers, "zero config falls back to defaults")

	err = client.Close()
	assert.NoError(t, err)
}

func TestTasksDBPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "library-tasks.db"), TasksDBPath(filepath.Join("data", "library.db")))
	assert.Equal(t, "bookshelf-tasks", TasksDBPath("bookshelf"))
}

func TestClientStartStop(t *testing.T) {
	client := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)

	// Give it time to start
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	success := client.Stop(stopCtx)
	assert.True(t, success, "stop should succeed gracefully")
}

type fakeCleaner struct {
	calls chan struct{}
}

func (f *fakeCleaner) DeleteOrphanLinks(ctx context.Context) (int64, error) {
	f.calls <- struct{}{}
	return 3, nil
}

func TestCleanupOrphanLinksQueue_RunsEnqueuedTask(t *testing.T) {
	client := newTestClient(t)

	cleaner := &fakeCleaner{calls: make(chan struct{}, 1)}
	client.Register(NewCleanupOrphanLinksQueue(cleaner))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	id, err := client.Enqueue(ctx, CleanupOrphanLinksTask{})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	select {
	case <-cleaner.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}
}

func TestCleanupOrphanLinksProcessor_NilCleaner(t *testing.T) {
	err := CleanupOrphanLinksProcessor(nil)(context.Background(), CleanupOrphanLinksTask{})
	assert.Error(t, err)
}

type fakeEnricher struct {
	err    error
	result *metadata.EnrichmentResult
	bulk   *metadata.BulkEnrichmentResult
}

func (f *fakeEnricher) EnrichBook(ctx context.Context, bookID uint) (*metadata.EnrichmentResult, error) {
	return f.result, f.err
}

func (f *fakeEnricher) EnrichAllMissing(ctx context.Context) (*metadata.BulkEnrichmentResult, error) {
	if f.bulk == nil {
		return &metadata.BulkEnrichmentResult{}, f.err
	}
	return f.bulk, f.err
}

func TestEnrichBookProcessor(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		enricher := &fakeEnricher{result: &metadata.EnrichmentResult{
			Book:          &entities.Book{ID: 1, Name: "Dune"},
			FieldsUpdated: []string{"image_url"},
			Source:        "openlibrary",
		}}
		assert.NoError(t, EnrichBookProcessor(enricher)(ctx, EnrichBookTask{BookID: 1}))
	})

	t.Run("deleted book is not retried", func(t *testing.T) {
		enricher := &fakeEnricher{err: metadata.ErrBookNotFound}
		assert.NoError(t, EnrichBookProcessor(enricher)(ctx, EnrichBookTask{BookID: 9}))
	})

	t.Run("search failure is returned", func(t *testing.T) {
		enricher := &fakeEnricher{err: errors.New("boom")}
		assert.Error(t, EnrichBookProcessor(enricher)(ctx, EnrichBookTask{BookID: 1}))
	})
}

func TestEnrichAllBooksProcessor(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		bulk    *metadata.BulkEnrichmentResult
		err     error
		wantErr bool
	}{
		{"nothing to do", &metadata.BulkEnrichmentResult{}, nil, false},
		{"partial failure succeeds", &metadata.BulkEnrichmentResult{
			TotalBooks: 3, Enriched: 1, Skipped: 1, Failed: 1, Errors: []string{"Emma: timeout"},
		}, nil, false},
		{"every book failed", &metadata.BulkEnrichmentResult{
			TotalBooks: 2, Failed: 2, Errors: []string{"Dune: 503", "Emma: 503"},
		}, nil, true},
		{"listing failed", nil, errors.New("database is locked"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EnrichAllBooksProcessor(&fakeEnricher{bulk: tt.bulk, err: tt.err})(ctx, EnrichAllBooksTask{})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("missing enricher", func(t *testing.T) {
		assert.Error(t, EnrichAllBooksProcessor(nil)(ctx, EnrichAllBooksTask{}))
	})
}

func TestTaskEnqueue_CustomQueue(t *testing.T) {
	client := newTestClient(t)

	executed := make(chan string, 1)
	queue := backlite.NewQueue(func(ctx context.Context, task TestTask) error {
		executed <- task.Value
		return nil
	})
	client.Register(queue)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	id, err := client.Enqueue(ctx, TestTask{Value: "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	select {
	case val := <-executed:
		assert.Equal(t, "hello", val)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}
}

// TestTask is a simple task for testing
type TestTask struct {
	Value string `json:"value"`
}

func (t TestTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "test_task",
		MaxAttempts: 1,
		Backoff:     time.Second,
		Timeout:     5 * time.Second,
	}
}

func TestQueueConfigs(t *testing.T) {
	enrich := EnrichBookTask{BookID: 123}.Config()
	assert.Equal(t, "enrich_book", enrich.Name)
	assert.Equal(t, 3, enrich.MaxAttempts)
	assert.Equal(t, 30*time.Second, enrich.Backoff)
	assert.Equal(t, 2*time.Minute, enrich.Timeout)
	assert.NotNil(t, enrich.Retention)

	all := EnrichAllBooksTask{}.Config()
	assert.Equal(t, "enrich_all_books", all.Name)
	assert.Equal(t, 60*time.Minute, all.Timeout)

	cleanup := CleanupOrphanLinksTask{}.Config()
	assert.Equal(t, "cleanup_orphan_links", cleanup.Name)
	assert.Equal(t, 1, cleanup.MaxAttempts)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}
