package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/metadata"
)

// BookEnricher fills in missing metadata for books.
type BookEnricher interface {
	EnrichBook(ctx context.Context, bookID uint) (*metadata.EnrichmentResult, error)
	EnrichAllMissing(ctx context.Context) (*metadata.BulkEnrichmentResult, error)
}

// EnrichBookTask enriches a single book's metadata from external sources.
type EnrichBookTask struct {
	BookID uint `json:"book_id"`
}

// Config returns the queue configuration for book enrichment tasks.
func (t EnrichBookTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_book",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// EnrichBookProcessor creates a processor function for EnrichBookTask.
// A book deleted after the task was queued is logged and not retried.
func EnrichBookProcessor(enricher BookEnricher) backlite.QueueProcessor[EnrichBookTask] {
	return func(ctx context.Context, task EnrichBookTask) error {
		if enricher == nil {
			return fmt.Errorf("enricher not configured")
		}

		result, err := enricher.EnrichBook(ctx, task.BookID)
		if errors.Is(err, metadata.ErrBookNotFound) {
			log.Printf("[TASK] Book %d no longer exists, skipping enrichment", task.BookID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("enrich book %d: %w", task.BookID, err)
		}

		if len(result.FieldsUpdated) > 0 {
			log.Printf("[TASK] Enriched book %d (%s): updated %v via %s",
				task.BookID, result.Book.Name, result.FieldsUpdated, result.Source)
		} else {
			log.Printf("[TASK] Book %d (%s): no metadata updates needed",
				task.BookID, result.Book.Name)
		}

		return nil
	}
}

// NewEnrichBookQueue creates a backlite queue for book enrichment tasks.
func NewEnrichBookQueue(enricher BookEnricher) backlite.Queue {
	return backlite.NewQueue(EnrichBookProcessor(enricher))
}
