package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// maxLoggedFailures caps how many per-book errors one bulk run writes to the log.
const maxLoggedFailures = 5

// EnrichAllBooksTask walks every catalog book that lacks a publish year, page
// count or cover URL and fills in what OpenLibrary knows. It carries no data;
// the candidate list is read when the task runs.
type EnrichAllBooksTask struct{}

// Config runs the sweep once with no retries. Books that fail are picked up
// again by the next sweep since they still lack metadata.
func (t EnrichAllBooksTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_all_books",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     60 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// EnrichAllBooksProcessor sweeps the catalog. The task fails only when there
// were candidates and none of them could be enriched, so the task status
// shows a broken provider instead of a silent success.
func EnrichAllBooksProcessor(enricher BookEnricher) backlite.QueueProcessor[EnrichAllBooksTask] {
	return func(ctx context.Context, task EnrichAllBooksTask) error {
		if enricher == nil {
			return fmt.Errorf("enricher not configured")
		}

		result, err := enricher.EnrichAllMissing(ctx)
		if err != nil {
			return fmt.Errorf("enrich catalog: %w", err)
		}
		if result.TotalBooks == 0 {
			log.Println("[TASK] Every book already has metadata")
			return nil
		}

		log.Printf("[TASK] Catalog enrichment: %d candidates, %d enriched, %d unchanged, %d failed",
			result.TotalBooks, result.Enriched, result.Skipped, result.Failed)
		for i, msg := range result.Errors {
			if i == maxLoggedFailures {
				log.Printf("[TASK] ... and %d more failures", len(result.Errors)-maxLoggedFailures)
				break
			}
			log.Printf("[TASK]   %s", msg)
		}

		if result.Failed == result.TotalBooks {
			return fmt.Errorf("enrich catalog: all %d books failed", result.Failed)
		}
		return nil
	}
}

// NewEnrichAllBooksQueue builds the enrich_all_books queue.
func NewEnrichAllBooksQueue(enricher BookEnricher) backlite.Queue {
	return backlite.NewQueue(EnrichAllBooksProcessor(enricher))
}
