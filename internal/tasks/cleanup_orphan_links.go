package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// OrphanLinksCleaner deletes link rows pointing at missing books, authors
// or categories.
type OrphanLinksCleaner interface {
	DeleteOrphanLinks(ctx context.Context) (int64, error)
}

// CleanupOrphanLinksTask removes author_book and category_book rows left
// behind by book and author deletion.
type CleanupOrphanLinksTask struct{}

// Config returns the queue configuration for cleanup tasks.
func (t CleanupOrphanLinksTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_orphan_links",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupOrphanLinksProcessor creates a processor function for CleanupOrphanLinksTask.
func CleanupOrphanLinksProcessor(cleaner OrphanLinksCleaner) backlite.QueueProcessor[CleanupOrphanLinksTask] {
	return func(ctx context.Context, task CleanupOrphanLinksTask) error {
		if cleaner == nil {
			return fmt.Errorf("orphan links cleaner not configured")
		}

		deleted, err := cleaner.DeleteOrphanLinks(ctx)
		if err != nil {
			return fmt.Errorf("cleanup orphan links: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d orphan link rows", deleted)
		return nil
	}
}

// NewCleanupOrphanLinksQueue creates a backlite queue for link cleanup tasks.
func NewCleanupOrphanLinksQueue(cleaner OrphanLinksCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupOrphanLinksProcessor(cleaner))
}
