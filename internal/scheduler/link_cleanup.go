package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

// TaskEnqueuer saves a task for background processing.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
}

// Config controls when orphan link cleanup runs.
type Config struct {
	Enabled  bool
	Schedule string
}

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateSchedule reports whether schedule is a five-field cron expression
// or a descriptor such as @daily.
func ValidateSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// LinkCleanupScheduler periodically queues a cleanup_orphan_links task.
type LinkCleanupScheduler struct {
	queue  TaskEnqueuer
	config Config

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	runCtx    context.Context
	cancel    context.CancelFunc
}

// NewLinkCleanupScheduler creates a new scheduler instance
func NewLinkCleanupScheduler(queue TaskEnqueuer, config Config) *LinkCleanupScheduler {
	return &LinkCleanupScheduler{
		queue:  queue,
		config: config,
		cron:   cron.New(cron.WithParser(scheduleParser)),
	}
}

// Start begins the scheduler if cleanup is enabled. It stops when ctx is done.
func (s *LinkCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("[SCHEDULER] Link cleanup: disabled")
		return nil
	}

	if err := ValidateSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	s.runCtx, s.cancel = context.WithCancel(ctx)

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		if _, err := s.RunNow(s.runCtx); err != nil {
			log.Printf("[SCHEDULER] Link cleanup: %v", err)
		}
	})
	if err != nil {
		s.cancel()
		return fmt.Errorf("failed to schedule cleanup job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("[SCHEDULER] Link cleanup: started with schedule '%s'", s.config.Schedule)

	go func(done <-chan struct{}) {
		<-done
		s.Stop()
	}(s.runCtx.Done())

	return nil
}

// Stop gracefully stops the scheduler
func (s *LinkCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.cancel()

	s.isRunning = false
	log.Printf("[SCHEDULER] Link cleanup: stopped")
}

// RunNow queues a cleanup immediately and returns the task id.
func (s *LinkCleanupScheduler) RunNow(ctx context.Context) (string, error) {
	id, err := s.queue.Enqueue(ctx, tasks.CleanupOrphanLinksTask{})
	if err != nil {
		return "", err
	}
	log.Printf("[SCHEDULER] Link cleanup: queued task %s", id)
	return id, nil
}

// IsRunning returns whether the scheduler is active
func (s *LinkCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next cleanup will be queued
func (s *LinkCleanupScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	t := s.cron.Entry(s.entryID).Next
	return &t
}
