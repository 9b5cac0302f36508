// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookstore/internal/tasks"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Enqueuer hands a cleanup run to the task queue.
type Enqueuer interface {
	EnqueueAuditCleanup(retentionDays int, trigger string) (string, error)
}

// AuditCleanupConfig controls when audit events are pruned.
type AuditCleanupConfig struct {
	Enabled       bool
	Schedule      string
	RetentionDays int
}

// ValidateSchedule checks a standard five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// AuditCleanupScheduler periodically enqueues audit retention cleanup tasks.
type AuditCleanupScheduler struct {
	enqueuer Enqueuer
	config   AuditCleanupConfig

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewAuditCleanupScheduler creates a new scheduler instance
func NewAuditCleanupScheduler(enqueuer Enqueuer, config AuditCleanupConfig) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		enqueuer: enqueuer,
		config:   config,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start begins the scheduler if cleanup is enabled. It stops on its own
// when ctx is cancelled.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Audit cleanup scheduler: disabled")
		return nil
	}

	if err := ValidateSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, s.runCleanup)
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Audit cleanup scheduler: started with schedule '%s', retention %d days. Next run: %v",
		s.config.Schedule, s.config.RetentionDays, s.cron.Entry(entryID).Next)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Audit cleanup scheduler: stopped")
}

// RunNow enqueues a cleanup immediately and returns the task id.
func (s *AuditCleanupScheduler) RunNow() (string, error) {
	return s.enqueuer.EnqueueAuditCleanup(s.config.RetentionDays, tasks.TriggerSchedule)
}

// IsRunning returns whether the scheduler is active
func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next cleanup will be enqueued
func (s *AuditCleanupScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	next := s.cron.Entry(s.entryID).Next
	return &next
}

func (s *AuditCleanupScheduler) runCleanup() {
	taskID, err := s.enqueuer.EnqueueAuditCleanup(s.config.RetentionDays, tasks.TriggerSchedule)
	if err != nil {
		log.Printf("Audit cleanup scheduler: failed to enqueue cleanup: %v", err)
		return
	}
	log.Printf("Audit cleanup scheduler: enqueued cleanup task %s", taskID)
}
