package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

// ProgressSyncer is the slice of the project usecase the scheduler drives
type ProgressSyncer interface {
	SyncAllProgress(ctx context.Context) (int, error)
}

// ProgressSyncScheduler periodically recounts the tasks of every active
// project, so progress and auto-completion catch up with task edits.
type ProgressSyncScheduler struct {
	syncer   ProgressSyncer
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	ctx      context.Context
	cancel   context.CancelFunc
	started  bool
	done     chan struct{}
}

// NewProgressSyncScheduler creates a new scheduler. A non-positive interval
// disables it.
func NewProgressSyncScheduler(syncer ProgressSyncer, interval time.Duration) *ProgressSyncScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &ProgressSyncScheduler{
		syncer:   syncer,
		interval: interval,
		stopChan: make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *ProgressSyncScheduler) Start() {
	s.started = true
	if s.interval <= 0 {
		log.Println("[ProgressSync] Interval not set, scheduler disabled")
		close(s.done)
		return
	}

	log.Printf("[ProgressSync] Starting progress sync scheduler (interval: %s)", s.interval)

	go func() {
		defer close(s.done)

		// Run immediately on start
		s.syncAll()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.syncAll()
			case <-s.stopChan:
				log.Println("[ProgressSync] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop stops the loop, cancels an in-flight sync and waits for it to
// return. It is safe to call more than once, or without Start.
func (s *ProgressSyncScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		close(s.stopChan)
	})
	if s.started {
		<-s.done
	}
}

func (s *ProgressSyncScheduler) syncAll() {
	ctx, cancel := context.WithTimeout(s.ctx, s.interval)
	defer cancel()

	synced, err := s.syncer.SyncAllProgress(ctx)
	if err != nil {
		log.Printf("[ProgressSync] Error syncing project progress: %v", err)
		return
	}
	if synced > 0 {
		log.Printf("[ProgressSync] Synced progress for %d active projects", synced)
	}
}
