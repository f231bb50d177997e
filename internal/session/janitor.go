package session

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultCleanupInterval is how often expired sessions are purged
const DefaultCleanupInterval = 10 * time.Minute

// Janitor periodically removes expired sessions in the background
type Janitor struct {
	manager  *Manager
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewJanitor creates a janitor for the sessions of manager
func NewJanitor(manager *Manager, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &Janitor{
		manager:  manager,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the cleanup goroutine
func (j *Janitor) Start(ctx context.Context) {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.run(ctx)
	}()
}

// Stop stops the cleanup goroutine and waits for it to exit
func (j *Janitor) Stop() {
	j.stopOnce.Do(func() { close(j.stopCh) })
	j.wg.Wait()
}

func (j *Janitor) run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-j.stopCh:
			return
		case <-ticker.C:
			j.cleanup(ctx)
		}
	}
}

func (j *Janitor) cleanup(ctx context.Context) {
	removed, err := j.manager.Cleanup(ctx)
	if err != nil {
		log.Printf("[session] Cleanup failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("[session] Removed %d expired sessions", removed)
	}
}
