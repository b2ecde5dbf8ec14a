package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// Pruner deletes audit events past their retention window and reports
// how many rows went away.
type Pruner interface {
	Prune(retentionDays int) (int64, error)
}

// AuditRetentionScheduler runs the audit prune job on a cron schedule.
type AuditRetentionScheduler struct {
	pruner        Pruner
	retentionDays int
	schedule      string

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

func NewAuditRetentionScheduler(pruner Pruner, retentionDays int, schedule string) *AuditRetentionScheduler {
	return &AuditRetentionScheduler{
		pruner:        pruner,
		retentionDays: retentionDays,
		schedule:      schedule,
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start schedules the prune job. A retention of zero or less disables
// the scheduler entirely.
func (s *AuditRetentionScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.retentionDays <= 0 {
		log.Printf("Audit retention scheduler: disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runPrune); err != nil {
		return fmt.Errorf("failed to schedule audit prune job: %w", err)
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Audit retention scheduler: started (schedule %q, retention %d days)", s.schedule, s.retentionDays)
	return nil
}

// Stop halts the scheduler and waits for a running prune to finish.
func (s *AuditRetentionScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	<-s.cron.Stop().Done()
	s.isRunning = false
	log.Printf("Audit retention scheduler: stopped")
}

// RunNow triggers one prune outside the schedule.
func (s *AuditRetentionScheduler) RunNow() (int64, error) {
	return s.pruner.Prune(s.retentionDays)
}

func (s *AuditRetentionScheduler) runPrune() {
	deleted, err := s.pruner.Prune(s.retentionDays)
	if err != nil {
		log.Printf("Audit retention: prune failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Audit retention: pruned %d events older than %d days", deleted, s.retentionDays)
	}
}
