// Package janitor periodically sweeps the generation ledger for runs that
// need operator attention
package janitor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ethanbaker/repogen/internal/stores/generation"
	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/robfig/cron/v3"
)

const (
	DefaultSchedule   = "@every 1h"
	DefaultStaleAfter = 15 * time.Minute
)

// Report summarizes one sweep
type Report struct {
	Abandoned []*generation.Run `json:"abandoned"`
	Partial   []*generation.Run `json:"partial"`
}

// Janitor marks stuck runs as abandoned and reports failed runs that left a
// repository behind. Each partial failure is reported once
type Janitor struct {
	store      generation.Store
	schedule   string
	staleAfter time.Duration
	now        func() time.Time
	cron       *cron.Cron
}

// New creates a janitor over store
func New(store generation.Store, schedule string, staleAfter time.Duration) *Janitor {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}

	return &Janitor{
		store:      store,
		schedule:   schedule,
		staleAfter: staleAfter,
		now:        func() time.Time { return time.Now().UTC() },
		cron:       cron.New(),
	}
}

// NewFromConfig reads JANITOR_SCHEDULE and JANITOR_STALE_AFTER
func NewFromConfig(store generation.Store, config *utils.Config) *Janitor {
	return New(store,
		config.GetWithDefault("JANITOR_SCHEDULE", DefaultSchedule),
		config.GetDurationWithDefault("JANITOR_STALE_AFTER", DefaultStaleAfter),
	)
}

// Start schedules sweeps. It returns an error if the schedule cannot be parsed
func (j *Janitor) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.RunOnce(context.Background()); err != nil {
			log.Printf("[JANITOR]: Sweep failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid janitor schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	log.Printf("[JANITOR]: Scheduled with %q", j.schedule)
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

// RunOnce performs a single sweep
func (j *Janitor) RunOnce(ctx context.Context) (*Report, error) {
	report := &Report{}
	cutoff := j.now().Add(-j.staleAfter)

	for _, status := range []generation.Status{generation.StatusPending, generation.StatusGenerated, generation.StatusCreated} {
		runs, err := j.store.ListByStatus(ctx, status)
		if err != nil {
			return report, err
		}

		for _, run := range runs {
			if run.UpdatedAt.After(cutoff) {
				continue
			}

			run.Status = generation.StatusAbandoned
			if err := j.store.Update(ctx, run); err != nil {
				return report, err
			}
			report.Abandoned = append(report.Abandoned, run)

			if run.FullName != "" {
				log.Printf("[JANITOR]: Run %s abandoned with repository %s holding %d/%d files",
					run.ID, run.FullName, run.FilesUploaded, run.FilesTotal)
			} else {
				log.Printf("[JANITOR]: Run %s abandoned in status %s", run.ID, status)
			}
		}
	}

	failed, err := j.store.ListByStatus(ctx, generation.StatusFailed)
	if err != nil {
		return report, err
	}

	for _, run := range failed {
		if !run.Partial() || run.ReportedAt != nil {
			continue
		}

		log.Printf("[JANITOR]: Repository %s needs cleanup: run %s failed with %s at %q after %d/%d files: %s",
			run.FullName, run.ID, run.FailureKind, run.FailurePath, run.FilesUploaded, run.FilesTotal, run.FailureMessage)

		reported := j.now()
		run.ReportedAt = &reported
		if err := j.store.Update(ctx, run); err != nil {
			return report, err
		}
		report.Partial = append(report.Partial, run)
	}

	return report, nil
}
