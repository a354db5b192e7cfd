// Package scheduler runs the periodic tick: a cron job that recomputes the
// daily summary through the services' public query surface and reports it via
// the observer. It never mutates domain state.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"casetrail/internal/service"
)

const tickUseCase service.UseCase = "daily-summary-tick"

// Ticker periodically computes the daily summary.
type Ticker struct {
	cron      *cron.Cron
	summaries service.SummaryService
	observer  service.UseCaseObserver
	today     func() string
}

// NewTicker wires a summary tick. today supplies the date the summary is
// computed for, injected for testability.
func NewTicker(summaries service.SummaryService, today func() string, observers ...service.UseCaseObserver) *Ticker {
	obs := service.UseCaseObserver(service.NoopUseCaseObserver{})
	for _, o := range observers {
		if o != nil {
			obs = o
			break
		}
	}
	return &Ticker{
		cron:      cron.New(),
		summaries: summaries,
		observer:  obs,
		today:     today,
	}
}

// Start registers the tick under the given cron spec (e.g. "@hourly",
// "*/30 * * * *") and starts the scheduler.
func (t *Ticker) Start(ctx context.Context, spec string) error {
	if _, err := t.cron.AddFunc(spec, func() { t.Tick(ctx) }); err != nil {
		return fmt.Errorf("registering tick schedule %q: %w", spec, err)
	}
	t.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running tick to finish.
func (t *Ticker) Stop() {
	<-t.cron.Stop().Done()
}

// Tick computes one summary and reports it. Exposed so the CLI can run a
// single tick on demand.
func (t *Ticker) Tick(ctx context.Context) {
	startedAt := time.Now().UTC()
	summary, err := t.summaries.DailySummary(ctx, t.today())
	event := service.UseCaseEvent{
		Op:        tickUseCase,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
	}
	if err == nil {
		event.Extra = map[string]any{
			"date":             summary.Date,
			"active_projects":  summary.ActiveProjects,
			"items_due_today":  summary.ItemsDueToday,
			"items_overdue":    summary.ItemsOverdue,
			"open_follow_ups":  summary.OpenFollowUps,
			"waiting_outreach": summary.WaitingOutreach,
		}
	}
	t.observer.ObserveUseCase(ctx, event)
}
