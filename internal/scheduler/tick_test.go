package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casetrail/internal/service"
)

type stubSummaries struct {
	summary service.DailySummary
	err     error
	dates   []string
}

func (s *stubSummaries) DailySummary(_ context.Context, date string) (service.DailySummary, error) {
	s.dates = append(s.dates, date)
	if s.err != nil {
		return service.DailySummary{}, s.err
	}
	out := s.summary
	out.Date = date
	return out, nil
}

type collectingObserver struct {
	mu     sync.Mutex
	events []service.UseCaseEvent
}

func (o *collectingObserver) ObserveUseCase(_ context.Context, ev service.UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, ev)
}

func TestTick_ReportsSummaryThroughObserver(t *testing.T) {
	summaries := &stubSummaries{summary: service.DailySummary{ActiveProjects: 2, ItemsDueToday: 3}}
	observer := &collectingObserver{}
	ticker := NewTicker(summaries, func() string { return "2025-11-20" }, observer)

	ticker.Tick(context.Background())

	require.Len(t, observer.events, 1)
	ev := observer.events[0]
	assert.Equal(t, tickUseCase, ev.Op)
	assert.True(t, ev.Success)
	assert.Equal(t, "2025-11-20", ev.Extra["date"])
	assert.Equal(t, 2, ev.Extra["active_projects"])
	assert.Equal(t, 3, ev.Extra["items_due_today"])
	assert.Equal(t, []string{"2025-11-20"}, summaries.dates)
}

func TestTick_ReportsFailure(t *testing.T) {
	summaries := &stubSummaries{err: errors.New("snapshot unreadable")}
	observer := &collectingObserver{}
	ticker := NewTicker(summaries, func() string { return "2025-11-20" }, observer)

	ticker.Tick(context.Background())

	require.Len(t, observer.events, 1)
	assert.False(t, observer.events[0].Success)
	assert.Error(t, observer.events[0].Err)
	assert.Nil(t, observer.events[0].Extra)
}

func TestStart_RejectsInvalidCronSpec(t *testing.T) {
	ticker := NewTicker(&stubSummaries{}, func() string { return "2025-11-20" })

	err := ticker.Start(context.Background(), "not a cron spec")
	assert.Error(t, err)
}

func TestStartStop_CleanShutdown(t *testing.T) {
	ticker := NewTicker(&stubSummaries{}, func() string { return "2025-11-20" })

	require.NoError(t, ticker.Start(context.Background(), "@hourly"))
	ticker.Stop()
}
