package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// UseCase names a service operation in observer events.
type UseCase string

const (
	OpCreateProject   UseCase = "create-project"
	OpUpdateProject   UseCase = "update-project"
	OpDeleteProject   UseCase = "delete-project"
	OpCreatePlanItem  UseCase = "create-plan-item"
	OpUpdatePlanItem  UseCase = "update-plan-item"
	OpDeletePlanItem  UseCase = "delete-plan-item"
	OpToggleChecklist UseCase = "toggle-checklist-item"
	OpLoadTemplate    UseCase = "load-template"

	OpCreateCategory UseCase = "create-category"
	OpUpdateCategory UseCase = "update-category"
	OpDeleteCategory UseCase = "delete-category"
	OpCreateContact  UseCase = "create-contact"
	OpUpdateContact  UseCase = "update-contact"
	OpDeleteContact  UseCase = "delete-contact"
	OpRecordAction   UseCase = "record-action"
	OpUpdateAction   UseCase = "update-action"
	OpDeleteAction   UseCase = "delete-action"
	OpCreateFollowUp UseCase = "create-follow-up"
	OpUpdateFollowUp UseCase = "update-follow-up"
	OpDeleteFollowUp UseCase = "delete-follow-up"
	OpRecordOutcome  UseCase = "record-outcome"
	OpUpdateOutcome  UseCase = "update-outcome"
	OpDeleteOutcome  UseCase = "delete-outcome"

	// OpAuditAppend reports a failed audit write. The mutation and its
	// snapshot are already durable when this fires.
	OpAuditAppend UseCase = "audit-append"
)

// UseCaseEvent describes one finished service operation: which use case ran,
// the record it addressed, and how the call ended. Extra carries op-specific
// counters (template item counts, summary totals); the entity fields cover
// everything else.
type UseCaseEvent struct {
	Op         UseCase
	EntityType string
	EntityID   string
	StartedAt  time.Time
	Duration   time.Duration
	Success    bool
	Err        error
	Extra      map[string]any
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes one structured log line per event to w. A nil
// writer yields the noop observer.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	logger := o.logger.With(
		"use_case", string(event.Op),
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	if event.EntityType != "" {
		logger = logger.With("entity_type", event.EntityType)
	}
	if event.EntityID != "" {
		logger = logger.With("entity_id", event.EntityID)
	}
	for k, v := range event.Extra {
		logger = logger.With(k, v)
	}
	if event.Err != nil {
		logger.ErrorContext(ctx, "service operation failed", "error", event.Err.Error())
		return
	}
	logger.InfoContext(ctx, "service operation")
}

// observe reports one finished use case. Defer it with the named error result
// of the surrounding method so the outcome it records is the final one;
// entityID is a pointer for the same reason, since create paths allocate the
// id mid-call.
func observe(ctx context.Context, obs UseCaseObserver, op UseCase, entityType string, entityID *string, startedAt time.Time, errp *error) {
	ev := UseCaseEvent{
		Op:         op,
		EntityType: entityType,
		StartedAt:  startedAt,
		Duration:   time.Since(startedAt),
		Success:    *errp == nil,
		Err:        *errp,
	}
	if entityID != nil {
		ev.EntityID = *entityID
	}
	obs.ObserveUseCase(ctx, ev)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
