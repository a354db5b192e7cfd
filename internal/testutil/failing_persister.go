package testutil

import (
	"context"
	"sync/atomic"

	"casetrail/internal/domain"
)

// FailOnNthPersist is a Persister that injects an error on the Nth Persist
// call, counted from 1. It enables rollback tests by simulating a snapshot
// write failure at a precise point in a multi-step operation. All other calls
// succeed without touching disk.
type FailOnNthPersist struct {
	FailOn int32
	Err    error

	count atomic.Int32
}

func (p *FailOnNthPersist) Persist(context.Context) error {
	if p.count.Add(1) == p.FailOn {
		return p.Err
	}
	return nil
}

// Calls reports how many times Persist has been invoked.
func (p *FailOnNthPersist) Calls() int {
	return int(p.count.Load())
}

// CollectingAuditor records every event it receives, in order.
type CollectingAuditor struct {
	Events []domain.AuditEvent
}

func (a *CollectingAuditor) Log(_ context.Context, ev domain.AuditEvent) error {
	a.Events = append(a.Events, ev)
	return nil
}

// Kinds returns the change kinds of the collected events, in order.
func (a *CollectingAuditor) Kinds() []domain.ChangeKind {
	kinds := make([]domain.ChangeKind, len(a.Events))
	for i, ev := range a.Events {
		kinds[i] = ev.ChangeKind
	}
	return kinds
}

// FailingAuditor is an Auditor whose append always fails with Err.
type FailingAuditor struct {
	Err   error
	count atomic.Int32
}

func (a *FailingAuditor) Log(context.Context, domain.AuditEvent) error {
	a.count.Add(1)
	return a.Err
}

// Calls reports how many append attempts were made.
func (a *FailingAuditor) Calls() int {
	return int(a.count.Load())
}
