package store

import (
	"context"

	"casetrail/internal/repository"
)

// PlanPersister snapshots a PlanRepo to a fixed path, preserving the version
// number the snapshot was originally loaded with.
type PlanPersister struct {
	path    string
	version int
	repo    *repository.PlanRepo
	clock   func() string
}

// NewPlanPersister wires a loaded snapshot's path and version to a repo.
func NewPlanPersister(path string, version int, repo *repository.PlanRepo, clock func() string) *PlanPersister {
	return &PlanPersister{path: path, version: version, repo: repo, clock: clock}
}

func (p *PlanPersister) Persist(ctx context.Context) error {
	projects, items := p.repo.Collections()
	snap := &PlanSnapshot{
		Version:   p.version,
		UpdatedAt: p.clock(),
		Projects:  projects,
		PlanItems: items,
	}
	return SavePlan(snap, p.path)
}

// OutreachPersister snapshots an OutreachRepo to a fixed path, preserving the
// originally-loaded version number.
type OutreachPersister struct {
	path    string
	version int
	repo    *repository.OutreachRepo
	clock   func() string
}

// NewOutreachPersister wires a loaded snapshot's path and version to a repo.
func NewOutreachPersister(path string, version int, repo *repository.OutreachRepo, clock func() string) *OutreachPersister {
	return &OutreachPersister{path: path, version: version, repo: repo, clock: clock}
}

func (p *OutreachPersister) Persist(ctx context.Context) error {
	categories, contacts, actions, followUps, outcomes := p.repo.Collections()
	snap := &OutreachSnapshot{
		Version:         p.version,
		UpdatedAt:       p.clock(),
		Categories:      categories,
		Contacts:        contacts,
		OutreachActions: actions,
		FollowUps:       followUps,
		Outcomes:        outcomes,
	}
	return SaveOutreach(snap, p.path)
}
