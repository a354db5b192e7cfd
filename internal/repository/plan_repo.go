// Package repository holds the in-memory collections that stand in for a
// storage engine. Repositories own their slices, keep insertion order stable
// so snapshots round-trip deterministically, and expose plain CRUD — all
// integrity rules live in the service layer.
package repository

import "casetrail/internal/domain"

// PlanRepo owns the plan-tracking collections: projects and plan items.
type PlanRepo struct {
	projects []domain.Project
	items    []domain.PlanItem
}

func NewPlanRepo() *PlanRepo {
	return &PlanRepo{}
}

// Restore replaces both collections wholesale. Used after a snapshot load and
// to roll back a mutation whose persist step failed.
func (r *PlanRepo) Restore(projects []domain.Project, items []domain.PlanItem) {
	r.projects = append([]domain.Project(nil), projects...)
	r.items = append([]domain.PlanItem(nil), items...)
}

// Collections returns copies of both collections in insertion order.
func (r *PlanRepo) Collections() ([]domain.Project, []domain.PlanItem) {
	return append([]domain.Project(nil), r.projects...),
		append([]domain.PlanItem(nil), r.items...)
}

func (r *PlanRepo) InsertProject(p domain.Project) {
	r.projects = append(r.projects, p)
}

func (r *PlanRepo) Project(id string) (domain.Project, bool) {
	for _, p := range r.projects {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}

func (r *PlanRepo) Projects() []domain.Project {
	return append([]domain.Project(nil), r.projects...)
}

// ReplaceProject swaps the stored project with the same ID. Returns false if
// no project matches.
func (r *PlanRepo) ReplaceProject(p domain.Project) bool {
	for i := range r.projects {
		if r.projects[i].ID == p.ID {
			r.projects[i] = p
			return true
		}
	}
	return false
}

func (r *PlanRepo) RemoveProject(id string) bool {
	for i := range r.projects {
		if r.projects[i].ID == id {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			return true
		}
	}
	return false
}

func (r *PlanRepo) InsertItem(it domain.PlanItem) {
	r.items = append(r.items, it)
}

func (r *PlanRepo) Item(id string) (domain.PlanItem, bool) {
	for _, it := range r.items {
		if it.ID == id {
			return it, true
		}
	}
	return domain.PlanItem{}, false
}

func (r *PlanRepo) Items() []domain.PlanItem {
	return append([]domain.PlanItem(nil), r.items...)
}

func (r *PlanRepo) ItemsByProject(projectID string) []domain.PlanItem {
	var out []domain.PlanItem
	for _, it := range r.items {
		if it.ProjectID == projectID {
			out = append(out, it)
		}
	}
	return out
}

func (r *PlanRepo) ReplaceItem(it domain.PlanItem) bool {
	for i := range r.items {
		if r.items[i].ID == it.ID {
			r.items[i] = it
			return true
		}
	}
	return false
}

func (r *PlanRepo) RemoveItem(id string) bool {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveItemsByProject removes every item belonging to projectID and returns
// the removed items in their stored order.
func (r *PlanRepo) RemoveItemsByProject(projectID string) []domain.PlanItem {
	var removed []domain.PlanItem
	kept := r.items[:0]
	for _, it := range r.items {
		if it.ProjectID == projectID {
			removed = append(removed, it)
		} else {
			kept = append(kept, it)
		}
	}
	r.items = kept
	return removed
}
