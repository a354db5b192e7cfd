package testutil

import (
	"fmt"
	"sync/atomic"

	"casetrail/internal/domain"
)

// SequentialIDs returns an id generator producing id-1, id-2, ... — stable
// across a test run so assertions can name records.
func SequentialIDs() func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("id-%d", n.Add(1))
	}
}

// FixedClock returns a clock stuck at the given ISO timestamp.
func FixedClock(ts string) func() string {
	return func() string { return ts }
}

// TickingClock returns a clock that advances one second per call starting at
// a fixed base, so updated_at comparisons have real ordering.
func TickingClock() func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("2025-11-13T09:00:%02dZ", n.Add(1)-1)
	}
}

// Project options

type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) { p.Status = s }
}

func WithProjectDates(start, target string) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = start
		p.TargetEndDate = target
	}
}

// NewProjectInput builds a valid create-project input.
func NewProjectInput(name string, opts ...ProjectOption) domain.Project {
	p := domain.Project{
		Name:          name,
		Description:   "test project",
		StartDate:     "2025-11-13",
		TargetEndDate: "2025-11-24",
		Color:         "teal",
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// PlanItem options

type ItemOption func(*domain.PlanItem)

func WithDueDate(d string) ItemOption {
	return func(it *domain.PlanItem) { it.DueDate = &d }
}

func WithCategory(c domain.PlanCategory) ItemOption {
	return func(it *domain.PlanItem) { it.Category = c }
}

func WithPriority(p domain.Priority) ItemOption {
	return func(it *domain.PlanItem) { it.Priority = p }
}

func WithChecklist(labels ...string) ItemOption {
	return func(it *domain.PlanItem) {
		for _, l := range labels {
			it.Checklist = append(it.Checklist, domain.ChecklistItem{Label: l})
		}
	}
}

// NewItemInput builds a valid create-plan-item input for the given project.
func NewItemInput(projectID, title string, opts ...ItemOption) domain.PlanItem {
	it := domain.PlanItem{
		ProjectID: projectID,
		Title:     title,
		Category:  domain.CategoryResearch,
		Priority:  domain.PriorityNormal,
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// NewCategoryInput builds a valid create-category input.
func NewCategoryInput(name string) domain.ContactCategory {
	return domain.ContactCategory{
		Name:  name,
		Color: "amber",
		Tags:  []string{"test"},
	}
}

// NewContactInput builds a valid create-contact input in the given category.
func NewContactInput(categoryID, name string) domain.Contact {
	return domain.Contact{
		CategoryID:      categoryID,
		Organization:    "Example Org",
		Name:            name,
		Role:            "coordinator",
		Email:           "contact@example.org",
		PreferredMethod: domain.MethodEmail,
		Tags:            []string{"test"},
	}
}
