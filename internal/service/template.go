package service

import (
	"context"
	"fmt"
	"time"

	"casetrail/internal/domain"
)

// templateStep is one row of the plan preload table. Offset is the number of
// days after the project start date the step falls due.
type templateStep struct {
	Title     string
	Category  domain.PlanCategory
	Priority  domain.Priority
	Offset    int
	Checklist []string
}

// caseworkTemplate is the fixed preload plan for a new casework project.
// Offsets span days 0-10 of the plan; drafting and witness work share day 5.
var caseworkTemplate = []templateStep{
	{Title: "Review intake packet and filing deadlines", Category: domain.CategoryAdmin, Priority: domain.PriorityCritical, Offset: 0},
	{Title: "Collect incident evidence and correspondence", Category: domain.CategoryEvidence, Priority: domain.PriorityHigh, Offset: 1},
	{Title: "Build chronological event timeline", Category: domain.CategoryResearch, Priority: domain.PriorityHigh, Offset: 2},
	{Title: "Submit records requests to involved agencies", Category: domain.CategoryAdmin, Priority: domain.PriorityNormal, Offset: 3},
	{Title: "Research applicable statutes and precedent", Category: domain.CategoryResearch, Priority: domain.PriorityHigh, Offset: 4},
	{Title: "Draft statement of facts", Category: domain.CategoryDrafting, Priority: domain.PriorityHigh, Offset: 5},
	{Title: "Identify and contact supporting witnesses", Category: domain.CategoryOutreach, Priority: domain.PriorityNormal, Offset: 5},
	{Title: "Draft appeal narrative", Category: domain.CategoryDrafting, Priority: domain.PriorityCritical, Offset: 6},
	{Title: "Compile exhibit list with citations", Category: domain.CategoryEvidence, Priority: domain.PriorityNormal, Offset: 7},
	{Title: "Review draft against intake requirements", Category: domain.CategoryAdmin, Priority: domain.PriorityNormal, Offset: 8},
	{Title: "Final proofread and document assembly", Category: domain.CategoryDrafting, Priority: domain.PriorityHigh, Offset: 9},
	{
		Title: "File appeal and confirm receipt", Category: domain.CategoryAdmin, Priority: domain.PriorityCritical, Offset: 10,
		Checklist: []string{"Submit filing", "Save confirmation number", "Calendar response deadline"},
	},
}

// TemplateSize is the number of plan items the preload creates.
var TemplateSize = len(caseworkTemplate)

func (s *planService) LoadTemplate(ctx context.Context, projectID, startDate string) (items []domain.PlanItem, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Op: OpLoadTemplate, EntityType: "Project", EntityID: projectID,
			StartedAt: startedAt, Duration: time.Since(startedAt),
			Success: err == nil, Err: err,
			Extra: map[string]any{"item_count": len(items)},
		})
	}()

	if _, ok := s.repo.Project(projectID); !ok {
		return nil, &ReferenceError{Entity: "PlanItem", Field: "project_id", ID: projectID}
	}
	start, err := time.Parse(domain.DateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid template start date %q: %w", startDate, err)
	}

	items = make([]domain.PlanItem, 0, len(caseworkTemplate))
	for _, step := range caseworkTemplate {
		// UTC calendar arithmetic on the parsed date; formatting back to the
		// date layout cannot drift across timezones.
		due := start.AddDate(0, 0, step.Offset).Format(domain.DateLayout)

		checklist := make([]domain.ChecklistItem, len(step.Checklist))
		for i, label := range step.Checklist {
			checklist[i] = domain.ChecklistItem{Label: label}
		}

		created, err := s.CreatePlanItem(ctx, domain.PlanItem{
			ProjectID: projectID,
			Title:     step.Title,
			Category:  step.Category,
			Priority:  step.Priority,
			DueDate:   &due,
			Checklist: checklist,
		})
		if err != nil {
			return nil, fmt.Errorf("creating template item %q: %w", step.Title, err)
		}

		s.logAudit(ctx, domain.AuditEvent{
			EntityType: "PlanItem",
			ChangeKind: domain.ChangeTemplateLoad,
			EntityID:   created.ID,
			ProjectID:  &created.ProjectID,
			Detail:     fmt.Sprintf("template step day +%d", step.Offset),
		})
		items = append(items, *created)
	}
	return items, nil
}
