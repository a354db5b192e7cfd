package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"casetrail/internal/domain"
	"casetrail/internal/repository"
	"casetrail/internal/validate"
)

type planService struct {
	repo     *repository.PlanRepo
	persist  Persister
	audit    Auditor
	ids      func() string
	clock    func() string
	observer UseCaseObserver
}

// NewPlanService wires the plan-tracking domain service. The id generator and
// clock are injected so the service itself stays deterministic.
func NewPlanService(
	repo *repository.PlanRepo,
	persist Persister,
	audit Auditor,
	ids func() string,
	clock func() string,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		repo:     repo,
		persist:  persist,
		audit:    audit,
		ids:      ids,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

// commit persists the repo after a mutation. On failure the repo is restored
// to its pre-mutation state and no audit events are written. Audit append
// failures are non-fatal: the mutation and snapshot are already durable, so
// the failure is only reported through the observer.
func (s *planService) commit(ctx context.Context, undoProjects []domain.Project, undoItems []domain.PlanItem, events ...domain.AuditEvent) error {
	if err := s.persist.Persist(ctx); err != nil {
		s.repo.Restore(undoProjects, undoItems)
		return fmt.Errorf("persisting plan snapshot: %w", err)
	}
	for _, ev := range events {
		s.logAudit(ctx, ev)
	}
	return nil
}

func (s *planService) logAudit(ctx context.Context, ev domain.AuditEvent) {
	if err := s.audit.Log(ctx, ev); err != nil {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Op:         OpAuditAppend,
			EntityType: ev.EntityType,
			EntityID:   ev.EntityID,
			StartedAt:  time.Now().UTC(),
			Success:    false,
			Err:        err,
		})
	}
}

func (s *planService) CreateProject(ctx context.Context, input domain.Project) (p *domain.Project, err error) {
	defer observe(ctx, s.observer, OpCreateProject, "Project", &input.ID, time.Now().UTC(), &err)

	now := s.clock()
	input.ID = s.ids()
	input.CreatedAt = now
	input.UpdatedAt = now
	if input.Status == "" {
		input.Status = domain.ProjectActive
	}

	project, err := validate.Project(input)
	if err != nil {
		return nil, err
	}

	undoProjects, undoItems := s.repo.Collections()
	s.repo.InsertProject(project)
	if err := s.commit(ctx, undoProjects, undoItems, domain.AuditEvent{
		EntityType: "Project",
		ChangeKind: domain.ChangeCreate,
		EntityID:   project.ID,
		After:      project,
	}); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *planService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	p, ok := s.repo.Project(id)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *planService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.repo.Projects(), nil
}

func (s *planService) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (_ *domain.Project, err error) {
	defer observe(ctx, s.observer, OpUpdateProject, "Project", &id, time.Now().UTC(), &err)

	before, ok := s.repo.Project(id)
	if !ok {
		return nil, nil
	}

	updated := before
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Status != nil {
		updated.Status = *patch.Status
	}
	if patch.StartDate != nil {
		updated.StartDate = *patch.StartDate
	}
	if patch.TargetEndDate != nil {
		updated.TargetEndDate = *patch.TargetEndDate
	}
	if patch.Color != nil {
		updated.Color = *patch.Color
	}
	updated.UpdatedAt = s.clock()

	updated, err = validate.Project(updated)
	if err != nil {
		return nil, err
	}

	undoProjects, undoItems := s.repo.Collections()
	s.repo.ReplaceProject(updated)
	if err := s.commit(ctx, undoProjects, undoItems, domain.AuditEvent{
		EntityType: "Project",
		ChangeKind: domain.ChangeUpdate,
		EntityID:   updated.ID,
		Before:     before,
		After:      updated,
	}); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *planService) DeleteProject(ctx context.Context, id string) (deleted bool, err error) {
	defer observe(ctx, s.observer, OpDeleteProject, "Project", &id, time.Now().UTC(), &err)

	before, ok := s.repo.Project(id)
	if !ok {
		return false, nil
	}

	undoProjects, undoItems := s.repo.Collections()
	cascaded := s.repo.RemoveItemsByProject(id)
	s.repo.RemoveProject(id)

	events := make([]domain.AuditEvent, 0, len(cascaded)+1)
	events = append(events, domain.AuditEvent{
		EntityType: "Project",
		ChangeKind: domain.ChangeDelete,
		EntityID:   id,
		Before:     before,
	})
	for _, it := range cascaded {
		events = append(events, domain.AuditEvent{
			EntityType: "PlanItem",
			ChangeKind: domain.ChangeDelete,
			EntityID:   it.ID,
			ProjectID:  &it.ProjectID,
			Before:     it,
			Detail:     "cascade: parent project deleted",
		})
	}
	if err := s.commit(ctx, undoProjects, undoItems, events...); err != nil {
		return false, err
	}
	return true, nil
}

func (s *planService) CreatePlanItem(ctx context.Context, input domain.PlanItem) (_ *domain.PlanItem, err error) {
	defer observe(ctx, s.observer, OpCreatePlanItem, "PlanItem", &input.ID, time.Now().UTC(), &err)

	if _, ok := s.repo.Project(input.ProjectID); !ok {
		return nil, &ReferenceError{Entity: "PlanItem", Field: "project_id", ID: input.ProjectID}
	}

	now := s.clock()
	input.ID = s.ids()
	input.CreatedAt = now
	input.UpdatedAt = now
	// Status is forced regardless of what the input carries; checklist
	// entries start unchecked and get fresh identifiers.
	input.Status = domain.ItemNotStarted
	if input.Category == "" {
		input.Category = domain.CategoryOther
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityNormal
	}
	checklist := make([]domain.ChecklistItem, len(input.Checklist))
	for i, entry := range input.Checklist {
		checklist[i] = domain.ChecklistItem{ID: s.ids(), Label: entry.Label, Checked: false}
	}
	input.Checklist = checklist

	item, err := validate.PlanItem(input)
	if err != nil {
		return nil, err
	}

	undoProjects, undoItems := s.repo.Collections()
	s.repo.InsertItem(item)
	if err := s.commit(ctx, undoProjects, undoItems, domain.AuditEvent{
		EntityType: "PlanItem",
		ChangeKind: domain.ChangeCreate,
		EntityID:   item.ID,
		ProjectID:  &item.ProjectID,
		After:      item,
	}); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *planService) GetPlanItem(ctx context.Context, id string) (*domain.PlanItem, error) {
	it, ok := s.repo.Item(id)
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (s *planService) UpdatePlanItem(ctx context.Context, id string, patch PlanItemPatch) (_ *domain.PlanItem, err error) {
	defer observe(ctx, s.observer, OpUpdatePlanItem, "PlanItem", &id, time.Now().UTC(), &err)

	before, ok := s.repo.Item(id)
	if !ok {
		return nil, nil
	}

	updated := before
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Category != nil {
		updated.Category = *patch.Category
	}
	if patch.Status != nil {
		updated.Status = *patch.Status
	}
	if patch.ClearDueDate {
		updated.DueDate = nil
	} else if patch.DueDate != nil {
		updated.DueDate = patch.DueDate
	}
	if patch.Priority != nil {
		updated.Priority = *patch.Priority
	}
	if patch.Checklist != nil {
		// Whole-array replacement: entries without an id get a fresh one,
		// checked state is taken as supplied.
		replacement := make([]domain.ChecklistItem, len(*patch.Checklist))
		for i, entry := range *patch.Checklist {
			if entry.ID == "" {
				entry.ID = s.ids()
			}
			replacement[i] = entry
		}
		updated.Checklist = replacement
	}
	if patch.Notes != nil {
		updated.Notes = *patch.Notes
	}
	updated.UpdatedAt = s.clock()

	updated, err = validate.PlanItem(updated)
	if err != nil {
		return nil, err
	}

	undoProjects, undoItems := s.repo.Collections()
	s.repo.ReplaceItem(updated)
	if err := s.commit(ctx, undoProjects, undoItems, domain.AuditEvent{
		EntityType: "PlanItem",
		ChangeKind: domain.ChangeUpdate,
		EntityID:   updated.ID,
		ProjectID:  &updated.ProjectID,
		Before:     before,
		After:      updated,
	}); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *planService) DeletePlanItem(ctx context.Context, id string) (deleted bool, err error) {
	defer observe(ctx, s.observer, OpDeletePlanItem, "PlanItem", &id, time.Now().UTC(), &err)

	before, ok := s.repo.Item(id)
	if !ok {
		return false, nil
	}

	undoProjects, undoItems := s.repo.Collections()
	s.repo.RemoveItem(id)
	if err := s.commit(ctx, undoProjects, undoItems, domain.AuditEvent{
		EntityType: "PlanItem",
		ChangeKind: domain.ChangeDelete,
		EntityID:   id,
		ProjectID:  &before.ProjectID,
		Before:     before,
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *planService) ToggleChecklistItem(ctx context.Context, planItemID, checklistItemID string, checked bool) (toggled bool, err error) {
	defer observe(ctx, s.observer, OpToggleChecklist, "PlanItem", &planItemID, time.Now().UTC(), &err)

	item, ok := s.repo.Item(planItemID)
	if !ok {
		return false, nil
	}

	// Clone the checklist so the stored slice is never mutated in place;
	// rollback depends on the pre-mutation backing array staying intact.
	item.Checklist = append([]domain.ChecklistItem(nil), item.Checklist...)
	entry := item.ChecklistEntry(checklistItemID)
	if entry == nil {
		return false, nil
	}

	undoProjects, undoItems := s.repo.Collections()

	before := *entry
	entry.Checked = checked
	after := *entry
	item.UpdatedAt = s.clock()

	s.repo.ReplaceItem(item)
	if err := s.commit(ctx, undoProjects, undoItems, domain.AuditEvent{
		EntityType: "PlanItem",
		ChangeKind: domain.ChangeChecklistToggle,
		EntityID:   planItemID,
		ProjectID:  &item.ProjectID,
		Before:     before,
		After:      after,
		Detail:     fmt.Sprintf("checklist item %s", checklistItemID),
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *planService) FilterPlanItems(ctx context.Context, f PlanItemFilter) ([]domain.PlanItem, error) {
	statuses := toSet(f.Statuses)
	categories := toSet(f.Categories)
	priorities := toSet(f.Priorities)

	var out []domain.PlanItem
	for _, it := range s.repo.Items() {
		if f.ProjectID != "" && it.ProjectID != f.ProjectID {
			continue
		}
		if len(statuses) > 0 && !statuses[string(it.Status)] {
			continue
		}
		if len(categories) > 0 && !categories[string(it.Category)] {
			continue
		}
		if len(priorities) > 0 && !priorities[string(it.Priority)] {
			continue
		}
		if f.DueOnOrBefore != "" {
			if it.DueDate == nil || *it.DueDate > f.DueOnOrBefore {
				continue
			}
		}
		if f.DueOnOrAfter != "" {
			if it.DueDate == nil || *it.DueDate < f.DueOnOrAfter {
				continue
			}
		}
		out = append(out, it)
	}
	return out, nil
}

func toSet[T ~string](vals []T) map[string]bool {
	if len(vals) == 0 {
		return nil
	}
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[string(v)] = true
	}
	return set
}

func (s *planService) ProjectProgress(ctx context.Context, projectID string) (ProjectProgress, error) {
	var progress ProjectProgress
	for _, it := range s.repo.ItemsByProject(projectID) {
		progress.Total++
		if it.Status == domain.ItemDone {
			progress.Done++
		}
	}
	if progress.Total > 0 {
		progress.Percent = int(math.Round(float64(progress.Done) / float64(progress.Total) * 100))
	}
	return progress, nil
}
