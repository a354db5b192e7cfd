package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casetrail/internal/domain"
	"casetrail/internal/repository"
	"casetrail/internal/testutil"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, ev UseCaseEvent) {
	o.events = append(o.events, ev)
}

func (o *recordingObserver) ops() []UseCase {
	ops := make([]UseCase, len(o.events))
	for i, ev := range o.events {
		ops[i] = ev.Op
	}
	return ops
}

func TestPlanService_EveryMutationIsObserved(t *testing.T) {
	repo := repository.NewPlanRepo()
	obs := &recordingObserver{}
	svc := NewPlanService(repo, NopPersister{}, NopAuditor{}, testutil.SequentialIDs(), testutil.TickingClock(), obs)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, testutil.NewProjectInput("Benefits Appeal"))
	require.NoError(t, err)
	_, err = svc.UpdateProject(ctx, p.ID, ProjectPatch{Name: strPtr("MDCR Appeal")})
	require.NoError(t, err)
	it, err := svc.CreatePlanItem(ctx, testutil.NewItemInput(p.ID, "File appeal", testutil.WithChecklist("Submit filing")))
	require.NoError(t, err)
	_, err = svc.UpdatePlanItem(ctx, it.ID, PlanItemPatch{Notes: strPtr("certified mail")})
	require.NoError(t, err)
	_, err = svc.ToggleChecklistItem(ctx, it.ID, it.Checklist[0].ID, true)
	require.NoError(t, err)
	_, err = svc.DeletePlanItem(ctx, it.ID)
	require.NoError(t, err)
	_, err = svc.DeleteProject(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, []UseCase{
		OpCreateProject,
		OpUpdateProject,
		OpCreatePlanItem,
		OpUpdatePlanItem,
		OpToggleChecklist,
		OpDeletePlanItem,
		OpDeleteProject,
	}, obs.ops())
	for _, ev := range obs.events {
		assert.True(t, ev.Success, "op %s", ev.Op)
		assert.NotEmpty(t, ev.EntityType, "op %s", ev.Op)
		assert.NotEmpty(t, ev.EntityID, "op %s", ev.Op)
	}
}

func TestPlanService_FailedMutationObservedWithError(t *testing.T) {
	repo := repository.NewPlanRepo()
	obs := &recordingObserver{}
	svc := NewPlanService(repo, NopPersister{}, NopAuditor{}, testutil.SequentialIDs(), testutil.TickingClock(), obs)

	_, err := svc.CreatePlanItem(context.Background(), testutil.NewItemInput("no-such-project", "orphan"))
	require.Error(t, err)

	require.Len(t, obs.events, 1)
	ev := obs.events[0]
	assert.Equal(t, OpCreatePlanItem, ev.Op)
	assert.False(t, ev.Success)
	assert.ErrorIs(t, ev.Err, err)
}

func TestOutreachService_EveryMutationIsObserved(t *testing.T) {
	repo := repository.NewOutreachRepo()
	obs := &recordingObserver{}
	svc := NewOutreachService(repo, NopPersister{}, NopAuditor{}, testutil.SequentialIDs(), testutil.TickingClock(), obs)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, testutil.NewCategoryInput("Legal Aid"))
	require.NoError(t, err)
	_, err = svc.UpdateCategory(ctx, cat.ID, CategoryPatch{Name: strPtr("Legal Aid Orgs")})
	require.NoError(t, err)
	ct, err := svc.CreateContact(ctx, testutil.NewContactInput(cat.ID, "Dana Reyes"))
	require.NoError(t, err)
	_, err = svc.UpdateContact(ctx, ct.ID, ContactPatch{Role: strPtr("Intake coordinator")})
	require.NoError(t, err)
	act, err := svc.RecordAction(ctx, domain.OutreachAction{ContactID: ct.ID, Method: domain.OutreachEmail, Summary: "intro"})
	require.NoError(t, err)
	_, err = svc.UpdateAction(ctx, act.ID, ActionPatch{Summary: strPtr("intro + case packet")})
	require.NoError(t, err)
	fu, err := svc.CreateFollowUp(ctx, domain.FollowUpItem{ContactID: ct.ID, DueDate: "2025-11-20"})
	require.NoError(t, err)
	done := domain.FollowUpCompleted
	_, err = svc.UpdateFollowUp(ctx, fu.ID, FollowUpPatch{Status: &done})
	require.NoError(t, err)
	_, err = svc.DeleteFollowUp(ctx, fu.ID)
	require.NoError(t, err)
	oc, err := svc.RecordOutcome(ctx, domain.OutcomeRecord{ContactID: ct.ID, FinalStatus: domain.FinalDeclined, CloseDate: "2025-12-01"})
	require.NoError(t, err)
	_, err = svc.UpdateOutcome(ctx, oc.ID, OutcomePatch{Reason: strPtr("no capacity this quarter")})
	require.NoError(t, err)
	_, err = svc.DeleteOutcome(ctx, oc.ID)
	require.NoError(t, err)
	_, err = svc.DeleteAction(ctx, act.ID)
	require.NoError(t, err)
	_, err = svc.DeleteContact(ctx, ct.ID)
	require.NoError(t, err)
	_, err = svc.DeleteCategory(ctx, cat.ID)
	require.NoError(t, err)

	assert.Equal(t, []UseCase{
		OpCreateCategory,
		OpUpdateCategory,
		OpCreateContact,
		OpUpdateContact,
		OpRecordAction,
		OpUpdateAction,
		OpCreateFollowUp,
		OpUpdateFollowUp,
		OpDeleteFollowUp,
		OpRecordOutcome,
		OpUpdateOutcome,
		OpDeleteOutcome,
		OpDeleteAction,
		OpDeleteContact,
		OpDeleteCategory,
	}, obs.ops())
	for _, ev := range obs.events {
		assert.True(t, ev.Success, "op %s", ev.Op)
		assert.NotEmpty(t, ev.EntityType, "op %s", ev.Op)
		assert.NotEmpty(t, ev.EntityID, "op %s", ev.Op)
	}
}
