package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casetrail/internal/domain"
	"casetrail/internal/testutil"
)

func TestCreateContact_RequiresLiveCategory(t *testing.T) {
	f := newOutreachFixture(t)

	_, err := f.svc.CreateContact(context.Background(), testutil.NewContactInput("no-such-category", "Dana Reyes"))
	require.Error(t, err)

	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "category_id", refErr.Field)
}

func TestDeleteCategory_BlockedWhileContactsReferenceIt(t *testing.T) {
	f := newOutreachFixture(t)
	ctx := context.Background()
	cat := f.mustCreateCategory(t, "Legal Aid")
	ct := f.mustCreateContact(t, cat.ID, "Dana Reyes")
	f.audit.Events = nil

	deleted, err := f.svc.DeleteCategory(ctx, cat.ID)
	require.Error(t, err)
	assert.False(t, deleted)

	var intErr *IntegrityError
	require.ErrorAs(t, err, &intErr)
	assert.Equal(t, "ContactCategory", intErr.Entity)
	assert.Equal(t, 1, intErr.Count)

	// Nothing moved and nothing was audited.
	got, err := f.svc.GetCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, f.audit.Events)

	// After the contact is gone the category deletes cleanly.
	_, err = f.svc.DeleteContact(ctx, ct.ID)
	require.NoError(t, err)
	deleted, err = f.svc.DeleteCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDeleteContact_BlockedByFollowUpsAndOutcomes(t *testing.T) {
	f := newOutreachFixture(t)
	ctx := context.Background()
	cat := f.mustCreateCategory(t, "Legal Aid")
	ct := f.mustCreateContact(t, cat.ID, "Dana Reyes")

	fu, err := f.svc.CreateFollowUp(ctx, domain.FollowUpItem{ContactID: ct.ID, DueDate: "2025-11-20"})
	require.NoError(t, err)

	_, err = f.svc.DeleteContact(ctx, ct.ID)
	var intErr *IntegrityError
	require.ErrorAs(t, err, &intErr)
	assert.Equal(t, "follow-ups", intErr.Dependents)

	_, err = f.svc.DeleteFollowUp(ctx, fu.ID)
	require.NoError(t, err)

	_, err = f.svc.RecordOutcome(ctx, domain.OutcomeRecord{
		ContactID:   ct.ID,
		FinalStatus: domain.FinalDeclined,
		CloseDate:   "2025-12-01",
	})
	require.NoError(t, err)

	_, err = f.svc.DeleteContact(ctx, ct.ID)
	require.ErrorAs(t, err, &intErr)
	assert.Equal(t, "outcome records", intErr.Dependents)
}

func TestDeleteContact_CascadesActionsWithOneEventEach(t *testing.T) {
	f := newOutreachFixture(t)
	ctx := context.Background()
	cat := f.mustCreateCategory(t, "Legal Aid")
	ct := f.mustCreateContact(t, cat.ID, "Dana Reyes")
	f.mustRecordAction(t, ct.ID, domain.OutreachAction{Method: domain.OutreachEmail, Summary: "intro"})
	f.mustRecordAction(t, ct.ID, domain.OutreachAction{Method: domain.OutreachCall, Summary: "follow-up call"})
	f.audit.Events = nil

	deleted, err := f.svc.DeleteContact(ctx, ct.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	require.Len(t, f.audit.Events, 3)
	assert.Equal(t, "Contact", f.audit.Events[0].EntityType)
	for _, ev := range f.audit.Events[1:] {
		assert.Equal(t, "OutreachAction", ev.EntityType)
		assert.Equal(t, "cascade: parent contact deleted", ev.Detail)
	}

	history, err := f.svc.ContactHistory(ctx, ct.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRecordAction_DefaultsDateAndOutcome(t *testing.T) {
	f := newOutreachFixture(t)
	cat := f.mustCreateCategory(t, "Legal Aid")
	ct := f.mustCreateContact(t, cat.ID, "Dana Reyes")

	rec := f.mustRecordAction(t, ct.ID, domain.OutreachAction{Method: domain.OutreachEmail, Summary: "intro"})

	assert.Equal(t, domain.OutcomeNone, rec.OutcomeStatus)
	assert.Equal(t, rec.CreatedAt, rec.Date, "date defaults to the creation instant")
	assert.NotEmpty(t, rec.ID)
}

func TestRecordAction_UnknownContact(t *testing.T) {
	f := newOutreachFixture(t)

	_, err := f.svc.RecordAction(context.Background(), domain.OutreachAction{
		ContactID: "no-such-contact",
		Method:    domain.OutreachEmail,
	})
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "contact_id", refErr.Field)
}

func TestUpdateAction_ClearFlags(t *testing.T) {
	f := newOutreachFixture(t)
	ctx := context.Background()
	cat := f.mustCreateCategory(t, "Legal Aid")
	ct := f.mustCreateContact(t, cat.ID, "Dana Reyes")
	rec := f.mustRecordAction(t, ct.ID, domain.OutreachAction{
		Method:            domain.OutreachEmail,
		Summary:           "intro",
		ArtifactVersionID: strPtr("v3"),
		NextFollowUpDate:  strPtr("2025-11-20"),
	})
	require.NotNil(t, rec.ArtifactVersionID)
	require.NotNil(t, rec.NextFollowUpDate)

	updated, err := f.svc.UpdateAction(ctx, rec.ID, ActionPatch{
		ClearArtifactVersion: true,
		ClearNextFollowUp:    true,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.ArtifactVersionID)
	assert.Nil(t, updated.NextFollowUpDate)
}

func TestCreateFollowUp_ForcedOpenAndAnchorChecked(t *testing.T) {
	f := newOutreachFixture(t)
	ctx := context.Background()
	cat := f.mustCreateCategory(t, "Legal Aid")
	ct := f.mustCreateContact(t, cat.ID, "Dana Reyes")

	fu, err := f.svc.CreateFollowUp(ctx, domain.FollowUpItem{
		ContactID: ct.ID,
		DueDate:   "2025-11-20",
		Status:    domain.FollowUpCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FollowUpOpen, fu.Status, "caller-supplied status is ignored")

	_, err = f.svc.CreateFollowUp(ctx, domain.FollowUpItem{
		ContactID:        ct.ID,
		OutreachActionID: strPtr("no-such-action"),
		DueDate:          "2025-11-21",
	})
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "outreach_action_id", refErr.Field)
}

func TestOpenFollowUps_AsOfWindow(t *testing.T) {
	f := newOutreachFixture(t)
	ctx := context.Background()
	cat := f.mustCreateCategory(t, "Legal Aid")
	ct := f.mustCreateContact(t, cat.ID, "Dana Reyes")

	due, err := f.svc.CreateFollowUp(ctx, domain.FollowUpItem{ContactID: ct.ID, DueDate: "2025-11-18"})
	require.NoError(t, err)
	_, err = f.svc.CreateFollowUp(ctx, domain.FollowUpItem{ContactID: ct.ID, DueDate: "2025-11-25"})
	require.NoError(t, err)
	closed, err := f.svc.CreateFollowUp(ctx, domain.FollowUpItem{ContactID: ct.ID, DueDate: "2025-11-17"})
	require.NoError(t, err)

	completed := domain.FollowUpCompleted
	_, err = f.svc.UpdateFollowUp(ctx, closed.ID, FollowUpPatch{Status: &completed})
	require.NoError(t, err)

	open, err := f.svc.OpenFollowUps(ctx, "2025-11-20")
	require.NoError(t, err)
	require.Len(t, open, 1, "future and completed follow-ups are excluded")
	assert.Equal(t, due.ID, open[0].ID)
}

func TestRecordOutcome_ReferredContactMustResolve(t *testing.T) {
	f := newOutreachFixture(t)
	ctx := context.Background()
	cat := f.mustCreateCategory(t, "Legal Aid")
	ct := f.mustCreateContact(t, cat.ID, "Dana Reyes")
	other := f.mustCreateContact(t, cat.ID, "Sam Osei")

	_, err := f.svc.RecordOutcome(ctx, domain.OutcomeRecord{
		ContactID:         ct.ID,
		FinalStatus:       domain.FinalOther,
		CloseDate:         "2025-12-01",
		ReferredContactID: strPtr("no-such-contact"),
	})
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "referred_contact_id", refErr.Field)

	oc, err := f.svc.RecordOutcome(ctx, domain.OutcomeRecord{
		ContactID:         ct.ID,
		FinalStatus:       domain.FinalOther,
		CloseDate:         "2025-12-01",
		Reason:            "referred to partner org",
		ReferredContactID: &other.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, oc.ReferredContactID)
	assert.Equal(t, other.ID, *oc.ReferredContactID)
}

func TestContactHistory_OrderedByActionDate(t *testing.T) {
	f := newOutreachFixture(t)
	ctx := context.Background()
	cat := f.mustCreateCategory(t, "Legal Aid")
	ct := f.mustCreateContact(t, cat.ID, "Dana Reyes")

	late := f.mustRecordAction(t, ct.ID, domain.OutreachAction{Date: "2025-11-20T10:00:00Z", Method: domain.OutreachCall, Summary: "late"})
	early := f.mustRecordAction(t, ct.ID, domain.OutreachAction{Date: "2025-11-10T10:00:00Z", Method: domain.OutreachEmail, Summary: "early"})
	mid := f.mustRecordAction(t, ct.ID, domain.OutreachAction{Date: "2025-11-15T10:00:00Z", Method: domain.OutreachMail, Summary: "mid"})

	history, err := f.svc.ContactHistory(ctx, ct.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []string{early.ID, mid.ID, late.ID}, []string{history[0].ID, history[1].ID, history[2].ID})
}

func TestSummaryMetrics(t *testing.T) {
	f := newOutreachFixture(t)
	ctx := context.Background()
	cat := f.mustCreateCategory(t, "Legal Aid")
	ct := f.mustCreateContact(t, cat.ID, "Dana Reyes")

	metrics, err := f.svc.SummaryMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutreachMetrics{Contacts: 1}, metrics, "one contact, nothing waiting yet")

	f.mustRecordAction(t, ct.ID, domain.OutreachAction{Method: domain.OutreachEmail, Summary: "intro", OutcomeStatus: domain.OutcomeWaiting})
	_, err = f.svc.CreateFollowUp(ctx, domain.FollowUpItem{ContactID: ct.ID, DueDate: "2025-11-20"})
	require.NoError(t, err)
	_, err = f.svc.RecordOutcome(ctx, domain.OutcomeRecord{ContactID: ct.ID, FinalStatus: domain.FinalCompletedHelp, CloseDate: "2025-12-01"})
	require.NoError(t, err)

	metrics, err = f.svc.SummaryMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutreachMetrics{
		Contacts:         1,
		OpenFollowUps:    1,
		WaitingOutreach:  1,
		OutcomesRecorded: 1,
	}, metrics)
}

func TestUpdateContact_CategoryMoveChecked(t *testing.T) {
	f := newOutreachFixture(t)
	ctx := context.Background()
	cat := f.mustCreateCategory(t, "Legal Aid")
	media := f.mustCreateCategory(t, "Media")
	ct := f.mustCreateContact(t, cat.ID, "Dana Reyes")

	_, err := f.svc.UpdateContact(ctx, ct.ID, ContactPatch{CategoryID: strPtr("no-such-category")})
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)

	updated, err := f.svc.UpdateContact(ctx, ct.ID, ContactPatch{CategoryID: &media.ID})
	require.NoError(t, err)
	assert.Equal(t, media.ID, updated.CategoryID)
}
