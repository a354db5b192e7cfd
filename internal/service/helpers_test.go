package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"casetrail/internal/domain"
	"casetrail/internal/repository"
	"casetrail/internal/testutil"
)

// planFixture wires a plan service against an in-memory repo with a
// collecting auditor, sequential ids, and a ticking clock.
type planFixture struct {
	svc   PlanService
	repo  *repository.PlanRepo
	audit *testutil.CollectingAuditor
}

func newPlanFixture(t *testing.T) *planFixture {
	t.Helper()
	repo := repository.NewPlanRepo()
	audit := &testutil.CollectingAuditor{}
	svc := NewPlanService(repo, NopPersister{}, audit, testutil.SequentialIDs(), testutil.TickingClock())
	return &planFixture{svc: svc, repo: repo, audit: audit}
}

func (f *planFixture) mustCreateProject(t *testing.T, name string, opts ...testutil.ProjectOption) domain.Project {
	t.Helper()
	p, err := f.svc.CreateProject(context.Background(), testutil.NewProjectInput(name, opts...))
	require.NoError(t, err)
	require.NotNil(t, p)
	return *p
}

func (f *planFixture) mustCreateItem(t *testing.T, projectID, title string, opts ...testutil.ItemOption) domain.PlanItem {
	t.Helper()
	it, err := f.svc.CreatePlanItem(context.Background(), testutil.NewItemInput(projectID, title, opts...))
	require.NoError(t, err)
	require.NotNil(t, it)
	return *it
}

// outreachFixture wires an outreach service the same way.
type outreachFixture struct {
	svc   OutreachService
	repo  *repository.OutreachRepo
	audit *testutil.CollectingAuditor
}

func newOutreachFixture(t *testing.T) *outreachFixture {
	t.Helper()
	repo := repository.NewOutreachRepo()
	audit := &testutil.CollectingAuditor{}
	svc := NewOutreachService(repo, NopPersister{}, audit, testutil.SequentialIDs(), testutil.TickingClock())
	return &outreachFixture{svc: svc, repo: repo, audit: audit}
}

func (f *outreachFixture) mustCreateCategory(t *testing.T, name string) domain.ContactCategory {
	t.Helper()
	c, err := f.svc.CreateCategory(context.Background(), testutil.NewCategoryInput(name))
	require.NoError(t, err)
	require.NotNil(t, c)
	return *c
}

func (f *outreachFixture) mustCreateContact(t *testing.T, categoryID, name string) domain.Contact {
	t.Helper()
	c, err := f.svc.CreateContact(context.Background(), testutil.NewContactInput(categoryID, name))
	require.NoError(t, err)
	require.NotNil(t, c)
	return *c
}

func (f *outreachFixture) mustRecordAction(t *testing.T, contactID string, a domain.OutreachAction) domain.OutreachAction {
	t.Helper()
	a.ContactID = contactID
	rec, err := f.svc.RecordAction(context.Background(), a)
	require.NoError(t, err)
	require.NotNil(t, rec)
	return *rec
}

func strPtr(s string) *string { return &s }
