package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casetrail/internal/domain"
)

func TestLoadTemplate_PreloadsFullPlan(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	p := f.mustCreateProject(t, "Benefits Appeal")
	f.audit.Events = nil

	items, err := f.svc.LoadTemplate(ctx, p.ID, "2025-11-13")
	require.NoError(t, err)
	require.Len(t, items, TemplateSize)

	// Offsets span days 0-10; two steps share day 5, so the first item is due
	// on the start date and the last ten days after it.
	require.NotNil(t, items[0].DueDate)
	assert.Equal(t, "2025-11-13", *items[0].DueDate)
	require.NotNil(t, items[len(items)-1].DueDate)
	assert.Equal(t, "2025-11-23", *items[len(items)-1].DueDate)

	dayFive := 0
	for _, it := range items {
		require.NotNil(t, it.DueDate)
		assert.GreaterOrEqual(t, *it.DueDate, "2025-11-13")
		assert.LessOrEqual(t, *it.DueDate, "2025-11-23")
		assert.Equal(t, p.ID, it.ProjectID)
		assert.Equal(t, domain.ItemNotStarted, it.Status)
		if *it.DueDate == "2025-11-18" {
			dayFive++
		}
	}
	assert.Equal(t, 2, dayFive, "drafting and witness work share day 5")

	progress, err := f.svc.ProjectProgress(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, ProjectProgress{Total: TemplateSize, Done: 0, Percent: 0}, progress)

	// Each step writes a creation event plus a template-load marker.
	creates, loads := 0, 0
	for _, kind := range f.audit.Kinds() {
		switch kind {
		case domain.ChangeCreate:
			creates++
		case domain.ChangeTemplateLoad:
			loads++
		}
	}
	assert.Equal(t, TemplateSize, creates)
	assert.Equal(t, TemplateSize, loads)
}

func TestLoadTemplate_MonthBoundaryArithmetic(t *testing.T) {
	f := newPlanFixture(t)
	p := f.mustCreateProject(t, "Benefits Appeal")

	items, err := f.svc.LoadTemplate(context.Background(), p.ID, "2025-11-25")
	require.NoError(t, err)
	require.Len(t, items, TemplateSize)
	assert.Equal(t, "2025-12-05", *items[len(items)-1].DueDate, "due dates roll into the next month")
}

func TestLoadTemplate_UnknownProject(t *testing.T) {
	f := newPlanFixture(t)

	_, err := f.svc.LoadTemplate(context.Background(), "no-such-project", "2025-11-13")
	require.Error(t, err)

	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "project_id", refErr.Field)
}

func TestLoadTemplate_RejectsUnpaddedStartDate(t *testing.T) {
	f := newPlanFixture(t)
	p := f.mustCreateProject(t, "Benefits Appeal")

	_, err := f.svc.LoadTemplate(context.Background(), p.ID, "2025-11-5")
	require.Error(t, err)

	items, err := f.svc.FilterPlanItems(context.Background(), PlanItemFilter{ProjectID: p.ID})
	require.NoError(t, err)
	assert.Empty(t, items, "no items created for an invalid start date")
}

func TestLoadTemplate_FinalStepCarriesFilingChecklist(t *testing.T) {
	f := newPlanFixture(t)
	p := f.mustCreateProject(t, "Benefits Appeal")

	items, err := f.svc.LoadTemplate(context.Background(), p.ID, "2025-11-13")
	require.NoError(t, err)

	last := items[len(items)-1]
	require.Len(t, last.Checklist, 3)
	for _, entry := range last.Checklist {
		assert.NotEmpty(t, entry.ID)
		assert.False(t, entry.Checked)
	}
}
