package service

import (
	"context"
	"fmt"
	"time"

	"casetrail/internal/domain"
)

type summaryService struct {
	plan     PlanService
	outreach OutreachService
}

// NewSummaryService builds the read-only daily aggregate from the two domain
// services' public query surfaces.
func NewSummaryService(plan PlanService, outreach OutreachService) SummaryService {
	return &summaryService{plan: plan, outreach: outreach}
}

func (s *summaryService) DailySummary(ctx context.Context, date string) (DailySummary, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return DailySummary{}, fmt.Errorf("invalid summary date %q: %w", date, err)
	}

	summary := DailySummary{Date: date}

	projects, err := s.plan.ListProjects(ctx)
	if err != nil {
		return DailySummary{}, err
	}
	for _, p := range projects {
		if p.Status == domain.ProjectActive {
			summary.ActiveProjects++
		}
	}

	items, err := s.plan.FilterPlanItems(ctx, PlanItemFilter{})
	if err != nil {
		return DailySummary{}, err
	}
	summary.TotalPlanItems = len(items)

	open := []domain.PlanItemStatus{domain.ItemNotStarted, domain.ItemInProgress}
	dueToday, err := s.plan.FilterPlanItems(ctx, PlanItemFilter{
		Statuses: open, DueOnOrAfter: date, DueOnOrBefore: date,
	})
	if err != nil {
		return DailySummary{}, err
	}
	summary.ItemsDueToday = len(dueToday)

	dueThrough, err := s.plan.FilterPlanItems(ctx, PlanItemFilter{
		Statuses: open, DueOnOrBefore: date,
	})
	if err != nil {
		return DailySummary{}, err
	}
	summary.ItemsOverdue = len(dueThrough) - len(dueToday)

	followUps, err := s.outreach.OpenFollowUps(ctx, date)
	if err != nil {
		return DailySummary{}, err
	}
	summary.OpenFollowUps = len(followUps)

	metrics, err := s.outreach.SummaryMetrics(ctx)
	if err != nil {
		return DailySummary{}, err
	}
	summary.Contacts = metrics.Contacts
	summary.WaitingOutreach = metrics.WaitingOutreach
	summary.OutcomesRecorded = metrics.OutcomesRecorded

	return summary, nil
}
