package service

import (
	"context"

	"casetrail/internal/domain"
)

// Persister writes the current in-memory collections to durable storage.
// Services call it after every successful mutation; a NopPersister is wired
// when persistence is disabled.
type Persister interface {
	Persist(ctx context.Context) error
}

// NopPersister discards persistence. Useful for tests and dry runs.
type NopPersister struct{}

func (NopPersister) Persist(context.Context) error { return nil }

// Auditor appends one structured event per state change.
type Auditor interface {
	Log(ctx context.Context, ev domain.AuditEvent) error
}

// NopAuditor discards audit events.
type NopAuditor struct{}

func (NopAuditor) Log(context.Context, domain.AuditEvent) error { return nil }

// ProjectPatch carries the fields a project update may touch. Nil means the
// field was not supplied and keeps its stored value.
type ProjectPatch struct {
	Name          *string
	Description   *string
	Status        *domain.ProjectStatus
	StartDate     *string
	TargetEndDate *string
	Color         *string
}

// PlanItemPatch carries the fields a plan item update may touch. Supplying
// Checklist replaces the whole list; entries without an id get a fresh one.
// ClearDueDate distinguishes "set due date to null" from "not supplied".
type PlanItemPatch struct {
	Title        *string
	Description  *string
	Category     *domain.PlanCategory
	Status       *domain.PlanItemStatus
	DueDate      *string
	ClearDueDate bool
	Priority     *domain.Priority
	Checklist    *[]domain.ChecklistItem
	Notes        *string
}

// PlanItemFilter combines predicates for querying plan items. Zero-valued
// fields are ignored. Items with a null due date are excluded by the due-date
// bounds but included when no bound is given.
type PlanItemFilter struct {
	ProjectID     string
	Statuses      []domain.PlanItemStatus
	Categories    []domain.PlanCategory
	Priorities    []domain.Priority
	DueOnOrBefore string
	DueOnOrAfter  string
}

// ProjectProgress summarizes completion for one project's plan items.
type ProjectProgress struct {
	Total   int `json:"total"`
	Done    int `json:"done"`
	Percent int `json:"percent"`
}

type PlanService interface {
	CreateProject(ctx context.Context, input domain.Project) (*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*domain.Project, error)
	DeleteProject(ctx context.Context, id string) (bool, error)

	CreatePlanItem(ctx context.Context, input domain.PlanItem) (*domain.PlanItem, error)
	GetPlanItem(ctx context.Context, id string) (*domain.PlanItem, error)
	UpdatePlanItem(ctx context.Context, id string, patch PlanItemPatch) (*domain.PlanItem, error)
	DeletePlanItem(ctx context.Context, id string) (bool, error)
	ToggleChecklistItem(ctx context.Context, planItemID, checklistItemID string, checked bool) (bool, error)

	FilterPlanItems(ctx context.Context, f PlanItemFilter) ([]domain.PlanItem, error)
	ProjectProgress(ctx context.Context, projectID string) (ProjectProgress, error)
	LoadTemplate(ctx context.Context, projectID, startDate string) ([]domain.PlanItem, error)
}

// CategoryPatch carries the fields a contact category update may touch.
type CategoryPatch struct {
	Name  *string
	Color *string
	Tags  *[]string
}

// ContactPatch carries the fields a contact update may touch. A new
// CategoryID must resolve to a live category.
type ContactPatch struct {
	CategoryID      *string
	Organization    *string
	Name            *string
	Role            *string
	Phone           *string
	Email           *string
	Address         *string
	Website         *string
	PreferredMethod *domain.ContactMethod
	Tags            *[]string
}

// ActionPatch carries the fields an outreach action update may touch.
type ActionPatch struct {
	Date                 *string
	Method               *domain.OutreachMethod
	Summary              *string
	ArtifactsSent        *[]string
	ArtifactVersionID    *string
	ClearArtifactVersion bool
	OutcomeStatus        *domain.OutcomeStatus
	NextFollowUpDate     *string
	ClearNextFollowUp    bool
}

// FollowUpPatch carries the fields a follow-up update may touch.
type FollowUpPatch struct {
	DueDate *string
	Status  *domain.FollowUpStatus
	Notes   *string
}

// OutcomePatch carries the fields an outcome record update may touch.
type OutcomePatch struct {
	FinalStatus   *domain.FinalStatus
	CloseDate     *string
	Reason        *string
	LessonLearned *string
}

// OutreachMetrics is the outreach domain's summary counters.
type OutreachMetrics struct {
	Contacts         int `json:"contacts"`
	OpenFollowUps    int `json:"open_follow_ups"`
	WaitingOutreach  int `json:"waiting_outreach"`
	OutcomesRecorded int `json:"outcomes_recorded"`
}

type OutreachService interface {
	CreateCategory(ctx context.Context, input domain.ContactCategory) (*domain.ContactCategory, error)
	GetCategory(ctx context.Context, id string) (*domain.ContactCategory, error)
	ListCategories(ctx context.Context) ([]domain.ContactCategory, error)
	UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (*domain.ContactCategory, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)

	CreateContact(ctx context.Context, input domain.Contact) (*domain.Contact, error)
	GetContact(ctx context.Context, id string) (*domain.Contact, error)
	ListContacts(ctx context.Context) ([]domain.Contact, error)
	UpdateContact(ctx context.Context, id string, patch ContactPatch) (*domain.Contact, error)
	DeleteContact(ctx context.Context, id string) (bool, error)

	RecordAction(ctx context.Context, input domain.OutreachAction) (*domain.OutreachAction, error)
	UpdateAction(ctx context.Context, id string, patch ActionPatch) (*domain.OutreachAction, error)
	DeleteAction(ctx context.Context, id string) (bool, error)

	CreateFollowUp(ctx context.Context, input domain.FollowUpItem) (*domain.FollowUpItem, error)
	UpdateFollowUp(ctx context.Context, id string, patch FollowUpPatch) (*domain.FollowUpItem, error)
	DeleteFollowUp(ctx context.Context, id string) (bool, error)

	RecordOutcome(ctx context.Context, input domain.OutcomeRecord) (*domain.OutcomeRecord, error)
	UpdateOutcome(ctx context.Context, id string, patch OutcomePatch) (*domain.OutcomeRecord, error)
	DeleteOutcome(ctx context.Context, id string) (bool, error)

	OpenFollowUps(ctx context.Context, asOfDate string) ([]domain.FollowUpItem, error)
	ContactHistory(ctx context.Context, contactID string) ([]domain.OutreachAction, error)
	SummaryMetrics(ctx context.Context) (OutreachMetrics, error)
}

// DailySummary is the cross-domain read-only aggregate.
type DailySummary struct {
	Date             string `json:"date"`
	ActiveProjects   int    `json:"active_projects"`
	TotalPlanItems   int    `json:"total_plan_items"`
	ItemsDueToday    int    `json:"items_due_today"`
	ItemsOverdue     int    `json:"items_overdue"`
	Contacts         int    `json:"contacts"`
	OpenFollowUps    int    `json:"open_follow_ups"`
	WaitingOutreach  int    `json:"waiting_outreach"`
	OutcomesRecorded int    `json:"outcomes_recorded"`
}

type SummaryService interface {
	DailySummary(ctx context.Context, date string) (DailySummary, error)
}
