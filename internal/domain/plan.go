package domain

// Date and timestamp layouts used across the module. All values are stored as
// zero-padded ISO strings so lexicographic comparison matches chronological
// order.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05Z"
)

// Project is a multi-day casework effort (an appeal, a records request, a
// complaint) that plan items hang off.
type Project struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Status        ProjectStatus `json:"status"`
	StartDate     string        `json:"start_date"`
	TargetEndDate string        `json:"target_end_date"`
	Color         string        `json:"color"`
	CreatedAt     string        `json:"created_at"`
	UpdatedAt     string        `json:"updated_at"`
}

// ChecklistItem is one entry of a plan item's ordered checklist.
type ChecklistItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// PlanItem is a single step of a project plan. It always references a live
// project; deleting the project cascades to its items.
type PlanItem struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"project_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    PlanCategory    `json:"category"`
	Status      PlanItemStatus  `json:"status"`
	DueDate     *string         `json:"due_date"`
	Priority    Priority        `json:"priority"`
	Checklist   []ChecklistItem `json:"checklist"`
	Notes       string          `json:"notes"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// ChecklistEntry returns the checklist item with the given id, or nil.
func (p *PlanItem) ChecklistEntry(id string) *ChecklistItem {
	for i := range p.Checklist {
		if p.Checklist[i].ID == id {
			return &p.Checklist[i]
		}
	}
	return nil
}
