package validate

import (
	"fmt"

	"casetrail/internal/domain"
)

// Project returns a canonical copy of p or every field violation at once.
func Project(p domain.Project) (domain.Project, error) {
	var c checker
	p.ID = c.identifier("id", p.ID)
	p.Name = c.required("name", p.Name)
	p.Description = c.trimmed(p.Description)
	c.enum("status", string(p.Status), domain.ValidProjectStatuses)
	c.date("start_date", p.StartDate)
	c.date("target_end_date", p.TargetEndDate)
	p.Color = c.trimmed(p.Color)
	c.dateTime("created_at", p.CreatedAt)
	c.dateTime("updated_at", p.UpdatedAt)
	return p, c.err()
}

// PlanItem returns a canonical copy of it or every field violation at once.
// Checklist entries are validated element-wise with per-index attribution.
func PlanItem(it domain.PlanItem) (domain.PlanItem, error) {
	var c checker
	it.ID = c.identifier("id", it.ID)
	it.ProjectID = c.identifier("project_id", it.ProjectID)
	it.Title = c.required("title", it.Title)
	it.Description = c.trimmed(it.Description)
	c.enum("category", string(it.Category), domain.ValidPlanCategories)
	c.enum("status", string(it.Status), domain.ValidPlanItemStatuses)
	it.DueDate = c.nullableDate("due_date", it.DueDate)
	c.enum("priority", string(it.Priority), domain.ValidPriorities)
	checklist := make([]domain.ChecklistItem, len(it.Checklist))
	for i, entry := range it.Checklist {
		entry.ID = c.identifier(fmt.Sprintf("checklist[%d].id", i), entry.ID)
		entry.Label = c.required(fmt.Sprintf("checklist[%d].label", i), entry.Label)
		checklist[i] = entry
	}
	it.Checklist = checklist
	it.Notes = c.trimmed(it.Notes)
	c.dateTime("created_at", it.CreatedAt)
	c.dateTime("updated_at", it.UpdatedAt)
	return it, c.err()
}

// ContactCategory returns a canonical copy of cat or every field violation.
func ContactCategory(cat domain.ContactCategory) (domain.ContactCategory, error) {
	var c checker
	cat.ID = c.identifier("id", cat.ID)
	cat.Name = c.required("name", cat.Name)
	cat.Color = c.trimmed(cat.Color)
	cat.Tags = c.tags("tags", cat.Tags)
	c.dateTime("created_at", cat.CreatedAt)
	c.dateTime("updated_at", cat.UpdatedAt)
	return cat, c.err()
}

// Contact returns a canonical copy of ct or every field violation at once.
func Contact(ct domain.Contact) (domain.Contact, error) {
	var c checker
	ct.ID = c.identifier("id", ct.ID)
	ct.CategoryID = c.identifier("category_id", ct.CategoryID)
	ct.Organization = c.trimmed(ct.Organization)
	ct.Name = c.required("name", ct.Name)
	ct.Role = c.trimmed(ct.Role)
	ct.Phone = c.trimmed(ct.Phone)
	ct.Email = c.trimmed(ct.Email)
	ct.Address = c.trimmed(ct.Address)
	ct.Website = c.trimmed(ct.Website)
	c.enum("preferred_method", string(ct.PreferredMethod), domain.ValidContactMethods)
	ct.Tags = c.tags("tags", ct.Tags)
	c.dateTime("created_at", ct.CreatedAt)
	c.dateTime("updated_at", ct.UpdatedAt)
	return ct, c.err()
}

// OutreachAction returns a canonical copy of a or every field violation.
func OutreachAction(a domain.OutreachAction) (domain.OutreachAction, error) {
	var c checker
	a.ID = c.identifier("id", a.ID)
	a.ContactID = c.identifier("contact_id", a.ContactID)
	c.dateTime("date", a.Date)
	c.enum("method", string(a.Method), domain.ValidOutreachMethods)
	a.Summary = c.trimmed(a.Summary)
	a.ArtifactsSent = c.tags("artifacts_sent", a.ArtifactsSent)
	if a.ArtifactVersionID != nil {
		v := c.identifier("artifact_version_id", *a.ArtifactVersionID)
		a.ArtifactVersionID = &v
	}
	c.enum("outcome_status", string(a.OutcomeStatus), domain.ValidOutcomeStatuses)
	a.NextFollowUpDate = c.nullableDate("next_follow_up_date", a.NextFollowUpDate)
	c.dateTime("created_at", a.CreatedAt)
	return a, c.err()
}

// FollowUpItem returns a canonical copy of f or every field violation.
func FollowUpItem(f domain.FollowUpItem) (domain.FollowUpItem, error) {
	var c checker
	f.ID = c.identifier("id", f.ID)
	f.ContactID = c.identifier("contact_id", f.ContactID)
	if f.OutreachActionID != nil {
		v := c.identifier("outreach_action_id", *f.OutreachActionID)
		f.OutreachActionID = &v
	}
	c.date("due_date", f.DueDate)
	c.enum("status", string(f.Status), domain.ValidFollowUpStatuses)
	f.Notes = c.trimmed(f.Notes)
	c.dateTime("created_at", f.CreatedAt)
	return f, c.err()
}

// OutcomeRecord returns a canonical copy of o or every field violation.
func OutcomeRecord(o domain.OutcomeRecord) (domain.OutcomeRecord, error) {
	var c checker
	o.ID = c.identifier("id", o.ID)
	o.ContactID = c.identifier("contact_id", o.ContactID)
	c.enum("final_status", string(o.FinalStatus), domain.ValidFinalStatuses)
	c.date("close_date", o.CloseDate)
	o.Reason = c.trimmed(o.Reason)
	o.LessonLearned = c.trimmed(o.LessonLearned)
	if o.ReferredContactID != nil {
		v := c.identifier("referred_contact_id", *o.ReferredContactID)
		o.ReferredContactID = &v
	}
	c.dateTime("created_at", o.CreatedAt)
	return o, c.err()
}
