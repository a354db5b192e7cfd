package domain

// ChangeKind tags an audit event with the kind of state change it records.
type ChangeKind string

const (
	ChangeCreate          ChangeKind = "Create"
	ChangeUpdate          ChangeKind = "Update"
	ChangeDelete          ChangeKind = "Delete"
	ChangeTemplateLoad    ChangeKind = "TemplateLoad"
	ChangeChecklistToggle ChangeKind = "ChecklistToggle"
)

// AuditEvent is one immutable record of a state change, appended to the audit
// log after the snapshot write succeeds. ID and Timestamp are filled by the
// sink when absent.
type AuditEvent struct {
	ID         string     `json:"id,omitempty"`
	Timestamp  string     `json:"timestamp,omitempty"`
	EntityType string     `json:"entity_type"`
	ChangeKind ChangeKind `json:"change_kind"`
	EntityID   string     `json:"entity_id"`
	ProjectID  *string    `json:"project_id,omitempty"`
	Before     any        `json:"before,omitempty"`
	After      any        `json:"after,omitempty"`
	Detail     string     `json:"detail,omitempty"`
}
