package domain

// ContactCategory groups contacts by audience (media, legal aid, agencies).
type ContactCategory struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Color     string   `json:"color"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// Contact is a single person or organization in the outreach pipeline.
type Contact struct {
	ID              string        `json:"id"`
	CategoryID      string        `json:"category_id"`
	Organization    string        `json:"organization"`
	Name            string        `json:"name"`
	Role            string        `json:"role"`
	Phone           string        `json:"phone"`
	Email           string        `json:"email"`
	Address         string        `json:"address"`
	Website         string        `json:"website"`
	PreferredMethod ContactMethod `json:"preferred_method"`
	Tags            []string      `json:"tags"`
	CreatedAt       string        `json:"created_at"`
	UpdatedAt       string        `json:"updated_at"`
}

// OutreachAction records one concrete attempt to reach a contact.
type OutreachAction struct {
	ID                string         `json:"id"`
	ContactID         string         `json:"contact_id"`
	Date              string         `json:"date"`
	Method            OutreachMethod `json:"method"`
	Summary           string         `json:"summary"`
	ArtifactsSent     []string       `json:"artifacts_sent"`
	ArtifactVersionID *string        `json:"artifact_version_id"`
	OutcomeStatus     OutcomeStatus  `json:"outcome_status"`
	NextFollowUpDate  *string        `json:"next_follow_up_date"`
	CreatedAt         string         `json:"created_at"`
}

// FollowUpItem is a dated reminder tied to a contact, optionally anchored to
// the outreach action that prompted it.
type FollowUpItem struct {
	ID               string         `json:"id"`
	ContactID        string         `json:"contact_id"`
	OutreachActionID *string        `json:"outreach_action_id"`
	DueDate          string         `json:"due_date"`
	Status           FollowUpStatus `json:"status"`
	Notes            string         `json:"notes"`
	CreatedAt        string         `json:"created_at"`
}

// OutcomeRecord closes the book on a contact: how the outreach ended and what
// was learned.
type OutcomeRecord struct {
	ID                string      `json:"id"`
	ContactID         string      `json:"contact_id"`
	FinalStatus       FinalStatus `json:"final_status"`
	CloseDate         string      `json:"close_date"`
	Reason            string      `json:"reason"`
	LessonLearned     string      `json:"lesson_learned"`
	ReferredContactID *string     `json:"referred_contact_id"`
	CreatedAt         string      `json:"created_at"`
}
