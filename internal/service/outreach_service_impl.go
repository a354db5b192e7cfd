package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"casetrail/internal/domain"
	"casetrail/internal/repository"
	"casetrail/internal/validate"
)

type outreachService struct {
	repo     *repository.OutreachRepo
	persist  Persister
	audit    Auditor
	ids      func() string
	clock    func() string
	observer UseCaseObserver
}

// NewOutreachService wires the outreach-tracking domain service.
func NewOutreachService(
	repo *repository.OutreachRepo,
	persist Persister,
	audit Auditor,
	ids func() string,
	clock func() string,
	observers ...UseCaseObserver,
) OutreachService {
	return &outreachService{
		repo:     repo,
		persist:  persist,
		audit:    audit,
		ids:      ids,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

type outreachUndo struct {
	categories []domain.ContactCategory
	contacts   []domain.Contact
	actions    []domain.OutreachAction
	followUps  []domain.FollowUpItem
	outcomes   []domain.OutcomeRecord
}

func (s *outreachService) snapshot() outreachUndo {
	var u outreachUndo
	u.categories, u.contacts, u.actions, u.followUps, u.outcomes = s.repo.Collections()
	return u
}

// commit persists the repo after a mutation, restoring the pre-mutation state
// on failure. Audit append failures are non-fatal and surface only through
// the observer.
func (s *outreachService) commit(ctx context.Context, undo outreachUndo, events ...domain.AuditEvent) error {
	if err := s.persist.Persist(ctx); err != nil {
		s.repo.Restore(undo.categories, undo.contacts, undo.actions, undo.followUps, undo.outcomes)
		return fmt.Errorf("persisting outreach snapshot: %w", err)
	}
	for _, ev := range events {
		s.logAudit(ctx, ev)
	}
	return nil
}

func (s *outreachService) logAudit(ctx context.Context, ev domain.AuditEvent) {
	if err := s.audit.Log(ctx, ev); err != nil {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Op:         OpAuditAppend,
			EntityType: ev.EntityType,
			EntityID:   ev.EntityID,
			StartedAt:  time.Now().UTC(),
			Success:    false,
			Err:        err,
		})
	}
}

func (s *outreachService) CreateCategory(ctx context.Context, input domain.ContactCategory) (_ *domain.ContactCategory, err error) {
	defer observe(ctx, s.observer, OpCreateCategory, "ContactCategory", &input.ID, time.Now().UTC(), &err)

	now := s.clock()
	input.ID = s.ids()
	input.CreatedAt = now
	input.UpdatedAt = now

	category, err := validate.ContactCategory(input)
	if err != nil {
		return nil, err
	}

	undo := s.snapshot()
	s.repo.InsertCategory(category)
	if err := s.commit(ctx, undo, domain.AuditEvent{
		EntityType: "ContactCategory",
		ChangeKind: domain.ChangeCreate,
		EntityID:   category.ID,
		After:      category,
	}); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *outreachService) GetCategory(ctx context.Context, id string) (*domain.ContactCategory, error) {
	c, ok := s.repo.Category(id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *outreachService) ListCategories(ctx context.Context) ([]domain.ContactCategory, error) {
	return s.repo.Categories(), nil
}

func (s *outreachService) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (_ *domain.ContactCategory, err error) {
	defer observe(ctx, s.observer, OpUpdateCategory, "ContactCategory", &id, time.Now().UTC(), &err)

	before, ok := s.repo.Category(id)
	if !ok {
		return nil, nil
	}

	updated := before
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Color != nil {
		updated.Color = *patch.Color
	}
	if patch.Tags != nil {
		updated.Tags = append([]string(nil), (*patch.Tags)...)
	}
	updated.UpdatedAt = s.clock()

	updated, err = validate.ContactCategory(updated)
	if err != nil {
		return nil, err
	}

	undo := s.snapshot()
	s.repo.ReplaceCategory(updated)
	if err := s.commit(ctx, undo, domain.AuditEvent{
		EntityType: "ContactCategory",
		ChangeKind: domain.ChangeUpdate,
		EntityID:   id,
		Before:     before,
		After:      updated,
	}); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCategory refuses to remove a category that any contact still
// references; that is an error, not a silent no-op.
func (s *outreachService) DeleteCategory(ctx context.Context, id string) (deleted bool, err error) {
	defer observe(ctx, s.observer, OpDeleteCategory, "ContactCategory", &id, time.Now().UTC(), &err)

	before, ok := s.repo.Category(id)
	if !ok {
		return false, nil
	}
	if n := s.repo.CountContactsInCategory(id); n > 0 {
		return false, &IntegrityError{Entity: "ContactCategory", ID: id, Dependents: "contacts", Count: n}
	}

	undo := s.snapshot()
	s.repo.RemoveCategory(id)
	if err := s.commit(ctx, undo, domain.AuditEvent{
		EntityType: "ContactCategory",
		ChangeKind: domain.ChangeDelete,
		EntityID:   id,
		Before:     before,
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *outreachService) CreateContact(ctx context.Context, input domain.Contact) (_ *domain.Contact, err error) {
	defer observe(ctx, s.observer, OpCreateContact, "Contact", &input.ID, time.Now().UTC(), &err)

	if _, ok := s.repo.Category(input.CategoryID); !ok {
		return nil, &ReferenceError{Entity: "Contact", Field: "category_id", ID: input.CategoryID}
	}

	now := s.clock()
	input.ID = s.ids()
	input.CreatedAt = now
	input.UpdatedAt = now
	if input.PreferredMethod == "" {
		input.PreferredMethod = domain.MethodEmail
	}

	contact, err := validate.Contact(input)
	if err != nil {
		return nil, err
	}

	undo := s.snapshot()
	s.repo.InsertContact(contact)
	if err := s.commit(ctx, undo, domain.AuditEvent{
		EntityType: "Contact",
		ChangeKind: domain.ChangeCreate,
		EntityID:   contact.ID,
		After:      contact,
	}); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *outreachService) GetContact(ctx context.Context, id string) (*domain.Contact, error) {
	c, ok := s.repo.Contact(id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *outreachService) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	return s.repo.Contacts(), nil
}

func (s *outreachService) UpdateContact(ctx context.Context, id string, patch ContactPatch) (_ *domain.Contact, err error) {
	defer observe(ctx, s.observer, OpUpdateContact, "Contact", &id, time.Now().UTC(), &err)

	before, ok := s.repo.Contact(id)
	if !ok {
		return nil, nil
	}

	updated := before
	if patch.CategoryID != nil {
		if _, ok := s.repo.Category(*patch.CategoryID); !ok {
			return nil, &ReferenceError{Entity: "Contact", Field: "category_id", ID: *patch.CategoryID}
		}
		updated.CategoryID = *patch.CategoryID
	}
	if patch.Organization != nil {
		updated.Organization = *patch.Organization
	}
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Role != nil {
		updated.Role = *patch.Role
	}
	if patch.Phone != nil {
		updated.Phone = *patch.Phone
	}
	if patch.Email != nil {
		updated.Email = *patch.Email
	}
	if patch.Address != nil {
		updated.Address = *patch.Address
	}
	if patch.Website != nil {
		updated.Website = *patch.Website
	}
	if patch.PreferredMethod != nil {
		updated.PreferredMethod = *patch.PreferredMethod
	}
	if patch.Tags != nil {
		updated.Tags = append([]string(nil), (*patch.Tags)...)
	}
	updated.UpdatedAt = s.clock()

	updated, err = validate.Contact(updated)
	if err != nil {
		return nil, err
	}

	undo := s.snapshot()
	s.repo.ReplaceContact(updated)
	if err := s.commit(ctx, undo, domain.AuditEvent{
		EntityType: "Contact",
		ChangeKind: domain.ChangeUpdate,
		EntityID:   id,
		Before:     before,
		After:      updated,
	}); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteContact refuses while follow-ups or outcome records still reference
// the contact; the contact's outreach actions carry no further downstream
// references and are cascade-deleted.
func (s *outreachService) DeleteContact(ctx context.Context, id string) (deleted bool, err error) {
	defer observe(ctx, s.observer, OpDeleteContact, "Contact", &id, time.Now().UTC(), &err)

	before, ok := s.repo.Contact(id)
	if !ok {
		return false, nil
	}
	if n := s.repo.CountFollowUpsForContact(id); n > 0 {
		return false, &IntegrityError{Entity: "Contact", ID: id, Dependents: "follow-ups", Count: n}
	}
	if n := s.repo.CountOutcomesForContact(id); n > 0 {
		return false, &IntegrityError{Entity: "Contact", ID: id, Dependents: "outcome records", Count: n}
	}

	undo := s.snapshot()
	cascaded := s.repo.RemoveActionsByContact(id)
	s.repo.RemoveContact(id)

	events := make([]domain.AuditEvent, 0, len(cascaded)+1)
	events = append(events, domain.AuditEvent{
		EntityType: "Contact",
		ChangeKind: domain.ChangeDelete,
		EntityID:   id,
		Before:     before,
	})
	for _, a := range cascaded {
		events = append(events, domain.AuditEvent{
			EntityType: "OutreachAction",
			ChangeKind: domain.ChangeDelete,
			EntityID:   a.ID,
			Before:     a,
			Detail:     "cascade: parent contact deleted",
		})
	}
	if err := s.commit(ctx, undo, events...); err != nil {
		return false, err
	}
	return true, nil
}

// RecordAction defaults outcome_status to None and the action date to the
// current clock value when not supplied.
func (s *outreachService) RecordAction(ctx context.Context, input domain.OutreachAction) (action *domain.OutreachAction, err error) {
	defer observe(ctx, s.observer, OpRecordAction, "OutreachAction", &input.ID, time.Now().UTC(), &err)

	if _, ok := s.repo.Contact(input.ContactID); !ok {
		return nil, &ReferenceError{Entity: "OutreachAction", Field: "contact_id", ID: input.ContactID}
	}

	now := s.clock()
	input.ID = s.ids()
	input.CreatedAt = now
	if input.Date == "" {
		input.Date = now
	}
	if input.OutcomeStatus == "" {
		input.OutcomeStatus = domain.OutcomeNone
	}

	record, err := validate.OutreachAction(input)
	if err != nil {
		return nil, err
	}

	undo := s.snapshot()
	s.repo.InsertAction(record)
	if err := s.commit(ctx, undo, domain.AuditEvent{
		EntityType: "OutreachAction",
		ChangeKind: domain.ChangeCreate,
		EntityID:   record.ID,
		After:      record,
	}); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *outreachService) UpdateAction(ctx context.Context, id string, patch ActionPatch) (_ *domain.OutreachAction, err error) {
	defer observe(ctx, s.observer, OpUpdateAction, "OutreachAction", &id, time.Now().UTC(), &err)

	before, ok := s.repo.Action(id)
	if !ok {
		return nil, nil
	}

	updated := before
	if patch.Date != nil {
		updated.Date = *patch.Date
	}
	if patch.Method != nil {
		updated.Method = *patch.Method
	}
	if patch.Summary != nil {
		updated.Summary = *patch.Summary
	}
	if patch.ArtifactsSent != nil {
		updated.ArtifactsSent = append([]string(nil), (*patch.ArtifactsSent)...)
	}
	if patch.ClearArtifactVersion {
		updated.ArtifactVersionID = nil
	} else if patch.ArtifactVersionID != nil {
		updated.ArtifactVersionID = patch.ArtifactVersionID
	}
	if patch.OutcomeStatus != nil {
		updated.OutcomeStatus = *patch.OutcomeStatus
	}
	if patch.ClearNextFollowUp {
		updated.NextFollowUpDate = nil
	} else if patch.NextFollowUpDate != nil {
		updated.NextFollowUpDate = patch.NextFollowUpDate
	}

	updated, err = validate.OutreachAction(updated)
	if err != nil {
		return nil, err
	}

	undo := s.snapshot()
	s.repo.ReplaceAction(updated)
	if err := s.commit(ctx, undo, domain.AuditEvent{
		EntityType: "OutreachAction",
		ChangeKind: domain.ChangeUpdate,
		EntityID:   id,
		Before:     before,
		After:      updated,
	}); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *outreachService) DeleteAction(ctx context.Context, id string) (deleted bool, err error) {
	defer observe(ctx, s.observer, OpDeleteAction, "OutreachAction", &id, time.Now().UTC(), &err)

	before, ok := s.repo.Action(id)
	if !ok {
		return false, nil
	}

	undo := s.snapshot()
	s.repo.RemoveAction(id)
	if err := s.commit(ctx, undo, domain.AuditEvent{
		EntityType: "OutreachAction",
		ChangeKind: domain.ChangeDelete,
		EntityID:   id,
		Before:     before,
	}); err != nil {
		return false, err
	}
	return true, nil
}

// CreateFollowUp always starts a follow-up Open; the optional outreach action
// anchor must resolve when given.
func (s *outreachService) CreateFollowUp(ctx context.Context, input domain.FollowUpItem) (_ *domain.FollowUpItem, err error) {
	defer observe(ctx, s.observer, OpCreateFollowUp, "FollowUpItem", &input.ID, time.Now().UTC(), &err)

	if _, ok := s.repo.Contact(input.ContactID); !ok {
		return nil, &ReferenceError{Entity: "FollowUpItem", Field: "contact_id", ID: input.ContactID}
	}
	if input.OutreachActionID != nil {
		if _, ok := s.repo.Action(*input.OutreachActionID); !ok {
			return nil, &ReferenceError{Entity: "FollowUpItem", Field: "outreach_action_id", ID: *input.OutreachActionID}
		}
	}

	input.ID = s.ids()
	input.CreatedAt = s.clock()
	input.Status = domain.FollowUpOpen

	followUp, err := validate.FollowUpItem(input)
	if err != nil {
		return nil, err
	}

	undo := s.snapshot()
	s.repo.InsertFollowUp(followUp)
	if err := s.commit(ctx, undo, domain.AuditEvent{
		EntityType: "FollowUpItem",
		ChangeKind: domain.ChangeCreate,
		EntityID:   followUp.ID,
		After:      followUp,
	}); err != nil {
		return nil, err
	}
	return &followUp, nil
}

func (s *outreachService) UpdateFollowUp(ctx context.Context, id string, patch FollowUpPatch) (_ *domain.FollowUpItem, err error) {
	defer observe(ctx, s.observer, OpUpdateFollowUp, "FollowUpItem", &id, time.Now().UTC(), &err)

	before, ok := s.repo.FollowUp(id)
	if !ok {
		return nil, nil
	}

	updated := before
	if patch.DueDate != nil {
		updated.DueDate = *patch.DueDate
	}
	if patch.Status != nil {
		updated.Status = *patch.Status
	}
	if patch.Notes != nil {
		updated.Notes = *patch.Notes
	}

	updated, err = validate.FollowUpItem(updated)
	if err != nil {
		return nil, err
	}

	undo := s.snapshot()
	s.repo.ReplaceFollowUp(updated)
	if err := s.commit(ctx, undo, domain.AuditEvent{
		EntityType: "FollowUpItem",
		ChangeKind: domain.ChangeUpdate,
		EntityID:   id,
		Before:     before,
		After:      updated,
	}); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *outreachService) DeleteFollowUp(ctx context.Context, id string) (deleted bool, err error) {
	defer observe(ctx, s.observer, OpDeleteFollowUp, "FollowUpItem", &id, time.Now().UTC(), &err)

	before, ok := s.repo.FollowUp(id)
	if !ok {
		return false, nil
	}

	undo := s.snapshot()
	s.repo.RemoveFollowUp(id)
	if err := s.commit(ctx, undo, domain.AuditEvent{
		EntityType: "FollowUpItem",
		ChangeKind: domain.ChangeDelete,
		EntityID:   id,
		Before:     before,
	}); err != nil {
		return false, err
	}
	return true, nil
}

// RecordOutcome closes out a contact; a referred-to contact must resolve when
// given.
func (s *outreachService) RecordOutcome(ctx context.Context, input domain.OutcomeRecord) (_ *domain.OutcomeRecord, err error) {
	defer observe(ctx, s.observer, OpRecordOutcome, "OutcomeRecord", &input.ID, time.Now().UTC(), &err)

	if _, ok := s.repo.Contact(input.ContactID); !ok {
		return nil, &ReferenceError{Entity: "OutcomeRecord", Field: "contact_id", ID: input.ContactID}
	}
	if input.ReferredContactID != nil {
		if _, ok := s.repo.Contact(*input.ReferredContactID); !ok {
			return nil, &ReferenceError{Entity: "OutcomeRecord", Field: "referred_contact_id", ID: *input.ReferredContactID}
		}
	}

	input.ID = s.ids()
	input.CreatedAt = s.clock()

	outcome, err := validate.OutcomeRecord(input)
	if err != nil {
		return nil, err
	}

	undo := s.snapshot()
	s.repo.InsertOutcome(outcome)
	if err := s.commit(ctx, undo, domain.AuditEvent{
		EntityType: "OutcomeRecord",
		ChangeKind: domain.ChangeCreate,
		EntityID:   outcome.ID,
		After:      outcome,
	}); err != nil {
		return nil, err
	}
	return &outcome, nil
}

func (s *outreachService) UpdateOutcome(ctx context.Context, id string, patch OutcomePatch) (_ *domain.OutcomeRecord, err error) {
	defer observe(ctx, s.observer, OpUpdateOutcome, "OutcomeRecord", &id, time.Now().UTC(), &err)

	before, ok := s.repo.Outcome(id)
	if !ok {
		return nil, nil
	}

	updated := before
	if patch.FinalStatus != nil {
		updated.FinalStatus = *patch.FinalStatus
	}
	if patch.CloseDate != nil {
		updated.CloseDate = *patch.CloseDate
	}
	if patch.Reason != nil {
		updated.Reason = *patch.Reason
	}
	if patch.LessonLearned != nil {
		updated.LessonLearned = *patch.LessonLearned
	}

	updated, err = validate.OutcomeRecord(updated)
	if err != nil {
		return nil, err
	}

	undo := s.snapshot()
	s.repo.ReplaceOutcome(updated)
	if err := s.commit(ctx, undo, domain.AuditEvent{
		EntityType: "OutcomeRecord",
		ChangeKind: domain.ChangeUpdate,
		EntityID:   id,
		Before:     before,
		After:      updated,
	}); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *outreachService) DeleteOutcome(ctx context.Context, id string) (deleted bool, err error) {
	defer observe(ctx, s.observer, OpDeleteOutcome, "OutcomeRecord", &id, time.Now().UTC(), &err)

	before, ok := s.repo.Outcome(id)
	if !ok {
		return false, nil
	}

	undo := s.snapshot()
	s.repo.RemoveOutcome(id)
	if err := s.commit(ctx, undo, domain.AuditEvent{
		EntityType: "OutcomeRecord",
		ChangeKind: domain.ChangeDelete,
		EntityID:   id,
		Before:     before,
	}); err != nil {
		return false, err
	}
	return true, nil
}

// OpenFollowUps returns follow-ups with status Open due on or before
// asOfDate.
func (s *outreachService) OpenFollowUps(ctx context.Context, asOfDate string) ([]domain.FollowUpItem, error) {
	var out []domain.FollowUpItem
	for _, f := range s.repo.FollowUps() {
		if f.Status == domain.FollowUpOpen && f.DueDate <= asOfDate {
			out = append(out, f)
		}
	}
	return out, nil
}

// ContactHistory returns the contact's actions ordered by action date
// ascending. Plain string comparison is correct because dates are zero-padded
// ISO strings.
func (s *outreachService) ContactHistory(ctx context.Context, contactID string) ([]domain.OutreachAction, error) {
	actions := s.repo.ActionsByContact(contactID)
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Date < actions[j].Date
	})
	return actions, nil
}

func (s *outreachService) SummaryMetrics(ctx context.Context) (OutreachMetrics, error) {
	var m OutreachMetrics
	m.Contacts = len(s.repo.Contacts())
	for _, f := range s.repo.FollowUps() {
		if f.Status == domain.FollowUpOpen {
			m.OpenFollowUps++
		}
	}
	for _, a := range s.repo.Actions() {
		if a.OutcomeStatus == domain.OutcomeWaiting {
			m.WaitingOutreach++
		}
	}
	m.OutcomesRecorded = len(s.repo.Outcomes())
	return m, nil
}
