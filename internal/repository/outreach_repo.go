package repository

import "casetrail/internal/domain"

// OutreachRepo owns the outreach-tracking collections: categories, contacts,
// outreach actions, follow-ups, and outcome records.
type OutreachRepo struct {
	categories []domain.ContactCategory
	contacts   []domain.Contact
	actions    []domain.OutreachAction
	followUps  []domain.FollowUpItem
	outcomes   []domain.OutcomeRecord
}

func NewOutreachRepo() *OutreachRepo {
	return &OutreachRepo{}
}

// Restore replaces every collection wholesale. Used after a snapshot load and
// to roll back a mutation whose persist step failed.
func (r *OutreachRepo) Restore(
	categories []domain.ContactCategory,
	contacts []domain.Contact,
	actions []domain.OutreachAction,
	followUps []domain.FollowUpItem,
	outcomes []domain.OutcomeRecord,
) {
	r.categories = append([]domain.ContactCategory(nil), categories...)
	r.contacts = append([]domain.Contact(nil), contacts...)
	r.actions = append([]domain.OutreachAction(nil), actions...)
	r.followUps = append([]domain.FollowUpItem(nil), followUps...)
	r.outcomes = append([]domain.OutcomeRecord(nil), outcomes...)
}

// Collections returns copies of all five collections in insertion order.
func (r *OutreachRepo) Collections() (
	[]domain.ContactCategory,
	[]domain.Contact,
	[]domain.OutreachAction,
	[]domain.FollowUpItem,
	[]domain.OutcomeRecord,
) {
	return append([]domain.ContactCategory(nil), r.categories...),
		append([]domain.Contact(nil), r.contacts...),
		append([]domain.OutreachAction(nil), r.actions...),
		append([]domain.FollowUpItem(nil), r.followUps...),
		append([]domain.OutcomeRecord(nil), r.outcomes...)
}

func (r *OutreachRepo) InsertCategory(c domain.ContactCategory) {
	r.categories = append(r.categories, c)
}

func (r *OutreachRepo) Category(id string) (domain.ContactCategory, bool) {
	for _, c := range r.categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.ContactCategory{}, false
}

func (r *OutreachRepo) Categories() []domain.ContactCategory {
	return append([]domain.ContactCategory(nil), r.categories...)
}

func (r *OutreachRepo) ReplaceCategory(c domain.ContactCategory) bool {
	for i := range r.categories {
		if r.categories[i].ID == c.ID {
			r.categories[i] = c
			return true
		}
	}
	return false
}

func (r *OutreachRepo) RemoveCategory(id string) bool {
	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return true
		}
	}
	return false
}

// CountContactsInCategory reports how many contacts still reference the
// category. The delete guard refuses removal while this is non-zero.
func (r *OutreachRepo) CountContactsInCategory(categoryID string) int {
	n := 0
	for _, c := range r.contacts {
		if c.CategoryID == categoryID {
			n++
		}
	}
	return n
}

func (r *OutreachRepo) InsertContact(c domain.Contact) {
	r.contacts = append(r.contacts, c)
}

func (r *OutreachRepo) Contact(id string) (domain.Contact, bool) {
	for _, c := range r.contacts {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Contact{}, false
}

func (r *OutreachRepo) Contacts() []domain.Contact {
	return append([]domain.Contact(nil), r.contacts...)
}

func (r *OutreachRepo) ReplaceContact(c domain.Contact) bool {
	for i := range r.contacts {
		if r.contacts[i].ID == c.ID {
			r.contacts[i] = c
			return true
		}
	}
	return false
}

func (r *OutreachRepo) RemoveContact(id string) bool {
	for i := range r.contacts {
		if r.contacts[i].ID == id {
			r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
			return true
		}
	}
	return false
}

func (r *OutreachRepo) InsertAction(a domain.OutreachAction) {
	r.actions = append(r.actions, a)
}

func (r *OutreachRepo) Action(id string) (domain.OutreachAction, bool) {
	for _, a := range r.actions {
		if a.ID == id {
			return a, true
		}
	}
	return domain.OutreachAction{}, false
}

func (r *OutreachRepo) Actions() []domain.OutreachAction {
	return append([]domain.OutreachAction(nil), r.actions...)
}

func (r *OutreachRepo) ActionsByContact(contactID string) []domain.OutreachAction {
	var out []domain.OutreachAction
	for _, a := range r.actions {
		if a.ContactID == contactID {
			out = append(out, a)
		}
	}
	return out
}

func (r *OutreachRepo) ReplaceAction(a domain.OutreachAction) bool {
	for i := range r.actions {
		if r.actions[i].ID == a.ID {
			r.actions[i] = a
			return true
		}
	}
	return false
}

func (r *OutreachRepo) RemoveAction(id string) bool {
	for i := range r.actions {
		if r.actions[i].ID == id {
			r.actions = append(r.actions[:i], r.actions[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveActionsByContact removes every action for contactID and returns the
// removed actions in their stored order.
func (r *OutreachRepo) RemoveActionsByContact(contactID string) []domain.OutreachAction {
	var removed []domain.OutreachAction
	kept := r.actions[:0]
	for _, a := range r.actions {
		if a.ContactID == contactID {
			removed = append(removed, a)
		} else {
			kept = append(kept, a)
		}
	}
	r.actions = kept
	return removed
}

func (r *OutreachRepo) InsertFollowUp(f domain.FollowUpItem) {
	r.followUps = append(r.followUps, f)
}

func (r *OutreachRepo) FollowUp(id string) (domain.FollowUpItem, bool) {
	for _, f := range r.followUps {
		if f.ID == id {
			return f, true
		}
	}
	return domain.FollowUpItem{}, false
}

func (r *OutreachRepo) FollowUps() []domain.FollowUpItem {
	return append([]domain.FollowUpItem(nil), r.followUps...)
}

func (r *OutreachRepo) ReplaceFollowUp(f domain.FollowUpItem) bool {
	for i := range r.followUps {
		if r.followUps[i].ID == f.ID {
			r.followUps[i] = f
			return true
		}
	}
	return false
}

func (r *OutreachRepo) RemoveFollowUp(id string) bool {
	for i := range r.followUps {
		if r.followUps[i].ID == id {
			r.followUps = append(r.followUps[:i], r.followUps[i+1:]...)
			return true
		}
	}
	return false
}

// CountFollowUpsForContact reports how many follow-ups reference the contact.
func (r *OutreachRepo) CountFollowUpsForContact(contactID string) int {
	n := 0
	for _, f := range r.followUps {
		if f.ContactID == contactID {
			n++
		}
	}
	return n
}

func (r *OutreachRepo) InsertOutcome(o domain.OutcomeRecord) {
	r.outcomes = append(r.outcomes, o)
}

func (r *OutreachRepo) Outcome(id string) (domain.OutcomeRecord, bool) {
	for _, o := range r.outcomes {
		if o.ID == id {
			return o, true
		}
	}
	return domain.OutcomeRecord{}, false
}

func (r *OutreachRepo) Outcomes() []domain.OutcomeRecord {
	return append([]domain.OutcomeRecord(nil), r.outcomes...)
}

func (r *OutreachRepo) ReplaceOutcome(o domain.OutcomeRecord) bool {
	for i := range r.outcomes {
		if r.outcomes[i].ID == o.ID {
			r.outcomes[i] = o
			return true
		}
	}
	return false
}

func (r *OutreachRepo) RemoveOutcome(id string) bool {
	for i := range r.outcomes {
		if r.outcomes[i].ID == id {
			r.outcomes = append(r.outcomes[:i], r.outcomes[i+1:]...)
			return true
		}
	}
	return false
}

// CountOutcomesForContact reports how many outcome records reference the
// contact.
func (r *OutreachRepo) CountOutcomesForContact(contactID string) int {
	n := 0
	for _, o := range r.outcomes {
		if o.ContactID == contactID {
			n++
		}
	}
	return n
}
