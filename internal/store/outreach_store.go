package store

import (
	"encoding/json"
	"fmt"
	"os"

	"casetrail/internal/domain"
	"casetrail/internal/validate"
)

// OutreachSnapshot is the on-disk container for the outreach domain.
type OutreachSnapshot struct {
	Version         int                      `json:"version"`
	UpdatedAt       string                   `json:"updated_at"`
	Categories      []domain.ContactCategory `json:"categories"`
	Contacts        []domain.Contact         `json:"contacts"`
	OutreachActions []domain.OutreachAction  `json:"outreach_actions"`
	FollowUps       []domain.FollowUpItem    `json:"follow_ups"`
	Outcomes        []domain.OutcomeRecord   `json:"outcomes"`
}

// LoadOutreach reads and re-validates an outreach snapshot. A missing file
// yields an empty container; a corrupt record fails the entire load.
func LoadOutreach(path string) (*OutreachSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &OutreachSnapshot{Version: CurrentVersion}, nil
		}
		return nil, fmt.Errorf("reading outreach snapshot: %w", err)
	}

	var snap OutreachSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding outreach snapshot %s: %w", path, err)
	}
	if err := validateOutreach(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SaveOutreach re-validates every record and writes the container atomically.
func SaveOutreach(snap *OutreachSnapshot, path string) error {
	if err := validateOutreach(snap); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding outreach snapshot: %w", err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}

func validateOutreach(snap *OutreachSnapshot) error {
	for i, c := range snap.Categories {
		normalized, err := validate.ContactCategory(c)
		if err != nil {
			return fmt.Errorf("categories[%d]: %w", i, err)
		}
		snap.Categories[i] = normalized
	}
	for i, c := range snap.Contacts {
		normalized, err := validate.Contact(c)
		if err != nil {
			return fmt.Errorf("contacts[%d]: %w", i, err)
		}
		snap.Contacts[i] = normalized
	}
	for i, a := range snap.OutreachActions {
		normalized, err := validate.OutreachAction(a)
		if err != nil {
			return fmt.Errorf("outreach_actions[%d]: %w", i, err)
		}
		snap.OutreachActions[i] = normalized
	}
	for i, f := range snap.FollowUps {
		normalized, err := validate.FollowUpItem(f)
		if err != nil {
			return fmt.Errorf("follow_ups[%d]: %w", i, err)
		}
		snap.FollowUps[i] = normalized
	}
	for i, o := range snap.Outcomes {
		normalized, err := validate.OutcomeRecord(o)
		if err != nil {
			return fmt.Errorf("outcomes[%d]: %w", i, err)
		}
		snap.Outcomes[i] = normalized
	}
	return nil
}
