package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casetrail/internal/domain"
)

func testCategory(id, name string) domain.ContactCategory {
	return domain.ContactCategory{
		ID:        id,
		Name:      name,
		Color:     "amber",
		Tags:      []string{"media"},
		CreatedAt: "2025-11-13T09:00:00Z",
		UpdatedAt: "2025-11-13T09:00:00Z",
	}
}

func testContact(id, categoryID, name string) domain.Contact {
	return domain.Contact{
		ID:              id,
		CategoryID:      categoryID,
		Organization:    "Example Org",
		Name:            name,
		Email:           "contact@example.org",
		PreferredMethod: domain.MethodEmail,
		Tags:            []string{},
		CreatedAt:       "2025-11-13T09:00:00Z",
		UpdatedAt:       "2025-11-13T09:00:00Z",
	}
}

func TestLoadOutreach_MissingFileYieldsEmptySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outreach.json")

	snap, err := LoadOutreach(path)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, snap.Version)
	assert.Empty(t, snap.Categories)
	assert.Empty(t, snap.Contacts)
}

func TestSaveThenLoadOutreach_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outreach.json")

	follow := "2025-11-20"
	saved := &OutreachSnapshot{
		Version:    1,
		UpdatedAt:  "2025-11-13T09:00:00Z",
		Categories: []domain.ContactCategory{testCategory("cat-1", "Legal Aid")},
		Contacts:   []domain.Contact{testContact("ct-1", "cat-1", "Dana Reyes")},
		OutreachActions: []domain.OutreachAction{{
			ID:               "act-1",
			ContactID:        "ct-1",
			Date:             "2025-11-13T10:30:00Z",
			Method:           domain.OutreachEmail,
			Summary:          "sent intro packet",
			ArtifactsSent:    []string{"summary.pdf"},
			OutcomeStatus:    domain.OutcomeWaiting,
			NextFollowUpDate: &follow,
			CreatedAt:        "2025-11-13T10:30:00Z",
		}},
		FollowUps: []domain.FollowUpItem{{
			ID:        "fu-1",
			ContactID: "ct-1",
			DueDate:   "2025-11-20",
			Status:    domain.FollowUpOpen,
			CreatedAt: "2025-11-13T10:31:00Z",
		}},
		Outcomes: []domain.OutcomeRecord{{
			ID:          "oc-1",
			ContactID:   "ct-1",
			FinalStatus: domain.FinalCompletedHelp,
			CloseDate:   "2025-12-01",
			Reason:      "case resolved",
			CreatedAt:   "2025-12-01T09:00:00Z",
		}},
	}
	require.NoError(t, SaveOutreach(saved, path))

	loaded, err := LoadOutreach(path)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestSaveOutreach_RejectsInvalidRecordWithIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outreach.json")

	snap := &OutreachSnapshot{
		Version:   1,
		UpdatedAt: "2025-11-13T09:00:00Z",
		Contacts: []domain.Contact{
			testContact("ct-1", "cat-1", "fine"),
			testContact("", "cat-1", "missing id"),
		},
	}

	err := SaveOutreach(snap, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contacts[1]")
}
