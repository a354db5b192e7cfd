package store

import (
	"encoding/json"
	"fmt"
	"os"

	"casetrail/internal/domain"
	"casetrail/internal/validate"
)

// CurrentVersion is the container version written for snapshots that did not
// come from an existing file. Version migration is out of scope: a loaded
// snapshot keeps its original version on every subsequent save.
const CurrentVersion = 1

// PlanSnapshot is the on-disk container for the plan-tracking domain.
type PlanSnapshot struct {
	Version   int               `json:"version"`
	UpdatedAt string            `json:"updated_at"`
	Projects  []domain.Project  `json:"projects"`
	PlanItems []domain.PlanItem `json:"plan_items"`
}

// LoadPlan reads and re-validates a plan snapshot. A missing file yields an
// empty container, not an error. A malformed container or any single corrupt
// record fails the whole load.
func LoadPlan(path string) (*PlanSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &PlanSnapshot{Version: CurrentVersion}, nil
		}
		return nil, fmt.Errorf("reading plan snapshot: %w", err)
	}

	var snap PlanSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding plan snapshot %s: %w", path, err)
	}
	if err := validatePlan(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SavePlan re-validates every record and writes the container atomically.
func SavePlan(snap *PlanSnapshot, path string) error {
	if err := validatePlan(snap); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding plan snapshot: %w", err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}

func validatePlan(snap *PlanSnapshot) error {
	for i, p := range snap.Projects {
		normalized, err := validate.Project(p)
		if err != nil {
			return fmt.Errorf("projects[%d]: %w", i, err)
		}
		snap.Projects[i] = normalized
	}
	for i, it := range snap.PlanItems {
		normalized, err := validate.PlanItem(it)
		if err != nil {
			return fmt.Errorf("plan_items[%d]: %w", i, err)
		}
		snap.PlanItems[i] = normalized
	}
	return nil
}
