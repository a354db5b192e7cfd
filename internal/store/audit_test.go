package store

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casetrail/internal/domain"
	"casetrail/internal/testutil"
)

func TestAuditLog_AppendsOneLinePerEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	log := NewAuditLog(path, testutil.SequentialIDs(), testutil.FixedClock("2025-11-13T09:00:00Z"))
	ctx := context.Background()

	require.NoError(t, log.Log(ctx, domain.AuditEvent{
		EntityType: "Project",
		ChangeKind: domain.ChangeCreate,
		EntityID:   "proj-1",
	}))
	require.NoError(t, log.Log(ctx, domain.AuditEvent{
		EntityType: "Project",
		ChangeKind: domain.ChangeDelete,
		EntityID:   "proj-1",
	}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var events []domain.AuditEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev domain.AuditEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		events = append(events, ev)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, events, 2)
	assert.Equal(t, "id-1", events[0].ID)
	assert.Equal(t, "id-2", events[1].ID)
	assert.Equal(t, "2025-11-13T09:00:00Z", events[0].Timestamp)
	assert.Equal(t, domain.ChangeCreate, events[0].ChangeKind)
	assert.Equal(t, domain.ChangeDelete, events[1].ChangeKind)
}

func TestAuditLog_KeepsSuppliedIDAndTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	log := NewAuditLog(path, testutil.SequentialIDs(), testutil.FixedClock("2025-11-13T09:00:00Z"))

	require.NoError(t, log.Log(context.Background(), domain.AuditEvent{
		ID:         "ev-supplied",
		Timestamp:  "2025-01-01T00:00:00Z",
		EntityType: "Contact",
		ChangeKind: domain.ChangeUpdate,
		EntityID:   "ct-1",
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var ev domain.AuditEvent
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, "ev-supplied", ev.ID)
	assert.Equal(t, "2025-01-01T00:00:00Z", ev.Timestamp)
}

func TestAuditLog_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "audit.log")
	log := NewAuditLog(path, testutil.SequentialIDs(), testutil.FixedClock("2025-11-13T09:00:00Z"))

	require.NoError(t, log.Log(context.Background(), domain.AuditEvent{
		EntityType: "Project",
		ChangeKind: domain.ChangeCreate,
		EntityID:   "proj-1",
	}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestAuditLog_NeverTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	ctx := context.Background()

	first := NewAuditLog(path, testutil.SequentialIDs(), testutil.FixedClock("2025-11-13T09:00:00Z"))
	require.NoError(t, first.Log(ctx, domain.AuditEvent{EntityType: "Project", ChangeKind: domain.ChangeCreate, EntityID: "proj-1"}))

	// A fresh sink over the same path must append, not rewrite.
	second := NewAuditLog(path, testutil.SequentialIDs(), testutil.FixedClock("2025-11-14T09:00:00Z"))
	require.NoError(t, second.Log(ctx, domain.AuditEvent{EntityType: "Project", ChangeKind: domain.ChangeDelete, EntityID: "proj-1"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, countLines(data))
}

func countLines(data []byte) int {
	n := 0
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	return n
}
