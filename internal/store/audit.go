package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"casetrail/internal/domain"
)

// AuditLog appends one JSON record per line to a fixed file path. Append is
// the only operation: no compaction, rotation, or read-back.
type AuditLog struct {
	path  string
	ids   func() string
	clock func() string
}

// NewAuditLog creates an audit sink writing to path. Missing parent
// directories are created on first append. The id generator and clock fill
// events that arrive without an id or timestamp.
func NewAuditLog(path string, ids func() string, clock func() string) *AuditLog {
	return &AuditLog{path: path, ids: ids, clock: clock}
}

// Log fills the event's id and timestamp if absent and appends one line.
func (l *AuditLog) Log(ctx context.Context, ev domain.AuditEvent) error {
	if ev.ID == "" {
		ev.ID = l.ids()
	}
	if ev.Timestamp == "" {
		ev.Timestamp = l.clock()
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating audit directory: %w", err)
	}

	line, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding audit event: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("appending audit event: %w", err)
	}
	return nil
}
