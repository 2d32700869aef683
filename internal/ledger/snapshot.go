package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dvloznov/finaudit/internal/pipeline"
	"github.com/dvloznov/finaudit/internal/session"
)

// SnapshotStore writes one JSON artifact per successfully structured
// document, named by processing timestamp plus the document stem.
// Snapshots are diagnostic; their failures are reported, not fatal.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore creates a store writing into dir.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

// Write persists payload as <ts>_<stem>.json and returns the path.
func (s *SnapshotStore) Write(ts time.Time, documentStem string, payload []byte) (string, error) {
	name := fmt.Sprintf("%s_%s.json", ts.Format(session.IDFormat), documentStem)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("ledger.SnapshotStore: write %s: %w", name, err)
	}
	return path, nil
}

var _ pipeline.SnapshotStore = (*SnapshotStore)(nil)
