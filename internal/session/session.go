// Package session defines the per-run identity and artifact layout.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dvloznov/finaudit/internal/fx"
)

// IDFormat is the layout of a session id, derived from process start.
const IDFormat = "20060102_150405"

// Session identifies one run of the monitoring process. All ledger,
// snapshot and log artifacts for a run share its id. A Session is
// created once at startup and immutable afterwards.
type Session struct {
	ID           string
	BaseCurrency string

	// VaultDir is the watched directory; OutputDir holds the ledger
	// and snapshots; LogsDir holds the session log.
	VaultDir  string
	OutputDir string
	LogsDir   string

	// Rates is the session rate table. Nil means the rate source was
	// unavailable and conversion is disabled for the whole run.
	Rates *fx.Table
}

// New creates a session rooted at root with the given start time and
// base currency.
func New(start time.Time, baseCurrency, root string) *Session {
	outputDir := filepath.Join(root, "outputs")
	return &Session{
		ID:           start.Format(IDFormat),
		BaseCurrency: baseCurrency,
		VaultDir:     filepath.Join(root, "vault"),
		OutputDir:    outputDir,
		LogsDir:      filepath.Join(outputDir, "logs"),
	}
}

// LedgerPath is the session ledger file.
func (s *Session) LedgerPath() string {
	return filepath.Join(s.OutputDir, fmt.Sprintf("audit_master_%s.csv", s.ID))
}

// LogPath is the session log file.
func (s *Session) LogPath() string {
	return filepath.Join(s.LogsDir, fmt.Sprintf("log_%s.log", s.ID))
}

// EnsureDirs creates the vault, output and log directories.
func (s *Session) EnsureDirs() error {
	for _, dir := range []string{s.VaultDir, s.OutputDir, s.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("session.EnsureDirs: %w", err)
		}
	}
	return nil
}
