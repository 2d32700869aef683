package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSessionPaths(t *testing.T) {
	start := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	s := New(start, "PLN", "/data/finaudit")

	if s.ID != "20260314_150926" {
		t.Errorf("ID = %q, want 20260314_150926", s.ID)
	}
	if want := filepath.Join("/data/finaudit", "outputs", "audit_master_20260314_150926.csv"); s.LedgerPath() != want {
		t.Errorf("LedgerPath() = %q, want %q", s.LedgerPath(), want)
	}
	if want := filepath.Join("/data/finaudit", "outputs", "logs", "log_20260314_150926.log"); s.LogPath() != want {
		t.Errorf("LogPath() = %q, want %q", s.LogPath(), want)
	}
	if want := filepath.Join("/data/finaudit", "vault"); s.VaultDir != want {
		t.Errorf("VaultDir = %q, want %q", s.VaultDir, want)
	}
}

func TestEnsureDirs(t *testing.T) {
	root := t.TempDir()
	s := New(time.Now(), "USD", root)

	if err := s.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}

	for _, dir := range []string{s.VaultDir, s.OutputDir, s.LogsDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("missing directory %s: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}
