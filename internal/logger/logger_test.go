package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	log := New()
	if log.GetLevel() == zerolog.Disabled {
		t.Error("Expected logger to be enabled")
	}
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Msg("test message")

	output := buf.String()
	if output == "" {
		t.Error("Expected log output, got empty string")
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", output)
	}
}

func TestNewSession(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "log_20260101_000000.log")

	log, closer, err := NewSession(logPath)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	log.Info().Str("document", "test.pdf").Msg("processing document")

	if err := closer.Close(); err != nil {
		t.Fatalf("closing session log: %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading session log: %v", err)
	}
	if !strings.Contains(string(content), "processing document") {
		t.Errorf("session log missing message, got: %s", content)
	}
	if !strings.Contains(string(content), "test.pdf") {
		t.Errorf("session log missing field, got: %s", content)
	}
}

func TestNewSessionBadPath(t *testing.T) {
	if _, _, err := NewSession(filepath.Join(t.TempDir(), "missing", "log.log")); err == nil {
		t.Error("expected error for unwritable log path")
	}
}

func TestWithContext(t *testing.T) {
	log := New()
	ctx := context.Background()

	ctxWithLogger := WithContext(ctx, log)

	if ctxWithLogger.Value(LoggerKey) == nil {
		t.Error("Expected logger in context, got nil")
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	testLog := NewWithWriter(buf)
	ctx := WithContext(context.Background(), testLog)

	retrievedLog := FromContext(ctx)
	retrievedLog.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("Expected log output from retrieved logger")
	}
}

func TestFromContext_DefaultLogger(t *testing.T) {
	ctx := context.Background()

	// Should return a default logger when none is in context
	log := FromContext(ctx)

	if log.GetLevel() == zerolog.Disabled {
		t.Error("Expected default logger to be enabled")
	}
}
