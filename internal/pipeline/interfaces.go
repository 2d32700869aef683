package pipeline

import (
	"context"
	"time"

	"github.com/dvloznov/finaudit/internal/structurer"
)

// Extractor converts a document into raw text. An error means the
// document is skipped.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Structurer converts raw text into candidate transactions. An error
// aborts processing for that one document.
type Structurer interface {
	Structure(ctx context.Context, text string) (*structurer.Result, error)
}

// LedgerAppender appends one canonical record to the session ledger.
// Implementations serialize concurrent calls.
type LedgerAppender interface {
	Append(rec Record) error
}

// SnapshotStore persists the raw structuring payload of one document.
// It returns the path of the written artifact.
type SnapshotStore interface {
	Write(ts time.Time, documentStem string, payload []byte) (string, error)
}

// DocumentProcessor runs the full per-document pipeline. The Dispatcher
// consumes this interface so tests can substitute the real Processor.
type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, path string) error
}
