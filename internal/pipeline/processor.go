package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/finaudit/internal/session"
)

// DefaultStructureTimeout bounds one structuring-service call. The
// service is untrusted for liveness.
const DefaultStructureTimeout = 2 * time.Minute

// Processor drives one document through the processing state machine:
// extract, structure, then normalize and append each candidate in order.
// A Processor is shared by all workers; its fields are read-only after
// construction and the ledger appender serializes its own writes.
type Processor struct {
	sess       *session.Session
	extractor  Extractor
	structurer Structurer
	ledger     LedgerAppender
	snapshots  SnapshotStore
	log        zerolog.Logger

	structureTimeout time.Duration
	now              func() time.Time
}

// NewProcessor wires a processor for the given session.
func NewProcessor(sess *session.Session, extractor Extractor, s Structurer, ledger LedgerAppender, snapshots SnapshotStore, log zerolog.Logger) *Processor {
	return &Processor{
		sess:             sess,
		extractor:        extractor,
		structurer:       s,
		ledger:           ledger,
		snapshots:        snapshots,
		log:              log,
		structureTimeout: DefaultStructureTimeout,
		now:              time.Now,
	}
}

// ProcessDocument runs the full pipeline for one document. The returned
// error is document-level: the caller logs it and keeps monitoring.
// Record-level problems never surface here; they degrade to defaults
// inside NormalizeCandidate.
func (p *Processor) ProcessDocument(ctx context.Context, path string) error {
	name := filepath.Base(path)
	log := p.log.With().
		Str("document", name).
		Str("document_id", uuid.NewString()).
		Logger()

	log.Info().Msg("processing document")

	text, err := p.extractor.Extract(ctx, path)
	if err != nil {
		return fmt.Errorf("extract %s: %w", name, err)
	}

	sctx := ctx
	if p.structureTimeout > 0 {
		var cancel context.CancelFunc
		sctx, cancel = context.WithTimeout(ctx, p.structureTimeout)
		defer cancel()
	}

	result, err := p.structurer.Structure(sctx, text)
	if err != nil {
		return fmt.Errorf("structure %s: %w", name, err)
	}

	processTS := p.now()
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	// The snapshot is a diagnostic artifact; losing it never blocks
	// the ledger.
	if snapPath, err := p.snapshots.Write(processTS, stem, result.Raw); err != nil {
		log.Error().Err(err).Msg("snapshot write failed")
	} else {
		log.Info().Str("snapshot", filepath.Base(snapPath)).Msg("JSON snapshot saved")
	}

	for _, candidate := range result.Candidates {
		rec := NormalizeCandidate(candidate, p.sess.BaseCurrency, p.sess.Rates, p.now(), name)
		if err := p.ledger.Append(rec); err != nil {
			return fmt.Errorf("append record of %s: %w", name, err)
		}
		log.Info().
			Str("vendor", rec.VendorName).
			Str("total", rec.ConvertedTotal.StringFixed(2)).
			Str("currency", p.sess.BaseCurrency).
			Msg("RECORDED")
	}

	return nil
}
