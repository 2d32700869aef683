// Package ledger persists canonical transaction records to the
// session's append-only CSV store.
package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dvloznov/finaudit/internal/pipeline"
)

// utf8BOM is written once at file creation so spreadsheet tools decode
// the ledger as UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer appends records to one session ledger file. The first append
// creates the file and writes the header row; every later append adds
// exactly one data row. All appends are serialized: the header check,
// header write and row write happen under one lock so concurrent
// documents can neither double-write the header nor interleave rows.
type Writer struct {
	mu           sync.Mutex
	path         string
	baseCurrency string
}

// NewWriter creates a writer for the ledger at path. baseCurrency names
// the converted-total column.
func NewWriter(path, baseCurrency string) *Writer {
	return &Writer{path: path, baseCurrency: baseCurrency}
}

// Path returns the ledger file path.
func (w *Writer) Path() string {
	return w.path
}

// Header returns the stable column order of the ledger.
func (w *Writer) Header() []string {
	return []string{
		"vendor_name",
		"date",
		"amount",
		"currency",
		"category",
		"description",
		"total_" + strings.ToLower(w.baseCurrency),
		"fx_rate_applied",
		"processed_at",
		"file_source",
	}
}

// Append writes one record as one CSV row, creating the file with a BOM
// and header on first use. Safe for concurrent use.
func (w *Writer) Append(rec pipeline.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, statErr := os.Stat(w.path)
	fresh := os.IsNotExist(statErr)
	if statErr != nil && !fresh {
		return fmt.Errorf("ledger.Append: stat %s: %w", w.path, statErr)
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("ledger.Append: open %s: %w", w.path, err)
	}

	if fresh {
		if _, err := f.Write(utf8BOM); err != nil {
			f.Close()
			return fmt.Errorf("ledger.Append: write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(f)
	if fresh {
		if err := cw.Write(w.Header()); err != nil {
			f.Close()
			return fmt.Errorf("ledger.Append: write header: %w", err)
		}
	}
	if err := cw.Write(row(rec)); err != nil {
		f.Close()
		return fmt.Errorf("ledger.Append: write row: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("ledger.Append: flush: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("ledger.Append: close %s: %w", w.path, err)
	}
	return nil
}

func row(rec pipeline.Record) []string {
	return []string{
		rec.VendorName,
		rec.Date,
		rec.Amount.String(),
		rec.Currency,
		rec.Category,
		rec.Description,
		rec.ConvertedTotal.StringFixed(2),
		rec.FXRateApplied.String(),
		rec.ProcessedAt.Format("2006-01-02 15:04:05"),
		rec.FileSource,
	}
}

// Ensure Writer satisfies the pipeline's appender contract.
var _ pipeline.LedgerAppender = (*Writer)(nil)
