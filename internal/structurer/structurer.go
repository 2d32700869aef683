// Package structurer turns raw document text into candidate transactions
// using a text-understanding model.
package structurer

import "context"

// Candidate is one raw, untrusted transaction as reported by the model.
// Every field may be empty; validation and default substitution happen
// in the pipeline normalizer.
type Candidate struct {
	VendorName  string
	Date        string
	Amount      string
	Currency    string
	Category    string
	Description string
}

// Result is the outcome of structuring one document.
type Result struct {
	// Raw is the full decoded model payload, re-encoded as indented
	// JSON. It is persisted as the per-document snapshot.
	Raw []byte

	// Candidates is the candidate list in the order the model
	// reported it.
	Candidates []Candidate
}

// Structurer converts raw text into candidate transactions. An error
// (API failure, timeout, malformed payload) aborts processing for that
// one document; no partial records are committed.
type Structurer interface {
	Structure(ctx context.Context, text string) (*Result, error)
}
