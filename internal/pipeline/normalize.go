package pipeline

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/finaudit/internal/fx"
	"github.com/dvloznov/finaudit/internal/structurer"
	"github.com/dvloznov/finaudit/internal/textutil"
)

// NormalizeCandidate coerces one untrusted candidate into a canonical
// Record. Total function: any malformed field degrades to its documented
// default, it never fails the document.
//
// Coercion rules:
//   - amount: decimal parse after stripping thousands separators;
//     parse failure coerces to 0.
//   - currency: uppercased and trimmed; empty defaults to baseCurrency.
//   - fx rate: 1 when currency equals the base or the table misses the
//     code; a non-positive rate from the table is replaced with 1 so
//     conversion can never divide by zero.
//   - vendor/category: "Unknown"/"Other" fallbacks, diacritics folded.
//   - date: candidate's when present, else now's date.
func NormalizeCandidate(c structurer.Candidate, baseCurrency string, rates *fx.Table, now time.Time, fileSource string) Record {
	amount := parseAmount(c.Amount)

	currency := strings.ToUpper(strings.TrimSpace(c.Currency))
	if currency == "" {
		currency = baseCurrency
	}

	rate := decimal.NewFromInt(1)
	if currency != baseCurrency {
		if r, ok := rates.Lookup(currency); ok && r.IsPositive() {
			rate = r
		}
	}

	vendor := strings.TrimSpace(c.VendorName)
	if vendor == "" {
		vendor = "Unknown"
	}

	date := strings.TrimSpace(c.Date)
	if date == "" {
		date = now.Format("2006-01-02")
	}

	category := strings.TrimSpace(c.Category)
	if category == "" {
		category = "Other"
	}

	return Record{
		VendorName:     textutil.Normalize(vendor),
		Date:           date,
		Amount:         amount,
		Currency:       currency,
		Category:       textutil.Normalize(category),
		Description:    textutil.Normalize(strings.TrimSpace(c.Description)),
		ConvertedTotal: amount.DivRound(rate, 2),
		FXRateApplied:  rate,
		ProcessedAt:    now,
		FileSource:     textutil.Normalize(fileSource),
	}
}

// parseAmount parses a numeric-ish amount string, tolerating thousands
// separators. Anything unparseable coerces to 0.
func parseAmount(raw string) decimal.Decimal {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
