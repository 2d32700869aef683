package pipeline

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one canonical transaction, validated and currency-converted,
// ready to be appended to the session ledger. Created once per candidate
// and immutable afterwards.
type Record struct {
	VendorName  string          // normalized, never empty ("Unknown" fallback)
	Date        string          // ISO date string; today when the candidate had none
	Amount      decimal.Decimal // signed; expenses negative, income positive
	Currency    string          // 3-letter uppercase code
	Category    string          // normalized, "Other" fallback
	Description string          // normalized, may be empty

	// ConvertedTotal = Amount / FXRateApplied, rounded half-up to
	// 2 decimal places.
	ConvertedTotal decimal.Decimal
	FXRateApplied  decimal.Decimal

	ProcessedAt time.Time
	FileSource  string
}
