package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a normalized statement entry ready for QIF export.
// Amount is signed: debits are negative, credits positive.
type Transaction struct {
	Date   time.Time
	Memo   string
	Amount decimal.Decimal
}

// RawRecord is one row of source data as extracted from a statement,
// before any field parsing. Line is the 1-based position in the source
// file, kept for diagnostics.
type RawRecord struct {
	Line  int
	Cells []string
}

// Cell returns the value at position i, or "" when the record is too
// short.
func (r RawRecord) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}
