// Package profile holds the static per-bank statement layouts. Adding
// support for a new statement format is just adding a Profile to the
// registry below.
package profile

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// AmountMode determines how a signed amount is derived from a row.
type AmountMode int

const (
	// AmountSplit means separate debit and credit columns; exactly one
	// of them must carry a value per row.
	AmountSplit AmountMode = iota
	// AmountSigned means a single amount column, debit by default,
	// with an optional marker column flipping the sign to credit.
	AmountSigned
)

// Profile describes the column layout of one bank's statement export.
type Profile struct {
	Name    string
	Account string
	Bank    string

	// HeaderPrefix is the line that opens the transaction table.
	// Everything before it is statement preamble and is dropped.
	HeaderPrefix string

	DateCol  int
	MemoCols []int

	Mode      AmountMode
	DebitCol  int // AmountSplit
	CreditCol int // AmountSplit
	AmountCol int // AmountSigned
	SignCol   int // AmountSigned

	// CreditMarker is the SignCol value that marks a credit ("CR" on
	// ICICI credit card statements).
	CreditMarker string

	// DateFormat is the Go layout of dates in the source. QIFDateFormat
	// is the layout written to QIF D lines; it is explicit per profile
	// because banks and locales disagree on it.
	DateFormat    string
	QIFDateFormat string

	// MinColumns rows are required to have; shorter rows are skipped
	// by the reader with a warning.
	MinColumns int

	// PasswordRequired marks PDF statements that ship encrypted.
	// PDFLine matches one transaction line of extracted PDF text; its
	// capture groups are date, details, amount and an optional credit
	// marker. A nil PDFLine means the profile has no PDF rendition.
	PasswordRequired bool
	PDFLine          *regexp.Regexp
}

// ErrUnknownProfile is returned by Resolve for names not in the
// registry.
var ErrUnknownProfile = errors.New("unknown profile")

var registry = map[string]Profile{
	"icici": {
		Name:          "icici",
		Account:       "MyAccount",
		Bank:          "MyBank",
		HeaderPrefix:  "DATE,MODE,PARTICULARS,DEPOSITS,WITHDRAWALS,BALANCE",
		DateCol:       0,
		MemoCols:      []int{2},
		Mode:          AmountSplit,
		DebitCol:      4,
		CreditCol:     3,
		DateFormat:    "02/01/2006",
		QIFDateFormat: "02/01/2006",
		MinColumns:    5,
	},
	"icicicc": {
		Name:          "icicicc",
		Account:       "MyAccount",
		Bank:          "MyBank",
		HeaderPrefix:  "Date,Sr.No.,Transaction Details,Reward Point Header,Intl.Amount,Amount(in Rs),BillingAmountSign",
		DateCol:       0,
		MemoCols:      []int{2},
		Mode:          AmountSigned,
		AmountCol:     5,
		SignCol:       6,
		CreditMarker:  "CR",
		DateFormat:    "02/01/2006",
		QIFDateFormat: "02/01/2006",
		MinColumns:    6,
		// 21/07/2017 74143617199000258114409 SOME MERCHANT NAME 20,724.06 CR
		PDFLine:          regexp.MustCompile(`^\s*(\d{2}/\d{2}/\d{4})\s+(.+?)\s+((?:\d{1,3}(?:,\d{3})*|\d+)\.\d{2})\s*(CR)?\s*$`),
		PasswordRequired: true,
	},
	"icicixls": {
		Name:          "icicixls",
		Account:       "MyAccount",
		Bank:          "MyBank",
		HeaderPrefix:  "DATE",
		DateCol:       0,
		MemoCols:      []int{2},
		Mode:          AmountSplit,
		DebitCol:      4,
		CreditCol:     3,
		DateFormat:    "02/01/2006",
		QIFDateFormat: "02/01/2006",
		MinColumns:    5,
	},
}

// Resolve looks up a profile by name.
func Resolve(name string) (Profile, error) {
	p, ok := registry[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return p, nil
}

// Names lists the registered profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
