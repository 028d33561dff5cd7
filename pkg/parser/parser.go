// Package parser normalizes raw statement rows into transactions.
// Individual bad rows are skipped and counted rather than failing the
// run; the run only fails when nothing at all could be parsed.
package parser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/bout-dev/bout/pkg/models"
	"github.com/bout-dev/bout/pkg/profile"
)

var (
	// ErrMalformedDate marks a row whose date cell does not match the
	// profile's date format.
	ErrMalformedDate = errors.New("malformed date")
	// ErrAmbiguousAmount marks a row whose signed amount cannot be
	// determined: both or neither of debit/credit populated, or an
	// unparseable amount cell.
	ErrAmbiguousAmount = errors.New("ambiguous amount")
	// ErrNoTransactions is returned when a statement yields zero
	// parseable rows.
	ErrNoTransactions = errors.New("no transactions found")
)

type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse converts raw records into transactions in input order. Rows
// that fail to parse are skipped, logged at debug level and counted in
// the returned stats. Zero surviving rows is fatal.
func (p *Parser) Parse(records []models.RawRecord, prof profile.Profile) ([]models.Transaction, models.ParseStats, error) {
	var txs []models.Transaction
	var stats models.ParseStats

	for _, rec := range records {
		tx, err := p.parseRecord(rec, prof)
		if err != nil {
			stats.AddSkip(rec.Line, err.Error())
			p.logger.Debug("skipping record", "line", rec.Line, "error", err)
			continue
		}
		txs = append(txs, tx)
		stats.Parsed++
	}

	if stats.Parsed == 0 {
		return nil, stats, fmt.Errorf("%w (%d rows skipped)", ErrNoTransactions, len(stats.Skipped))
	}
	return txs, stats, nil
}

func (p *Parser) parseRecord(rec models.RawRecord, prof profile.Profile) (models.Transaction, error) {
	// ICICI exports flip between 01-07-2017 and 01/07/2017 depending on
	// the download channel; normalize to slashes before parsing.
	dateStr := strings.ReplaceAll(strings.TrimSpace(rec.Cell(prof.DateCol)), "-", "/")
	date, err := time.Parse(prof.DateFormat, dateStr)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %q", ErrMalformedDate, rec.Cell(prof.DateCol))
	}

	amount, err := parseAmount(rec, prof)
	if err != nil {
		return models.Transaction{}, err
	}

	return models.Transaction{
		Date:   date,
		Memo:   buildMemo(rec, prof),
		Amount: amount,
	}, nil
}

func parseAmount(rec models.RawRecord, prof profile.Profile) (decimal.Decimal, error) {
	switch prof.Mode {
	case profile.AmountSplit:
		return parseSplitAmount(rec, prof)
	case profile.AmountSigned:
		return parseSignedAmount(rec, prof)
	default:
		return decimal.Zero, fmt.Errorf("profile %s has no amount mode", prof.Name)
	}
}

// parseSplitAmount handles separate debit/credit columns. Exactly one
// of the two must carry a non-zero value; banks fill the unused column
// with "" or "0.0".
func parseSplitAmount(rec models.RawRecord, prof profile.Profile) (decimal.Decimal, error) {
	debit, debitSet, err := amountCell(rec.Cell(prof.DebitCol))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: debit %q", ErrAmbiguousAmount, rec.Cell(prof.DebitCol))
	}
	credit, creditSet, err := amountCell(rec.Cell(prof.CreditCol))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: credit %q", ErrAmbiguousAmount, rec.Cell(prof.CreditCol))
	}

	switch {
	case debitSet && creditSet:
		return decimal.Zero, fmt.Errorf("%w: both debit and credit populated", ErrAmbiguousAmount)
	case debitSet:
		return debit.Neg(), nil
	case creditSet:
		return credit, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: neither debit nor credit populated", ErrAmbiguousAmount)
	}
}

// parseSignedAmount handles a single amount column that is a debit
// unless the credit marker appears, either in its own column or as a
// suffix of the amount cell ("20,724.06 CR").
func parseSignedAmount(rec models.RawRecord, prof profile.Profile) (decimal.Decimal, error) {
	raw := strings.TrimSpace(rec.Cell(prof.AmountCol))
	credit := false
	if prof.CreditMarker != "" {
		if strings.HasSuffix(raw, prof.CreditMarker) {
			raw = strings.TrimSpace(strings.TrimSuffix(raw, prof.CreditMarker))
			credit = true
		}
		if strings.TrimSpace(rec.Cell(prof.SignCol)) == prof.CreditMarker {
			credit = true
		}
	}

	amount, set, err := amountCell(raw)
	if err != nil || !set {
		return decimal.Zero, fmt.Errorf("%w: amount %q", ErrAmbiguousAmount, rec.Cell(prof.AmountCol))
	}
	if credit {
		return amount, nil
	}
	return amount.Neg(), nil
}

// amountCell parses one amount cell. A cell that is empty or zero
// counts as not populated.
func amountCell(raw string) (decimal.Decimal, bool, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return decimal.Zero, false, nil
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false, err
	}
	if value.IsZero() {
		return decimal.Zero, false, nil
	}
	return value, true, nil
}

// buildMemo joins the profile's descriptive columns and collapses runs
// of whitespace. PDF extraction in particular leaves stray newlines
// inside descriptions.
func buildMemo(rec models.RawRecord, prof profile.Profile) string {
	parts := make([]string, 0, len(prof.MemoCols))
	for _, col := range prof.MemoCols {
		if cell := rec.Cell(col); cell != "" {
			parts = append(parts, cell)
		}
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
