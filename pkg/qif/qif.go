// Package qif serializes transactions to the Quicken Interchange
// Format: line-oriented text with single-letter field prefixes and ^
// as the record terminator.
package qif

import (
	"fmt"
	"io"

	"github.com/bout-dev/bout/pkg/models"
)

// Export writes one account header block followed by one block per
// transaction, in input order. Transaction blocks are separated by a
// blank line. Output is byte-deterministic for a given input.
func Export(w io.Writer, txs []models.Transaction, account, bank, dateFormat string) error {
	if err := writeHeader(w, account, bank); err != nil {
		return err
	}
	for _, tx := range txs {
		if err := writeTransaction(w, tx, dateFormat); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(w io.Writer, account, bank string) error {
	_, err := fmt.Fprintf(w, "!Account\nN%s\nT%s\n^\n!Type:Bank\n", account, bank)
	return err
}

func writeTransaction(w io.Writer, tx models.Transaction, dateFormat string) error {
	_, err := fmt.Fprintf(w, "D%s\nM%s\nT%s\n^\n\n",
		tx.Date.Format(dateFormat),
		tx.Memo,
		tx.Amount.StringFixed(2))
	return err
}
