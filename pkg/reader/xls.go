package reader

import (
	"fmt"
	"os"
	"strings"

	"github.com/extrame/xls"

	"github.com/bout-dev/bout/pkg/models"
	"github.com/bout-dev/bout/pkg/profile"
)

const maxXLSRows = 10000

// readXLS reads an XLS statement workbook and applies the same
// header-sentinel table rules as CSV via filterRows.
func (r *Reader) readXLS(path string, prof profile.Profile) ([]models.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	workbook, err := xls.OpenReader(file, "cp1252")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	rows := workbook.ReadAllCells(maxXLSRows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows in workbook %s", ErrUnreadableDocument, path)
	}

	records := r.filterRows(rows, prof)
	r.logger.Debug("read xls statement", "path", path, "rows", len(records))
	return records, nil
}

// filterRows applies the transaction-table rules to pre-split rows:
// rows before the profile's header sentinel are preamble, the first
// all-blank row after it ends the table, and short rows are skipped
// with a warning. Zero-length rows are noise and never terminate the
// table. Line numbers are 1-based row positions.
func (r *Reader) filterRows(rows [][]string, prof profile.Profile) []models.RawRecord {
	var records []models.RawRecord
	headSeen := false
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}

		if !headSeen {
			if strings.HasPrefix(strings.Join(row, ","), prof.HeaderPrefix) {
				headSeen = true
			}
			continue
		}
		if emptyRow(row) {
			break
		}
		if len(row) < prof.MinColumns {
			r.logger.Warn("skipping short row", "line", i+1, "columns", len(row), "want", prof.MinColumns)
			continue
		}

		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		records = append(records, models.RawRecord{Line: i + 1, Cells: cells})
	}
	return records
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
