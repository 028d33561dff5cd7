// Package reader extracts raw transaction rows from statement files.
// It understands delimited text (CSV), XLS workbooks and PDF
// statements; the output is always a flat list of positional
// RawRecords that pkg/parser turns into transactions.
package reader

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bout-dev/bout/pkg/models"
	"github.com/bout-dev/bout/pkg/profile"
)

var (
	// ErrUnreadableDocument means the source yielded no usable text.
	ErrUnreadableDocument = errors.New("unreadable document")
	// ErrDecryptionFailed means a required password was missing or wrong.
	ErrDecryptionFailed = errors.New("decryption failed")
)

// Extractor turns a PDF file into plain text. The default uses
// dslipak/pdf; tests inject their own so no PDF engine is needed.
type Extractor func(path, password string) (string, error)

type Reader struct {
	logger  *log.Logger
	extract Extractor
}

func New(logger *log.Logger) *Reader {
	return &Reader{logger: logger, extract: extractPDFText}
}

// NewWithExtractor builds a Reader with a custom PDF text extractor.
func NewWithExtractor(logger *log.Logger, extract Extractor) *Reader {
	return &Reader{logger: logger, extract: extract}
}

// Read extracts the raw rows of a statement file, dispatching on the
// file extension. The password is only consulted for PDF sources.
func (r *Reader) Read(path string, prof profile.Profile, password string) ([]models.RawRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return r.readCSV(path, prof)
	case ".xls":
		return r.readXLS(path, prof)
	case ".pdf":
		return r.readPDF(path, prof, password)
	default:
		return nil, fmt.Errorf("unsupported statement file type: %s", path)
	}
}

// readCSV scans for the profile's header line, collects the delimited
// rows that follow it up to the first blank line, and drops everything
// else (bank preamble, closing balance footers).
func (r *Reader) readCSV(path string, prof profile.Profile) ([]models.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	var records []models.RawRecord
	headSeen := false
	lineNo := 0

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if !headSeen {
			if strings.HasPrefix(line, prof.HeaderPrefix) {
				headSeen = true
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		if !strings.Contains(line, ",") {
			continue
		}

		cells, err := splitCSVLine(line)
		if err != nil {
			r.logger.Warn("skipping malformed csv line", "line", lineNo, "error", err)
			continue
		}
		if len(cells) < prof.MinColumns {
			r.logger.Warn("skipping short row", "line", lineNo, "columns", len(cells), "want", prof.MinColumns)
			continue
		}
		records = append(records, models.RawRecord{Line: lineNo, Cells: cells})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	r.logger.Debug("read csv statement", "path", path, "rows", len(records), "header_found", headSeen)
	return records, nil
}

// readPDF extracts the statement text and matches each line against the
// profile's transaction pattern. Non-matching lines (page headers,
// footers, balance summaries) are dropped without warning since PDF
// text is mostly noise.
func (r *Reader) readPDF(path string, prof profile.Profile, password string) ([]models.RawRecord, error) {
	if prof.PDFLine == nil {
		return nil, fmt.Errorf("profile %s has no pdf layout", prof.Name)
	}
	if prof.PasswordRequired && password == "" {
		return nil, fmt.Errorf("%w: profile %s requires a password", ErrDecryptionFailed, prof.Name)
	}

	text, err := r.extract(path, password)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no text extracted from %s", ErrUnreadableDocument, path)
	}

	width := recordWidth(prof)
	var records []models.RawRecord
	for i, line := range strings.Split(text, "\n") {
		m := prof.PDFLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		cells := make([]string, width)
		cells[prof.DateCol] = m[1]
		cells[prof.MemoCols[0]] = m[2]
		cells[prof.AmountCol] = m[3]
		if len(m) > 4 {
			cells[prof.SignCol] = m[4]
		}
		records = append(records, models.RawRecord{Line: i + 1, Cells: cells})
	}

	r.logger.Debug("read pdf statement", "path", path, "rows", len(records))
	return records, nil
}

func splitCSVLine(line string) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cells, err := cr.Read()
	if err != nil {
		return nil, err
	}
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells, nil
}

// recordWidth is the number of cells a synthesized record needs so the
// profile's column indices stay in range.
func recordWidth(prof profile.Profile) int {
	max := prof.DateCol
	for _, c := range prof.MemoCols {
		if c > max {
			max = c
		}
	}
	for _, c := range []int{prof.DebitCol, prof.CreditCol, prof.AmountCol, prof.SignCol} {
		if c > max {
			max = c
		}
	}
	return max + 1
}
