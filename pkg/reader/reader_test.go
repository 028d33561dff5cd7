package reader

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/bout-dev/bout/pkg/profile"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func writeStatement(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func mustProfile(t *testing.T, name string) profile.Profile {
	t.Helper()
	prof, err := profile.Resolve(name)
	if err != nil {
		t.Fatalf("Resolve(%s) failed: %v", name, err)
	}
	return prof
}

func TestReadCSVFiltersPreambleAndFooter(t *testing.T) {
	content := `ICICI Bank Limited
Transactions List - some account

DATE,MODE,PARTICULARS,DEPOSITS,WITHDRAWALS,BALANCE
01/07/2017,BIL,BIL/12419860068/VF M Jun 17/344548182,0.0,354.56,1000.00
05/07/2017,NEFT,SALARY CREDIT JULY,60.00,0.0,1060.00

Legend: BIL - Internet Bill payment
`
	path := writeStatement(t, "statement.csv", content)

	records, err := New(testLogger()).Read(path, mustProfile(t, "icici"), "")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Cell(4) != "354.56" {
		t.Errorf("unexpected withdrawal cell %q", records[0].Cell(4))
	}
	if records[1].Cell(3) != "60.00" {
		t.Errorf("unexpected deposit cell %q", records[1].Cell(3))
	}
	// Line numbers refer to the source file, for diagnostics.
	if records[0].Line != 5 || records[1].Line != 6 {
		t.Errorf("unexpected line numbers: %d, %d", records[0].Line, records[1].Line)
	}
}

func TestReadCSVSkipsShortRows(t *testing.T) {
	content := `DATE,MODE,PARTICULARS,DEPOSITS,WITHDRAWALS,BALANCE
01/07/2017,ONLY,THREE
05/07/2017,NEFT,SALARY CREDIT JULY,60.00,0.0,1060.00
`
	path := writeStatement(t, "statement.csv", content)

	records, err := New(testLogger()).Read(path, mustProfile(t, "icici"), "")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected short row to be skipped, got %d records", len(records))
	}
}

func TestReadCSVWithoutHeaderYieldsNothing(t *testing.T) {
	content := `this file has,no,transaction,table
just,some,random,cells
`
	path := writeStatement(t, "statement.csv", content)

	records, err := New(testLogger()).Read(path, mustProfile(t, "icici"), "")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestReadUnsupportedExtension(t *testing.T) {
	path := writeStatement(t, "statement.docx", "whatever")

	_, err := New(testLogger()).Read(path, mustProfile(t, "icici"), "")
	if err == nil {
		t.Fatal("expected an error for unsupported file type")
	}
}

func TestReadPDFMatchesTransactionLines(t *testing.T) {
	text := `ICICI Bank Credit Card Statement
Statement Date: 31/07/2017   Page 1 of 2

20/07/2017 74143617199000258114409 AMAZON RETAIL IN 354.56
21/07/2017 74143617199000258114410 PAYMENT RECEIVED 20,724.06 CR

Total Amount Due 21,078.62
`
	extract := func(path, password string) (string, error) {
		return text, nil
	}

	rd := NewWithExtractor(testLogger(), extract)
	records, err := rd.Read("statement.pdf", mustProfile(t, "icicicc"), "secret")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	prof := mustProfile(t, "icicicc")
	if got := records[0].Cell(prof.DateCol); got != "20/07/2017" {
		t.Errorf("unexpected date cell %q", got)
	}
	if got := records[0].Cell(prof.AmountCol); got != "354.56" {
		t.Errorf("unexpected amount cell %q", got)
	}
	if got := records[1].Cell(prof.SignCol); got != "CR" {
		t.Errorf("expected credit marker, got %q", got)
	}
	if got := records[0].Cell(prof.MemoCols[0]); got != "74143617199000258114409 AMAZON RETAIL IN" {
		t.Errorf("unexpected details cell %q", got)
	}
}

func TestReadPDFRequiresPassword(t *testing.T) {
	called := false
	extract := func(path, password string) (string, error) {
		called = true
		return "", nil
	}

	rd := NewWithExtractor(testLogger(), extract)
	_, err := rd.Read("statement.pdf", mustProfile(t, "icicicc"), "")
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed, got %v", err)
	}
	if called {
		t.Error("extractor should not run without a password")
	}
}

func TestReadPDFPropagatesDecryptionFailure(t *testing.T) {
	extract := func(path, password string) (string, error) {
		return "", ErrDecryptionFailed
	}

	rd := NewWithExtractor(testLogger(), extract)
	_, err := rd.Read("statement.pdf", mustProfile(t, "icicicc"), "wrong")
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestReadPDFEmptyTextIsUnreadable(t *testing.T) {
	extract := func(path, password string) (string, error) {
		return "   \n\n  ", nil
	}

	rd := NewWithExtractor(testLogger(), extract)
	_, err := rd.Read("statement.pdf", mustProfile(t, "icicicc"), "secret")
	if !errors.Is(err, ErrUnreadableDocument) {
		t.Fatalf("expected ErrUnreadableDocument, got %v", err)
	}
}
