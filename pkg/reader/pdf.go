package reader

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/dslipak/pdf"
)

// extractPDFText is the default Extractor. It opens the document with
// dslipak/pdf, supplying the password once for encrypted statements,
// and returns the plain text of all pages.
func extractPDFText(path, password string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("error reading file: %w", err)
	}

	// The password callback is retried by the library until it returns
	// ""; answer once and then give up so a wrong password fails fast.
	asked := false
	doc, err := pdf.NewReaderEncrypted(file, info.Size(), func() string {
		if asked {
			return ""
		}
		asked = true
		return password
	})
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return "", fmt.Errorf("%w: %s", ErrDecryptionFailed, path)
		}
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	text, err := doc.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(text); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	return buf.String(), nil
}
