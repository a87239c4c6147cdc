package viewport

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var pdfMagic = []byte("%PDF-")

// ValidateDocument rejects anything that is not a readable PDF no larger
// than maxSize bytes. A maxSize of zero disables the size check.
func ValidateDocument(filename string, data []byte, maxSize int64) error {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return fmt.Errorf("%w: %s is not a .pdf file", ErrUnsupportedDocument, filename)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return fmt.Errorf("%w: %s exceeds the %s upload limit",
			ErrUnsupportedDocument, units.HumanSize(float64(len(data))), units.HumanSize(float64(maxSize)))
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return fmt.Errorf("%w: %s does not start with a PDF header", ErrUnsupportedDocument, filename)
	}

	n, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnsupportedDocument, filename, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s has no pages", ErrUnsupportedDocument, filename)
	}
	return nil
}
