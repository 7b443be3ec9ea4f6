// Package pdf extracts page ranges from PDF documents for chunked
// question generation.
package pdf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrInvalidDocument indicates the input bytes could not be parsed as a
// PDF. This is a document-level failure: it is never retried and fails
// the whole generation call.
var ErrInvalidDocument = errors.New("invalid PDF document")

func conf() *model.Configuration {
	c := model.NewDefaultConfiguration()
	c.ValidationMode = model.ValidationRelaxed
	return c
}

// PageCount returns the total number of pages in the document.
func PageCount(data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), conf())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return n, nil
}

// Slice extracts pages startPage..endPage (0-indexed, inclusive) into a
// new standalone PDF. endPage is clamped to the last page; page order is
// preserved.
func Slice(data []byte, startPage, endPage int) ([]byte, error) {
	if startPage < 0 || endPage < startPage {
		return nil, fmt.Errorf("invalid page range %d-%d", startPage, endPage)
	}

	total, err := PageCount(data)
	if err != nil {
		return nil, err
	}
	if startPage >= total {
		return nil, fmt.Errorf("start page %d beyond document end (%d pages)", startPage, total)
	}
	if endPage >= total {
		endPage = total - 1
	}

	// pdfcpu page selections are 1-based.
	selection := []string{fmt.Sprintf("%d-%d", startPage+1, endPage+1)}

	var out bytes.Buffer
	if err := api.Trim(bytes.NewReader(data), &out, selection, conf()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return out.Bytes(), nil
}
