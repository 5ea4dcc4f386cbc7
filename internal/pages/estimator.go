// Package pages estimates how many pages a stored file will print. The
// estimate is advisory: callers treat any failure as a single page rather
// than rejecting the upload.
package pages

import (
	"context"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/Rushi8087/xerox-automation/internal/domain"
)

// PathResolver turns a storage reference into a readable path.
type PathResolver interface {
	Path(ref string) string
}

type Estimator struct {
	resolver PathResolver
}

func NewEstimator(resolver PathResolver) *Estimator {
	return &Estimator{resolver: resolver}
}

// Size heuristic for formats without a parseable page structure, matching
// roughly one page per 3000 bytes of plain text and one per 50000 bytes of
// binary document.
const (
	bytesPerTextPage = 3000
	bytesPerDocPage  = 50000
	maxEstimate      = 100
)

func (e *Estimator) EstimatePages(ctx context.Context, ref, ext string) (int, error) {
	path := e.resolver.Path(ref)

	cat, ok := domain.CategoryFor(ext)
	if !ok {
		return 1, nil
	}

	switch cat {
	case domain.FormatPDF:
		n, err := api.PageCountFile(path)
		if err != nil {
			return 0, fmt.Errorf("pdf page count %s: %w", ref, err)
		}
		if n < 1 {
			n = 1
		}
		return n, nil

	case domain.FormatDocument:
		info, err := os.Stat(path)
		if err != nil {
			return 0, fmt.Errorf("stat %s: %w", ref, err)
		}
		perPage := int64(bytesPerDocPage)
		if ext == "txt" {
			perPage = bytesPerTextPage
		}
		n := int(info.Size() / perPage)
		if n < 1 {
			n = 1
		}
		if n > maxEstimate {
			n = maxEstimate
		}
		return n, nil

	default:
		// Images, spreadsheets and presentations print as a single page
		// estimate; the spooler decides the real layout.
		return 1, nil
	}
}
