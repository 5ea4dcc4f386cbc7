package printer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Rushi8087/xerox-automation/internal/domain"
)

const sumatraTimeout = 30 * time.Second

// Sumatra drives SumatraPDF, the most reliable silent PDF path. A timeout is
// treated as probable success: by then the job is usually already queued.
type Sumatra struct {
	run     Runner
	printer string
	exePath string
}

func NewSumatra(run Runner, printerName, exePath string) *Sumatra {
	return &Sumatra{run: run, printer: printerName, exePath: exePath}
}

func (s *Sumatra) Name() string { return "sumatra" }

func (s *Sumatra) CanPrint(ext string) bool {
	cat, ok := domain.CategoryFor(ext)
	return ok && cat == domain.FormatPDF
}

func (s *Sumatra) Attempt(ctx context.Context, path string, opts domain.PrintOptions) error {
	exe := s.locate()
	if exe == "" {
		return fmt.Errorf("sumatra: executable not found")
	}

	res, err := s.run.Run(ctx, sumatraTimeout, exe,
		"-print-to", s.printer,
		"-print-settings", printSettings(opts),
		"-silent", path,
	)
	if err != nil {
		return fmt.Errorf("sumatra: %w", err)
	}
	if res.TimedOut {
		// The job may already be in the queue.
		return nil
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("sumatra: exit code %d", res.ExitCode)
	}
	return nil
}

func (s *Sumatra) locate() string {
	if s.exePath != "" {
		return s.exePath
	}
	candidates := []string{
		`C:\Program Files\SumatraPDF\SumatraPDF.exe`,
		`C:\Program Files (x86)\SumatraPDF\SumatraPDF.exe`,
	}
	if local := os.Getenv("LOCALAPPDATA"); local != "" {
		candidates = append(candidates, filepath.Join(local, "SumatraPDF", "SumatraPDF.exe"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// printSettings encodes per-file options in SumatraPDF's -print-settings
// syntax, e.g. "2x,duplex,monochrome".
func printSettings(opts domain.PrintOptions) string {
	parts := make([]string, 0, 3)
	if opts.Copies > 1 {
		parts = append(parts, fmt.Sprintf("%dx", opts.Copies))
	}
	if opts.Duplex {
		parts = append(parts, "duplex")
	} else {
		parts = append(parts, "simplex")
	}
	if opts.Color {
		parts = append(parts, "color")
	} else {
		parts = append(parts, "monochrome")
	}
	return strings.Join(parts, ",")
}
