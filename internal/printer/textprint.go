package printer

import (
	"context"
	"fmt"
	"time"

	"github.com/Rushi8087/xerox-automation/internal/domain"
	"go.uber.org/zap"
)

const textTimeout = 30 * time.Second

var textExtensions = map[string]bool{
	"txt": true,
	"log": true,
	"csv": true,
}

// TextPrint is the last resort for plain-text files: notepad's /p switch
// against the default printer. Notepad stays open after queueing, so a
// timeout counts as probable success.
type TextPrint struct {
	run     Runner
	printer string
	log     *zap.Logger
}

func NewTextPrint(run Runner, printerName string, log *zap.Logger) *TextPrint {
	return &TextPrint{run: run, printer: printerName, log: log}
}

func (t *TextPrint) Name() string { return "text" }

func (t *TextPrint) CanPrint(ext string) bool { return textExtensions[ext] }

func (t *TextPrint) Attempt(ctx context.Context, path string, opts domain.PrintOptions) error {
	sv := &ShellVerb{run: t.run, printer: t.printer, log: t.log}
	previous, err := sv.defaultPrinter(ctx)
	if err != nil {
		return fmt.Errorf("text: read default printer: %w", err)
	}
	if previous != t.printer {
		if err := sv.setDefaultPrinter(ctx, t.printer); err != nil {
			return fmt.Errorf("text: set default printer: %w", err)
		}
		defer func() {
			if err := sv.setDefaultPrinter(context.Background(), previous); err != nil {
				t.log.Warn("restoring default printer failed",
					zap.String("printer", previous), zap.Error(err))
			}
		}()
	}

	for i := 0; i < opts.Copies; i++ {
		res, err := t.run.Run(ctx, textTimeout, "notepad", "/p", path)
		if err != nil {
			return fmt.Errorf("text: %w", err)
		}
		if res.TimedOut {
			// The job is normally queued well before notepad exits.
			continue
		}
		if res.ExitCode != 0 {
			return fmt.Errorf("text: exit code %d", res.ExitCode)
		}
	}
	return nil
}
