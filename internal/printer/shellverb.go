package printer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rushi8087/xerox-automation/internal/domain"
	"go.uber.org/zap"
)

const (
	shellVerbTimeout = 60 * time.Second
	defaultOpTimeout = 15 * time.Second
)

// ShellVerb prints through the file association's Print verb. The verb only
// targets the system default printer, so the strategy swaps the default to
// the shop printer first and restores the previous default on every exit
// path.
type ShellVerb struct {
	run     Runner
	printer string
	log     *zap.Logger
}

func NewShellVerb(run Runner, printerName string, log *zap.Logger) *ShellVerb {
	return &ShellVerb{run: run, printer: printerName, log: log}
}

func (s *ShellVerb) Name() string { return "shell-verb" }

func (s *ShellVerb) CanPrint(ext string) bool {
	_, ok := domain.CategoryFor(ext)
	return ok
}

func (s *ShellVerb) Attempt(ctx context.Context, path string, opts domain.PrintOptions) error {
	previous, err := s.defaultPrinter(ctx)
	if err != nil {
		return fmt.Errorf("shell-verb: read default printer: %w", err)
	}
	if previous != s.printer {
		if err := s.setDefaultPrinter(ctx, s.printer); err != nil {
			return fmt.Errorf("shell-verb: set default printer: %w", err)
		}
		defer func() {
			if err := s.setDefaultPrinter(context.Background(), previous); err != nil {
				s.log.Warn("restoring default printer failed",
					zap.String("printer", previous), zap.Error(err))
			}
		}()
	}

	for i := 0; i < opts.Copies; i++ {
		script := fmt.Sprintf("Start-Process -FilePath %s -Verb Print -PassThru | ForEach-Object { Start-Sleep -Seconds 5; if (-not $_.HasExited) { $_.Kill() } }", quote(path))
		res, err := s.run.Run(ctx, shellVerbTimeout, "powershell", "-NoProfile", "-Command", script)
		if err != nil {
			return fmt.Errorf("shell-verb: %w", err)
		}
		if res.TimedOut {
			return fmt.Errorf("shell-verb: timed out printing %q", path)
		}
		if res.ExitCode != 0 {
			return fmt.Errorf("shell-verb: exit code %d: %s", res.ExitCode, res.Output)
		}
	}
	return nil
}

func (s *ShellVerb) defaultPrinter(ctx context.Context) (string, error) {
	res, err := s.run.Run(ctx, defaultOpTimeout, "powershell", "-NoProfile", "-Command",
		"(Get-CimInstance -ClassName Win32_Printer -Filter 'Default=true').Name")
	if err != nil {
		return "", err
	}
	if res.TimedOut || res.ExitCode != 0 {
		return "", fmt.Errorf("exit code %d", res.ExitCode)
	}
	return strings.TrimSpace(string(res.Output)), nil
}

func (s *ShellVerb) setDefaultPrinter(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	res, err := s.run.Run(ctx, defaultOpTimeout, "rundll32", "printui.dll,PrintUIEntry", "/y", "/n", name)
	if err != nil {
		return err
	}
	if res.TimedOut || res.ExitCode != 0 {
		return fmt.Errorf("exit code %d", res.ExitCode)
	}
	return nil
}
