package printer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rushi8087/xerox-automation/internal/domain"
	"go.uber.org/zap"
)

const queryTimeout = 15 * time.Second

// Gateway fronts one physical printer. Readiness and queue state come from
// the Windows spooler; delivery walks an ordered chain of strategies until
// one accepts the job.
type Gateway struct {
	run     Runner
	printer string
	log     *zap.Logger
	chain   []Strategy
	raster  Strategy
}

// Option customises a Gateway.
type Option func(*Gateway)

// WithChain replaces the default delivery chain.
func WithChain(chain ...Strategy) Option {
	return func(g *Gateway) { g.chain = chain }
}

// WithRaster replaces the image delivery strategy.
func WithRaster(s Strategy) Option {
	return func(g *Gateway) { g.raster = s }
}

// WithSumatraPath pins SumatraPDF to an explicit executable path.
func WithSumatraPath(path string) Option {
	return func(g *Gateway) {
		for i, s := range g.chain {
			if sum, ok := s.(*Sumatra); ok {
				g.chain[i] = NewSumatra(sum.run, sum.printer, path)
			}
		}
	}
}

// New builds a Gateway with the default chain, ordered by reliability.
func New(run Runner, printerName string, log *zap.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		run:     run,
		printer: printerName,
		log:     log,
		chain: []Strategy{
			NewSumatra(run, printerName, ""),
			NewOffice(run, printerName),
			NewShellVerb(run, printerName, log),
			NewTextPrint(run, printerName, log),
		},
		raster: NewRaster(run, printerName),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the spooler name of the printer this gateway fronts.
func (g *Gateway) Name() string { return g.printer }

// Readiness queries the spooler for the printer's current state.
func (g *Gateway) Readiness(ctx context.Context) (Status, error) {
	script := fmt.Sprintf(
		"(Get-CimInstance -ClassName Win32_Printer -Filter \"Name=%s\").DetectedErrorState",
		quote(g.printer))
	res, err := g.run.Run(ctx, queryTimeout, "powershell", "-NoProfile", "-Command", script)
	if err != nil {
		return StatusError, fmt.Errorf("query printer state: %w", err)
	}
	if res.TimedOut || res.ExitCode != 0 {
		return StatusError, fmt.Errorf("query printer state: exit code %d", res.ExitCode)
	}
	out := strings.TrimSpace(string(res.Output))
	if out == "" {
		return StatusNotFound, nil
	}
	code, err := strconv.Atoi(out)
	if err != nil {
		return StatusError, fmt.Errorf("query printer state: unexpected output %q", out)
	}
	return statusFromErrorState(code), nil
}

// QueueLength reports how many jobs the printer currently holds.
func (g *Gateway) QueueLength(ctx context.Context) (int, error) {
	script := fmt.Sprintf("@(Get-PrintJob -PrinterName %s).Count", quote(g.printer))
	res, err := g.run.Run(ctx, queryTimeout, "powershell", "-NoProfile", "-Command", script)
	if err != nil {
		return 0, fmt.Errorf("query print queue: %w", err)
	}
	if res.TimedOut || res.ExitCode != 0 {
		return 0, fmt.Errorf("query print queue: exit code %d", res.ExitCode)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(res.Output)))
	if err != nil {
		return 0, fmt.Errorf("query print queue: unexpected output %q", res.Output)
	}
	return n, nil
}

// ClearQueue removes every pending job so stale documents from earlier
// sessions never print ahead of a fresh order.
func (g *Gateway) ClearQueue(ctx context.Context) error {
	script := fmt.Sprintf("Get-PrintJob -PrinterName %s | Remove-PrintJob", quote(g.printer))
	res, err := g.run.Run(ctx, queryTimeout, "powershell", "-NoProfile", "-Command", script)
	if err != nil {
		return fmt.Errorf("clear print queue: %w", err)
	}
	if res.TimedOut || res.ExitCode != 0 {
		return fmt.Errorf("clear print queue: exit code %d", res.ExitCode)
	}
	return nil
}

// PrintFile delivers one file. Images go straight to the raster helper;
// everything else walks the chain in order, skipping strategies that cannot
// handle the extension. Returns ErrAllMethodsFailed when every applicable
// strategy was tried and none succeeded.
func (g *Gateway) PrintFile(ctx context.Context, path string, opts domain.PrintOptions) error {
	ext := fileExt(path)
	if !domain.SupportedExtension(ext) {
		return fmt.Errorf("%w: .%s", domain.ErrUnsupportedFormat, ext)
	}
	if opts.Copies < 1 {
		opts.Copies = 1
	}

	if g.raster.CanPrint(ext) {
		if err := g.raster.Attempt(ctx, path, opts); err != nil {
			g.log.Warn("image print failed",
				zap.String("method", g.raster.Name()),
				zap.String("file", path),
				zap.Error(err))
			return fmt.Errorf("%w: %s", domain.ErrAllMethodsFailed, path)
		}
		g.log.Info("file printed",
			zap.String("method", g.raster.Name()),
			zap.String("file", path))
		return nil
	}

	attempted := 0
	for _, s := range g.chain {
		if !s.CanPrint(ext) {
			continue
		}
		attempted++
		err := s.Attempt(ctx, path, opts)
		if err == nil {
			g.log.Info("file printed",
				zap.String("method", s.Name()),
				zap.String("file", path))
			return nil
		}
		g.log.Warn("print method failed",
			zap.String("method", s.Name()),
			zap.String("file", path),
			zap.Error(err))
	}
	if attempted == 0 {
		return fmt.Errorf("%w: .%s", domain.ErrUnsupportedFormat, ext)
	}
	return fmt.Errorf("%w: %s", domain.ErrAllMethodsFailed, path)
}
