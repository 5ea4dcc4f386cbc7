package printer

import (
	"context"
	"fmt"
	"time"

	"github.com/Rushi8087/xerox-automation/internal/domain"
)

const rasterTimeout = 45 * time.Second

// Raster prints images through "mspaint /pt <file> <printer>", which rasters
// the image and queues it in one shot. mspaint gives no reliable exit signal,
// so a timeout counts as probable success.
type Raster struct {
	run     Runner
	printer string
}

func NewRaster(run Runner, printerName string) *Raster {
	return &Raster{run: run, printer: printerName}
}

func (r *Raster) Name() string { return "raster" }

func (r *Raster) CanPrint(ext string) bool {
	cat, ok := domain.CategoryFor(ext)
	return ok && cat == domain.FormatImage
}

func (r *Raster) Attempt(ctx context.Context, path string, opts domain.PrintOptions) error {
	for i := 0; i < opts.Copies; i++ {
		res, err := r.run.Run(ctx, rasterTimeout, "mspaint", "/pt", path, r.printer)
		if err != nil {
			return fmt.Errorf("raster: %w", err)
		}
		if res.TimedOut {
			continue
		}
		if res.ExitCode > 1 {
			return fmt.Errorf("raster: exit code %d", res.ExitCode)
		}
	}
	return nil
}
