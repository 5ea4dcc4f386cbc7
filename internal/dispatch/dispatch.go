// Package dispatch consumes confirmed-order records from the spool and walks
// them through the physical printer. It is the only consumer of the watched
// directory.
package dispatch

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Rushi8087/xerox-automation/internal/domain"
	"github.com/Rushi8087/xerox-automation/internal/printer"
)

// Printer is the slice of the gateway the dispatcher needs.
type Printer interface {
	Readiness(ctx context.Context) (printer.Status, error)
	ClearQueue(ctx context.Context) error
	PrintFile(ctx context.Context, path string, opts domain.PrintOptions) error
}

// Queue is the slice of the spool the dispatcher needs.
type Queue interface {
	OrdersDir() string
	Pending() ([]string, error)
	Load(path string) (domain.ConfirmedOrder, error)
	Archive(path string) (string, error)
}

// PathResolver maps a storage reference from an order record to a readable
// local file path.
type PathResolver interface {
	Path(ref string) string
}

// Orchestrator watches the spool directory and prints each record once.
type Orchestrator struct {
	queue       Queue
	printer     Printer
	files       PathResolver
	log         *zap.Logger
	settleDelay time.Duration
	retryDelay  time.Duration
}

// Option customises an Orchestrator.
type Option func(*Orchestrator)

// WithSettleDelay overrides the pause between noticing a new record and
// reading it.
func WithSettleDelay(d time.Duration) Option {
	return func(o *Orchestrator) { o.settleDelay = d }
}

// WithRetryDelay overrides the wait before re-checking a printer that was
// not ready.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Orchestrator) { o.retryDelay = d }
}

func New(queue Queue, pr Printer, files PathResolver, log *zap.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		queue:       queue,
		printer:     pr,
		files:       files,
		log:         log,
		settleDelay: 2 * time.Second,
		retryDelay:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run watches the spool until ctx is cancelled. Records already waiting at
// startup go through the normal dispatch path first: an order only leaves
// the queue when it has been archived, so undelivered work survives a crash.
func (o *Orchestrator) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(o.queue.OrdersDir()); err != nil {
		return err
	}
	o.log.Info("watching spool", zap.String("dir", o.queue.OrdersDir()))

	o.Sweep(ctx)

	// Records left queued because the printer was not ready get retried on a
	// timer; filesystem events alone would never revisit them.
	retry := time.NewTicker(o.retryDelay)
	defer retry.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-retry.C:
			o.Sweep(ctx)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !isRecord(event.Name) {
				continue
			}
			select {
			case <-time.After(o.settleDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
			o.Sweep(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			o.log.Error("watcher error", zap.Error(err))
		}
	}
}

// Sweep dispatches every record currently pending. Records the printer was
// not ready for stay in place and are picked up by a later sweep.
func (o *Orchestrator) Sweep(ctx context.Context) {
	paths, err := o.queue.Pending()
	if err != nil {
		o.log.Error("listing spool failed", zap.Error(err))
		return
	}
	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		o.dispatch(ctx, path)
	}
}

func (o *Orchestrator) dispatch(ctx context.Context, path string) {
	order, err := o.queue.Load(path)
	if err != nil {
		// A record that cannot be parsed will never print; move it out of
		// the queue so it stops blocking and leave it for the operator.
		o.log.Error("unreadable order record, quarantining",
			zap.String("path", path), zap.Error(err))
		if dest, aerr := o.queue.Archive(path); aerr != nil {
			o.log.Error("quarantine failed", zap.String("path", path), zap.Error(aerr))
		} else {
			o.log.Warn("record quarantined", zap.String("path", dest))
		}
		return
	}

	log := o.log.With(zap.String("order_id", order.OrderID))

	status, err := o.printer.Readiness(ctx)
	if err != nil {
		log.Error("printer status check failed", zap.Error(err))
		return
	}
	if status != printer.StatusReady {
		log.Warn("printer not ready, order stays queued",
			zap.String("status", string(status)))
		return
	}

	if err := o.printer.ClearQueue(ctx); err != nil {
		log.Warn("clearing print queue failed", zap.Error(err))
	}

	printed := 0
	for _, f := range order.Files {
		filePath := o.files.Path(f.StorageRef)
		if err := o.printer.PrintFile(ctx, filePath, f.Options); err != nil {
			log.Error("file failed on every method",
				zap.String("file_id", f.FileID),
				zap.String("filename", f.Filename),
				zap.Error(err))
			continue
		}
		printed++
	}
	log.Info("order dispatched",
		zap.Int("printed", printed),
		zap.Int("files", len(order.Files)))

	dest, err := o.queue.Archive(path)
	if err != nil {
		log.Error("archiving order failed", zap.Error(err))
		return
	}
	log.Info("order archived", zap.String("path", dest))
}

func isRecord(name string) bool {
	return len(name) > 5 && name[len(name)-5:] == ".json"
}
