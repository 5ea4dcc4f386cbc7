// Package spool implements the file-based hand-off queue between intake and
// dispatch. The watched directory itself is the queue: a record enters it by
// atomic rename and leaves it exactly once, by archival.
package spool

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Rushi8087/xerox-automation/internal/clock"
	"github.com/Rushi8087/xerox-automation/internal/domain"
)

const (
	ordersDirName  = "orders"
	archiveDirName = "printed"

	recordExt = ".json"
	tmpSuffix = ".tmp"
)

type Spool struct {
	ordersDir  string
	archiveDir string
	clock      clock.Clock
}

// New creates the spool directories under baseDir if needed.
func New(baseDir string, clk clock.Clock) (*Spool, error) {
	s := &Spool{
		ordersDir:  filepath.Join(baseDir, ordersDirName),
		archiveDir: filepath.Join(baseDir, archiveDirName),
		clock:      clk,
	}
	for _, dir := range []string{s.ordersDir, s.archiveDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create spool dir %s: %w", dir, err)
		}
	}
	return s, nil
}

// OrdersDir is the directory the dispatcher watches.
func (s *Spool) OrdersDir() string {
	return s.ordersDir
}

// Save writes the order as a single fully-formed record. The record is
// written under a temporary name and renamed into the watched directory, so
// a watcher never observes a partial file. Filenames derive from the order
// ID, which is globally unique.
func (s *Spool) Save(order domain.ConfirmedOrder) (string, error) {
	raw, err := json.MarshalIndent(order, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal order %s: %w", order.OrderID, err)
	}

	final := filepath.Join(s.ordersDir, order.OrderID+recordExt)
	tmp := final + tmpSuffix

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create record %s: %w", tmp, err)
	}
	if _, err := f.Write(raw); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write record %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("sync record %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("close record %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("publish record %s: %w", final, err)
	}
	return final, nil
}

// Load parses a record from the watched directory.
func (s *Spool) Load(path string) (domain.ConfirmedOrder, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfirmedOrder{}, fmt.Errorf("read record %s: %w", path, err)
	}
	var order domain.ConfirmedOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		return domain.ConfirmedOrder{}, fmt.Errorf("parse record %s: %w", path, err)
	}
	return order, nil
}

// Pending lists complete records currently waiting in the watched directory,
// oldest name first. In-flight temporary files are never reported.
func (s *Spool) Pending() ([]string, error) {
	entries, err := os.ReadDir(s.ordersDir)
	if err != nil {
		return nil, fmt.Errorf("list spool: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), recordExt) {
			continue
		}
		paths = append(paths, filepath.Join(s.ordersDir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Archive moves a record out of the watched directory. A name collision in
// the archive is disambiguated with a timestamp suffix so archival can never
// clobber an earlier record.
func (s *Spool) Archive(path string) (string, error) {
	name := filepath.Base(path)
	dest := filepath.Join(s.archiveDir, name)

	if _, err := os.Stat(dest); err == nil {
		stamp := s.clock.Now().Format("20060102_150405")
		base := strings.TrimSuffix(name, recordExt)
		dest = filepath.Join(s.archiveDir, base+"_"+stamp+recordExt)
	}

	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("archive record %s: %w", path, err)
	}
	return dest, nil
}

// Archived lists records already moved to the archive, for the operator API.
func (s *Spool) Archived() ([]string, error) {
	entries, err := os.ReadDir(s.archiveDir)
	if err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), recordExt) {
			continue
		}
		paths = append(paths, filepath.Join(s.archiveDir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Find locates a record by order ID, checking the queue first, then the
// archive (including timestamp-suffixed copies).
func (s *Spool) Find(orderID string) (domain.ConfirmedOrder, error) {
	direct := []string{
		filepath.Join(s.ordersDir, orderID+recordExt),
		filepath.Join(s.archiveDir, orderID+recordExt),
	}
	for _, path := range direct {
		if _, err := os.Stat(path); err == nil {
			return s.Load(path)
		}
	}

	archived, err := s.Archived()
	if err != nil {
		return domain.ConfirmedOrder{}, err
	}
	for _, path := range archived {
		if strings.HasPrefix(filepath.Base(path), orderID+"_") {
			return s.Load(path)
		}
	}
	return domain.ConfirmedOrder{}, domain.ErrOrderNotFound
}
