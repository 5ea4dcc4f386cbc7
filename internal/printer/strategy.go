package printer

import (
	"context"
	"strings"

	"github.com/Rushi8087/xerox-automation/internal/domain"
)

// Strategy is one delivery method in the fallback chain. Attempt returns nil
// when the job was handed to the spooler (or very probably was: some tools
// give no reliable exit signal and a timeout counts as probable success).
type Strategy interface {
	Name() string
	CanPrint(ext string) bool
	Attempt(ctx context.Context, path string, opts domain.PrintOptions) error
}

// quote wraps a value for embedding in a single-quoted PowerShell string.
func quote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// fileExt returns the lowercased extension of path without the leading dot.
func fileExt(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return strings.ToLower(path[i+1:])
	}
	return ""
}
