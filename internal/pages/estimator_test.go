package pages

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type dirResolver string

func (d dirResolver) Path(ref string) string {
	return filepath.Join(string(d), ref)
}

func writeRef(t *testing.T, dir, name string, content []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0o644))
}

func TestEstimatorTextHeuristic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	e := NewEstimator(dirResolver(dir))

	writeRef(t, dir, "small.txt", []byte("hello"))
	n, err := e.EstimatePages(context.Background(), "small.txt", "txt")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	writeRef(t, dir, "big.txt", bytes.Repeat([]byte("a"), 3000*4+10))
	n, err = e.EstimatePages(context.Background(), "big.txt", "txt")
	require.NoError(t, err)
	require.Equal(t, 4, n)

	writeRef(t, dir, "huge.txt", bytes.Repeat([]byte("a"), 3000*500))
	n, err = e.EstimatePages(context.Background(), "huge.txt", "txt")
	require.NoError(t, err)
	require.Equal(t, 100, n, "estimate is capped")
}

func TestEstimatorDocHeuristic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	e := NewEstimator(dirResolver(dir))

	writeRef(t, dir, "report.docx", bytes.Repeat([]byte("a"), 50000*3))
	n, err := e.EstimatePages(context.Background(), "report.docx", "docx")
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestEstimatorSinglePageFormats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	e := NewEstimator(dirResolver(dir))

	for _, ext := range []string{"jpg", "png", "xlsx", "pptx"} {
		n, err := e.EstimatePages(context.Background(), "anything."+ext, ext)
		require.NoError(t, err)
		require.Equal(t, 1, n, "ext %s", ext)
	}
}

func TestEstimatorMissingFileErrors(t *testing.T) {
	t.Parallel()

	e := NewEstimator(dirResolver(t.TempDir()))

	_, err := e.EstimatePages(context.Background(), "gone.txt", "txt")
	require.Error(t, err)

	_, err = e.EstimatePages(context.Background(), "gone.pdf", "pdf")
	require.Error(t, err)
}
