package uploads

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreSaveAndResolve(t *testing.T) {
	t.Parallel()

	s, err := New(t.TempDir())
	require.NoError(t, err)

	ref, err := s.Save(context.Background(), "notes.pdf", []byte("%PDF-1.7"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(ref, "_notes.pdf"), "ref %q", ref)
	require.NotContains(t, ref, string(os.PathSeparator))

	content, err := os.ReadFile(s.Path(ref))
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-1.7"), content)
}

func TestStoreDistinctRefsForSameName(t *testing.T) {
	t.Parallel()

	s, err := New(t.TempDir())
	require.NoError(t, err)

	first, err := s.Save(context.Background(), "a.pdf", []byte("one"))
	require.NoError(t, err)
	second, err := s.Save(context.Background(), "a.pdf", []byte("two"))
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestStoreSanitizesHostileNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	ref, err := s.Save(context.Background(), "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(ref, "_passwd"), "ref %q", ref)
	require.True(t, strings.HasPrefix(s.Path(ref), dir))

	ref, err = s.Save(context.Background(), `..\..\evil.pdf`, []byte("x"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(ref, "_evil.pdf"), "ref %q", ref)
}
