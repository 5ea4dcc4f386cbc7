package printer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rushi8087/xerox-automation/internal/domain"
)

type call struct {
	name string
	args []string
}

// scriptedRunner replies to invocations in order and records every call.
type scriptedRunner struct {
	calls   []call
	results []Result
	errs    []error
}

func (r *scriptedRunner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (Result, error) {
	i := len(r.calls)
	r.calls = append(r.calls, call{name: name, args: args})
	var res Result
	var err error
	if i < len(r.results) {
		res = r.results[i]
	}
	if i < len(r.errs) {
		err = r.errs[i]
	}
	return res, err
}

func output(s string) Result {
	return Result{Output: []byte(s)}
}

func TestStatusFromErrorState(t *testing.T) {
	cases := map[int]Status{
		errStateNoError:       StatusReady,
		errStateLowPaper:      StatusReady,
		errStateNoPaper:       StatusOutOfPaper,
		errStateOffline:       StatusOffline,
		errStateJammed:        StatusError,
		errStateDoorOpen:      StatusError,
		errStateServiceNeeded: StatusError,
	}
	for code, want := range cases {
		assert.Equal(t, want, statusFromErrorState(code), "code %d", code)
	}
}

func TestGatewayReadiness(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		run := &scriptedRunner{results: []Result{output("2\r\n")}}
		g := New(run, "HP LaserJet", zap.NewNop())

		st, err := g.Readiness(context.Background())
		require.NoError(t, err)
		assert.Equal(t, StatusReady, st)
	})

	t.Run("out of paper", func(t *testing.T) {
		run := &scriptedRunner{results: []Result{output("4")}}
		g := New(run, "HP LaserJet", zap.NewNop())

		st, err := g.Readiness(context.Background())
		require.NoError(t, err)
		assert.Equal(t, StatusOutOfPaper, st)
	})

	t.Run("unknown printer", func(t *testing.T) {
		run := &scriptedRunner{results: []Result{output("")}}
		g := New(run, "NoSuch", zap.NewNop())

		st, err := g.Readiness(context.Background())
		require.NoError(t, err)
		assert.Equal(t, StatusNotFound, st)
	})

	t.Run("query failure", func(t *testing.T) {
		run := &scriptedRunner{errs: []error{errors.New("powershell missing")}}
		g := New(run, "HP LaserJet", zap.NewNop())

		_, err := g.Readiness(context.Background())
		require.Error(t, err)
	})
}

func TestGatewayQueue(t *testing.T) {
	run := &scriptedRunner{results: []Result{output("3\r\n"), output("")}}
	g := New(run, "HP LaserJet", zap.NewNop())

	n, err := g.QueueLength(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, g.ClearQueue(context.Background()))
	require.Len(t, run.calls, 2)
	assert.Contains(t, run.calls[1].args[len(run.calls[1].args)-1], "Remove-PrintJob")
}

// fakeStrategy supports a fixed extension set and fails a set number of times.
type fakeStrategy struct {
	name     string
	exts     map[string]bool
	failures int
	attempts []string
}

func (f *fakeStrategy) Name() string             { return f.name }
func (f *fakeStrategy) CanPrint(ext string) bool { return f.exts[ext] }

func (f *fakeStrategy) Attempt(ctx context.Context, path string, opts domain.PrintOptions) error {
	f.attempts = append(f.attempts, path)
	if len(f.attempts) <= f.failures {
		return fmt.Errorf("%s: refused", f.name)
	}
	return nil
}

func anyExt() map[string]bool {
	m := make(map[string]bool)
	for _, ext := range []string{"pdf", "docx", "txt", "xlsx", "pptx", "csv"} {
		m[ext] = true
	}
	return m
}

func TestGatewayPrintFile(t *testing.T) {
	opts := domain.DefaultPrintOptions()

	t.Run("first method wins", func(t *testing.T) {
		first := &fakeStrategy{name: "first", exts: anyExt()}
		second := &fakeStrategy{name: "second", exts: anyExt()}
		g := New(nil, "HP LaserJet", zap.NewNop(), WithChain(first, second))

		require.NoError(t, g.PrintFile(context.Background(), "job.pdf", opts))
		assert.Len(t, first.attempts, 1)
		assert.Empty(t, second.attempts)
	})

	t.Run("falls through to later method", func(t *testing.T) {
		first := &fakeStrategy{name: "first", exts: anyExt(), failures: 1}
		second := &fakeStrategy{name: "second", exts: anyExt(), failures: 1}
		third := &fakeStrategy{name: "third", exts: anyExt()}
		g := New(nil, "HP LaserJet", zap.NewNop(), WithChain(first, second, third))

		require.NoError(t, g.PrintFile(context.Background(), "job.docx", opts))
		assert.Len(t, first.attempts, 1)
		assert.Len(t, second.attempts, 1)
		assert.Len(t, third.attempts, 1)
	})

	t.Run("skips methods that cannot handle the extension", func(t *testing.T) {
		pdfOnly := &fakeStrategy{name: "pdf-only", exts: map[string]bool{"pdf": true}}
		docs := &fakeStrategy{name: "docs", exts: anyExt()}
		g := New(nil, "HP LaserJet", zap.NewNop(), WithChain(pdfOnly, docs))

		require.NoError(t, g.PrintFile(context.Background(), "report.docx", opts))
		assert.Empty(t, pdfOnly.attempts)
		assert.Len(t, docs.attempts, 1)
	})

	t.Run("all methods failed", func(t *testing.T) {
		first := &fakeStrategy{name: "first", exts: anyExt(), failures: 99}
		second := &fakeStrategy{name: "second", exts: anyExt(), failures: 99}
		g := New(nil, "HP LaserJet", zap.NewNop(), WithChain(first, second))

		err := g.PrintFile(context.Background(), "job.pdf", opts)
		require.ErrorIs(t, err, domain.ErrAllMethodsFailed)
		assert.Len(t, first.attempts, 1)
		assert.Len(t, second.attempts, 1)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		g := New(nil, "HP LaserJet", zap.NewNop(), WithChain())

		err := g.PrintFile(context.Background(), "malware.exe", opts)
		require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	})

	t.Run("images go straight to the raster helper", func(t *testing.T) {
		chain := &fakeStrategy{name: "chain", exts: anyExt()}
		raster := &fakeStrategy{name: "raster", exts: map[string]bool{"jpg": true, "png": true}}
		g := New(nil, "HP LaserJet", zap.NewNop(), WithChain(chain), WithRaster(raster))

		require.NoError(t, g.PrintFile(context.Background(), "photo.png", opts))
		assert.Len(t, raster.attempts, 1)
		assert.Empty(t, chain.attempts)
	})

	t.Run("raster failure is terminal for images", func(t *testing.T) {
		chain := &fakeStrategy{name: "chain", exts: anyExt()}
		raster := &fakeStrategy{name: "raster", exts: map[string]bool{"jpg": true}, failures: 99}
		g := New(nil, "HP LaserJet", zap.NewNop(), WithChain(chain), WithRaster(raster))

		err := g.PrintFile(context.Background(), "photo.jpg", opts)
		require.ErrorIs(t, err, domain.ErrAllMethodsFailed)
		assert.Empty(t, chain.attempts)
	})
}

func TestSumatraAttempt(t *testing.T) {
	opts := domain.PrintOptions{Color: false, Duplex: true, Copies: 2}

	t.Run("builds print settings", func(t *testing.T) {
		run := &scriptedRunner{results: []Result{{}}}
		s := NewSumatra(run, "HP LaserJet", `C:\Tools\SumatraPDF.exe`)

		require.NoError(t, s.Attempt(context.Background(), "job.pdf", opts))
		require.Len(t, run.calls, 1)
		args := strings.Join(run.calls[0].args, " ")
		assert.Contains(t, args, "-print-to HP LaserJet")
		assert.Contains(t, args, "2x,duplex,monochrome")
		assert.Contains(t, args, "-silent")
	})

	t.Run("timeout counts as probable success", func(t *testing.T) {
		run := &scriptedRunner{results: []Result{{TimedOut: true}}}
		s := NewSumatra(run, "HP LaserJet", `C:\Tools\SumatraPDF.exe`)

		require.NoError(t, s.Attempt(context.Background(), "job.pdf", opts))
	})

	t.Run("nonzero exit fails", func(t *testing.T) {
		run := &scriptedRunner{results: []Result{{ExitCode: 1}}}
		s := NewSumatra(run, "HP LaserJet", `C:\Tools\SumatraPDF.exe`)

		require.Error(t, s.Attempt(context.Background(), "job.pdf", opts))
	})

	t.Run("only handles pdf", func(t *testing.T) {
		s := NewSumatra(nil, "HP LaserJet", "")
		assert.True(t, s.CanPrint("pdf"))
		assert.False(t, s.CanPrint("docx"))
		assert.False(t, s.CanPrint("jpg"))
	})
}

func TestShellVerbRestoresDefaultPrinter(t *testing.T) {
	run := &scriptedRunner{results: []Result{
		output("Office Printer\r\n"), // current default
		{},                           // swap to shop printer
		{},                           // print verb
		{},                           // restore
	}}
	s := NewShellVerb(run, "HP LaserJet", zap.NewNop())

	opts := domain.PrintOptions{Duplex: true, Copies: 1}
	require.NoError(t, s.Attempt(context.Background(), "report.docx", opts))

	require.Len(t, run.calls, 4)
	assert.Equal(t, "rundll32", run.calls[1].name)
	assert.Contains(t, run.calls[1].args, "HP LaserJet")
	assert.Equal(t, "rundll32", run.calls[3].name)
	assert.Contains(t, run.calls[3].args, "Office Printer")
}

func TestShellVerbRestoresAfterPrintFailure(t *testing.T) {
	run := &scriptedRunner{results: []Result{
		output("Office Printer"),
		{},
		{ExitCode: 1, Output: []byte("association missing")},
		{},
	}}
	s := NewShellVerb(run, "HP LaserJet", zap.NewNop())

	err := s.Attempt(context.Background(), "report.docx", domain.DefaultPrintOptions())
	require.Error(t, err)
	require.Len(t, run.calls, 4)
	assert.Contains(t, run.calls[3].args, "Office Printer")
}

func TestShellVerbSkipsSwapWhenAlreadyDefault(t *testing.T) {
	run := &scriptedRunner{results: []Result{
		output("HP LaserJet\r\n"),
		{},
	}}
	s := NewShellVerb(run, "HP LaserJet", zap.NewNop())

	require.NoError(t, s.Attempt(context.Background(), "report.docx", domain.DefaultPrintOptions()))
	require.Len(t, run.calls, 2)
	assert.Equal(t, "powershell", run.calls[1].name)
}

func TestOfficeScripts(t *testing.T) {
	t.Run("word document quits on every path", func(t *testing.T) {
		run := &scriptedRunner{results: []Result{{}}}
		o := NewOffice(run, "HP LaserJet")

		require.NoError(t, o.Attempt(context.Background(), `C:\spool\report.docx`, domain.DefaultPrintOptions()))
		require.Len(t, run.calls, 1)
		script := run.calls[0].args[len(run.calls[0].args)-1]
		assert.Contains(t, script, "Word.Application")
		assert.Contains(t, script, "$word.Quit()")
		assert.Contains(t, script, "finally")
	})

	t.Run("spreadsheet uses excel", func(t *testing.T) {
		run := &scriptedRunner{results: []Result{{}}}
		o := NewOffice(run, "HP LaserJet")

		require.NoError(t, o.Attempt(context.Background(), "sheet.xlsx", domain.DefaultPrintOptions()))
		script := run.calls[0].args[len(run.calls[0].args)-1]
		assert.Contains(t, script, "Excel.Application")
		assert.Contains(t, script, "$excel.Quit()")
	})

	t.Run("presentation uses powerpoint", func(t *testing.T) {
		run := &scriptedRunner{results: []Result{{}}}
		o := NewOffice(run, "HP LaserJet")

		require.NoError(t, o.Attempt(context.Background(), "deck.pptx", domain.DefaultPrintOptions()))
		script := run.calls[0].args[len(run.calls[0].args)-1]
		assert.Contains(t, script, "PowerPoint.Application")
		assert.Contains(t, script, "$ppt.Quit()")
	})

	t.Run("timeout is a hard failure", func(t *testing.T) {
		run := &scriptedRunner{results: []Result{{TimedOut: true}}}
		o := NewOffice(run, "HP LaserJet")

		require.Error(t, o.Attempt(context.Background(), "report.docx", domain.DefaultPrintOptions()))
	})

	t.Run("declines pdf and images", func(t *testing.T) {
		o := NewOffice(nil, "HP LaserJet")
		assert.False(t, o.CanPrint("pdf"))
		assert.False(t, o.CanPrint("jpg"))
		assert.True(t, o.CanPrint("docx"))
		assert.True(t, o.CanPrint("xlsx"))
		assert.True(t, o.CanPrint("pptx"))
	})
}

func TestRasterCopies(t *testing.T) {
	run := &scriptedRunner{results: []Result{{}, {TimedOut: true}, {}}}
	r := NewRaster(run, "HP LaserJet")

	opts := domain.PrintOptions{Copies: 3}
	require.NoError(t, r.Attempt(context.Background(), "photo.jpg", opts))
	require.Len(t, run.calls, 3)
	assert.Equal(t, "mspaint", run.calls[0].name)
	assert.Equal(t, []string{"/pt", "photo.jpg", "HP LaserJet"}, run.calls[0].args)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "'HP LaserJet'", quote("HP LaserJet"))
	assert.Equal(t, "'it''s'", quote("it's"))
}
