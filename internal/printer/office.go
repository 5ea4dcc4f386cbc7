package printer

import (
	"context"
	"fmt"
	"time"

	"github.com/Rushi8087/xerox-automation/internal/domain"
)

const officeTimeout = 120 * time.Second

// Office prints Word, Excel and PowerPoint documents via COM automation in a
// PowerShell child process. Each script quits the application on every path so
// a failed print never leaves a hidden office instance behind.
type Office struct {
	run     Runner
	printer string
}

func NewOffice(run Runner, printerName string) *Office {
	return &Office{run: run, printer: printerName}
}

func (o *Office) Name() string { return "office" }

func (o *Office) CanPrint(ext string) bool {
	cat, ok := domain.CategoryFor(ext)
	if !ok {
		return false
	}
	switch cat {
	case domain.FormatDocument, domain.FormatSpreadsheet, domain.FormatPresentation:
		return true
	}
	return false
}

func (o *Office) Attempt(ctx context.Context, path string, opts domain.PrintOptions) error {
	cat, ok := domain.CategoryFor(fileExt(path))
	if !ok {
		return fmt.Errorf("office: unsupported file %q", path)
	}

	var script string
	switch cat {
	case domain.FormatDocument:
		script = o.wordScript(path, opts)
	case domain.FormatSpreadsheet:
		script = o.excelScript(path, opts)
	case domain.FormatPresentation:
		script = o.powerPointScript(path, opts)
	default:
		return fmt.Errorf("office: unsupported file %q", path)
	}

	res, err := o.run.Run(ctx, officeTimeout, "powershell", "-NoProfile", "-Command", script)
	if err != nil {
		return fmt.Errorf("office: %w", err)
	}
	if res.TimedOut {
		return fmt.Errorf("office: timed out printing %q", path)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("office: exit code %d: %s", res.ExitCode, res.Output)
	}
	return nil
}

func (o *Office) wordScript(path string, opts domain.PrintOptions) string {
	return fmt.Sprintf(`$word = New-Object -ComObject Word.Application
$word.Visible = $false
try {
  $doc = $word.Documents.Open(%s, $false, $true)
  try {
    $word.ActivePrinter = %s
    $doc.PrintOut([ref]$false, [ref]$false, [ref]0, [ref]'', [ref]'', [ref]'', [ref]0, [ref]%d)
    Start-Sleep -Seconds 3
  } finally {
    $doc.Close($false)
  }
} finally {
  $word.Quit()
}`, quote(path), quote(o.printer), opts.Copies)
}

func (o *Office) excelScript(path string, opts domain.PrintOptions) string {
	return fmt.Sprintf(`$excel = New-Object -ComObject Excel.Application
$excel.Visible = $false
$excel.DisplayAlerts = $false
try {
  $book = $excel.Workbooks.Open(%s, 0, $true)
  try {
    $book.PrintOut(1, [System.Type]::Missing, %d, $false, %s)
    Start-Sleep -Seconds 3
  } finally {
    $book.Close($false)
  }
} finally {
  $excel.Quit()
}`, quote(path), opts.Copies, quote(o.printer))
}

func (o *Office) powerPointScript(path string, opts domain.PrintOptions) string {
	return fmt.Sprintf(`$ppt = New-Object -ComObject PowerPoint.Application
try {
  $pres = $ppt.Presentations.Open(%s, $true, $false, $false)
  try {
    $pres.PrintOptions.ActivePrinter = %s
    $pres.PrintOptions.NumberOfCopies = %d
    $pres.PrintOut()
    Start-Sleep -Seconds 3
  } finally {
    $pres.Close()
  }
} finally {
  $ppt.Quit()
}`, quote(path), quote(o.printer), opts.Copies)
}
