package printer

import (
	"context"
	"errors"
	"os/exec"
	"time"
)

// Result is the outcome of one external tool invocation.
type Result struct {
	Output   []byte
	ExitCode int
	TimedOut bool
}

// Runner executes a platform tool with a hard per-invocation timeout. A hung
// tool is bounded by this timeout, not by caller cancellation.
type Runner interface {
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) (Result, error)
}

type execRunner struct{}

// NewExecRunner returns the production Runner backed by os/exec.
func NewExecRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	out, err := cmd.CombinedOutput()
	res := Result{Output: out}

	if runCtx.Err() == context.DeadlineExceeded {
		res.TimedOut = true
		return res, nil
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		// The tool could not be started at all.
		return res, err
	}
	return res, nil
}
