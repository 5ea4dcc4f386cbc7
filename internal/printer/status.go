package printer

// Status is the printer readiness state derived from the spooler.
type Status string

const (
	StatusReady      Status = "ready"
	StatusOutOfPaper Status = "out-of-paper"
	StatusOffline    Status = "offline"
	StatusError      Status = "error"
	StatusNotFound   Status = "not-found"
)

// Win32_Printer.DetectedErrorState values.
const (
	errStateUnknown       = 0
	errStateOther         = 1
	errStateNoError       = 2
	errStateLowPaper      = 3
	errStateNoPaper       = 4
	errStateLowToner      = 5
	errStateNoToner       = 6
	errStateDoorOpen      = 7
	errStateJammed        = 8
	errStateOffline       = 9
	errStateServiceNeeded = 10
	errStateOutputBinFull = 11
)

// statusFromErrorState maps the spooler error state to a readiness decision.
// Degraded-but-printable conditions (low paper, low toner) still count as
// ready; only hard stops block dispatch.
func statusFromErrorState(code int) Status {
	switch code {
	case errStateUnknown, errStateNoError, errStateLowPaper, errStateLowToner, errStateNoToner, errStateOutputBinFull:
		return StatusReady
	case errStateNoPaper:
		return StatusOutOfPaper
	case errStateOffline:
		return StatusOffline
	default:
		return StatusError
	}
}
