package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type FileStatus string

const (
	FileStatusPending   FileStatus = "pending"
	FileStatusCompleted FileStatus = "completed"
)

// PrintOptions are the per-file settings a user can change before confirming.
type PrintOptions struct {
	Color  bool `json:"color"`
	Duplex bool `json:"duplex"`
	Copies int  `json:"copies"`
}

// DefaultPrintOptions are applied to every newly uploaded file.
func DefaultPrintOptions() PrintOptions {
	return PrintOptions{Color: false, Duplex: true, Copies: 1}
}

// FileEntry is one uploaded file inside a session. Sheets and Price stay nil
// until the order is confirmed, then never change again.
type FileEntry struct {
	FileID     string           `json:"file_id"`
	Filename   string           `json:"filename"`
	Extension  string           `json:"extension"`
	StorageRef string           `json:"storage_ref"`
	PageCount  int              `json:"page_count"`
	Options    PrintOptions     `json:"print_options"`
	Sheets     *int             `json:"sheets"`
	Price      *decimal.Decimal `json:"price"`
	Status     FileStatus       `json:"status"`
}

// Session is the in-progress order state for one user identity.
type Session struct {
	ID        string
	OrderID   string
	UserID    string
	CreatedAt time.Time
	Confirmed bool
	Files     []FileEntry
}

// Clone returns a deep copy so callers can hand out session state without
// sharing the underlying file slice.
func (s Session) Clone() Session {
	out := s
	out.Files = make([]FileEntry, len(s.Files))
	for i, f := range s.Files {
		out.Files[i] = f.clone()
	}
	return out
}

func (f FileEntry) clone() FileEntry {
	out := f
	if f.Sheets != nil {
		v := *f.Sheets
		out.Sheets = &v
	}
	if f.Price != nil {
		v := f.Price.Copy()
		out.Price = &v
	}
	return out
}

// ConfirmedOrder is the immutable snapshot written to the spool at
// confirmation time. It is the hand-off record between intake and dispatch.
type ConfirmedOrder struct {
	OrderID     string          `json:"order_id"`
	UserID      string          `json:"user_id"`
	ConfirmedAt time.Time       `json:"confirmed_at"`
	Files       []FileEntry     `json:"files"`
	TotalPages  int             `json:"total_pages"`
	TotalSheets int             `json:"total_sheets"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	PaymentRef  string          `json:"payment_reference"`
}
