package sheet

import (
	"context"
	"errors"
)

// Row is one lead row in the spreadsheet: [name, email, summary, status].
type Row struct {
	Name    string
	Email   string
	Summary string
	Status  string
}

// Follow-up email delivery states written to the status column.
const (
	StatusSent   = "SENT"
	StatusFailed = "FAILED"
)

// ErrRowNotFound is returned when no row matches the requested email.
var ErrRowNotFound = errors.New("sheet: row not found")

// RowStore is the row-oriented lead store. Implementations can be swapped
// (Google Sheets, in-memory) without changing callers.
type RowStore interface {
	// Append adds a lead row after the existing rows.
	Append(ctx context.Context, row Row) error
	// Rows returns every lead row, excluding the header.
	Rows(ctx context.Context) ([]Row, error)
	// UpdateStatus locates the first row whose email column matches and
	// writes the status cell.
	UpdateStatus(ctx context.Context, email, status string) error
}
