package sheets

import (
	"context"
)

// Worksheets is the minimal surface the mirror and roster need from one
// spreadsheet document: read a tab, append to a tab, create a tab with its
// header row when it does not exist yet.
type Worksheets interface {
	// Header returns the first row of the named sheet, or nil if the sheet
	// does not exist.
	Header(ctx context.Context, sheet string) ([]string, error)

	// EnsureSheet creates the named sheet with the given header row if it is
	// missing. Existing sheets are left untouched, even with a different
	// header.
	EnsureSheet(ctx context.Context, sheet string, header []string) error

	// AppendRow appends one row after the last non-empty row of the sheet.
	AppendRow(ctx context.Context, sheet string, row []interface{}) error

	// Rows returns every row of the sheet, header included.
	Rows(ctx context.Context, sheet string) ([][]string, error)
}
