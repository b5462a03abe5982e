package domain

// Column names used in exported reports.
const (
	ColumnDate    = "Date"
	ColumnProject = "Project"
	ColumnUser    = "User"
	ColumnHours   = "Hours"
)

// Table is a serializer-agnostic spreadsheet: a header row plus data rows.
// Cells hold string, float64 or nil (blank).
type Table struct {
	Columns []string
	Rows    [][]any
}
