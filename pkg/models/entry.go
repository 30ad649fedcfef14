package models

import "time"

type Severity string

const (
	InfoSeverity    Severity = "INFO"
	SuccessSeverity Severity = "SUCCESS"
	WarningSeverity Severity = "WARNING"
	ErrorSeverity   Severity = "ERROR"
)

// Severities lists every severity in a fixed order, matching the order
// the spreadsheet legend and the style table are built in.
func Severities() []Severity {
	return []Severity{InfoSeverity, SuccessSeverity, WarningSeverity, ErrorSeverity}
}

// Entry represents a single record of the test-case journal.
type Entry struct {
	ID         int64     `json:"id" db:"id"`                             // Auto-incremented entry ID (database backend only)
	RunID      string    `json:"run_id" db:"run_id"`                     // Logger instance the entry belongs to
	LoggedAt   time.Time `json:"logged_at" db:"logged_at"`               // Timestamp of the entry
	Severity   Severity  `json:"severity" db:"severity"`                 // INFO, SUCCESS, WARNING or ERROR
	CaseName   string    `json:"case_name" db:"case_name"`               // Name of the test case
	Message    string    `json:"message,omitempty" db:"message"`         // Details (e.g., error or success note)
	Screenshot string    `json:"screenshot,omitempty" db:"screenshot"`   // Absolute path of the captured screen, if any
}

// TimestampLayout is the wall-clock format written into the journal,
// e.g. "Mon, 01 Jan 2024 10:00:00".
const TimestampLayout = "Mon, 02 Jan 2006 15:04:05"
