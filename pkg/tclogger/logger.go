// Package tclogger records the progress of automated test runs as
// timestamped, severity-tagged journal entries, optionally attaching a
// screen capture to any entry, and persists the journal for human review.
package tclogger

// TestCaseLogger is the journal capability handed to a test harness.
//
// The contract is strictly sequential: one instance, one output, every call
// blocking. Save must be called exactly once to make the journal durable;
// the behavior of logging after Save is undefined. Failures of the
// underlying platform or document library propagate to the caller
// unmodified — the harness decides whether a logging failure aborts the run.
type TestCaseLogger interface {
	// Info appends an informational entry.
	Info(caseName, message string, makeScreenshot bool) error
	// Success appends an entry marking a passed check.
	Success(caseName, message string, makeScreenshot bool) error
	// Warning appends a warning entry.
	Warning(caseName, message string, makeScreenshot bool) error
	// Error appends a failure entry.
	Error(caseName, message string, makeScreenshot bool) error

	// Save finalizes the journal and makes it durable. If openFile is true
	// the platform's default viewer is additionally launched on the result.
	Save(openFile bool) error

	// Delete removes the persisted journal. Captured screenshots and the
	// work directory are intentionally left in place; use a full-cleanup
	// operation of the concrete logger if everything must go.
	Delete() error
}
