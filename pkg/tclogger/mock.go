package tclogger

import (
	"time"

	"github.com/pkg/errors"

	"github.com/DemXR/tclogger/pkg/models"
)

// MockLogger implements TestCaseLogger with in-memory storage. Harnesses
// use it to assert on logged entries without touching the filesystem.
type MockLogger struct {
	entries []models.Entry
	saved   bool
	opened  int
	deleted bool
}

var _ TestCaseLogger = (*MockLogger)(nil)

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) Info(caseName, message string, makeScreenshot bool) error {
	return m.append(models.InfoSeverity, caseName, message, makeScreenshot)
}

func (m *MockLogger) Success(caseName, message string, makeScreenshot bool) error {
	return m.append(models.SuccessSeverity, caseName, message, makeScreenshot)
}

func (m *MockLogger) Warning(caseName, message string, makeScreenshot bool) error {
	return m.append(models.WarningSeverity, caseName, message, makeScreenshot)
}

func (m *MockLogger) Error(caseName, message string, makeScreenshot bool) error {
	return m.append(models.ErrorSeverity, caseName, message, makeScreenshot)
}

func (m *MockLogger) append(severity models.Severity, caseName, message string, makeScreenshot bool) error {
	if m.saved {
		return errors.New("journal already saved")
	}
	entry := models.Entry{
		LoggedAt: time.Now(),
		Severity: severity,
		CaseName: caseName,
		Message:  message,
	}
	if makeScreenshot {
		entry.Screenshot = "screenshot.png"
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockLogger) Save(openFile bool) error {
	m.saved = true
	if openFile {
		m.opened++
	}
	return nil
}

func (m *MockLogger) Delete() error {
	if !m.saved {
		return errors.New("journal not saved")
	}
	m.deleted = true
	m.entries = nil
	return nil
}

// Entries returns the logged entries in call order.
func (m *MockLogger) Entries() []models.Entry {
	return m.entries
}

// Saved reports whether Save has been called.
func (m *MockLogger) Saved() bool {
	return m.saved
}

// Opened returns how many viewer launches Save has requested.
func (m *MockLogger) Opened() int {
	return m.opened
}

// Deleted reports whether Delete has been called.
func (m *MockLogger) Deleted() bool {
	return m.deleted
}
