package tclogger

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/DemXR/tclogger/pkg/models"
	"github.com/DemXR/tclogger/pkg/screenshot"
)

// Logger defines the operational logging interface for PostgresLogger.
// It reports backend conditions, never journal entries.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// PostgresLogger keeps the test-case journal in a database table instead of
// a workbook, one row of test_case_log per entry. Screenshots still land on
// disk under the instance's work directory, referenced by absolute path.
type PostgresLogger struct {
	db                   *sqlx.DB
	connStr              string
	runID                string
	workDirectory        string
	screenshotsDirectory string
	capturer             screenshot.Capturer
	logger               Logger
}

var _ TestCaseLogger = (*PostgresLogger)(nil)

// NewPostgresLogger connects to the database behind connStr and prepares a
// work directory for screenshots under directory. The run ID is derived
// from the creation time in nanoseconds, like the XLSX work directory.
func NewPostgresLogger(connStr, directory string, logger Logger) (*PostgresLogger, error) {
	return NewPostgresLoggerWithCapturer(connStr, directory, logger, screenshot.NewScreenCapturer())
}

// NewPostgresLoggerWithCapturer is NewPostgresLogger with an explicit
// screen capturer.
func NewPostgresLoggerWithCapturer(connStr, directory string, logger Logger, capturer screenshot.Capturer) (*PostgresLogger, error) {
	db, err := sqlx.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	runID := strconv.FormatInt(time.Now().UnixNano(), 10)
	workDirectory := filepath.Join(directory, runID)
	screenshotsDirectory := filepath.Join(workDirectory, screenshotsDirName)
	if err := os.MkdirAll(screenshotsDirectory, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create work directory %s", workDirectory)
	}

	return &PostgresLogger{
		db:                   db,
		connStr:              connStr,
		runID:                runID,
		workDirectory:        workDirectory,
		screenshotsDirectory: screenshotsDirectory,
		capturer:             capturer,
		logger:               logger,
	}, nil
}

// RunID returns the identifier the instance's rows carry in test_case_log.
func (l *PostgresLogger) RunID() string {
	return l.runID
}

// ScreenshotsDirectory returns the directory captured screens are saved to.
func (l *PostgresLogger) ScreenshotsDirectory() string {
	return l.screenshotsDirectory
}

func (l *PostgresLogger) Info(caseName, message string, makeScreenshot bool) error {
	return l.writeLog(models.InfoSeverity, caseName, message, makeScreenshot)
}

func (l *PostgresLogger) Success(caseName, message string, makeScreenshot bool) error {
	return l.writeLog(models.SuccessSeverity, caseName, message, makeScreenshot)
}

func (l *PostgresLogger) Warning(caseName, message string, makeScreenshot bool) error {
	return l.writeLog(models.WarningSeverity, caseName, message, makeScreenshot)
}

func (l *PostgresLogger) Error(caseName, message string, makeScreenshot bool) error {
	return l.writeLog(models.ErrorSeverity, caseName, message, makeScreenshot)
}

func (l *PostgresLogger) writeLog(severity models.Severity, caseName, message string, makeScreenshot bool) error {
	screenshotPath := ""
	if makeScreenshot {
		path, err := l.capturer.Capture(l.screenshotsDirectory)
		if err != nil {
			return err
		}
		screenshotPath = path
	}

	_, err := l.db.Exec(
		"INSERT INTO test_case_log (run_id, logged_at, severity, case_name, message, screenshot) VALUES ($1, $2, $3, $4, $5, $6)",
		l.runID, time.Now().UTC(), severity, caseName, message, screenshotPath)
	if err != nil {
		return errors.Wrap(err, "insert journal entry")
	}
	return nil
}

// Save closes the database connection. There is no file to open, so
// openFile only produces a warning.
func (l *PostgresLogger) Save(openFile bool) error {
	if openFile {
		l.logger.Warnf("journal of run %s lives in the database; nothing to open", l.runID)
	}
	return l.db.Close()
}

// Delete removes the run's rows from test_case_log over a fresh
// connection, so it works after Save has closed the instance's own one.
// Screenshot files stay on disk.
func (l *PostgresLogger) Delete() error {
	db, err := sqlx.Open("postgres", l.connStr)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec("DELETE FROM test_case_log WHERE run_id = $1", l.runID)
	if err != nil {
		return errors.Wrapf(err, "delete journal of run %s", l.runID)
	}
	return nil
}
