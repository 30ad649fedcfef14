package tclogger

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/skratchdot/open-golang/open"
	"github.com/xuri/excelize/v2"

	"github.com/DemXR/tclogger/pkg/models"
	"github.com/DemXR/tclogger/pkg/screenshot"
)

const (
	sheetName          = "Sheet1"
	firstDataRow       = 2
	resultFilename     = "result.xlsx"
	screenshotsDirName = "screenshots"
	screenshotLinkText = "Скриншот"
)

// XLSXLogger keeps the test-case journal in an Excel workbook: one
// worksheet, a header row and one colored row per logged entry.
type XLSXLogger struct {
	workDirectory        string
	screenshotsDirectory string
	filename             string
	workbook             *excelize.File
	capturer             screenshot.Capturer
	styles               map[models.Severity]int
	currentRow           int
}

var _ TestCaseLogger = (*XLSXLogger)(nil)

// NewXLSXLogger creates a journal under directory. Each instance owns a
// unique work directory named by the creation time in nanoseconds, with a
// screenshots/ subdirectory and the workbook at result.xlsx.
func NewXLSXLogger(directory string) (*XLSXLogger, error) {
	return NewXLSXLoggerWithCapturer(directory, screenshot.NewScreenCapturer())
}

// NewXLSXLoggerWithCapturer is NewXLSXLogger with an explicit screen
// capturer, so harnesses running headless can substitute their own.
func NewXLSXLoggerWithCapturer(directory string, capturer screenshot.Capturer) (*XLSXLogger, error) {
	workDirectory := filepath.Join(directory, strconv.FormatInt(time.Now().UnixNano(), 10))
	screenshotsDirectory := filepath.Join(workDirectory, screenshotsDirName)
	if err := os.MkdirAll(screenshotsDirectory, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create work directory %s", workDirectory)
	}

	lg := &XLSXLogger{
		workDirectory:        workDirectory,
		screenshotsDirectory: screenshotsDirectory,
		filename:             filepath.Join(workDirectory, resultFilename),
		workbook:             excelize.NewFile(),
		capturer:             capturer,
		currentRow:           firstDataRow,
	}
	if err := lg.createWorksheet(); err != nil {
		return nil, err
	}
	if err := lg.createStyles(); err != nil {
		return nil, err
	}
	return lg, nil
}

// Filename returns the path of the workbook the journal is saved to.
func (l *XLSXLogger) Filename() string {
	return l.filename
}

// WorkDirectory returns the per-instance directory holding the workbook
// and its screenshots.
func (l *XLSXLogger) WorkDirectory() string {
	return l.workDirectory
}

// ScreenshotsDirectory returns the directory captured screens are saved to.
func (l *XLSXLogger) ScreenshotsDirectory() string {
	return l.screenshotsDirectory
}

func (l *XLSXLogger) createWorksheet() error {
	widths := []struct {
		column string
		width  float64
	}{
		{"A", 21},
		{"B", 8},
		{"C", 50},
		{"D", 50},
	}
	for _, w := range widths {
		if err := l.workbook.SetColWidth(sheetName, w.column, w.column, w.width); err != nil {
			return errors.Wrapf(err, "set width of column %s", w.column)
		}
	}

	titles := map[string]string{
		"A1": "Время",
		"B1": "Тип",
		"C1": "Наименование кейса",
		"D1": "Сообщение",
		"E1": "Скриншот",
	}
	for cell, title := range titles {
		if err := l.workbook.SetCellValue(sheetName, cell, title); err != nil {
			return errors.Wrapf(err, "write header cell %s", cell)
		}
	}
	return nil
}

// createStyles builds the complete severity-to-style table up front. Every
// row of a severity reuses the same workbook style for the life of the
// logger, so all rows of one severity render identically.
func (l *XLSXLogger) createStyles() error {
	l.styles = make(map[models.Severity]int, len(models.Severities()))
	for _, severity := range models.Severities() {
		style := models.StyleFor(severity)
		border := []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		}
		definition := &excelize.Style{Border: border}
		if style.Background != "" {
			definition.Fill = excelize.Fill{
				Type:    "pattern",
				Pattern: 1,
				Color:   []string{style.Background},
			}
		}
		styleID, err := l.workbook.NewStyle(definition)
		if err != nil {
			return errors.Wrapf(err, "create %s style", severity)
		}
		l.styles[severity] = styleID
	}
	return nil
}

func (l *XLSXLogger) Info(caseName, message string, makeScreenshot bool) error {
	return l.writeLog(models.InfoSeverity, caseName, message, makeScreenshot)
}

func (l *XLSXLogger) Success(caseName, message string, makeScreenshot bool) error {
	return l.writeLog(models.SuccessSeverity, caseName, message, makeScreenshot)
}

func (l *XLSXLogger) Warning(caseName, message string, makeScreenshot bool) error {
	return l.writeLog(models.WarningSeverity, caseName, message, makeScreenshot)
}

func (l *XLSXLogger) Error(caseName, message string, makeScreenshot bool) error {
	return l.writeLog(models.ErrorSeverity, caseName, message, makeScreenshot)
}

// writeLog appends one journal row and advances the cursor. The five cells
// of a row share the severity's style.
func (l *XLSXLogger) writeLog(severity models.Severity, caseName, message string, makeScreenshot bool) error {
	row := l.currentRow
	values := map[string]interface{}{
		fmt.Sprintf("A%d", row): time.Now().UTC().Format(models.TimestampLayout),
		fmt.Sprintf("B%d", row): string(severity),
		fmt.Sprintf("C%d", row): caseName,
		fmt.Sprintf("D%d", row): message,
	}
	for cell, value := range values {
		if err := l.workbook.SetCellValue(sheetName, cell, value); err != nil {
			return errors.Wrapf(err, "write cell %s", cell)
		}
	}

	screenshotCell := fmt.Sprintf("E%d", row)
	if makeScreenshot {
		path, err := l.capturer.Capture(l.screenshotsDirectory)
		if err != nil {
			return err
		}
		if err := l.workbook.SetCellValue(sheetName, screenshotCell, screenshotLinkText); err != nil {
			return errors.Wrapf(err, "write cell %s", screenshotCell)
		}
		if err := l.workbook.SetCellHyperLink(sheetName, screenshotCell, path, "External"); err != nil {
			return errors.Wrapf(err, "link screenshot %s", path)
		}
	} else {
		if err := l.workbook.SetCellValue(sheetName, screenshotCell, ""); err != nil {
			return errors.Wrapf(err, "write cell %s", screenshotCell)
		}
	}

	if err := l.workbook.SetCellStyle(sheetName,
		fmt.Sprintf("A%d", row), screenshotCell, l.styles[severity]); err != nil {
		return errors.Wrapf(err, "style row %d", row)
	}

	l.currentRow++
	return nil
}

// Save writes the workbook to disk and closes it, making the journal valid
// and immutable. If openFile is true the platform's default viewer is
// launched on the result; its output is not consumed.
func (l *XLSXLogger) Save(openFile bool) error {
	if err := l.close(); err != nil {
		return err
	}
	if openFile {
		return l.open()
	}
	return nil
}

func (l *XLSXLogger) close() error {
	if err := l.workbook.SaveAs(l.filename); err != nil {
		return errors.Wrapf(err, "save workbook %s", l.filename)
	}
	return l.workbook.Close()
}

func (l *XLSXLogger) open() error {
	return open.Start(l.filename)
}

// Delete removes the saved workbook only. Screenshot files and the work
// directory stay on disk; see RemoveAll.
func (l *XLSXLogger) Delete() error {
	return os.Remove(l.filename)
}

// RemoveAll removes the whole work directory, including the workbook and
// every captured screenshot.
func (l *XLSXLogger) RemoveAll() error {
	return os.RemoveAll(l.workDirectory)
}
