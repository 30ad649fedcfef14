package tclogger_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/DemXR/tclogger/pkg/models"
	"github.com/DemXR/tclogger/pkg/tclogger"
)

const sheet = "Sheet1"

// stubCapturer stands in for the screen so tests run headless.
type stubCapturer struct {
	calls int
}

func (c *stubCapturer) Capture(directory string) (string, error) {
	c.calls++
	filename := filepath.Join(directory, fmt.Sprintf("%d.png", time.Now().UnixNano()))
	if err := os.WriteFile(filename, []byte("not a real png"), 0o644); err != nil {
		return "", err
	}
	return filepath.Abs(filename)
}

func newTestLogger(t *testing.T) (*tclogger.XLSXLogger, *stubCapturer) {
	t.Helper()
	capturer := &stubCapturer{}
	journal, err := tclogger.NewXLSXLoggerWithCapturer(t.TempDir(), capturer)
	require.NoError(t, err)
	return journal, capturer
}

func reopen(t *testing.T, filename string) *excelize.File {
	t.Helper()
	workbook, err := excelize.OpenFile(filename)
	require.NoError(t, err)
	t.Cleanup(func() { workbook.Close() })
	return workbook
}

func TestXLSXLogger(t *testing.T) {
	t.Run("Construction", func(t *testing.T) {
		base := t.TempDir()
		journal, err := tclogger.NewXLSXLogger(base)
		require.NoError(t, err)

		assert.DirExists(t, journal.WorkDirectory())
		assert.DirExists(t, journal.ScreenshotsDirectory())
		assert.Equal(t, filepath.Join(journal.WorkDirectory(), "result.xlsx"), journal.Filename())
		assert.True(t, strings.HasPrefix(journal.WorkDirectory(), base))
		// The workbook itself only exists once saved
		assert.NoFileExists(t, journal.Filename())
	})

	t.Run("HeaderAndColumns", func(t *testing.T) {
		journal, _ := newTestLogger(t)
		require.NoError(t, journal.Save(false))

		workbook := reopen(t, journal.Filename())
		for cell, title := range map[string]string{
			"A1": "Время",
			"B1": "Тип",
			"C1": "Наименование кейса",
			"D1": "Сообщение",
			"E1": "Скриншот",
		} {
			value, err := workbook.GetCellValue(sheet, cell)
			require.NoError(t, err)
			assert.Equal(t, title, value, "cell %s", cell)
		}

		for column, width := range map[string]float64{"A": 21, "B": 8, "C": 50, "D": 50} {
			got, err := workbook.GetColWidth(sheet, column)
			require.NoError(t, err)
			assert.InDelta(t, width, got, 0.01, "column %s", column)
		}
	})

	t.Run("RowsAppendInCallOrder", func(t *testing.T) {
		journal, _ := newTestLogger(t)
		require.NoError(t, journal.Info("case-1", "first", false))
		require.NoError(t, journal.Success("case-2", "second", false))
		require.NoError(t, journal.Warning("case-3", "third", false))
		require.NoError(t, journal.Error("case-4", "fourth", false))
		require.NoError(t, journal.Save(false))

		workbook := reopen(t, journal.Filename())
		rows, err := workbook.GetRows(sheet)
		require.NoError(t, err)
		require.Len(t, rows, 5, "header plus one row per call")

		expected := []struct {
			severity, caseName, message string
		}{
			{"INFO", "case-1", "first"},
			{"SUCCESS", "case-2", "second"},
			{"WARNING", "case-3", "third"},
			{"ERROR", "case-4", "fourth"},
		}
		for i, want := range expected {
			row := i + 2
			severity, err := workbook.GetCellValue(sheet, fmt.Sprintf("B%d", row))
			require.NoError(t, err)
			assert.Equal(t, want.severity, severity)
			caseName, err := workbook.GetCellValue(sheet, fmt.Sprintf("C%d", row))
			require.NoError(t, err)
			assert.Equal(t, want.caseName, caseName)
			message, err := workbook.GetCellValue(sheet, fmt.Sprintf("D%d", row))
			require.NoError(t, err)
			assert.Equal(t, want.message, message)
		}
	})

	t.Run("TimestampFormat", func(t *testing.T) {
		journal, _ := newTestLogger(t)
		before := time.Now().UTC().Truncate(time.Second)
		require.NoError(t, journal.Info("clock", "", false))
		after := time.Now().UTC()
		require.NoError(t, journal.Save(false))

		workbook := reopen(t, journal.Filename())
		value, err := workbook.GetCellValue(sheet, "A2")
		require.NoError(t, err)
		logged, err := time.Parse(models.TimestampLayout, value)
		require.NoError(t, err, "timestamp %q should match the journal layout", value)
		assert.False(t, logged.Before(before))
		assert.False(t, logged.After(after))
	})

	t.Run("SameSeverityRendersIdentically", func(t *testing.T) {
		journal, _ := newTestLogger(t)
		require.NoError(t, journal.Info("a", "", false))
		require.NoError(t, journal.Info("b", "", false))
		require.NoError(t, journal.Error("c", "", false))
		require.NoError(t, journal.Save(false))

		workbook := reopen(t, journal.Filename())
		styleOf := func(cell string) int {
			id, err := workbook.GetCellStyle(sheet, cell)
			require.NoError(t, err)
			return id
		}
		assert.Equal(t, styleOf("A2"), styleOf("A3"), "two INFO rows share a style")
		assert.Equal(t, styleOf("A2"), styleOf("E2"), "all cells of a row share a style")
		assert.NotEqual(t, styleOf("A2"), styleOf("A4"), "INFO and ERROR rows differ")
	})

	t.Run("ScreenshotRequested", func(t *testing.T) {
		journal, capturer := newTestLogger(t)
		require.NoError(t, journal.Info("login", "started", false))
		require.NoError(t, journal.Error("login", "timeout", true))
		require.NoError(t, journal.Save(false))

		assert.Equal(t, 1, capturer.calls)

		files, err := os.ReadDir(journal.ScreenshotsDirectory())
		require.NoError(t, err)
		require.Len(t, files, 1)
		captured := filepath.Join(journal.ScreenshotsDirectory(), files[0].Name())

		workbook := reopen(t, journal.Filename())
		hasLink, link, err := workbook.GetCellHyperLink(sheet, "E3")
		require.NoError(t, err)
		assert.True(t, hasLink)
		assert.Equal(t, captured, link)
		display, err := workbook.GetCellValue(sheet, "E3")
		require.NoError(t, err)
		assert.Equal(t, "Скриншот", display)

		hasLink, _, err = workbook.GetCellHyperLink(sheet, "E2")
		require.NoError(t, err)
		assert.False(t, hasLink, "row without a screenshot has no link")
		empty, err := workbook.GetCellValue(sheet, "E2")
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("NoScreenshotNoFile", func(t *testing.T) {
		journal, capturer := newTestLogger(t)
		require.NoError(t, journal.Success("quiet", "", false))
		require.NoError(t, journal.Save(false))

		assert.Zero(t, capturer.calls)
		files, err := os.ReadDir(journal.ScreenshotsDirectory())
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("DeleteRemovesOnlyTheWorkbook", func(t *testing.T) {
		journal, _ := newTestLogger(t)
		require.NoError(t, journal.Error("login", "timeout", true))
		require.NoError(t, journal.Save(false))
		require.FileExists(t, journal.Filename())

		files, err := os.ReadDir(journal.ScreenshotsDirectory())
		require.NoError(t, err)
		require.Len(t, files, 1)

		require.NoError(t, journal.Delete())
		assert.NoFileExists(t, journal.Filename())
		assert.FileExists(t, filepath.Join(journal.ScreenshotsDirectory(), files[0].Name()),
			"screenshots survive Delete")
		assert.DirExists(t, journal.WorkDirectory())
	})

	t.Run("RemoveAllCleansEverything", func(t *testing.T) {
		journal, _ := newTestLogger(t)
		require.NoError(t, journal.Warning("cleanup", "", true))
		require.NoError(t, journal.Save(false))

		require.NoError(t, journal.RemoveAll())
		assert.NoDirExists(t, journal.WorkDirectory())
	})

	t.Run("DeleteBeforeSaveFails", func(t *testing.T) {
		journal, _ := newTestLogger(t)
		assert.Error(t, journal.Delete(), "nothing is on disk before Save")
	})

	t.Run("UniqueWorkDirectories", func(t *testing.T) {
		base := t.TempDir()
		first, err := tclogger.NewXLSXLogger(base)
		require.NoError(t, err)
		second, err := tclogger.NewXLSXLogger(base)
		require.NoError(t, err)
		assert.NotEqual(t, first.WorkDirectory(), second.WorkDirectory())
	})
}
