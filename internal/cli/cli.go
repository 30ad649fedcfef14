package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DemXR/tclogger/internal/log"
	"github.com/DemXR/tclogger/pkg/models"
	"github.com/DemXR/tclogger/pkg/tclogger"
)

func SetupCLI(rootCmd *cobra.Command) {
	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Record a test-case journal from stdin lines",
		Long: `Reads journal entries from stdin, one per line, in the form

    severity|case name|message[|screenshot]

where severity is one of INFO, SUCCESS, WARNING, ERROR and a literal
"screenshot" fourth field requests a screen capture for the entry.
The journal is saved when stdin is exhausted.`,
		Run: func(cmd *cobra.Command, args []string) {
			directory, err := cmd.Flags().GetString("dir")
			if err != nil {
				log.GetLogger().Errorf("Error retrieving dir flag: %v", err)
				os.Exit(1)
			}
			dbConnStr, err := cmd.Flags().GetString("db")
			if err != nil {
				log.GetLogger().Errorf("Error retrieving db flag: %v", err)
				os.Exit(1)
			}
			openFile, err := cmd.Flags().GetBool("open")
			if err != nil {
				log.GetLogger().Errorf("Error retrieving open flag: %v", err)
				os.Exit(1)
			}

			journal := initLogger(directory, dbConnStr)
			record(journal, os.Stdin, openFile)
		},
	}
	recordCmd.Flags().String("dir", ".", "Base directory for the journal and screenshots")
	recordCmd.Flags().String("db", "", "Postgres connection string; when set, entries go to the database instead of a workbook")
	recordCmd.Flags().Bool("open", false, "Open the saved journal with the default viewer")

	rootCmd.AddCommand(recordCmd)
}

func initLogger(directory, dbConnStr string) tclogger.TestCaseLogger {
	if dbConnStr != "" {
		journal, err := tclogger.NewPostgresLogger(dbConnStr, directory, log.GetLogger())
		if err != nil {
			log.GetLogger().Errorf("Failed to initialize database journal: %v", err)
			os.Exit(1)
		}
		return journal
	}
	journal, err := tclogger.NewXLSXLogger(directory)
	if err != nil {
		log.GetLogger().Errorf("Failed to initialize journal: %v", err)
		os.Exit(1)
	}
	return journal
}

func record(journal tclogger.TestCaseLogger, input *os.File, openFile bool) {
	scanner := bufio.NewScanner(input)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := appendLine(journal, line); err != nil {
			log.GetLogger().Errorf("Line %d: %v", lineNo, err)
			fmt.Fprintf(os.Stderr, "Error: line %d: %v\n", lineNo, err)
			os.Exit(1)
		}
	}
	if err := scanner.Err(); err != nil {
		log.GetLogger().Errorf("Failed to read input: %v", err)
		os.Exit(1)
	}

	if err := journal.Save(openFile); err != nil {
		log.GetLogger().Errorf("Failed to save journal: %v", err)
		fmt.Fprintf(os.Stderr, "Error: failed to save journal: %v\n", err)
		os.Exit(1)
	}
	if xlsx, ok := journal.(*tclogger.XLSXLogger); ok {
		fmt.Fprintf(os.Stdout, "Journal saved to %s\n", xlsx.Filename())
	} else {
		fmt.Fprintf(os.Stdout, "Journal saved\n")
	}
}

func appendLine(journal tclogger.TestCaseLogger, line string) error {
	fields := strings.SplitN(line, "|", 4)
	if len(fields) < 2 {
		return fmt.Errorf("expected severity|case name[|message[|screenshot]], got %q", line)
	}
	severity := models.Severity(strings.ToUpper(strings.TrimSpace(fields[0])))
	caseName := strings.TrimSpace(fields[1])
	message := ""
	if len(fields) > 2 {
		message = strings.TrimSpace(fields[2])
	}
	makeScreenshot := len(fields) > 3 && strings.TrimSpace(fields[3]) == "screenshot"

	switch severity {
	case models.InfoSeverity:
		return journal.Info(caseName, message, makeScreenshot)
	case models.SuccessSeverity:
		return journal.Success(caseName, message, makeScreenshot)
	case models.WarningSeverity:
		return journal.Warning(caseName, message, makeScreenshot)
	case models.ErrorSeverity:
		return journal.Error(caseName, message, makeScreenshot)
	default:
		return fmt.Errorf("unknown severity %q", fields[0])
	}
}
