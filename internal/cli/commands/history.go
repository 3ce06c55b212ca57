package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"utp/internal/config"
	"utp/internal/history"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config *config.Config
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config) *HistoryCommand {
	return &HistoryCommand{config: cfg}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	store, err := history.Open(hc.config)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	if hc.config.Flags.Prune > 0 {
		return hc.prune(store, hc.config.Flags.Prune)
	}
	if hc.config.Flags.RunID != "" {
		return hc.printRunFailures(store, hc.config.Flags.RunID)
	}
	return hc.printRuns(store, hc.config.Flags.Limit)
}

func (hc *HistoryCommand) prune(store *history.Store, keep int) error {
	removed, err := store.Prune(keep)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	color.Green("Removed %d run(s), kept the newest %d", removed, keep)
	return nil
}

func (hc *HistoryCommand) printRuns(store *history.Store, limit int) error {
	runs, err := store.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		color.Yellow("No recorded runs")
		return nil
	}

	color.Cyan("%-36s  %-19s  %8s  %6s  %6s  %9s  %7s",
		"RUN ID", "RECORDED", "BINARIES", "PASSED", "FAILED", "DURATION", "WORKERS")
	for _, run := range runs {
		line := fmt.Sprintf("%-36s  %-19s  %8d  %6d  %6d  %8.2fs  %7d",
			run.RunID, shortTime(run.Timestamp), run.TotalBinaries,
			run.PassedTestCases, run.FailedTestCases, run.DurationSeconds, run.Workers)
		if run.FailedTestCases > 0 {
			color.Red("%s", line)
		} else {
			color.Green("%s", line)
		}
	}
	return nil
}

func (hc *HistoryCommand) printRunFailures(store *history.Store, runID string) error {
	failures, err := store.RunFailures(runID)
	if err != nil {
		return fmt.Errorf("failed to load run failures: %w", err)
	}
	if len(failures) == 0 {
		color.Green("✓ No failures recorded for run %s", runID)
		return nil
	}

	color.Red("✗ %d failure(s) recorded for run %s:\n", len(failures), runID)
	for _, failure := range failures {
		color.Red("  ✗ %s", failure.TestName)
		color.White("      binary: %s", failure.BinaryPath)
		if failure.File != "" {
			color.White("      at: %s:%d", failure.File, failure.Line)
		}
		if failure.Message != "" {
			color.White("      %s", strings.ReplaceAll(failure.Message, "\n", "\n      "))
		}
	}
	return nil
}

// shortTime compacts a stored RFC 3339 timestamp for table display
func shortTime(timestamp string) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}
	return t.Format("2006-01-02 15:04:05")
}
