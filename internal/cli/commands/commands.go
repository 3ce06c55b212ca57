package commands

import (
	"utp/internal/cli"
	"utp/internal/config"
	"utp/internal/discovery"
	"utp/internal/execution"
	"utp/internal/parser"
	"utp/internal/storage"
	"utp/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Check    *CheckCommand
	Failures *FailuresCommand
	History  *HistoryCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	reportParser := parser.NewXMLReportParser()
	runner := execution.NewRunner(cfg, reportParser)
	scheduler := execution.NewFIFOScheduler()
	executor := execution.NewWorkerPool(cfg, runner, scheduler)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, scanner, filter, executor, reportParser, jsonStorage, formatter, errorViewer),
		List:     NewListCommand(cfg, scanner, filter, runner, formatter, jsonStorage),
		Check:    NewCheckCommand(cfg, scanner, filter, runner),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer),
		History:  NewHistoryCommand(cfg),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run test binaries in parallel",
		Long:  "Discover and execute unit test binaries using parallel workers",
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Update config with flags after parsing
			cfg.Flags = flags.ToConfigFlags()
			if flags.Processors > 0 {
				cfg.Processors = flags.Processors
			}
			return nil
		},
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 4, "Number of parallel workers to use")
	runCmd.Flags().StringVarP(&flags.FixturePath, "fixture-path", "t", "", "Path to the folder where binary detection should start")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter binaries by name pattern (supports wildcards, e.g., 'cppunit-*' or '*failing*')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first failing binary")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only binaries that failed in the last run (from the stored results)")
	runCmd.Flags().BoolVar(&flags.FailedFirst, "failed-first", false, "Run binaries that failed in the last run before the rest")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	runCmd.Flags().BoolVarP(&flags.Watch, "watch", "w", false, "Watch the fixture path and re-run on changes")
	runCmd.Flags().StringVar(&flags.JUnitPath, "junit", "", "Write a merged JUnit XML report to the given file")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered test binaries",
		Long:  "Scan and list all unit test binaries without executing them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter binaries by name pattern (supports wildcards, e.g., 'cppunit-*' or '*failing*')")
	listCmd.Flags().StringVarP(&flags.FixturePath, "fixture-path", "t", "", "Path to the folder where binary detection should start")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List the test cases each binary reports")
	rootCmd.AddCommand(listCmd)

	// Check command
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check that binaries honor the runner contract",
		Long:  "Probe each binary's list, filter, report and usage behavior and report violations",
		RunE:  c.Check.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	checkCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter binaries by name pattern")
	checkCmd.Flags().StringVarP(&flags.FixturePath, "fixture-path", "t", "", "Path to the folder where binary detection should start")
	rootCmd.AddCommand(checkCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last run in an interactive viewer",
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show past runs",
		Long:  "List stored runs, inspect the failures of a run, or prune old entries",
		RunE:  c.History.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", 10, "Number of runs to show")
	historyCmd.Flags().StringVar(&flags.RunID, "failures", "", "Show the stored failures of the given run id")
	historyCmd.Flags().IntVar(&flags.Prune, "prune", 0, "Keep only the newest N runs and delete the rest")
	rootCmd.AddCommand(historyCmd)
}
