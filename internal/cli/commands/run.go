package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"utp/internal/config"
	"utp/internal/discovery"
	"utp/internal/domain"
	"utp/internal/execution"
	"utp/internal/history"
	"utp/internal/parser"
	"utp/internal/report"
	"utp/internal/storage"
	"utp/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	executor  *execution.WorkerPool
	parser    parser.Parser
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	executor *execution.WorkerPool,
	reportParser parser.Parser,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		executor:  executor,
		parser:    reportParser,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	if rc.config.Flags.Watch {
		return rc.watch(cmd.Context())
	}
	return rc.runOnce(cmd.Context())
}

func (rc *RunCommand) runOnce(ctx context.Context) error {
	binaries, err := rc.discover()
	if err != nil {
		return err
	}
	if len(binaries) == 0 {
		color.Yellow("No test binaries to execute")
		return nil
	}

	if rc.config.Flags.FailedFirst {
		rc.executor.SetScheduler(execution.NewFailedFirstScheduler(rc.lastFailedPaths()))
	}

	progressBar := ui.NewProgressBar(len(binaries))
	rc.executor.SetProgress(progressBar)

	results, duration, err := rc.executor.ExecuteWithOptions(ctx, binaries, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	failures := rc.collectFailures(results)

	output, err := rc.storage.Save(results, failures, duration, rc.config.Processors)
	if err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	rc.recordHistory(output)

	if rc.config.Flags.JUnitPath != "" {
		if err := rc.exportJUnit(results, rc.config.Flags.JUnitPath); err != nil {
			return fmt.Errorf("failed to write junit report: %w", err)
		}
	}

	if err := rc.formatter.PrintMetaStats(); err != nil {
		return err
	}

	if rc.config.Flags.OpenFailures && len(failures) > 0 {
		return rc.viewer.View(output)
	}
	return nil
}

// discover scans the fixture path and applies the name and failed-only
// filters
func (rc *RunCommand) discover() ([]domain.Binary, error) {
	binaries, err := rc.scanner.Scan(rc.config.GetFixturePath())
	if err != nil {
		return nil, err
	}
	binaries = rc.filter.FilterByName(binaries, rc.config.Flags.NameFilter)

	if rc.config.Flags.OnlyFailed {
		binaries = rc.onlyFailed(binaries)
	}
	return binaries, nil
}

// onlyFailed narrows binaries to those with failures in the stored run
func (rc *RunCommand) onlyFailed(binaries []domain.Binary) []domain.Binary {
	failed := rc.lastFailedPaths()
	set := make(map[string]bool, len(failed))
	for _, p := range failed {
		set[p] = true
	}

	var narrowed []domain.Binary
	for _, binary := range binaries {
		if set[binary.Path] {
			narrowed = append(narrowed, binary)
		}
	}
	return narrowed
}

// lastFailedPaths reads the binary paths that failed in the stored run
func (rc *RunCommand) lastFailedPaths() []string {
	output, err := rc.storage.Load()
	if err != nil {
		log.Debugf("no previous results: %v", err)
		return nil
	}

	seen := make(map[string]bool)
	var paths []string
	for _, failure := range output.Details {
		if failure.BinaryPath == "" || seen[failure.BinaryPath] {
			continue
		}
		seen[failure.BinaryPath] = true
		paths = append(paths, failure.BinaryPath)
	}
	return paths
}

// collectFailures turns run results into stored failure records. A binary
// that produced no readable report yields a single synthetic entry.
func (rc *RunCommand) collectFailures(results []domain.RunResult) []domain.CaseFailure {
	var failures []domain.CaseFailure
	for _, result := range results {
		if result.Error != nil {
			failures = append(failures, domain.CaseFailure{
				TestName:    filepath.Base(result.BinaryPath),
				BinaryPath:  result.BinaryPath,
				FailureType: domain.FaultError,
				Message:     result.Error.Error(),
			})
			continue
		}
		failures = append(failures, rc.parser.ParseFailure(result)...)
	}
	return failures
}

// recordHistory appends the run to the history database. History problems
// never fail the run itself.
func (rc *RunCommand) recordHistory(output *domain.ResultsOutput) {
	store, err := history.Open(rc.config)
	if err != nil {
		log.Warnf("run not recorded in history: %v", err)
		return
	}
	defer store.Close()

	if err := store.RecordRun(output); err != nil {
		log.Warnf("run not recorded in history: %v", err)
	}
}

// exportJUnit merges every run report into a single testsuites document
func (rc *RunCommand) exportJUnit(results []domain.RunResult, path string) error {
	var docs []*report.XUnitDoc
	for _, result := range results {
		if result.Output == "" {
			continue
		}
		doc := []byte(result.Output)
		switch report.Detect(doc) {
		case report.KindCppUnit:
			run, err := report.ParseCppUnit(bytes.NewReader(doc))
			if err != nil {
				continue
			}
			docs = append(docs, report.CppUnitToXUnit(run, filepath.Base(result.BinaryPath)))
		case report.KindXUnit:
			xu, err := report.ParseXUnit(bytes.NewReader(doc))
			if err != nil {
				continue
			}
			docs = append(docs, xu)
		}
	}

	merged := report.MergeXUnit(docs...)
	if merged.Timestamp == "" {
		merged.Timestamp = report.Now()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return report.WriteXUnit(f, merged)
}

// watch runs once, then re-runs whenever something under the fixture path
// changes, until interrupted
func (rc *RunCommand) watch(ctx context.Context) error {
	if err := rc.runOnce(ctx); err != nil {
		log.Warnf("run failed: %v", err)
	}

	dirs, err := rc.watchDirs()
	if err != nil {
		return err
	}

	runs := make(chan string, 1)
	watcher, err := discovery.NewWatcher(dirs, discovery.DefaultDebounce, func(path string) {
		select {
		case runs <- path:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	watcher.Start()
	defer watcher.Stop()

	color.Cyan("\nWatching %s for changes. Press Ctrl+C to stop.", rc.config.GetFixturePath())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-interrupt:
			fmt.Println()
			return nil
		case path := <-runs:
			log.Debugf("change detected: %s", path)
			if err := rc.runOnce(ctx); err != nil {
				log.Warnf("run failed: %v", err)
			}
			color.Cyan("\nWatching %s for changes. Press Ctrl+C to stop.", rc.config.GetFixturePath())
		}
	}
}

// watchDirs collects the fixture root and each directory that holds a
// discovered binary
func (rc *RunCommand) watchDirs() ([]string, error) {
	root := rc.config.GetFixturePath()
	binaries, err := rc.scanner.Scan(root)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{root: true}
	dirs := []string{root}
	for _, binary := range binaries {
		dir := filepath.Dir(binary.Path)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}
