package commands

import (
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"utp/internal/config"
	"utp/internal/discovery"
	"utp/internal/domain"
	"utp/internal/execution"
	"utp/internal/storage"
	"utp/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	runner    *execution.Runner
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	runner *execution.Runner,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		runner:    runner,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	binaries, err := lc.scanner.Scan(lc.config.GetFixturePath())
	if err != nil {
		return err
	}
	binaries = lc.filter.FilterByName(binaries, lc.config.Flags.NameFilter)

	if len(binaries) == 0 {
		color.Yellow("No test binaries found")
		return nil
	}

	var listings map[string][]string
	if lc.config.Flags.TestCases {
		listings = lc.listCases(cmd, binaries)
	}

	lc.formatter.PrintBinaryList(binaries, listings, lc.failedPaths())
	return nil
}

// listCases asks every binary for its cases, keyed by binary path. A binary
// that fails to list maps to an empty slice so it still shows up.
func (lc *ListCommand) listCases(cmd *cobra.Command, binaries []domain.Binary) map[string][]string {
	listings := make(map[string][]string, len(binaries))
	for _, binary := range binaries {
		listing, err := lc.runner.List(cmd.Context(), binary)
		if err != nil {
			log.Debugf("listing failed: %v", err)
			listings[binary.Path] = nil
			continue
		}
		listings[binary.Path] = listing.CaseNames()
	}
	return listings
}

// failedPaths reads which binaries failed in the stored run, if any
func (lc *ListCommand) failedPaths() map[string]struct{} {
	output, err := lc.storage.Load()
	if err != nil {
		return nil
	}

	failed := make(map[string]struct{})
	for _, failure := range output.Details {
		if failure.BinaryPath != "" {
			failed[failure.BinaryPath] = struct{}{}
		}
	}
	return failed
}
