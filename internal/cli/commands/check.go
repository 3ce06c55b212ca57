package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"utp/internal/config"
	"utp/internal/discovery"
	"utp/internal/domain"
	"utp/internal/execution"
)

// Exit codes as observed through the shell: a binary exiting -1 surfaces
// as 255, -2 as 254.
const (
	exitUsage   = 255
	exitNoMatch = 254
)

// CheckCommand handles the check command
type CheckCommand struct {
	config  *config.Config
	scanner *discovery.Scanner
	filter  *discovery.Filter
	runner  *execution.Runner
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	runner *execution.Runner,
) *CheckCommand {
	return &CheckCommand{
		config:  cfg,
		scanner: scanner,
		filter:  filter,
		runner:  runner,
	}
}

// Execute runs the command
func (cc *CheckCommand) Execute(cmd *cobra.Command, args []string) error {
	binaries, err := cc.scanner.Scan(cc.config.GetFixturePath())
	if err != nil {
		return err
	}
	binaries = cc.filter.FilterByName(binaries, cc.config.Flags.NameFilter)

	if len(binaries) == 0 {
		color.Yellow("No test binaries found")
		return nil
	}

	color.Cyan("Checking %d test binary(ies) against the runner contract...\n", len(binaries))

	broken := 0
	for _, binary := range binaries {
		problems := cc.checkBinary(cmd.Context(), binary)
		if len(problems) == 0 {
			color.Green("✓ %s", binary.RelPath)
			continue
		}

		broken++
		color.Red("✗ %s", binary.RelPath)
		for _, problem := range problems {
			color.Red("    %s", problem)
		}
	}

	fmt.Println()
	if broken > 0 {
		return fmt.Errorf("%d of %d binaries failed the contract check", broken, len(binaries))
	}
	color.Green("All %d binaries honor the contract", len(binaries))
	return nil
}

// checkBinary exercises one binary through every part of the contract:
// listing, full run, single-case filter, unknown-case filter, and usage.
func (cc *CheckCommand) checkBinary(ctx context.Context, binary domain.Binary) []string {
	var problems []string

	listing, err := cc.runner.List(ctx, binary)
	if err != nil {
		return append(problems, fmt.Sprintf("listing failed: %v", err))
	}

	problems = append(problems, cc.checkFullRun(ctx, binary, listing)...)
	problems = append(problems, cc.checkSingleCase(ctx, binary, listing)...)
	problems = append(problems, cc.checkNoMatch(ctx, binary)...)
	problems = append(problems, cc.checkUsage(ctx, binary)...)

	return problems
}

// checkFullRun verifies that a plain run executes exactly the listed cases,
// in listing order, and exits with the failed-case count
func (cc *CheckCommand) checkFullRun(ctx context.Context, binary domain.Binary, listing domain.Listing) []string {
	result := cc.runner.Run(ctx, binary, 0)
	if result.Error != nil {
		return []string{fmt.Sprintf("full run: %v", result.Error)}
	}

	var problems []string

	expected := listing.CaseNames()
	executed := make([]string, 0, len(result.Cases))
	for _, c := range result.Cases {
		executed = append(executed, c.Qualified())
	}
	if !namesEqual(executed, expected) {
		problems = append(problems, fmt.Sprintf(
			"full run executed %d case(s), listing names %d; names or order differ",
			len(executed), len(expected)))
	}

	failed := result.Counts.Failures + result.Counts.Errors
	if result.ExitCode != failed%256 {
		problems = append(problems, fmt.Sprintf(
			"full run exited %d, want %d (failures plus errors)", result.ExitCode, failed%256))
	}
	return problems
}

// checkSingleCase verifies that filtering on the first listed case runs
// that case and nothing else
func (cc *CheckCommand) checkSingleCase(ctx context.Context, binary domain.Binary, listing domain.Listing) []string {
	names := listing.CaseNames()
	if len(names) == 0 {
		return nil
	}

	name := names[0]
	result := cc.runner.RunCase(ctx, binary, name)
	if result.Error != nil {
		return []string{fmt.Sprintf("single case %s: %v", name, result.Error)}
	}
	if result.Counts.Tests != 1 {
		return []string{fmt.Sprintf("single case %s ran %d case(s), want 1", name, result.Counts.Tests)}
	}
	if len(result.Cases) == 1 && result.Cases[0].Qualified() != name {
		return []string{fmt.Sprintf("single case filter for %s ran %s instead", name, result.Cases[0].Qualified())}
	}
	return nil
}

// checkNoMatch verifies the exit code for a filter that matches nothing
func (cc *CheckCommand) checkNoMatch(ctx context.Context, binary domain.Binary) []string {
	code, _ := cc.runner.Probe(ctx, binary, cc.config.FilterFlag, "utp::no_such_case")
	if code != exitNoMatch {
		return []string{fmt.Sprintf("unknown case filter exited %d, want %d", code, exitNoMatch)}
	}
	return nil
}

// checkUsage verifies the exit code for the help flag
func (cc *CheckCommand) checkUsage(ctx context.Context, binary domain.Binary) []string {
	code, _ := cc.runner.Probe(ctx, binary, "-h")
	if code != exitUsage {
		return []string{fmt.Sprintf("-h exited %d, want %d", code, exitUsage)}
	}
	return nil
}

func namesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
