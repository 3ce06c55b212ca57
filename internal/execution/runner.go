package execution

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"utp/internal/config"
	"utp/internal/domain"
	"utp/internal/parser"
)

// Runner executes a single test binary
type Runner struct {
	config   *config.Config
	listings *parser.ListingParser
	reports  parser.Parser
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, reports parser.Parser) *Runner {
	return &Runner{
		config:   cfg,
		listings: parser.NewListingParser(),
		reports:  reports,
	}
}

// List asks a binary for its test hierarchy
func (r *Runner) List(ctx context.Context, binary domain.Binary) (domain.Listing, error) {
	cmd := exec.CommandContext(ctx, binary.Path, r.config.ListFlag)
	cmd.Dir = r.config.ProjectPath

	output, err := cmd.Output()
	if err != nil {
		return domain.Listing{}, fmt.Errorf("list %s: %w", binary.RelPath, err)
	}

	return r.listings.Parse(binary.Path, string(output)), nil
}

// Run executes every case of a binary, writing its report under the
// reports directory
func (r *Runner) Run(ctx context.Context, binary domain.Binary, workerID int) domain.RunResult {
	return r.execute(ctx, binary, workerID)
}

// RunCase executes a single named case of a binary
func (r *Runner) RunCase(ctx context.Context, binary domain.Binary, name string) domain.RunResult {
	return r.execute(ctx, binary, 0, r.config.FilterFlag, name)
}

// Probe runs a binary with raw arguments and reports its exit code and
// combined output. No report file is requested.
func (r *Runner) Probe(ctx context.Context, binary domain.Binary, args ...string) (int, string) {
	cmd := exec.CommandContext(ctx, binary.Path, args...)
	cmd.Dir = r.config.ProjectPath

	output, err := cmd.CombinedOutput()
	code := 0
	if cmd.ProcessState != nil {
		code = cmd.ProcessState.ExitCode()
	} else if err != nil {
		code = -1
	}
	return code, string(output)
}

func (r *Runner) execute(ctx context.Context, binary domain.Binary, workerID int, extra ...string) domain.RunResult {
	result := domain.RunResult{BinaryPath: binary.Path, ExitCode: -1}

	reportPath, err := r.reportPath(binary)
	if err != nil {
		result.Error = err
		return result
	}

	args := append(extra, r.config.OutputFlag, reportPath)
	cmd := exec.CommandContext(ctx, binary.Path, args...)
	cmd.Dir = r.config.ProjectPath

	cmd.Env = append(os.Environ(), fmt.Sprintf("UTP_WORKER=%d", workerID))

	start := time.Now()
	output, runErr := cmd.CombinedOutput()
	result.Duration = time.Since(start)
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		result.Error = fmt.Errorf("run %s: %w", binary.RelPath, runErr)
		return result
	}

	// Binaries that could not open the report file print to stdout instead
	doc, readErr := os.ReadFile(reportPath)
	if readErr != nil {
		doc = output
	}
	result.Output = string(doc)

	cases, counts, parseErr := r.reports.Parse(doc)
	if parseErr != nil {
		result.Error = fmt.Errorf("report for %s: %w", binary.RelPath, parseErr)
		return result
	}
	result.Cases = cases
	result.Counts = counts
	result.Success = result.ExitCode == 0

	return result
}

// reportPath builds a per-binary report file name that stays unique across
// subdirectories
func (r *Runner) reportPath(binary domain.Binary) (string, error) {
	dir := r.config.GetReportsPath()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	name := strings.ReplaceAll(filepath.ToSlash(binary.RelPath), "/", "_")
	if name == "" {
		name = binary.Name
	}
	return filepath.Join(dir, name+".xml"), nil
}
