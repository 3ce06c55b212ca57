package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"utp/internal/config"
	"utp/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintMetaStats reads and displays meta statistics from the JSON results file
func (f *Formatter) PrintMetaStats() error {
	// Clear terminal screen
	fmt.Print("\033[2J\033[H")

	outputPath := f.config.GetOutputPath()

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("failed to read results file: %w", err)
	}

	var output domain.ResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return fmt.Errorf("failed to parse results file: %w", err)
	}

	meta := output.Meta

	// Print header
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                    Test Execution Statistics                  ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	rows := []struct {
		label string
		value string
		paint func(format string, a ...interface{})
	}{
		{"Run ID", meta.RunID, color.White},
		{"Total Binaries", fmt.Sprintf("%d", meta.TotalBinaries), color.White},
		{"Passed Binaries", fmt.Sprintf("%d", meta.PassedBinaries), color.Green},
		{"Failed Binaries", fmt.Sprintf("%d", meta.FailedBinaries), color.Red},
		{"Passed Test Cases", fmt.Sprintf("%d", meta.PassedTestCases), color.Green},
		{"Failed Test Cases", fmt.Sprintf("%d", meta.FailedTestCases), color.Red},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), color.White},
		{"Workers", fmt.Sprintf("%d", meta.Workers), color.White},
		{"Timestamp", meta.Timestamp, color.White},
	}

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Printf("│ %-31s │ ", row.label)
		row.paint("%-27s │", row.value)
		if i < len(rows)-1 {
			fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	// Print summary line
	fmt.Println()
	if meta.FailedBinaries == 0 && meta.FailedTestCases == 0 {
		color.Green("✓ All tests passed!")
	} else {
		color.Red("✗ %d binary(ies) failed with %d test case failure(s)", meta.FailedBinaries, meta.FailedTestCases)
		fmt.Println()
		f.printFailureTree(output.Details)
	}

	return nil
}

// treeNode is one level of the failed binary tree
type treeNode struct {
	name     string
	children map[string]*treeNode
	failures []domain.CaseFailure
}

func newTreeNode(name string) *treeNode {
	return &treeNode{name: name, children: make(map[string]*treeNode)}
}

// printFailureTree prints failed cases grouped under their binary paths
func (f *Formatter) printFailureTree(failures []domain.CaseFailure) {
	if len(failures) == 0 {
		return
	}

	root := newTreeNode("")
	for _, failure := range failures {
		node := root
		for _, part := range strings.Split(f.displayPath(failure.BinaryPath), "/") {
			if part == "" {
				continue
			}
			child := node.children[part]
			if child == nil {
				child = newTreeNode(part)
				node.children[part] = child
			}
			node = child
		}
		node.failures = append(node.failures, failure)
	}

	f.printTreeNode(root, "")
}

func (f *Formatter) printTreeNode(node *treeNode, prefix string) {
	// Sort children for consistent output
	keys := make([]string, 0, len(node.children))
	for key := range node.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.children[key]
		isLast := i == len(keys)-1

		connector, childPrefix := "├── ", prefix+"│   "
		if isLast {
			connector, childPrefix = "└── ", prefix+"    "
		}

		if len(child.failures) > 0 {
			color.Yellow("%s%s%s", prefix, connector, child.name)
		} else {
			color.Cyan("%s%s%s", prefix, connector, child.name)
		}

		for j, failure := range child.failures {
			caseConnector := "├── "
			if j == len(child.failures)-1 {
				caseConnector = "└── "
			}
			color.Red("%s%s%s", childPrefix, caseConnector, failure.TestName)
		}

		f.printTreeNode(child, childPrefix)
	}
}

// PrintBinaryList prints discovered binaries as a tree, optionally with the
// cases each one lists. listings maps binary path to its qualified case
// names and may be nil. Binaries present in failedPaths are marked with [F].
func (f *Formatter) PrintBinaryList(binaries []domain.Binary, listings map[string][]string, failedPaths map[string]struct{}) {
	if listings != nil {
		color.Green("Found %d test binary(ies) with test cases:\n", len(binaries))
	} else {
		color.Green("Found %d test binary(ies):\n", len(binaries))
	}

	for i, binary := range binaries {
		failMarker := ""
		if len(failedPaths) > 0 {
			if _, ok := failedPaths[binary.Path]; ok {
				failMarker = " " + color.RedString("[F]")
			}
		}

		isLast := i == len(binaries)-1
		branch := "├── "
		if isLast {
			branch = "└── "
		}
		color.Cyan("%s%s%s", branch, binary.RelPath, failMarker)

		if listings == nil {
			continue
		}

		childPrefix := "│   "
		if isLast {
			childPrefix = "    "
		}

		cases := listings[binary.Path]
		if len(cases) == 0 {
			fmt.Printf("%s└── %s\n", childPrefix, color.RedString("(no test cases found)"))
		} else {
			for j, name := range cases {
				caseBranch := "├── "
				if j == len(cases)-1 {
					caseBranch = "└── "
				}
				fmt.Printf("%s%s%s\n", childPrefix, caseBranch, color.YellowString(name))
			}
		}

		// Add spacing between binaries (except for the last one)
		if !isLast {
			fmt.Println()
		}
	}
}

// displayPath shortens a binary path relative to the project for display
func (f *Formatter) displayPath(path string) string {
	p := path
	if f.config.ProjectPath != "" {
		if rel, err := filepath.Rel(f.config.ProjectPath, path); err == nil && !strings.HasPrefix(rel, "..") {
			p = rel
		}
	}
	return strings.TrimPrefix(filepath.ToSlash(p), "./")
}
