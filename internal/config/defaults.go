package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultFixturePath is the default path scanned for test binaries
	DefaultFixturePath = "."
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputDir is the default output directory
	DefaultOutputDir = "storage"
	// DefaultReportsDir is the directory report files are collected under,
	// relative to the output directory
	DefaultReportsDir = "reports"
	// DefaultHistoryFile is the default sqlite history database file
	DefaultHistoryFile = "history.db"
	// DefaultHistoryDriver selects the history database driver
	DefaultHistoryDriver = "sqlite"
	// DefaultProcessors is the default number of processors
	DefaultProcessors = 4
)

// Default contract flags of the test binaries: list the hierarchy, run a
// single test, write the report to a file.
const (
	DefaultListFlag   = "-l"
	DefaultFilterFlag = "-t"
	DefaultOutputFlag = "-y"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning
// for test binaries
var DefaultPathsToIgnore = []string{
	"storage",
	"testdata",
	"vendor",
	"node_modules",
}
