package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	FixturePath string

	// Output settings
	OutputJSONFile string
	OutputDir      string
	ReportsDir     string

	// History database settings
	HistoryDriver string
	HistoryFile   string

	// Contract flags understood by the test binaries
	ListFlag   string
	FilterFlag string
	OutputFlag string

	// Execution settings
	Processors int

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Processors   int
	FixturePath  string
	NameFilter   string
	TestCases    bool
	FailFast     bool
	OnlyFailed   bool
	FailedFirst  bool
	OpenFailures bool
	Watch        bool
	JUnitPath    string
	Limit        int
	Prune        int
	RunID        string
	Verbose      bool
}

// LoadEnv loads a .env file from the working directory when present.
// A missing file is not an error.
func LoadEnv() {
	_ = godotenv.Load()
}

// New creates a new Config with defaults, letting the environment override
// paths and the binary contract flags
func New() *Config {
	cfg := &Config{
		ProjectPath:    envOr("UTP_PROJECT_PATH", DefaultProjectPath),
		FixturePath:    envOr("UTP_FIXTURE_PATH", DefaultFixturePath),
		OutputJSONFile: DefaultOutputJSONFile,
		OutputDir:      envOr("UTP_OUTPUT_DIR", DefaultOutputDir),
		ReportsDir:     DefaultReportsDir,
		HistoryDriver:  envOr("UTP_HISTORY_DRIVER", DefaultHistoryDriver),
		HistoryFile:    DefaultHistoryFile,
		ListFlag:       envOr("UTP_LIST_FLAG", DefaultListFlag),
		FilterFlag:     envOr("UTP_FILTER_FLAG", DefaultFilterFlag),
		OutputFlag:     envOr("UTP_OUTPUT_FLAG", DefaultOutputFlag),
		Processors:     DefaultProcessors,
		Flags:          Flags{Processors: DefaultProcessors},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	// Apply flag overrides
	if flags.Processors > 0 {
		cfg.Processors = flags.Processors
	}

	return cfg
}

// GetFixturePath returns the scan root, using the flag if provided
func (c *Config) GetFixturePath() string {
	if c.Flags.FixturePath != "" {
		// Relative flag paths are anchored at the project path
		if filepath.IsAbs(c.Flags.FixturePath) {
			return c.Flags.FixturePath
		}
		return filepath.Join(c.ProjectPath, c.Flags.FixturePath)
	}

	if filepath.IsAbs(c.FixturePath) {
		return c.FixturePath
	}
	return filepath.Join(c.ProjectPath, c.FixturePath)
}

// GetOutputPath returns the full path to the results JSON file. Resolved
// to an absolute path so run and failures always use the same file
// regardless of cwd.
func (c *Config) GetOutputPath() string {
	return c.absUnderOutput(c.OutputJSONFile)
}

// GetReportsPath returns the directory report files are written to.
func (c *Config) GetReportsPath() string {
	return c.absUnderOutput(c.ReportsDir)
}

// GetHistoryPath returns the sqlite history database file.
func (c *Config) GetHistoryPath() string {
	return c.absUnderOutput(c.HistoryFile)
}

func (c *Config) absUnderOutput(name string) string {
	p := filepath.Join(c.ProjectPath, c.OutputDir, name)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
