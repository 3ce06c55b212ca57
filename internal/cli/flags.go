package cli

import "utp/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:   f.Processors,
		FixturePath:  f.FixturePath,
		NameFilter:   f.NameFilter,
		TestCases:    f.TestCases,
		FailFast:     f.FailFast,
		OnlyFailed:   f.OnlyFailed,
		FailedFirst:  f.FailedFirst,
		OpenFailures: f.OpenFailures,
		Watch:        f.Watch,
		JUnitPath:    f.JUnitPath,
		Limit:        f.Limit,
		Prune:        f.Prune,
		RunID:        f.RunID,
		Verbose:      f.Verbose,
	}
}
