package domain

// Binary represents a discovered test binary
type Binary struct {
	Path    string // Full path to the binary
	RelPath string // Path relative to the fixture root
	Name    string // Just the file name
}
