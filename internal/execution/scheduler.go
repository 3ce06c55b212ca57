package execution

import "utp/internal/domain"

// Scheduler decides the order binaries enter the work queue
type Scheduler interface {
	Order(binaries []domain.Binary) []domain.Binary
}

// FIFOScheduler keeps discovery order
type FIFOScheduler struct{}

// NewFIFOScheduler creates a new FIFOScheduler
func NewFIFOScheduler() *FIFOScheduler {
	return &FIFOScheduler{}
}

// Order returns binaries unchanged
func (s *FIFOScheduler) Order(binaries []domain.Binary) []domain.Binary {
	return binaries
}

// FailedFirstScheduler moves binaries that failed previously to the front
// of the queue, keeping relative order within both groups
type FailedFirstScheduler struct {
	failed map[string]bool
}

// NewFailedFirstScheduler creates a new FailedFirstScheduler from the
// binary paths that failed in an earlier run
func NewFailedFirstScheduler(failedPaths []string) *FailedFirstScheduler {
	failed := make(map[string]bool, len(failedPaths))
	for _, p := range failedPaths {
		failed[p] = true
	}
	return &FailedFirstScheduler{failed: failed}
}

// Order partitions binaries into previously failed and the rest
func (s *FailedFirstScheduler) Order(binaries []domain.Binary) []domain.Binary {
	if len(s.failed) == 0 {
		return binaries
	}

	ordered := make([]domain.Binary, 0, len(binaries))
	var rest []domain.Binary
	for _, binary := range binaries {
		if s.failed[binary.Path] {
			ordered = append(ordered, binary)
		} else {
			rest = append(rest, binary)
		}
	}
	return append(ordered, rest...)
}
