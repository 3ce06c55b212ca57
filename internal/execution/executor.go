package execution

import (
	"context"
	"time"

	"utp/internal/domain"
)

// Executor executes test binaries and returns results
type Executor interface {
	Execute(ctx context.Context, binaries []domain.Binary) ([]domain.RunResult, time.Duration, error)
}
