package execution

import (
	"context"
	"sync"
	"time"

	"utp/internal/config"
	"utp/internal/domain"
	"utp/internal/ui"
)

// WorkerPool manages a pool of workers for parallel binary execution
type WorkerPool struct {
	config    *config.Config
	runner    *Runner
	scheduler Scheduler
	progress  *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner, scheduler Scheduler) *WorkerPool {
	return &WorkerPool{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// SetScheduler replaces the queue ordering strategy
func (wp *WorkerPool) SetScheduler(scheduler Scheduler) {
	wp.scheduler = scheduler
}

// Execute runs all binaries in parallel using the worker pool (no fail-fast).
func (wp *WorkerPool) Execute(ctx context.Context, binaries []domain.Binary) ([]domain.RunResult, time.Duration, error) {
	return wp.ExecuteWithOptions(ctx, binaries, false)
}

// ExecuteWithOptions runs binaries with optional fail-fast (stop on first failure).
func (wp *WorkerPool) ExecuteWithOptions(ctx context.Context, binaries []domain.Binary, failFast bool) ([]domain.RunResult, time.Duration, error) {
	if len(binaries) == 0 {
		return nil, 0, nil
	}
	if wp.scheduler != nil {
		binaries = wp.scheduler.Order(binaries)
	}
	if !failFast {
		return wp.executeAll(ctx, binaries)
	}
	return wp.executeFailFast(ctx, binaries)
}

// executeAll runs every binary to completion.
func (wp *WorkerPool) executeAll(ctx context.Context, binaries []domain.Binary) ([]domain.RunResult, time.Duration, error) {
	queue := make(chan domain.Binary, len(binaries))
	results := make(chan domain.RunResult, len(binaries))
	for _, binary := range binaries {
		queue <- binary
	}
	close(queue)

	var mu sync.Mutex
	var completed int
	var passedCases, failedCases int
	startTime := time.Now()
	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for binary := range queue {
				result := wp.runner.Run(ctx, binary, workerID)
				results <- result
				mu.Lock()
				completed++
				p, f := caseTally(result)
				passedCases += p
				failedCases += f
				if wp.progress != nil {
					wp.progress.Update(completed, passedCases, failedCases)
				}
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.RunResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

// executeFailFast runs binaries and stops after the first failure.
func (wp *WorkerPool) executeFailFast(ctx context.Context, binaries []domain.Binary) ([]domain.RunResult, time.Duration, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan domain.Binary, 1)
	results := make(chan domain.RunResult, len(binaries))

	go func() {
		defer close(queue)
		for _, binary := range binaries {
			select {
			case <-ctx.Done():
				return
			case queue <- binary:
			}
		}
	}()

	var mu sync.Mutex
	var completed int
	var passedCases, failedCases int
	var seenFailure bool
	startTime := time.Now()
	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for binary := range queue {
				result := wp.runner.Run(ctx, binary, workerID)
				mu.Lock()
				done := seenFailure
				mu.Unlock()
				if done {
					continue
				}
				results <- result
				mu.Lock()
				completed++
				p, f := caseTally(result)
				passedCases += p
				failedCases += f
				if wp.progress != nil {
					wp.progress.Update(completed, passedCases, failedCases)
				}
				if !result.Success {
					seenFailure = true
					cancel()
				}
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.RunResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

// caseTally counts passed and failed cases for one run. Runs without a
// readable report count as one failed unit.
func caseTally(result domain.RunResult) (passed, failed int) {
	if result.Error != nil {
		return 0, 1
	}
	failed = result.Counts.Failures + result.Counts.Errors
	passed = result.Counts.Tests - failed
	if passed < 0 {
		passed = 0
	}
	return passed, failed
}
