package main

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
)

// buildJob produces one output file.
type buildJob struct {
	Route      string // Site path or source file, for reporting
	OutputPath string
	write      func(ctx context.Context, buf *bytes.Buffer) error // nil when copy is set
	copyFrom   string                                           // Source file copied verbatim
}

// BuildResult holds the outcome of a single job.
type BuildResult struct {
	Route      string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// runJobs executes jobs with at most workers goroutines. Results keep the
// order of jobs.
func runJobs(ctx context.Context, jobs []buildJob, workers int) []BuildResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency > len(jobs) {
		concurrency = len(jobs)
	}

	results := make([]BuildResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				results[idx] = runJob(ctx, jobs[idx])
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// runJob renders or copies one file.
func runJob(ctx context.Context, job buildJob) BuildResult {
	start := time.Now()
	result := BuildResult{Route: job.Route, OutputPath: job.OutputPath}

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	if job.copyFrom != "" {
		if err := fileutil.CopyFile(job.copyFrom, job.OutputPath); err != nil {
			result.Err = fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		result.Duration = time.Since(start)
		return result
	}

	var buf bytes.Buffer
	if err := job.write(ctx, &buf); err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	if err := fileutil.WriteFileAtomic(job.OutputPath, buf.Bytes()); err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	result.Duration = time.Since(start)
	return result
}

// resolveWorkers determines the worker count.
// Priority: explicit flag > config (or MDSITE_WORKERS) > GOMAXPROCS.
func resolveWorkers(flagWorkers, cfgWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if cfgWorkers > 0 {
		return cfgWorkers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0)
	if n > config.MaxWorkers {
		return config.MaxWorkers
	}
	return n
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}
