package web2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// TaskOutcome holds the result of rendering one work item.
// Produced exactly once per item.
type TaskOutcome struct {
	Index    int
	Item     WorkItem
	Err      error
	Duration time.Duration
}

// BatchOptions controls batch-wide rendering behavior.
type BatchOptions struct {
	// Mono renders each item as a single page sized to its content.
	Mono bool

	// ScreenMedia emulates the "screen" media type before any
	// measurement or render, so standard CSS applies instead of
	// print CSS.
	ScreenMedia bool

	// Progress, if set, receives each outcome as its task finishes.
	// Called concurrently from task goroutines; completion order is
	// not guaranteed.
	Progress func(TaskOutcome)
}

// RunBatch renders every work item concurrently against the shared
// opener, one goroutine per item. Items are fully independent: a
// failure never aborts or cancels siblings, and there are no retries.
// Returns one outcome per item, indexed like items, after every task
// has reported.
//
// Session bootstrap (launch, cookies) must happen before this call and
// teardown after it; RunBatch itself never closes the opener.
func RunBatch(ctx context.Context, opener PageOpener, items []WorkItem, opts *PrintOptions, batch BatchOptions) []TaskOutcome {
	outcomes := make([]TaskOutcome, len(items))

	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			start := time.Now()
			err := renderItem(ctx, opener, items[idx], opts.Clone(), batch)
			outcomes[idx] = TaskOutcome{
				Index:    idx,
				Item:     items[idx],
				Err:      err,
				Duration: time.Since(start),
			}

			if batch.Progress != nil {
				batch.Progress(outcomes[idx])
			}
		}(i)
	}
	wg.Wait()

	return outcomes
}

// renderItem runs the per-item task body with its own options copy.
// On failure the page is deliberately left open; the session cleans up
// remaining pages when it closes.
func renderItem(ctx context.Context, opener PageOpener, item WorkItem, opts *PrintOptions, batch BatchOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	page, err := opener.NewPage(item.Location)
	if err != nil {
		return err
	}

	if batch.ScreenMedia {
		if err := page.EmulateScreenMedia(); err != nil {
			return err
		}
	}

	// Mono sizing depends on post-load layout, so it cannot be
	// precomputed; measure here, after navigation.
	if batch.Mono {
		size, err := page.LayoutMetrics()
		if err != nil {
			return err
		}
		opts.ApplyMonoLayout(size)
	}

	pdf, err := page.PDF(opts)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", item.Location, err)
	}

	if dir := filepath.Dir(item.Destination); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	// #nosec G306 -- PDF output files are intended to be readable
	if err := os.WriteFile(item.Destination, pdf, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}

	return page.Close()
}

// Summary holds the count of succeeded and failed renders.
type Summary struct {
	Succeeded int
	Failed    int
}

// Summarize tallies outcomes. The result is order-independent.
func Summarize(outcomes []TaskOutcome) Summary {
	var s Summary
	for _, o := range outcomes {
		if o.Err != nil {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}
	return s
}

// CountFailures returns the number of failed outcomes; the CLI uses it
// as the process exit code.
func CountFailures(outcomes []TaskOutcome) int {
	return Summarize(outcomes).Failed
}
