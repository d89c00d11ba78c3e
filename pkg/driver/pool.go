package driver

import (
	"context"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nooga/tsgrammar/pkg/ast"
	"github.com/nooga/tsgrammar/pkg/source"
)

// FileResult is the outcome of parsing one file of a batch.
type FileResult struct {
	Path    string
	Program *ast.Program
	// Source is nil when the file could not be read.
	Source   *source.SourceFile
	Err      error
	WorkerID int // -1 if the file was never picked up
	Duration time.Duration
}

// BatchStats summarizes a ParseFiles run.
type BatchStats struct {
	Workers   int
	Completed int
	Failed    int
	TotalTime time.Duration
}

type parseJob struct {
	index int
	path  string
}

// ParseFiles parses paths on a pool of workers, each with its own parser.
// Results are returned in input order. A failing file does not stop the
// batch; cancelling ctx does, and files that were never picked up carry
// ctx.Err(). workers <= 0 means one per CPU.
func ParseFiles(ctx context.Context, paths []string, workers int, opts Options) ([]FileResult, BatchStats) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}
	results := make([]FileResult, len(paths))
	for i, p := range paths {
		results[i] = FileResult{Path: p, WorkerID: -1}
	}
	stats := BatchStats{Workers: workers}
	if len(paths) == 0 {
		return results, stats
	}

	log := opts.logger()
	jobs := make(chan parseJob)
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for id := 0; id < workers; id++ {
		id := id // per-iteration copy (go 1.21 loop-variable semantics)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				start := time.Now()
				prog, src, err := ParseFile(job.path, opts)
				elapsed := time.Since(start)
				// Each index is written by exactly one worker.
				results[job.index] = FileResult{
					Path:     job.path,
					Program:  prog,
					Source:   src,
					Err:      err,
					WorkerID: id,
					Duration: elapsed,
				}
				log.Debug("parsed file", zap.String("path", job.path), zap.Int("worker", id),
					zap.Duration("took", elapsed), zap.Bool("ok", err == nil))

				mu.Lock()
				if err == nil {
					stats.Completed++
				} else {
					stats.Failed++
				}
				stats.TotalTime += elapsed
				mu.Unlock()
			}
		}()
	}

feed:
	for i, p := range paths {
		select {
		case jobs <- parseJob{index: i, path: p}:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		for i := range results {
			if results[i].WorkerID < 0 {
				results[i].Err = err
			}
		}
	}
	return results, stats
}
