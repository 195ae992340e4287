package extract

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"diffscope/internal/parser"
	"diffscope/internal/types"
)

const defaultFileTimeout = 10 * time.Second

// FileInput is one changed file handed to the extractor: its full
// current content plus the merged changed-line intervals from the
// range index.
type FileInput struct {
	Path      string
	Content   string
	Intervals []types.LineInterval
}

// Config tunes the extractor. Zero values select the defaults.
type Config struct {
	// Workers bounds concurrent per-file extraction; defaults to the
	// available hardware parallelism.
	Workers int
	// FileTimeout degrades a file that takes too long to analyze
	// instead of stalling the whole run.
	FileTimeout time.Duration
	// Exclude lists doublestar glob patterns for paths to skip.
	Exclude []string
}

// Extractor runs the per-file pipeline (parse, locate, resolve,
// assemble) over a set of changed files. Files are independent, so
// extraction fans out over a bounded worker pool; the resulting bundle
// is sorted by path to keep output deterministic.
type Extractor struct {
	registry *parser.Registry
	workers  int
	timeout  time.Duration
	exclude  []string
}

func NewExtractor(registry *parser.Registry, cfg Config) *Extractor {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	timeout := cfg.FileTimeout
	if timeout <= 0 {
		timeout = defaultFileTimeout
	}
	return &Extractor{
		registry: registry,
		workers:  workers,
		timeout:  timeout,
		exclude:  cfg.Exclude,
	}
}

type fileResult struct {
	context  *types.FileContext
	degraded *types.DegradedFile
}

// Extract processes every input file and returns the bundle. A single
// file's failure never aborts the others; failed files surface in
// bundle.Degraded. Files with no intervals are skipped entirely.
func (e *Extractor) Extract(ctx context.Context, files []FileInput) types.ContextBundle {
	results := make([]fileResult, len(files))
	jobs := make(chan int)

	workers := e.workers
	if workers > len(files) {
		workers = len(files)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.processFile(ctx, files[i])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var bundle types.ContextBundle
	for _, r := range results {
		if r.context != nil {
			bundle.Files = append(bundle.Files, *r.context)
		}
		if r.degraded != nil {
			bundle.Degraded = append(bundle.Degraded, *r.degraded)
		}
	}

	sort.Slice(bundle.Files, func(i, j int) bool {
		return bundle.Files[i].Path < bundle.Files[j].Path
	})
	sort.Slice(bundle.Degraded, func(i, j int) bool {
		return bundle.Degraded[i].Path < bundle.Degraded[j].Path
	})

	return bundle
}

func (e *Extractor) processFile(ctx context.Context, file FileInput) fileResult {
	if len(file.Intervals) == 0 {
		return fileResult{}
	}

	if e.isExcluded(file.Path) {
		return fileResult{degraded: &types.DegradedFile{
			Path:   file.Path,
			Reason: types.ReasonExcluded,
		}}
	}

	done := make(chan fileResult, 1)
	go func() {
		done <- e.analyze(file)
	}()

	select {
	case result := <-done:
		return result
	case <-time.After(e.timeout):
		return fileResult{degraded: &types.DegradedFile{
			Path:   file.Path,
			Reason: types.ReasonTimeout,
			Detail: fmt.Sprintf("exceeded %s", e.timeout),
		}}
	case <-ctx.Done():
		return fileResult{degraded: &types.DegradedFile{
			Path:   file.Path,
			Reason: types.ReasonCanceled,
			Detail: ctx.Err().Error(),
		}}
	}
}

func (e *Extractor) analyze(file FileInput) fileResult {
	tree, err := e.registry.Parse(file.Path, []byte(file.Content))
	if err != nil {
		return fileResult{degraded: degradedFromParse(file.Path, err)}
	}

	selected := Locate(tree, file.Intervals)
	fc := Assemble(file.Path, tree, file.Intervals, selected)
	return fileResult{context: &fc}
}

func degradedFromParse(path string, err error) *types.DegradedFile {
	var unsupported *parser.UnsupportedLanguageError
	if errors.As(err, &unsupported) {
		return &types.DegradedFile{Path: path, Reason: types.ReasonUnsupportedLanguage}
	}

	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return &types.DegradedFile{
			Path:   path,
			Reason: types.ReasonParseFailure,
			Detail: fmt.Sprintf("syntax error at line %d, column %d", parseErr.Line, parseErr.Column),
		}
	}

	return &types.DegradedFile{Path: path, Reason: types.ReasonParseFailure, Detail: err.Error()}
}

func (e *Extractor) isExcluded(path string) bool {
	for _, pattern := range e.exclude {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}
