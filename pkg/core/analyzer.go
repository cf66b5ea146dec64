package core

import (
	"context"
	"path"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/phzwart/boteval/pkg/store"
)

// DefaultPrefix is where evaluation documents live in the store, one
// JSON blob per (model, run).
const DefaultPrefix = "compare/"

// Analyzer runs the full aggregation pipeline: fetch every selected
// document, infer schemas, reconcile the common score vocabulary, and
// build the comparison table. Fetches run in parallel; everything after
// waits for the complete snapshot, since the score-type intersection is
// only meaningful once every document's schema is known. Each run
// recomputes all derived state; there is no incremental path.
type Analyzer struct {
	Store    store.Store
	Prefix   string
	Workers  int
	Logger   *zap.Logger
	Progress func(completed, total int)
}

// SkippedDocument records a document dropped from a pipeline run and why.
type SkippedDocument struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Analysis is the outcome of one pipeline run. ScoreTypes is empty and
// Table nil when the loaded documents share no score type; both are
// empty when no documents were selected. Neither condition is an error:
// per-document failures land in Skipped and only a broken store listing
// aborts the run.
type Analysis struct {
	Documents  map[string]*Document
	Schemas    map[string]Schema
	ScoreTypes []string
	Table      *Table
	Skipped    []SkippedDocument
}

// DocumentNames returns the loaded document names sorted.
func (a *Analysis) DocumentNames() []string {
	names := make([]string, 0, len(a.Documents))
	for name := range a.Documents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run fetches the named documents, or everything under the prefix when
// names is empty, and builds the comparison table. Names without a slash
// are resolved against the prefix; the .json extension is optional.
func (a *Analyzer) Run(ctx context.Context, names []string) (*Analysis, error) {
	prefix := a.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	var paths []string
	if len(names) == 0 {
		listed, err := a.Store.List(ctx, prefix)
		if err != nil {
			return nil, err
		}
		for _, p := range listed {
			if strings.HasSuffix(p, ".json") {
				paths = append(paths, p)
			}
		}
	} else {
		for _, name := range names {
			if !strings.Contains(name, "/") {
				name = prefix + name
			}
			if !strings.HasSuffix(name, ".json") {
				name += ".json"
			}
			paths = append(paths, name)
		}
	}
	sort.Strings(paths)

	analysis := &Analysis{
		Documents: map[string]*Document{},
		Schemas:   map[string]Schema{},
	}
	if len(paths) == 0 {
		// Nothing selected: short-circuit to an empty table.
		analysis.Table = BuildTable(nil, nil)
		return analysis, nil
	}

	for _, result := range a.fetchAll(ctx, paths) {
		if result.doc == nil && result.err == nil {
			// Never dispatched: the context was cancelled mid-fetch.
			continue
		}
		if result.err != nil {
			a.logger().Warn("skipping document",
				zap.String("path", result.path),
				zap.Error(result.err))
			analysis.Skipped = append(analysis.Skipped, SkippedDocument{
				Path:   result.path,
				Reason: result.err.Error(),
			})
			continue
		}
		analysis.Documents[result.doc.Name()] = result.doc
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(analysis.Documents) == 0 {
		analysis.Table = BuildTable(nil, nil)
		return analysis, nil
	}

	for name, doc := range analysis.Documents {
		analysis.Schemas[name] = ExtractSchema(doc)
	}

	scoreTypes, err := CommonScoreTypes(analysis.Schemas)
	if err != nil {
		// Recoverable: surface the empty vocabulary instead of a table.
		a.logger().Warn("no common score types across documents",
			zap.Int("documents", len(analysis.Documents)))
		return analysis, nil
	}
	analysis.ScoreTypes = scoreTypes
	analysis.Table = BuildTable(analysis.Documents, scoreTypes)
	return analysis, nil
}

type fetchResult struct {
	path string
	doc  *Document
	err  error
}

// fetchAll downloads and parses the blobs with a bounded worker pool.
// Results come back in path order so downstream state is deterministic.
func (a *Analyzer) fetchAll(ctx context.Context, paths []string) []fetchResult {
	workers := a.Workers
	if workers <= 0 {
		workers = 4
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	type indexed struct {
		idx int
		res fetchResult
	}
	pathCh := make(chan int)
	resultCh := make(chan indexed, workers)
	results := make([]fetchResult, len(paths))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for idx := range pathCh {
				p := paths[idx]
				result := fetchResult{path: p}
				data, err := a.Store.Get(ctx, p)
				if err != nil {
					result.err = err
				} else {
					result.doc, result.err = ParseDocument(documentName(p), data)
				}
				resultCh <- indexed{idx: idx, res: result}
			}
		}()
	}

	go func() {
		defer close(pathCh)
		for idx := range paths {
			select {
			case <-ctx.Done():
				return
			case pathCh <- idx:
			}
		}
	}()
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	completed := 0
	for r := range resultCh {
		results[r.idx] = r.res
		completed++
		if a.Progress != nil {
			a.Progress(completed, len(paths))
		}
	}
	return results
}

func (a *Analyzer) logger() *zap.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return zap.NewNop()
}

// documentName strips directory and extension: "compare/gpt-4o.json"
// becomes "gpt-4o". The blob stem names the (model, run) artifact.
func documentName(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
