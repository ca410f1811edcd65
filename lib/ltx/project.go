package ltx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/datawire/dlib/dlog"
	lru "github.com/hashicorp/golang-lru"

	"github.com/xray-forge/xrf-go/lib/textui"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// schemeCacheSize bounds the in-memory scheme-document cache; scheme files
// are small and few, so this mostly exists to give repeated format/verify
// passes over the same project a warm cache instead of reparsing schemes
// file.
var schemeCacheSize = textui.Tunable(256)

// schemeCache memoizes parsed *.scheme.ltx documents by path, shared
// read-only across project workers once a Project has finished loading.
type schemeCache struct {
	lru *lru.Cache
}

func newSchemeCache() *schemeCache {
	c, err := lru.New(schemeCacheSize)
	if err != nil {
		panic(err) // only fails for a non-positive size, which schemeCacheSize never is
	}
	return &schemeCache{lru: c}
}

func (c *schemeCache) getOrParse(path string) (*Document, error) {
	if v, ok := c.lru.Get(path); ok {
		return v.(*Document), nil
	}
	doc, err := ParseFile(path, ParseOptions{})
	if err != nil {
		return nil, err
	}
	c.lru.Add(path, doc)
	return doc, nil
}

// Project is a directory of LTX files: data files plus `*.scheme.ltx`
// scheme declarations. The scheme table is parsed once at load and is
// immutable afterward, so it's safe to share read-only across workers.
type Project struct {
	Root        string
	DataFiles   []string
	SchemeTable *SchemeTable

	cache *schemeCache
}

// LoadProject walks root, classifies every `*.ltx` file as a scheme file
// (suffix `.scheme.ltx`) or a data file, parses every scheme file, and
// returns a Project ready for Format/Verify over the data files.
func LoadProject(root string) (*Project, error) {
	var dataFiles, schemeFiles []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".ltx") {
			return nil
		}
		if strings.HasSuffix(path, ".scheme.ltx") {
			schemeFiles = append(schemeFiles, path)
		} else {
			dataFiles = append(dataFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, xrerr.Wrap(xrerr.Io, err, "walking project root %s", root)
	}

	cache := newSchemeCache()
	var schemeDocs []*Document
	for _, path := range schemeFiles {
		doc, err := cache.getOrParse(path)
		if err != nil {
			return nil, err
		}
		schemeDocs = append(schemeDocs, doc)
	}

	return &Project{
		Root:        root,
		DataFiles:   dataFiles,
		SchemeTable: NewSchemeTable(schemeDocs...),
		cache:       cache,
	}, nil
}

// FormatResult is one file's outcome from FormatAll.
type FormatResult struct {
	Path    string
	Changed bool
	Err     error
}

// FormatSummary aggregates FormatAll across a project.
type FormatSummary struct {
	Results []FormatResult
	Changed int
	Failed  int
}

// VerifyResult is one file's outcome from VerifyAll.
type VerifyResult struct {
	Path   string
	Errors []SchemeError
	Err    error
}

// VerifySummary aggregates VerifyAll across a project.
type VerifySummary struct {
	Results  []VerifyResult
	Failed   int
	BadFiles int
}

// workerCount is the project-operation fan-out: bounded, since these are
// local-disk operations dominated by parse/format CPU cost rather than
// network latency.
var workerCount = textui.Tunable(8)

// FormatAll re-serializes every data file with default write options and
// reports which ones would change on disk (write=false) or rewrites them
// in place (write=true). Workers share nothing but an atomic progress
// counter; each operates on an independent path.
func (p *Project) FormatAll(ctx context.Context, write bool) FormatSummary {
	results := fanOut(ctx, p.DataFiles, func(path string) FormatResult {
		return formatOne(path, write)
	})

	summary := FormatSummary{Results: results}
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else if r.Changed {
			summary.Changed++
		}
	}
	return summary
}

func formatOne(path string, write bool) FormatResult {
	before, err := os.ReadFile(path)
	if err != nil {
		return FormatResult{Path: path, Err: xrerr.Wrap(xrerr.Io, err, "reading %s", path)}
	}
	doc, err := Parse(path, string(before), FileLoader{}, ParseOptions{})
	if err != nil {
		return FormatResult{Path: path, Err: err}
	}
	after := Format(doc, DefaultWriteOptions())
	changed := after != string(before)
	if changed && write {
		if err := os.WriteFile(path, []byte(after), 0o644); err != nil {
			return FormatResult{Path: path, Err: xrerr.Wrap(xrerr.Io, err, "writing %s", path)}
		}
	}
	return FormatResult{Path: path, Changed: changed}
}

// VerifyAll parses every data file and checks any `$scheme`-bound section
// against the project's scheme table, collecting errors per file rather
// than aborting at the first bad field.
func (p *Project) VerifyAll(ctx context.Context) VerifySummary {
	results := fanOut(ctx, p.DataFiles, func(path string) VerifyResult {
		return p.verifyOne(path)
	})

	summary := VerifySummary{Results: results}
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else if len(r.Errors) > 0 {
			summary.BadFiles++
		}
	}
	return summary
}

// SchemeDocument returns the parsed scheme file at path, reusing the
// project's warm cache if it was already loaded during LoadProject.
func (p *Project) SchemeDocument(path string) (*Document, error) {
	return p.cache.getOrParse(path)
}

func (p *Project) verifyOne(path string) VerifyResult {
	doc, err := ParseFile(path, ParseOptions{})
	if err != nil {
		return VerifyResult{Path: path, Err: err}
	}
	return VerifyResult{Path: path, Errors: Verify(doc, p.SchemeTable)}
}

// progressInterval is how often fanOut's ticking summary line repeats
// while workers are still running.
var progressInterval = textui.Tunable(500 * time.Millisecond)

// fanOutStats is fanOut's textui.Progress payload: how many of the
// project's files have been processed so far.
type fanOutStats struct {
	done  int64
	total int
}

func (s fanOutStats) String() string {
	return fmt.Sprintf("%d/%d files processed", s.done, s.total)
}

// fanOut runs fn over items on a bounded worker pool, logging per-file
// progress via textui the way project-level commands do, and returns
// results in input order regardless of completion order.
func fanOut[T any](ctx context.Context, items []string, fn func(string) T) []T {
	results := make([]T, len(items))
	jobs := make(chan int)
	var progress int64

	workers := workerCount
	if workers > len(items) {
		workers = len(items)
	}
	if workers == 0 {
		return results
	}

	reporter := textui.NewProgress[fanOutStats](ctx, dlog.LogLevelInfo, progressInterval)
	reporter.Set(fanOutStats{total: len(items)})
	defer reporter.Done()

	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			for idx := range jobs {
				results[idx] = fn(items[idx])
				n := atomic.AddInt64(&progress, 1)
				reporter.Set(fanOutStats{done: n, total: len(items)})
				dlog.Debug(dlog.WithField(ctx, "ltx.project.step", n), "processed file")
			}
			done <- struct{}{}
		}()
	}

	for i, path := range items {
		select {
		case jobs <- i:
			dlog.Debug(dlog.WithField(ctx, "ltx.project.file", path), "queued file")
		case <-ctx.Done():
		}
	}
	close(jobs)
	for w := 0; w < workers; w++ {
		<-done
	}
	return results
}

