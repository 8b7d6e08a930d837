// Package scanner walks a directory tree and feeds file contents through
// the reference rules to build a dependency graph.
//
// The scanner is deliberately thin: it decides which files to read and in
// what order, and delegates all reference extraction to the rules. Reads
// run in parallel across a bounded worker pool, but rule application is
// serialized in sorted file order against the shared graph, so a scan of
// the same tree always produces the same graph, byte for byte.
//
// Failures are per-item: an unreadable file or directory is logged at
// debug level and skipped, never aborting the scan. Cancellation is
// checked between files; a cancelled scan returns the context error
// alongside the partially built graph.
package scanner

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/refgraph/refgraph/pkg/errors"
	"github.com/refgraph/refgraph/pkg/graph"
	"github.com/refgraph/refgraph/pkg/rules"
)

// DefaultExcludes returns the directory names skipped by default.
func DefaultExcludes() []string {
	return []string{".git", "node_modules", "bin", "obj"}
}

// Options configures a scan.
type Options struct {
	// ExcludeDirs are directory names (not paths) skipped during
	// traversal. Defaults to DefaultExcludes when nil.
	ExcludeDirs []string

	// Rules is the active rule set. Defaults to rules.Default when nil.
	Rules []rules.Rule

	// Workers bounds the number of concurrent file reads.
	// Defaults to the number of CPUs.
	Workers int

	// Logger receives per-file progress and skip messages.
	// Defaults to a discarding logger.
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.ExcludeDirs == nil {
		o.ExcludeDirs = DefaultExcludes()
	}
	if o.Rules == nil {
		o.Rules = rules.Default()
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Scan walks the tree rooted at root and returns the completed
// dependency graph. Every readable file at least one rule can handle
// becomes a node, whether or not it references anything.
func Scan(ctx context.Context, root string, opts Options) (*graph.Graph, error) {
	opts.setDefaults()

	if err := apperrors.ValidateRoot(root); err != nil {
		return nil, err
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRoot, err, "scan root %s", root)
	}
	if !info.IsDir() {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRoot, "scan root %s is not a directory", root)
	}

	files := collectFiles(absRoot, opts)
	opts.Logger.Debugf("found %d files to analyze under %s", len(files), absRoot)

	contents, err := readAll(ctx, files, opts)
	if err != nil {
		return graph.New(), err
	}

	g := graph.New()
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return g, err
		}
		if contents[i] == nil {
			continue // read failed, already logged
		}
		g.GetOrAddNode(path)
		for _, rule := range opts.Rules {
			if rule.CanHandle(path) {
				rule.Analyze(path, contents[i], g)
			}
		}
	}
	return g, nil
}

// collectFiles walks the tree and returns the sorted list of files some
// rule can handle. Inaccessible entries are skipped.
func collectFiles(root string, opts Options) []string {
	excluded := make(map[string]struct{}, len(opts.ExcludeDirs))
	for _, name := range opts.ExcludeDirs {
		excluded[name] = struct{}{}
	}

	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			opts.Logger.Debugf("skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if _, skip := excluded[d.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		for _, rule := range opts.Rules {
			if rule.CanHandle(path) {
				files = append(files, path)
				break
			}
		}
		return nil
	})

	sort.Strings(files)
	return files
}

// readAll loads file contents through a bounded worker pool.
// A failed read leaves a nil entry and is logged, not returned: per-item
// failures never abort a scan. The only error out of here is
// cancellation.
func readAll(ctx context.Context, files []string, opts Options) ([][]byte, error) {
	contents := make([][]byte, len(files))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Workers)
	for i, path := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				opts.Logger.Debugf("skipping %s: %v", path, err)
				return nil
			}
			contents[i] = data
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return contents, nil
}
