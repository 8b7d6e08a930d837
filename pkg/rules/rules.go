// Package rules implements the pluggable reference extractors that feed
// the dependency graph.
//
// A Rule recognizes one file type and knows how to locate textual
// reference tokens inside already-loaded content, resolve them to files
// on disk, and record edges on the graph. Rules are the only producers of
// edges: the scanner walks the tree, reads files, and hands each file to
// every applicable rule.
//
// The active rule set is supplied by the caller (the CLI wires
// [Default]); the scanner never hard-codes it, so new file types plug in
// without touching the traversal.
//
// Extraction is deliberately forgiving. Anything that cannot be resolved
// to an existing regular file - external URLs, unresolved variables,
// bare module names, targets that do not exist - is silently dropped.
// The graph only ever models resolvable dependencies, and a rule never
// returns an error.
package rules

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/refgraph/refgraph/pkg/graph"
)

// Rule recognizes and extracts file references for one file type.
type Rule interface {
	// CanHandle reports whether the rule applies to the file at path.
	// It is a pure predicate on the path; no I/O is performed.
	CanHandle(path string) bool

	// Analyze locates reference tokens in content, resolves each against
	// the directory containing path, and calls g.AddDependency for every
	// reference naming an existing regular file. Unresolvable or missing
	// targets are skipped without error.
	Analyze(path string, content []byte, g *graph.Graph)
}

// Default returns the standard rule set: Markdown inline links and
// PowerShell dot-sourcing / module imports.
func Default() []Rule {
	return []Rule{Markdown{}, PowerShell{}}
}

// resolveTarget resolves a candidate reference relative to the directory
// of the source file and reports whether it names an existing regular
// file. Both separator conventions are accepted; `.` and `..` segments
// are collapsed during cleaning.
func resolveTarget(sourcePath, candidate string) (string, bool) {
	candidate = normalizeSeparators(candidate)
	resolved := candidate
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(sourcePath), resolved)
	}
	resolved = filepath.Clean(resolved)

	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return resolved, true
}

// normalizeSeparators rewrites both `/` and `\` to the host separator so
// the same reference patterns work across path conventions.
func normalizeSeparators(p string) string {
	p = strings.ReplaceAll(p, "\\", string(filepath.Separator))
	return strings.ReplaceAll(p, "/", string(filepath.Separator))
}

// hasExt reports whether path has one of the given extensions,
// compared case-insensitively.
func hasExt(path string, exts ...string) bool {
	ext := filepath.Ext(path)
	for _, want := range exts {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}
