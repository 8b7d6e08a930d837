package rules

import (
	"bufio"
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/refgraph/refgraph/pkg/graph"
)

var (
	// dotSourceRe matches dot-sourcing: a lone "." followed by a path
	// token, after optional leading whitespace.
	dotSourceRe = regexp.MustCompile(`^\s*\.\s+(\S.*)$`)

	// importModuleRe matches the Import-Module directive and its argument.
	importModuleRe = regexp.MustCompile(`(?i)^\s*Import-Module\s+(\S.*)$`)

	// scriptRootRe matches the bare and braced spellings of the
	// script-directory placeholder.
	scriptRootRe = regexp.MustCompile(`(?i)\$\{?PSScriptRoot\}?`)
)

// PowerShell extracts dot-sourced scripts and Import-Module targets from
// PowerShell files (.ps1, .psm1, .psd1).
//
// Both patterns are evaluated per line. A path token may be
// double-quoted, single-quoted, or a bare whitespace-delimited run.
// $PSScriptRoot (bare or braced) is substituted with the script's own
// directory; any other remaining $-variable makes the candidate
// unresolvable and it is discarded. Tokens that do not look like paths -
// no relative prefix, not absolute, no separator anywhere - are treated
// as installed-module names, not files, and yield no edge.
type PowerShell struct{}

// CanHandle reports whether path names a PowerShell script, module, or
// data file.
func (PowerShell) CanHandle(path string) bool {
	return hasExt(path, ".ps1", ".psm1", ".psd1")
}

// Analyze records an edge for every dot-sourced or imported script path
// that resolves to an existing file.
func (PowerShell) Analyze(path string, content []byte, g *graph.Graph) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()

		var rest string
		if m := dotSourceRe.FindStringSubmatch(line); m != nil {
			rest = m[1]
		} else if m := importModuleRe.FindStringSubmatch(line); m != nil {
			rest = m[1]
		} else {
			continue
		}

		token, ok := pathToken(rest)
		if !ok {
			continue
		}
		candidate, ok := substituteScriptRoot(token, filepath.Dir(path))
		if !ok || !looksLikePath(candidate) {
			continue
		}
		if resolved, ok := resolveTarget(path, candidate); ok {
			g.AddDependency(path, resolved)
		}
	}
}

// pathToken extracts the first argument token from rest: a quoted string
// (quotes stripped) or a bare run up to the next whitespace.
func pathToken(rest string) (string, bool) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", false
	}

	if quote := rest[0]; quote == '"' || quote == '\'' {
		end := strings.IndexByte(rest[1:], quote)
		if end < 0 {
			return "", false
		}
		return rest[1 : 1+end], true
	}

	if i := strings.IndexFunc(rest, isSpace); i >= 0 {
		rest = rest[:i]
	}
	return rest, true
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' }

// substituteScriptRoot replaces the script-directory placeholder with dir
// and reports whether the token is fully resolved afterwards. A leftover
// $-sigil means variable indirection this tool does not follow.
func substituteScriptRoot(token, dir string) (string, bool) {
	token = scriptRootRe.ReplaceAllString(token, dir)
	if strings.ContainsRune(token, '$') {
		return "", false
	}
	return token, true
}

// looksLikePath reports whether token is plausibly a file path rather
// than a bare identifier such as an installed module name.
func looksLikePath(token string) bool {
	if token == "" {
		return false
	}
	for _, prefix := range []string{"./", ".\\", "../", "..\\", "/", "\\"} {
		if strings.HasPrefix(token, prefix) {
			return true
		}
	}
	if filepath.IsAbs(token) {
		return true
	}
	return strings.ContainsAny(token, `/\`)
}
