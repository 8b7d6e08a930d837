package rules

import (
	"regexp"
	"strings"

	"github.com/refgraph/refgraph/pkg/graph"
)

// markdownLinkRe matches the target of a Markdown inline link: "](target)".
var markdownLinkRe = regexp.MustCompile(`\]\(([^)]+)\)`)

// Markdown extracts relative inline-link targets from Markdown files.
//
// Every "](target)" occurrence is a candidate. Targets starting with
// "http" (case-insensitive) are external and ignored; the rest are
// resolved relative to the file's directory.
type Markdown struct{}

// CanHandle reports whether path names a Markdown file.
func (Markdown) CanHandle(path string) bool {
	return hasExt(path, ".md")
}

// Analyze records an edge for every inline-link target that resolves to
// an existing file.
func (Markdown) Analyze(path string, content []byte, g *graph.Graph) {
	for _, m := range markdownLinkRe.FindAllSubmatch(content, -1) {
		target := strings.TrimSpace(string(m[1]))
		if target == "" || isExternalURL(target) {
			continue
		}
		if resolved, ok := resolveTarget(path, target); ok {
			g.AddDependency(path, resolved)
		}
	}
}

// isExternalURL reports whether target points outside the file tree.
func isExternalURL(target string) bool {
	return len(target) >= 4 && strings.EqualFold(target[:4], "http")
}
