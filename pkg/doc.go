// Package pkg provides the core libraries for refgraph.
//
// # Overview
//
// Refgraph builds a directed graph of file references inside a local
// directory tree and reports on it. The typical data flow:
//
//	Directory tree
//	     ↓
//	[scanner] walk the tree, read files, apply reference rules
//	     ↓
//	[rules]   extract references (Markdown links, PowerShell imports)
//	     ↓
//	[graph]   nodes, edges, rankings, orphans, cycle detection
//	     ↓
//	[report] / [render]  summaries (JSON, Markdown) or diagrams (DOT, SVG, PNG)
//
// # Main Packages
//
// [graph] - The dependency graph itself: case-insensitive node
// identity, duplicate-preserving edges, inbound/outbound rankings,
// orphan detection, and strongly-connected-component cycle detection.
//
// [rules] - Reference extraction rules. Each rule declares which file
// extensions it handles and records the references it finds. Built-in
// rules cover Markdown inline links and PowerShell dot-sourcing /
// Import-Module statements.
//
// [scanner] - Directory traversal and parallel file reading, feeding
// the rules in deterministic order so repeated scans of the same tree
// produce identical graphs.
//
// [report] - Scan summaries: counts, most-referenced and
// most-dependent rankings, isolated files, cycles. Serializes to JSON
// and Markdown.
//
// [render] - Graphviz output: DOT source plus SVG and PNG rendering,
// with cycle members highlighted.
//
// # Infrastructure
//
// [cache] - Artifact cache for rendered graphs with file, Redis, and
// null backends.
//
// [store] - Report persistence for serve mode, in memory or MongoDB.
//
// [errors] - Structured errors with machine-readable codes, shared by
// the CLI and the HTTP API.
//
// [graph]: https://pkg.go.dev/github.com/refgraph/refgraph/pkg/graph
// [rules]: https://pkg.go.dev/github.com/refgraph/refgraph/pkg/rules
// [scanner]: https://pkg.go.dev/github.com/refgraph/refgraph/pkg/scanner
// [report]: https://pkg.go.dev/github.com/refgraph/refgraph/pkg/report
// [render]: https://pkg.go.dev/github.com/refgraph/refgraph/pkg/render
// [cache]: https://pkg.go.dev/github.com/refgraph/refgraph/pkg/cache
// [store]: https://pkg.go.dev/github.com/refgraph/refgraph/pkg/store
// [errors]: https://pkg.go.dev/github.com/refgraph/refgraph/pkg/errors
package pkg
