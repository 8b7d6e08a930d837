// Package report turns a completed dependency graph into the statistics
// refgraph presents to users: node and edge counts, most-referenced and
// most-dependent files, isolated files, and cycles.
//
// The package is a pure consumer of the graph's query surface; it never
// mutates the graph. Zero-count entries are filtered out of the rankings
// here - the graph's top-N queries deliberately include them so other
// consumers can see the raw total order.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/refgraph/refgraph/pkg/graph"
)

// DefaultTopN is the default length of the ranking tables.
const DefaultTopN = 10

// Ranking is one row of a most-referenced or most-dependent table.
type Ranking struct {
	Path  string `json:"path" bson:"path"`
	Count int    `json:"count" bson:"count"`
}

// Report is a serializable summary of one scan.
type Report struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string    `json:"name,omitempty" bson:"name,omitempty"`
	Root        string    `json:"root" bson:"root"`
	GeneratedAt time.Time `json:"generated_at" bson:"generated_at"`

	NodeCount int `json:"node_count" bson:"node_count"`
	EdgeCount int `json:"edge_count" bson:"edge_count"`

	// MostReferenced ranks files by inbound references, MostDependent by
	// outbound references. Zero-count files are omitted.
	MostReferenced []Ranking `json:"most_referenced" bson:"most_referenced"`
	MostDependent  []Ranking `json:"most_dependent" bson:"most_dependent"`

	// Orphans lists files with no references in either direction.
	Orphans []string `json:"orphans" bson:"orphans"`

	// Cycles lists each cycle as its sorted member paths.
	Cycles [][]string `json:"cycles" bson:"cycles"`

	// Graph is the full snapshot the report was derived from.
	Graph graph.Snapshot `json:"graph" bson:"graph"`
}

// Options configures report construction.
type Options struct {
	// Root is the scanned directory; node paths under it are reported
	// relative to it for readability.
	Root string

	// TopN bounds the ranking tables. Defaults to DefaultTopN.
	TopN int
}

// Build derives a report from a completed graph.
func Build(g *graph.Graph, opts Options) Report {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}

	r := Report{
		Root:        opts.Root,
		GeneratedAt: time.Now().UTC(),
		NodeCount:   g.NodeCount(),
		EdgeCount:   g.EdgeCount(),
		Graph:       g.Snapshot(),
	}

	for _, n := range g.TopInbound(opts.TopN) {
		if count := g.InboundCount(n); count > 0 {
			r.MostReferenced = append(r.MostReferenced, Ranking{Path: display(opts.Root, n.Path), Count: count})
		}
	}
	for _, n := range g.TopOutbound(opts.TopN) {
		if count := g.OutboundCount(n); count > 0 {
			r.MostDependent = append(r.MostDependent, Ranking{Path: display(opts.Root, n.Path), Count: count})
		}
	}
	for _, n := range g.OrphanNodes() {
		r.Orphans = append(r.Orphans, display(opts.Root, n.Path))
	}
	for _, cycle := range g.Cycles() {
		members := make([]string, len(cycle))
		for i, n := range cycle {
			members[i] = display(opts.Root, n.Path)
		}
		r.Cycles = append(r.Cycles, members)
	}

	return r
}

// display shortens path relative to root when possible.
func display(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "" {
		return path
	}
	return rel
}

// JSON writes the report as indented JSON.
func (r Report) JSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
