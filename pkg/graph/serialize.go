package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Snapshot - Graph Serialization Format
// =============================================================================

// Snapshot is the canonical serialization format for file-reference graphs.
// Used for JSON output, the serve API, and report storage.
//
// The format is human-readable and round-trip safe: scan → export →
// re-import produces an equivalent graph (node identity is recomputed from
// the paths, so casing of the first occurrence wins, as during a scan).
type Snapshot struct {
	Nodes []SnapshotNode `json:"nodes" bson:"nodes"`
	Edges []SnapshotEdge `json:"edges" bson:"edges"`
}

// SnapshotNode is a serialized node.
type SnapshotNode struct {
	Path string `json:"path" bson:"path"`
}

// SnapshotEdge is a serialized directed edge.
type SnapshotEdge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// Snapshot converts the graph to its serialization format.
// Nodes are sorted by case-insensitive path for deterministic output;
// edges keep insertion order.
func (g *Graph) Snapshot() Snapshot {
	nodes := g.Nodes()
	sortByKey(nodes)

	out := Snapshot{
		Nodes: make([]SnapshotNode, len(nodes)),
		Edges: make([]SnapshotEdge, len(g.edges)),
	}
	for i, n := range nodes {
		out.Nodes[i] = SnapshotNode{Path: n.Path}
	}
	for i, e := range g.edges {
		out.Edges[i] = SnapshotEdge{From: e.From.Path, To: e.To.Path}
	}
	return out
}

// FromSnapshot rebuilds a graph from its serialization format.
// Edge endpoints not listed as nodes are registered implicitly, matching
// AddDependency semantics.
func FromSnapshot(s Snapshot) *Graph {
	g := New()
	for _, n := range s.Nodes {
		g.GetOrAddNode(n.Path)
	}
	for _, e := range s.Edges {
		g.AddDependency(e.From, e.To)
	}
	return g
}

// =============================================================================
// Serialization API
// =============================================================================

// MarshalGraph converts a graph to indented JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph as JSON to an io.Writer.
func WriteGraph(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g.Snapshot()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a graph to a JSON file with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (*Graph, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromSnapshot(s), nil
}

// ReadGraphFile reads a JSON file and returns the decoded graph.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}
