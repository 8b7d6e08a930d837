// Package graph implements the directed file-reference graph at the heart
// of refgraph.
//
// A Graph owns a registry of nodes keyed by case-insensitive file path and
// an insertion-ordered list of directed edges. Scanners register files via
// [Graph.GetOrAddNode], rules report discovered references via
// [Graph.AddDependency], and analysis consumers read back through the
// query surface (degree counts, neighbor sets, orphan and top-N queries,
// and cycle extraction).
//
// All operations are total: there is no error return anywhere in the
// package, no node removal, and no validation against the filesystem.
// Whether a referenced path exists on disk is decided by the rules before
// they call AddDependency. The graph is rebuilt from scratch on every scan.
//
// Graph is not safe for concurrent mutation without external
// synchronization; see the scanner package for the locking discipline.
package graph

import (
	"slices"
	"sort"
)

// Graph is a directed multigraph of file references.
//
// The zero value is not usable - use New.
type Graph struct {
	nodes    map[string]*Node   // canonical key -> node
	order    []*Node            // nodes in registration order
	edges    []Edge             // insertion order preserved
	outgoing map[string][]*Node // key -> edge targets, duplicates kept
	incoming map[string][]*Node // key -> edge sources, duplicates kept
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]*Node),
		incoming: make(map[string][]*Node),
	}
}

// GetOrAddNode returns the node for path, creating and registering it if
// no node with an equivalent (case-insensitive) path exists. Repeated
// calls with any casing of the same path return the same instance.
func (g *Graph) GetOrAddNode(path string) *Node {
	key := pathKey(path)
	if n, ok := g.nodes[key]; ok {
		return n
	}
	n := &Node{Path: path, key: key}
	g.nodes[key] = n
	g.order = append(g.order, n)
	return n
}

// Node returns the node for path and true, or nil and false if the path
// has never been registered. Lookup is case-insensitive.
func (g *Graph) Node(path string) (*Node, bool) {
	n, ok := g.nodes[pathKey(path)]
	return n, ok
}

// AddDependency records a "from references to" edge, registering either
// endpoint first if it is not yet a node. No validation is performed
// against the filesystem - callers decide what is worth recording.
func (g *Graph) AddDependency(fromPath, toPath string) {
	from := g.GetOrAddNode(fromPath)
	to := g.GetOrAddNode(toPath)
	g.edges = append(g.edges, Edge{From: from, To: to})
	g.outgoing[from.key] = append(g.outgoing[from.key], to)
	g.incoming[to.key] = append(g.incoming[to.key], from)
}

// Nodes returns all nodes in registration order.
// The returned slice is a copy; the nodes themselves are shared.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, counting duplicates.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// InboundCount returns the number of edges targeting n.
// Duplicate edges from the same source each count once.
func (g *Graph) InboundCount(n *Node) int {
	if n == nil {
		return 0
	}
	return len(g.incoming[n.key])
}

// OutboundCount returns the number of edges originating at n.
// Duplicate edges to the same target each count once.
func (g *Graph) OutboundCount(n *Node) int {
	if n == nil {
		return 0
	}
	return len(g.outgoing[n.key])
}

// InboundSources returns the distinct nodes that reference n,
// sorted by case-insensitive path.
func (g *Graph) InboundSources(n *Node) []*Node {
	if n == nil {
		return nil
	}
	return distinctSorted(g.incoming[n.key])
}

// OutboundTargets returns the distinct nodes that n references,
// sorted by case-insensitive path.
func (g *Graph) OutboundTargets(n *Node) []*Node {
	if n == nil {
		return nil
	}
	return distinctSorted(g.outgoing[n.key])
}

// OrphanNodes returns nodes with neither inbound nor outbound edges,
// sorted by case-insensitive path. A node with an edge in either
// direction is never an orphan.
func (g *Graph) OrphanNodes() []*Node {
	var orphans []*Node
	for _, n := range g.order {
		if len(g.incoming[n.key]) == 0 && len(g.outgoing[n.key]) == 0 {
			orphans = append(orphans, n)
		}
	}
	sortByKey(orphans)
	return orphans
}

// TopInbound returns up to n nodes ranked by descending inbound edge
// count, ties broken by ascending case-insensitive path. Nodes with a
// zero count participate in the ranking; filtering them out is a
// presentation concern left to callers.
func (g *Graph) TopInbound(n int) []*Node {
	return g.rank(n, g.InboundCount)
}

// TopOutbound returns up to n nodes ranked by descending outbound edge
// count, with the same tie-break and zero-count semantics as TopInbound.
func (g *Graph) TopOutbound(n int) []*Node {
	return g.rank(n, g.OutboundCount)
}

func (g *Graph) rank(n int, count func(*Node) int) []*Node {
	ranked := slices.Clone(g.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		ci, cj := count(ranked[i]), count(ranked[j])
		if ci != cj {
			return ci > cj
		}
		return ranked[i].key < ranked[j].key
	})
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// distinctSorted deduplicates nodes by identity and sorts them by
// case-insensitive path.
func distinctSorted(nodes []*Node) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(nodes))
	var out []*Node
	for _, n := range nodes {
		if _, ok := seen[n.key]; ok {
			continue
		}
		seen[n.key] = struct{}{}
		out = append(out, n)
	}
	sortByKey(out)
	return out
}

func sortByKey(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].key < nodes[j].key })
}
