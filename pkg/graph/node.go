package graph

import "strings"

// Node represents a single file in the dependency graph.
//
// Identity is the file path compared case-insensitively, mirroring
// case-insensitive filesystems: "Docs/Intro.md" and "docs/intro.md" are
// the same node. The original casing is preserved in Path for display.
// Nodes are immutable once created and carry no state beyond their path.
type Node struct {
	// Path is the file path exactly as first seen.
	Path string

	key string
}

// Key returns the canonical (lower-cased) form of the path used for
// identity, equality, and ordering.
func (n *Node) Key() string { return n.key }

// Equal reports whether two nodes identify the same file, comparing
// paths case-insensitively.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.key == other.key
}

// Edge represents a directed "From references To" relationship.
// Multiple edges between the same ordered pair are permitted and counted
// individually: a file referencing the same target twice contributes two
// to both its outbound count and the target's inbound count.
type Edge struct {
	From *Node
	To   *Node
}

// pathKey canonicalizes a path for identity comparison.
func pathKey(path string) string { return strings.ToLower(path) }
