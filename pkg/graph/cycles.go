package graph

import (
	"slices"
	"sort"
)

// Cycles returns every cycle in the graph as a sorted set of member nodes.
//
// Detection runs Tarjan's strongly-connected-component decomposition with
// an explicit work stack, so arbitrarily deep graphs cannot exhaust the
// goroutine stack. An SCC of two or more nodes is always a cycle; a
// single-node SCC is a cycle only when the node has an edge to itself.
//
// The result is deterministic and independent of map iteration order:
// members within a cycle are sorted by ascending case-insensitive path,
// and cycles are sorted by ascending size, ties broken by the first
// member's case-insensitive path. Runs in O(V+E).
func (g *Graph) Cycles() [][]*Node {
	sccs := g.stronglyConnected()

	var cycles [][]*Node
	for _, scc := range sccs {
		if len(scc) == 1 && !g.hasSelfLoop(scc[0]) {
			continue
		}
		sortByKey(scc)
		cycles = append(cycles, scc)
	}

	sort.Slice(cycles, func(i, j int) bool {
		if len(cycles[i]) != len(cycles[j]) {
			return len(cycles[i]) < len(cycles[j])
		}
		return cycles[i][0].key < cycles[j][0].key
	})
	return cycles
}

// frame is one suspended DFS visit on the explicit traversal stack.
type frame struct {
	node  *Node
	child int // index of the next outgoing edge to follow
}

// stronglyConnected computes the SCC decomposition of the graph.
// Roots are visited in sorted key order; the per-SCC membership is
// independent of visitation order anyway, this just keeps discovery
// indices reproducible.
func (g *Graph) stronglyConnected() [][]*Node {
	index := make(map[string]int, len(g.nodes))
	lowlink := make(map[string]int, len(g.nodes))
	onStack := make(map[string]bool, len(g.nodes))
	var stack []*Node
	var sccs [][]*Node
	next := 0

	roots := slices.Clone(g.order)
	sortByKey(roots)

	for _, root := range roots {
		if _, seen := index[root.key]; seen {
			continue
		}

		index[root.key] = next
		lowlink[root.key] = next
		next++
		stack = append(stack, root)
		onStack[root.key] = true
		frames := []frame{{node: root}}

		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			children := g.outgoing[f.node.key]

			if f.child < len(children) {
				child := children[f.child]
				f.child++
				if _, seen := index[child.key]; !seen {
					index[child.key] = next
					lowlink[child.key] = next
					next++
					stack = append(stack, child)
					onStack[child.key] = true
					frames = append(frames, frame{node: child})
				} else if onStack[child.key] {
					if index[child.key] < lowlink[f.node.key] {
						lowlink[f.node.key] = index[child.key]
					}
				}
				continue
			}

			// All children explored: the node roots an SCC when its
			// lowlink never escaped its own discovery index.
			if lowlink[f.node.key] == index[f.node.key] {
				var scc []*Node
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w.key] = false
					scc = append(scc, w)
					if w.key == f.node.key {
						break
					}
				}
				sccs = append(sccs, scc)
			}

			done := f.node
			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1].node
				if lowlink[done.key] < lowlink[parent.key] {
					lowlink[parent.key] = lowlink[done.key]
				}
			}
		}
	}

	return sccs
}

// hasSelfLoop reports whether n has at least one edge to itself.
func (g *Graph) hasSelfLoop(n *Node) bool {
	for _, target := range g.outgoing[n.key] {
		if target.key == n.key {
			return true
		}
	}
	return false
}
