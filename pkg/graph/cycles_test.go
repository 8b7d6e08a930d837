package graph

import (
	"fmt"
	"testing"
)

func cyclePaths(cycles [][]*Node) [][]string {
	out := make([][]string, len(cycles))
	for i, c := range cycles {
		paths := make([]string, len(c))
		for j, n := range c {
			paths[j] = n.Path
		}
		out[i] = paths
	}
	return out
}

func TestCycles(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Graph
		want  [][]string
	}{
		{
			name:  "Empty",
			build: New,
			want:  nil,
		},
		{
			name: "LinearChain",
			build: func() *Graph {
				g := New()
				g.AddDependency("a.md", "b.md")
				g.AddDependency("b.md", "c.md")
				return g
			},
			want: nil,
		},
		{
			name: "TwoNodeCycle",
			build: func() *Graph {
				g := New()
				g.AddDependency("a.md", "b.md")
				g.AddDependency("b.md", "a.md")
				return g
			},
			want: [][]string{{"a.md", "b.md"}},
		},
		{
			name: "ThreeNodeCycle",
			build: func() *Graph {
				g := New()
				g.AddDependency("a.md", "b.md")
				g.AddDependency("b.md", "c.md")
				g.AddDependency("c.md", "a.md")
				return g
			},
			want: [][]string{{"a.md", "b.md", "c.md"}},
		},
		{
			name: "SelfLoop",
			build: func() *Graph {
				g := New()
				g.AddDependency("a.md", "a.md")
				return g
			},
			want: [][]string{{"a.md"}},
		},
		{
			name: "SingleNodeWithoutSelfLoopIsNotACycle",
			build: func() *Graph {
				g := New()
				g.GetOrAddNode("a.md")
				g.AddDependency("b.md", "c.md")
				return g
			},
			want: nil,
		},
		{
			name: "Diamond",
			build: func() *Graph {
				g := New()
				g.AddDependency("a.md", "b.md")
				g.AddDependency("a.md", "c.md")
				g.AddDependency("b.md", "d.md")
				g.AddDependency("c.md", "d.md")
				return g
			},
			want: nil,
		},
		{
			name: "TwoSeparateCycles",
			build: func() *Graph {
				g := New()
				g.AddDependency("c.md", "d.md")
				g.AddDependency("d.md", "c.md")
				g.AddDependency("a.md", "b.md")
				g.AddDependency("b.md", "a.md")
				return g
			},
			// Equal sizes: ordered by first member's path.
			want: [][]string{{"a.md", "b.md"}, {"c.md", "d.md"}},
		},
		{
			name: "SizeOrderBeforePathOrder",
			build: func() *Graph {
				g := New()
				g.AddDependency("a.md", "b.md")
				g.AddDependency("b.md", "c.md")
				g.AddDependency("c.md", "a.md")
				g.AddDependency("z.md", "z.md")
				return g
			},
			want: [][]string{{"z.md"}, {"a.md", "b.md", "c.md"}},
		},
		{
			name: "CycleWithTail",
			build: func() *Graph {
				g := New()
				g.AddDependency("entry.md", "a.md")
				g.AddDependency("a.md", "b.md")
				g.AddDependency("b.md", "a.md")
				g.AddDependency("b.md", "leaf.md")
				return g
			},
			want: [][]string{{"a.md", "b.md"}},
		},
		{
			name: "CaseInsensitiveMembers",
			build: func() *Graph {
				g := New()
				g.AddDependency("A.md", "b.md")
				g.AddDependency("B.md", "a.md")
				return g
			},
			want: [][]string{{"A.md", "b.md"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cyclePaths(tt.build().Cycles())

			if len(got) != len(tt.want) {
				t.Fatalf("Cycles() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if len(got[i]) != len(tt.want[i]) {
					t.Fatalf("cycle %d = %v, want %v", i, got[i], tt.want[i])
				}
				for j := range got[i] {
					if got[i][j] != tt.want[i][j] {
						t.Errorf("cycle %d member %d = %q, want %q", i, j, got[i][j], tt.want[i][j])
					}
				}
			}
		})
	}
}

func TestCycles_DeepChainDoesNotOverflow(t *testing.T) {
	// A long chain closed into one big cycle exercises the explicit
	// work stack; a recursive implementation would blow the stack here.
	const n = 200000
	g := New()
	for i := 0; i < n; i++ {
		g.AddDependency(pathFor(i), pathFor((i+1)%n))
	}

	cycles := g.Cycles()
	if len(cycles) != 1 {
		t.Fatalf("Cycles() = %d cycles, want 1", len(cycles))
	}
	if len(cycles[0]) != n {
		t.Errorf("cycle size = %d, want %d", len(cycles[0]), n)
	}
}

func pathFor(i int) string {
	return fmt.Sprintf("docs/file-%06d.md", i)
}
