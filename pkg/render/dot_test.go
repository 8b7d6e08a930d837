package render

import (
	"strings"
	"testing"

	"github.com/refgraph/refgraph/pkg/graph"
)

func TestToDOT(t *testing.T) {
	g := graph.New()
	g.AddDependency("docs/a.md", "docs/b.md")
	g.GetOrAddNode("docs/lonely.md")

	dot := ToDOT(g, Options{})

	for _, want := range []string{
		"digraph refs {",
		`"docs/a.md" [label="a.md"];`,
		`"docs/lonely.md" [label="lonely.md"];`,
		`"docs/a.md" -> "docs/b.md";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
}

func TestToDOT_FullPaths(t *testing.T) {
	g := graph.New()
	g.GetOrAddNode("docs/a.md")

	dot := ToDOT(g, Options{FullPaths: true})
	if !strings.Contains(dot, `label="docs/a.md"`) {
		t.Errorf("expected full path label\n%s", dot)
	}
}

func TestToDOT_HighlightCycles(t *testing.T) {
	g := graph.New()
	g.AddDependency("a.md", "b.md")
	g.AddDependency("b.md", "a.md")
	g.AddDependency("a.md", "c.md")

	dot := ToDOT(g, Options{HighlightCycles: true})

	if !strings.Contains(dot, `"a.md" [label="a.md", color=red, penwidth=2];`) {
		t.Errorf("cycle member a.md not highlighted\n%s", dot)
	}
	if strings.Contains(dot, `"c.md" [label="c.md", color=red`) {
		t.Errorf("non-member c.md should not be highlighted\n%s", dot)
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	build := func() *graph.Graph {
		g := graph.New()
		g.AddDependency("z.md", "a.md")
		g.AddDependency("m.md", "a.md")
		g.GetOrAddNode("q.md")
		return g
	}

	first := ToDOT(build(), Options{})
	for i := 0; i < 5; i++ {
		if got := ToDOT(build(), Options{}); got != first {
			t.Fatal("DOT output varies between identical graphs")
		}
	}
}
