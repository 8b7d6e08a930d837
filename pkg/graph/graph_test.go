package graph

import (
	"testing"
)

func TestGetOrAddNode_CaseInsensitive(t *testing.T) {
	g := New()

	a := g.GetOrAddNode("Docs/Intro.md")
	b := g.GetOrAddNode("docs/intro.md")
	c := g.GetOrAddNode("DOCS/INTRO.MD")

	if a != b || b != c {
		t.Fatalf("expected one node for all casings, got %p %p %p", a, b, c)
	}
	if !a.Equal(b) {
		t.Errorf("Equal() = false for same node")
	}
	if a.Path != "Docs/Intro.md" {
		t.Errorf("Path = %q, want original casing preserved", a.Path)
	}
	if a.Key() != "docs/intro.md" {
		t.Errorf("Key() = %q, want lower-cased path", a.Key())
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
}

func TestAddDependency_RegistersEndpoints(t *testing.T) {
	g := New()
	g.AddDependency("a.md", "b.md")

	if g.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if _, ok := g.Node("A.MD"); !ok {
		t.Errorf("Node lookup should be case-insensitive")
	}
}

func TestCounts_DuplicateEdges(t *testing.T) {
	// A references helper twice; duplicates are counted, not deduplicated.
	g := New()
	g.AddDependency("a.ps1", "helper.ps1")
	g.AddDependency("a.ps1", "helper.ps1")
	g.AddDependency("b.ps1", "helper.ps1")

	helper, _ := g.Node("helper.ps1")
	a, _ := g.Node("a.ps1")
	b, _ := g.Node("b.ps1")

	if got := g.InboundCount(helper); got != 3 {
		t.Errorf("InboundCount(helper) = %d, want 3", got)
	}
	if got := g.OutboundCount(helper); got != 0 {
		t.Errorf("OutboundCount(helper) = %d, want 0", got)
	}
	if got := g.OutboundCount(a); got != 2 {
		t.Errorf("OutboundCount(a) = %d, want 2", got)
	}
	if got := g.OutboundCount(b); got != 1 {
		t.Errorf("OutboundCount(b) = %d, want 1", got)
	}

	// Distinct neighbors collapse duplicates.
	if got := g.InboundSources(helper); len(got) != 2 {
		t.Errorf("InboundSources(helper) = %d nodes, want 2", len(got))
	}
	if got := g.OutboundTargets(a); len(got) != 1 {
		t.Errorf("OutboundTargets(a) = %d nodes, want 1", len(got))
	}
}

func TestSharedHelper(t *testing.T) {
	g := New()
	g.AddDependency("a.md", "helper.md")
	g.AddDependency("b.md", "helper.md")

	helper, _ := g.Node("helper.md")
	a, _ := g.Node("a.md")
	b, _ := g.Node("b.md")

	if got := g.InboundCount(helper); got != 2 {
		t.Errorf("InboundCount(helper) = %d, want 2", got)
	}
	if got := g.OutboundCount(helper); got != 0 {
		t.Errorf("OutboundCount(helper) = %d, want 0", got)
	}
	if g.OutboundCount(a) != 1 || g.OutboundCount(b) != 1 {
		t.Errorf("OutboundCount(a,b) = %d,%d, want 1,1", g.OutboundCount(a), g.OutboundCount(b))
	}
}

func TestOrphanNodes(t *testing.T) {
	g := New()
	g.GetOrAddNode("lonely.md")
	g.AddDependency("a.md", "b.md")

	orphans := g.OrphanNodes()
	if len(orphans) != 1 {
		t.Fatalf("OrphanNodes() = %d nodes, want 1", len(orphans))
	}
	if orphans[0].Path != "lonely.md" {
		t.Errorf("orphan = %q, want lonely.md", orphans[0].Path)
	}

	// An edge in either direction disqualifies a node.
	g.AddDependency("c.md", "lonely.md")
	if got := g.OrphanNodes(); len(got) != 0 {
		t.Errorf("OrphanNodes() after edge = %d nodes, want 0", len(got))
	}
}

func TestTopInbound(t *testing.T) {
	// Inbound counts: b=2, c=1, a=0.
	g := New()
	g.GetOrAddNode("a.md")
	g.AddDependency("a.md", "b.md")
	g.AddDependency("c.md", "b.md")
	g.AddDependency("a.md", "c.md")

	top := g.TopInbound(2)
	if len(top) != 2 {
		t.Fatalf("TopInbound(2) = %d nodes, want 2", len(top))
	}
	if top[0].Path != "b.md" || top[1].Path != "c.md" {
		t.Errorf("TopInbound(2) = [%s, %s], want [b.md, c.md]", top[0].Path, top[1].Path)
	}
}

func TestTopInbound_IncludesZeroCounts(t *testing.T) {
	g := New()
	g.GetOrAddNode("z.md")
	g.GetOrAddNode("a.md")

	top := g.TopInbound(10)
	if len(top) != 2 {
		t.Fatalf("TopInbound(10) = %d nodes, want 2 (zero counts included)", len(top))
	}
	// Ties broken by ascending case-insensitive path.
	if top[0].Path != "a.md" || top[1].Path != "z.md" {
		t.Errorf("tie-break order = [%s, %s], want [a.md, z.md]", top[0].Path, top[1].Path)
	}
}

func TestTopOutbound(t *testing.T) {
	g := New()
	g.AddDependency("hub.md", "a.md")
	g.AddDependency("hub.md", "b.md")
	g.AddDependency("a.md", "b.md")

	top := g.TopOutbound(1)
	if len(top) != 1 {
		t.Fatalf("TopOutbound(1) = %d nodes, want 1", len(top))
	}
	if top[0].Path != "hub.md" {
		t.Errorf("TopOutbound(1)[0] = %q, want hub.md", top[0].Path)
	}
}

func TestTopInbound_TieBreakIgnoresCase(t *testing.T) {
	g := New()
	g.GetOrAddNode("B.md")
	g.GetOrAddNode("a.md")
	g.GetOrAddNode("C.md")

	top := g.TopInbound(3)
	want := []string{"a.md", "B.md", "C.md"}
	for i, n := range top {
		if n.Path != want[i] {
			t.Errorf("top[%d] = %q, want %q", i, n.Path, want[i])
		}
	}
}

func TestEdges_InsertionOrder(t *testing.T) {
	g := New()
	g.AddDependency("a.md", "b.md")
	g.AddDependency("b.md", "c.md")
	g.AddDependency("a.md", "c.md")

	edges := g.Edges()
	if len(edges) != 3 {
		t.Fatalf("Edges() = %d, want 3", len(edges))
	}
	if edges[0].From.Path != "a.md" || edges[0].To.Path != "b.md" {
		t.Errorf("edges[0] = %s->%s, want a.md->b.md", edges[0].From.Path, edges[0].To.Path)
	}
	if edges[2].From.Path != "a.md" || edges[2].To.Path != "c.md" {
		t.Errorf("edges[2] = %s->%s, want a.md->c.md", edges[2].From.Path, edges[2].To.Path)
	}
}

func TestQueries_NilNode(t *testing.T) {
	g := New()
	if g.InboundCount(nil) != 0 || g.OutboundCount(nil) != 0 {
		t.Errorf("degree of nil node should be 0")
	}
	if g.InboundSources(nil) != nil || g.OutboundTargets(nil) != nil {
		t.Errorf("neighbors of nil node should be nil")
	}
}
