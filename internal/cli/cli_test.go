package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/refgraph/refgraph/internal/config"
	"github.com/refgraph/refgraph/pkg/report"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := map[string]bool{
		"scan":       false,
		"export":     false,
		"serve":      false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestScanCommandJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte("[g](guide.md)"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "guide.md"), []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "report.json")

	c := New(io.Discard, log.ErrorLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"scan", dir, "--format", "json", "--output", output})

	if err := root.Execute(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if rep.NodeCount != 2 || rep.EdgeCount != 1 {
		t.Errorf("counts = %d nodes / %d edges, want 2/1", rep.NodeCount, rep.EdgeCount)
	}
}

func TestScanCommandUnknownFormat(t *testing.T) {
	c := New(io.Discard, log.ErrorLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"scan", t.TempDir(), "--format", "yaml"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestScanOptionsLayering(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.Config = config.Config{Scan: config.ScanConfig{
		Exclude: []string{"vendor"},
		Workers: 3,
		Top:     7,
	}}

	opts := c.scanOptions(nil, 0)
	if len(opts.ExcludeDirs) != 1 || opts.ExcludeDirs[0] != "vendor" {
		t.Errorf("ExcludeDirs = %v, want config value", opts.ExcludeDirs)
	}
	if opts.Workers != 3 {
		t.Errorf("Workers = %d, want config value 3", opts.Workers)
	}

	opts = c.scanOptions([]string{"dist"}, 8)
	if len(opts.ExcludeDirs) != 1 || opts.ExcludeDirs[0] != "dist" {
		t.Errorf("ExcludeDirs = %v, flags should win", opts.ExcludeDirs)
	}
	if opts.Workers != 8 {
		t.Errorf("Workers = %d, flags should win", opts.Workers)
	}

	if got := c.topN(0); got != 7 {
		t.Errorf("topN(0) = %d, want config value 7", got)
	}
	if got := c.topN(2); got != 2 {
		t.Errorf("topN(2) = %d, flags should win", got)
	}
}

func TestReportModelNavigation(t *testing.T) {
	rep := report.Report{
		MostReferenced: []report.Ranking{{Path: "a.md", Count: 3}, {Path: "b.md", Count: 1}},
		Orphans:        []string{"lonely.md"},
	}
	m := NewReportModel(rep)

	if m.Tab != tabReferenced {
		t.Fatalf("initial tab = %v, want referenced", m.Tab)
	}
	if m.rowCount() != 2 {
		t.Errorf("rowCount = %d, want 2", m.rowCount())
	}

	view := m.View()
	if !bytes.Contains([]byte(view), []byte("a.md")) {
		t.Error("view should show the top-ranked file")
	}
}
