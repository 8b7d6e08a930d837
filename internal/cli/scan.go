package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	apperrors "github.com/refgraph/refgraph/pkg/errors"
	"github.com/refgraph/refgraph/pkg/report"
	"github.com/refgraph/refgraph/pkg/scanner"
)

// scanOpts holds the command-line flags for the scan command.
type scanOpts struct {
	top         int      // ranking table length
	excludes    []string // directory names to skip
	workers     int      // concurrent file reads
	format      string   // text, json, or markdown
	output      string   // output file path (stdout if empty)
	interactive bool     // browse the report in a TUI
}

// scanCommand creates the scan command.
func (c *CLI) scanCommand() *cobra.Command {
	opts := scanOpts{format: "text"}

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Build the reference graph for a directory and report on it",
		Long: `Scan a directory tree and report on the file reference graph.

The scanner walks the tree, extracts references from Markdown links and
PowerShell dot-sourcing / Import-Module statements, and summarizes the
result: most-referenced files, files with the most outgoing references,
isolated files, and reference cycles.

Examples:
  refgraph scan                          # scan the current directory
  refgraph scan ./docs --top 5           # shorter ranking tables
  refgraph scan . --format json -o r.json
  refgraph scan . --interactive          # browse the report in the terminal`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return c.runScan(cmd.Context(), root, opts)
		},
	}

	cmd.Flags().IntVar(&opts.top, "top", 0, "ranking table length (default 10)")
	cmd.Flags().StringSliceVar(&opts.excludes, "exclude", nil, "directory names to skip (default: .git,node_modules,bin,obj)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent file reads (default: GOMAXPROCS)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text, json, or markdown")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the report in the terminal")

	return cmd
}

func (c *CLI) runScan(ctx context.Context, root string, opts scanOpts) error {
	if err := apperrors.ValidateFormat(opts.format, "text", "json", "markdown"); err != nil {
		return err
	}
	if err := validateExcludes(opts.excludes); err != nil {
		return err
	}

	rep, err := c.buildReport(ctx, root, opts.excludes, opts.workers, opts.top)
	if err != nil {
		return err
	}

	if opts.interactive {
		return browseReport(rep)
	}

	switch opts.format {
	case "json":
		return writeOutput(opts.output, rep.JSON)
	case "markdown":
		return writeOutput(opts.output, rep.Markdown)
	default:
		return c.printReport(rep)
	}
}

// buildReport runs a scan and derives the report, with spinner feedback
// on the terminal.
func (c *CLI) buildReport(ctx context.Context, root string, excludes []string, workers, top int) (report.Report, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return report.Report{}, err
	}

	prog := newProgress(c.Logger)
	sp := newSpinnerWithContext(ctx, fmt.Sprintf("Scanning %s...", abs))
	sp.Start()

	g, err := scanner.Scan(ctx, abs, c.scanOptions(excludes, workers))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			sp.Stop()
			return report.Report{}, err
		}
		sp.StopWithError(fmt.Sprintf("Scan failed: %v", err))
		return report.Report{}, err
	}
	sp.Stop()
	prog.done(fmt.Sprintf("Scanned %d files", g.NodeCount()))

	rep := report.Build(g, report.Options{Root: abs, TopN: c.topN(top)})
	return rep, nil
}

// printReport renders the report as styled terminal output.
func (c *CLI) printReport(rep report.Report) error {
	printSuccess("Scanned %s", StyleHighlight.Render(rep.Root))
	printStats(rep.NodeCount, rep.EdgeCount, len(rep.Cycles))
	printNewline()

	printRanking("Most referenced", rep.MostReferenced)
	printRanking("Most dependent", rep.MostDependent)

	printInfo("Isolated files: %s", StyleNumber.Render(fmt.Sprintf("%d", len(rep.Orphans))))
	for _, path := range rep.Orphans {
		printFile(path)
	}
	printNewline()

	if len(rep.Cycles) == 0 {
		printInfo("No reference cycles")
	} else {
		printWarning("Reference cycles: %d", len(rep.Cycles))
		for _, cycle := range rep.Cycles {
			printCycle(cycle)
		}
	}
	printNewline()
	printNextStep("Render the graph", fmt.Sprintf("%s export %s -f svg", appName, rep.Root))
	return nil
}

// writeOutput streams render to the output file, or stdout when path is
// empty.
func writeOutput(path string, render func(w io.Writer) error) error {
	if path == "" {
		return render(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := render(f); err != nil {
		return err
	}
	printFile(path)
	return nil
}
