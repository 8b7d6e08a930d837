package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/refgraph/refgraph/pkg/cache"
	apperrors "github.com/refgraph/refgraph/pkg/errors"
	"github.com/refgraph/refgraph/pkg/graph"
	"github.com/refgraph/refgraph/pkg/render"
	"github.com/refgraph/refgraph/pkg/scanner"
)

// exportCacheTTL bounds how long rendered artifacts stay valid. The key
// includes the graph content hash, so stale entries only cost disk, not
// correctness.
const exportCacheTTL = 7 * 24 * time.Hour

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	format     string   // dot, svg, or png
	output     string   // output file path
	fullPaths  bool     // label nodes with full paths instead of base names
	plainNodes bool     // disable cycle highlighting
	noCache    bool     // bypass the artifact cache
	excludes   []string // directory names to skip
	workers    int      // concurrent file reads
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{format: "svg"}

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Render the reference graph as DOT, SVG, or PNG",
		Long: `Scan a directory tree and render its reference graph with Graphviz.

Cycle members are highlighted in red unless --plain is given. Rendered
SVG and PNG artifacts are cached by graph content hash, so re-exporting
an unchanged tree is instant.

Examples:
  refgraph export                       # SVG of the current directory
  refgraph export ./docs -f png -o docs.png
  refgraph export . -f dot              # DOT source on stdout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return c.runExport(cmd.Context(), root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg, or png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: refgraph.<format>, stdout for dot)")
	cmd.Flags().BoolVar(&opts.fullPaths, "full-paths", false, "label nodes with full paths")
	cmd.Flags().BoolVar(&opts.plainNodes, "plain", false, "disable cycle highlighting")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().StringSliceVar(&opts.excludes, "exclude", nil, "directory names to skip (default: .git,node_modules,bin,obj)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent file reads (default: GOMAXPROCS)")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, root string, opts exportOpts) error {
	if err := apperrors.ValidateFormat(opts.format, "dot", "svg", "png"); err != nil {
		return err
	}
	if err := validateExcludes(opts.excludes); err != nil {
		return err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	sp := newSpinnerWithContext(ctx, fmt.Sprintf("Scanning %s...", abs))
	sp.Start()
	g, err := scanner.Scan(ctx, abs, c.scanOptions(opts.excludes, opts.workers))
	if err != nil {
		sp.Stop()
		return err
	}
	sp.Stop()

	dot := render.ToDOT(g, render.Options{
		FullPaths:       opts.fullPaths,
		HighlightCycles: !opts.plainNodes,
	})

	if opts.format == "dot" {
		if opts.output == "" {
			fmt.Print(dot)
			return nil
		}
		if err := os.WriteFile(opts.output, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.output, err)
		}
		printSuccess("Exported %s", StyleHighlight.Render(opts.output))
		return nil
	}

	data, cached, err := c.renderCached(ctx, g, dot, opts)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = appName + "." + opts.format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Exported %s", StyleHighlight.Render(output))
	printStats(g.NodeCount(), g.EdgeCount(), len(g.Cycles()))
	if cached {
		printDetail("Render served from cache")
	}
	return nil
}

// renderCached renders the DOT source via Graphviz, consulting the
// artifact cache first. The key covers graph content, format, and
// render options.
func (c *CLI) renderCached(ctx context.Context, g *graph.Graph, dot string, opts exportOpts) ([]byte, bool, error) {
	store := c.newCache(ctx, opts.noCache)
	defer store.Close()

	marshaled, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, false, err
	}
	key := cache.ArtifactKey(cache.Hash(marshaled), opts.format, opts.fullPaths, opts.plainNodes)

	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}

	sp := newSpinnerWithContext(ctx, "Rendering graph...")
	sp.Start()
	var data []byte
	switch opts.format {
	case "svg":
		data, err = render.RenderSVG(ctx, dot)
	case "png":
		data, err = render.RenderPNG(ctx, dot)
	}
	if err != nil {
		sp.StopWithError(fmt.Sprintf("Render failed: %v", err))
		return nil, false, err
	}
	sp.Stop()

	if err := store.Set(ctx, key, data, exportCacheTTL); err != nil {
		c.Logger.Debug("cache write failed", "error", err)
	}
	return data, false, nil
}
