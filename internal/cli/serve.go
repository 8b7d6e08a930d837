package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/refgraph/refgraph/internal/server"
	"github.com/refgraph/refgraph/pkg/store"
)

const defaultServeAddr = ":8080"

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string   // listen address
	mongoURI string   // MongoDB connection string, memory store if empty
	mongoDB  string   // MongoDB database name
	top      int      // ranking table length for stored reports
	excludes []string // directory names to skip
	workers  int      // concurrent file reads
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve scans and stored reports over HTTP",
		Long: `Run the refgraph HTTP API.

Routes:
  POST /api/scans        run a scan and store the resulting report
  GET  /api/reports      list stored report summaries
  GET  /api/reports/{id} fetch one report (?format=markdown for text)

Reports are held in memory unless a MongoDB URI is configured, either
via --mongo-uri or the [serve] section of refgraph.toml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for report persistence")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "", "MongoDB database name (default refgraph)")
	cmd.Flags().IntVar(&opts.top, "top", 0, "ranking table length for stored reports (default 10)")
	cmd.Flags().StringSliceVar(&opts.excludes, "exclude", nil, "directory names to skip (default: .git,node_modules,bin,obj)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent file reads (default: GOMAXPROCS)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	addr := opts.addr
	if addr == "" {
		addr = c.Config.Serve.Addr
	}
	if addr == "" {
		addr = defaultServeAddr
	}

	st, err := c.newStore(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = st.Close(closeCtx)
	}()

	srv := server.New(server.Options{
		Store:  st,
		Scan:   c.scanOptions(opts.excludes, opts.workers),
		TopN:   c.topN(opts.top),
		Logger: c.Logger,
	})

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newStore picks the report store backend: MongoDB when a URI is
// configured, process memory otherwise.
func (c *CLI) newStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	uri := opts.mongoURI
	if uri == "" {
		uri = c.Config.Serve.MongoURI
	}
	if uri == "" {
		c.Logger.Debug("no MongoDB URI configured, reports held in memory")
		return store.NewMemoryStore(), nil
	}

	db := opts.mongoDB
	if db == "" {
		db = c.Config.Serve.MongoDatabase
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	st, err := store.NewMongoStore(connectCtx, uri, db)
	if err != nil {
		return nil, fmt.Errorf("connect report store: %w", err)
	}
	c.Logger.Info("reports persisted to MongoDB", "database", db)
	return st, nil
}
