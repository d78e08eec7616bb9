package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/qurankit/qurankit/internal/logging"
	"github.com/qurankit/qurankit/internal/mcp"
	"github.com/qurankit/qurankit/internal/translation"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Start the MCP server, exposing quran_search, quran_suggest and
catalog_status tools over stdio.

The MCP protocol requires stdout to carry JSON-RPC exclusively, so all
logging goes to the log file. Use 'qurankit search' for diagnostics.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	// Stdout belongs to the protocol from here on; logs go to file only.
	cleanup, err := logging.SetupMCPMode()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := openEnv(ctx)
	if err != nil {
		slog.Error("Failed to open search environment", slog.String("error", err.Error()))
		return err
	}
	defer e.Close()

	var catalog translation.Catalog
	if e.catalog != nil {
		catalog = e.catalog
	}
	server, err := mcp.NewServer(e.searcher, e.quran, catalog)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	if e.cfg.Watch.Enabled && e.catalog != nil {
		watcher := translation.NewWatcher(e.catalog, e.cfg.WatchDebounce(), slog.Default())
		g.Go(func() error {
			if err := watcher.Run(gctx); err != nil && gctx.Err() == nil {
				// A dead watcher degrades hot reload, not search itself.
				slog.Warn("Translation watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	g.Go(func() error {
		defer stop()
		return server.Serve(gctx, e.cfg.Server.Transport)
	})

	return g.Wait()
}
