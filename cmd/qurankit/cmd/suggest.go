package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qurankit/qurankit/internal/ui"
)

func newSuggestCmd() *cobra.Command {
	var limit int
	var interactive bool

	cmd := &cobra.Command{
		Use:   "suggest [query]",
		Short: "Autocomplete a partial query",
		Long: `Suggest completions for a partial query.

With a query argument, prints the suggestions and exits. Without one,
or with --interactive, opens an interactive prompt (requires a
terminal); accepting a suggestion runs the search for it.

Examples:
  qurankit suggest "الرح"
  qurankit suggest`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && !interactive {
				return runSuggestOnce(cmd.Context(), cmd, strings.Join(args, " "), limit)
			}
			return runSuggestInteractive(cmd.Context(), cmd)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of suggestions")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open the interactive prompt")

	return cmd
}

func runSuggestOnce(ctx context.Context, cmd *cobra.Command, query string, limit int) error {
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	suggestions, err := e.searcher.Autocomplete(ctx, query, e.quran)
	if err != nil {
		return fmt.Errorf("autocomplete failed: %w", err)
	}
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	ui.NewPrinter(cmd.OutOrStdout(), noColor).Suggestions(suggestions)
	return nil
}

func runSuggestInteractive(ctx context.Context, cmd *cobra.Command) error {
	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("interactive suggest requires a terminal; pass a query argument instead")
	}

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	styles := ui.GetStyles(!ui.UseColor(os.Stdout, noColor))
	query, ok, err := ui.RunSuggest(ctx, e.searcher, e.quran, styles)
	if err != nil {
		return fmt.Errorf("suggest prompt failed: %w", err)
	}
	if !ok {
		return nil // canceled
	}

	results, err := e.searcher.Search(ctx, query, e.quran)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if err := e.recents.Record(query); err != nil {
		slog.Debug("Failed to record recent query", slog.String("error", err.Error()))
	}

	ui.NewPrinter(cmd.OutOrStdout(), noColor).Results(results)
	return nil
}
