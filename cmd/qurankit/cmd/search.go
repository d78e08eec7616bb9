package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qurankit/qurankit/internal/logging"
	"github.com/qurankit/qurankit/internal/search"
	"github.com/qurankit/qurankit/internal/ui"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	format    string // "text", "json"
	noRecents bool
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the Quran and installed translations",
		Long: `Search the scripture and installed translations.

Arabic queries match regardless of letter variants (alef forms, taa
marbuta, yaa forms) and ignore diacritics. Numeric queries look up
verse, page, juz and hizb references; sura names match in Arabic and
transliteration.

Examples:
  qurankit search "الرحمن"
  qurankit search "2:255"
  qurankit search mercy --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runSearch(cmd.Context(), cmd, query, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().BoolVar(&opts.noRecents, "no-recents", false, "Do not record the query in recent searches")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, query string, opts searchOptions) error {
	if !debugMode {
		logCfg := logging.DefaultConfig()
		logCfg.WriteToStderr = false
		if logger, cleanup, err := logging.Setup(logCfg); err == nil {
			defer cleanup()
			slog.SetDefault(logger)
		}
	}

	slog.Info("search_started", slog.String("query", query))

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	results, err := e.searcher.Search(ctx, query, e.quran)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	slog.Info("search_complete", slog.Int("groups", len(results)))

	if !opts.noRecents {
		if err := e.recents.Record(query); err != nil {
			slog.Debug("Failed to record recent query", slog.String("error", err.Error()))
		}
	}

	if opts.format == "json" {
		return writeResultsJSON(cmd, results)
	}

	ui.NewPrinter(cmd.OutOrStdout(), noColor).Results(results)
	return nil
}

// jsonResult mirrors the MCP output shape for scripted use.
type jsonResult struct {
	Source      string      `json:"source"`
	Translation string      `json:"translation,omitempty"`
	Items       []jsonVerse `json:"items"`
}

type jsonVerse struct {
	Sura   int            `json:"sura"`
	Ayah   int            `json:"ayah"`
	Text   string         `json:"text"`
	Ranges []search.Range `json:"ranges,omitempty"`
}

func writeResultsJSON(cmd *cobra.Command, results []search.Results) error {
	out := make([]jsonResult, 0, len(results))
	for _, group := range results {
		jr := jsonResult{Source: group.Source.Key()}
		if group.Source.Kind == search.SourceTranslation {
			jr.Translation = group.Source.Name()
		}
		for _, item := range group.Items {
			jr.Items = append(jr.Items, jsonVerse{
				Sura:   item.Ayah.Sura,
				Ayah:   item.Ayah.Ayah,
				Text:   item.Text,
				Ranges: item.Ranges,
			})
		}
		out = append(out, jr)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
