package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qurankit/qurankit/internal/quran"
	"github.com/qurankit/qurankit/internal/search"
	"github.com/qurankit/qurankit/internal/translation"
	"github.com/qurankit/qurankit/pkg/version"
)

// Server is the MCP server for QuranKit.
// It bridges AI clients with the verse search core.
type Server struct {
	mcp      *mcp.Server
	searcher *search.Searcher
	quran    *quran.Quran
	catalog  translation.Catalog
	logger   *slog.Logger
}

// SearchInput defines the input schema for the quran_search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query: Arabic or translated text, a sura name, or a sura/verse number like 2:255"`
}

// RangeOutput is a half-open byte range into a result's text.
type RangeOutput struct {
	Start int `json:"start" jsonschema:"byte offset where the match starts"`
	End   int `json:"end" jsonschema:"byte offset just past the match"`
}

// VerseOutput is one matched verse or division name.
type VerseOutput struct {
	Sura   int           `json:"sura" jsonschema:"sura number the result points at"`
	Ayah   int           `json:"ayah" jsonschema:"ayah number the result points at"`
	Text   string        `json:"text" jsonschema:"result text: verse text or a localized name"`
	Ranges []RangeOutput `json:"ranges,omitempty" jsonschema:"matched byte ranges within text"`
}

// SourceOutput groups results from one corpus.
type SourceOutput struct {
	Source      string        `json:"source" jsonschema:"corpus key: quran or translation:<id>"`
	Translation string        `json:"translation,omitempty" jsonschema:"translation name when the source is a translation"`
	Items       []VerseOutput `json:"items" jsonschema:"matched items in canonical verse order"`
}

// SearchOutput defines the output schema for the quran_search tool.
type SearchOutput struct {
	Sources []SourceOutput `json:"sources" jsonschema:"result groups, scripture first then translations by ascending id"`
}

// SuggestInput defines the input schema for the quran_suggest tool.
type SuggestInput struct {
	Query string `json:"query" jsonschema:"the partial query to complete"`
}

// SuggestOutput defines the output schema for the quran_suggest tool.
type SuggestOutput struct {
	Suggestions []string `json:"suggestions" jsonschema:"ordered, deduplicated completions; the normalized query leads"`
}

// CatalogStatusInput defines the (empty) input schema for catalog_status.
type CatalogStatusInput struct{}

// TranslationStatus describes one installed translation.
type TranslationStatus struct {
	ID       int    `json:"id" jsonschema:"stable translation identifier"`
	Name     string `json:"name" jsonschema:"display name"`
	Language string `json:"language" jsonschema:"translation language code"`
	Version  int    `json:"version" jsonschema:"installed version"`
}

// CatalogStatusOutput defines the output schema for catalog_status.
type CatalogStatusOutput struct {
	Translations []TranslationStatus `json:"translations" jsonschema:"installed translations by ascending id"`
}

// NewServer creates a new MCP server over the given search core.
// catalog may be nil when no translations directory is configured.
func NewServer(searcher *search.Searcher, q *quran.Quran, catalog translation.Catalog) (*Server, error) {
	if searcher == nil {
		return nil, errors.New("searcher is required")
	}
	if q == nil {
		return nil, errors.New("quran index is required")
	}

	s := &Server{
		searcher: searcher,
		quran:    q,
		catalog:  catalog,
		logger:   slog.Default(),
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "QuranKit",
			Version: version.Version,
		},
		nil, // capabilities are inferred from registered tools
	)
	s.registerTools()

	return s, nil
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Info returns the server name and version.
func (s *Server) Info() (name, ver string) {
	return "QuranKit", version.Version
}

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools() {
	s.logger.Debug("Registering MCP tools")

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "quran_search",
		Description: "Search the Quran and installed translations. Accepts Arabic text (diacritic and letter-variant tolerant), translated text, sura names, and numeric references like 36 or 2:255. Results are grouped by corpus with highlighted match ranges.",
	}, s.searchHandler)
	s.logger.Debug("Registered tool", slog.String("name", "quran_search"))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "quran_suggest",
		Description: "Autocomplete a partial Quran search query. Returns ordered suggestions anchored on the normalized query, synthesized from matching verses and sura names.",
	}, s.suggestHandler)
	s.logger.Debug("Registered tool", slog.String("name", "quran_suggest"))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "catalog_status",
		Description: "List the installed translation databases with their id, name, language, and version.",
	}, s.catalogStatusHandler)
	s.logger.Debug("Registered tool", slog.String("name", "catalog_status"))

	s.logger.Info("MCP tools registered", slog.Int("count", 3))
}

// searchHandler is the MCP SDK handler for the quran_search tool.
func (s *Server) searchHandler(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (
	*mcp.CallToolResult,
	SearchOutput,
	error,
) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchOutput{}, NewInvalidParamsError("query parameter is required and must be a non-empty string")
	}

	start := time.Now()
	requestID := generateRequestID()
	s.logger.Info("quran_search started",
		slog.String("request_id", requestID),
		slog.String("query", input.Query))

	results, err := s.searcher.Search(ctx, input.Query, s.quran)
	duration := time.Since(start)
	if err != nil {
		s.logger.Error("quran_search failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, SearchOutput{}, MapError(err)
	}

	s.logger.Info("quran_search completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", duration),
		slog.Int("source_count", len(results)))

	return nil, toSearchOutput(results), nil
}

// suggestHandler is the MCP SDK handler for the quran_suggest tool.
func (s *Server) suggestHandler(ctx context.Context, _ *mcp.CallToolRequest, input SuggestInput) (
	*mcp.CallToolResult,
	SuggestOutput,
	error,
) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SuggestOutput{}, NewInvalidParamsError("query parameter is required and must be a non-empty string")
	}

	start := time.Now()
	requestID := generateRequestID()

	suggestions, err := s.searcher.Autocomplete(ctx, input.Query, s.quran)
	duration := time.Since(start)
	if err != nil {
		s.logger.Error("quran_suggest failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, SuggestOutput{}, MapError(err)
	}

	s.logger.Info("quran_suggest completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", duration),
		slog.Int("suggestion_count", len(suggestions)))

	return nil, SuggestOutput{Suggestions: suggestions}, nil
}

// catalogStatusHandler is the MCP SDK handler for the catalog_status tool.
func (s *Server) catalogStatusHandler(ctx context.Context, _ *mcp.CallToolRequest, _ CatalogStatusInput) (
	*mcp.CallToolResult,
	CatalogStatusOutput,
	error,
) {
	output := CatalogStatusOutput{Translations: []TranslationStatus{}}
	if s.catalog == nil {
		return nil, output, nil
	}

	installed, err := s.catalog.Installed(ctx)
	if err != nil {
		return nil, CatalogStatusOutput{}, MapError(err)
	}

	for _, inst := range installed {
		output.Translations = append(output.Translations, TranslationStatus{
			ID:       inst.Info.ID,
			Name:     inst.Info.Name,
			Language: inst.Info.Language,
			Version:  inst.Info.Version,
		})
	}
	return nil, output, nil
}

// toSearchOutput converts core result groups to the wire schema.
func toSearchOutput(results []search.Results) SearchOutput {
	output := SearchOutput{Sources: make([]SourceOutput, 0, len(results))}
	for _, group := range results {
		src := SourceOutput{
			Source: group.Source.Key(),
			Items:  make([]VerseOutput, 0, len(group.Items)),
		}
		if group.Source.Kind == search.SourceTranslation {
			src.Translation = group.Source.Name()
		}
		for _, item := range group.Items {
			verse := VerseOutput{
				Sura: item.Ayah.Sura,
				Ayah: item.Ayah.Ayah,
				Text: item.Text,
			}
			for _, r := range item.Ranges {
				verse.Ranges = append(verse.Ranges, RangeOutput{Start: r.Start, End: r.End})
			}
			src.Items = append(src.Items, verse)
		}
		output.Sources = append(output.Sources, src)
	}
	return output
}

// Serve starts the server with the specified transport.
func (s *Server) Serve(ctx context.Context, transport string) error {
	s.logger.Info("Starting MCP server", slog.String("transport", transport))

	switch transport {
	case "stdio":
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && err != context.Canceled {
			s.logger.Error("MCP server stopped with error",
				slog.String("error", err.Error()))
		} else {
			s.logger.Info("MCP server stopped gracefully")
		}
		return err
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio)", transport)
	}
}

// generateRequestID creates a short unique request ID for log correlation.
func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
