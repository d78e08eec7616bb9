package search

import (
	"context"
	"log/slog"
	"sort"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/qurankit/qurankit/internal/quran"
	"github.com/qurankit/qurankit/internal/store"
	"github.com/qurankit/qurankit/internal/translation"
)

// Searcher orchestrates the strategy searchers and merges their output.
// It is stateless across calls and safe for concurrent use.
type Searcher struct {
	number      NumberSearcher
	sura        SuraSearcher
	scripture   PersistenceSearcher
	translation *TranslationSearcher
	logger      *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLanguage sets the display language for localized names.
func WithLanguage(lang quran.Language) Option {
	return func(s *Searcher) {
		s.number.Language = lang
		s.sura.Language = lang
	}
}

// WithLogger sets the logger used for degraded-strategy reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		s.logger = logger
	}
}

// NewSearcher creates the composite searcher. catalog may be nil, in which
// case translation search is disabled.
func NewSearcher(scripture store.TextStore, catalog translation.Catalog, opts ...Option) *Searcher {
	s := &Searcher{
		number:    NumberSearcher{Language: quran.LanguageEnglish},
		sura:      SuraSearcher{Language: quran.LanguageEnglish},
		scripture: PersistenceSearcher{Store: scripture, Source: QuranSource()},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if catalog != nil {
		s.translation = &TranslationSearcher{Catalog: catalog, Logger: s.logger}
	}
	return s
}

// Autocomplete returns ordered, deduplicated suggestions for a raw query.
// Empty or whitespace-only input yields an empty list, not an error.
func (s *Searcher) Autocomplete(ctx context.Context, raw string, q *quran.Quran) ([]string, error) {
	term, ok := NewTerm(raw)
	if !ok {
		return nil, nil
	}

	var numberOut, suraOut, scriptureOut []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		numberOut = s.autocompleteStrategy(gctx, "number", s.number, term, q)
		return nil
	})
	g.Go(func() error {
		suraOut = s.autocompleteStrategy(gctx, "sura", s.sura, term, q)
		return nil
	})
	g.Go(func() error {
		scriptureOut = s.autocompleteStrategy(gctx, "scripture", s.scripture, term, q)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]string, 0, len(numberOut)+len(suraOut)+len(scriptureOut))
	merged = append(merged, numberOut...)
	merged = append(merged, suraOut...)
	merged = append(merged, scriptureOut...)

	if s.translation != nil && s.shouldSearchTranslations(term, len(merged)) {
		merged = append(merged, s.autocompleteStrategy(ctx, "translation", *s.translation, term, q)...)
	}

	// The query itself always leads the suggestion list.
	if term.PersistenceQuery != "" && !contains(merged, term.PersistenceQuery) {
		merged = append([]string{term.PersistenceQuery}, merged...)
	}
	return dedupe(merged), nil
}

// Search runs all applicable strategies and returns merged results grouped
// by source, scripture first, then translations by ascending ID. Empty or
// whitespace-only input yields an empty list, not an error.
func (s *Searcher) Search(ctx context.Context, raw string, q *quran.Quran) ([]Results, error) {
	term, ok := NewTerm(raw)
	if !ok {
		return nil, nil
	}

	var numberOut, suraOut, scriptureOut []Results
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		numberOut = s.searchStrategy(gctx, "number", s.number, term, q)
		return nil
	})
	g.Go(func() error {
		suraOut = s.searchStrategy(gctx, "sura", s.sura, term, q)
		return nil
	})
	g.Go(func() error {
		scriptureOut = s.searchStrategy(gctx, "scripture", s.scripture, term, q)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]Results, 0, len(numberOut)+len(suraOut)+len(scriptureOut))
	merged = append(merged, numberOut...)
	merged = append(merged, suraOut...)
	merged = append(merged, scriptureOut...)

	if s.translation != nil && s.shouldSearchTranslations(term, countItems(merged)) {
		merged = append(merged, s.searchStrategy(ctx, "translation", *s.translation, term, q)...)
	}

	return groupAndSort(merged), nil
}

// strategy is the uniform contract every searcher implements.
type strategy interface {
	Autocomplete(ctx context.Context, term Term, q *quran.Quran) ([]string, error)
	Search(ctx context.Context, term Term, q *quran.Quran) ([]Results, error)
}

// autocompleteStrategy captures a strategy failure and degrades it to an
// empty contribution; one failing strategy never aborts the call.
func (s *Searcher) autocompleteStrategy(ctx context.Context, name string, st strategy, term Term, q *quran.Quran) []string {
	out, err := st.Autocomplete(ctx, term, q)
	if err != nil {
		s.logger.Debug("autocomplete strategy degraded",
			slog.String("strategy", name),
			slog.String("error", err.Error()))
		return nil
	}
	return out
}

func (s *Searcher) searchStrategy(ctx context.Context, name string, st strategy, term Term, q *quran.Quran) []Results {
	out, err := st.Search(ctx, term, q)
	if err != nil {
		s.logger.Debug("search strategy degraded",
			slog.String("strategy", name),
			slog.String("error", err.Error()))
		return nil
	}
	return out
}

// shouldSearchTranslations decides whether the translation strategy runs:
// only when the simple strategies found nothing, or the query does not
// already look like a scripture or number lookup.
func (s *Searcher) shouldSearchTranslations(term Term, simpleCount int) bool {
	if simpleCount == 0 {
		return true
	}
	return !isArabicQuery(term.PersistenceQuery) && !isNumericQuery(term.CompactQuery)
}

func isNumericQuery(compact string) bool {
	return numberPattern.MatchString(compact)
}

// isArabicQuery reports whether every non-space rune is Arabic script.
func isArabicQuery(persistence string) bool {
	if persistence == "" {
		return false
	}
	for _, r := range persistence {
		if r == ' ' {
			continue
		}
		if !unicode.Is(unicode.Arabic, r) {
			return false
		}
	}
	return true
}

func countItems(results []Results) int {
	n := 0
	for _, r := range results {
		n += len(r.Items)
	}
	return n
}

// groupAndSort drops empty groups, merges duplicate source keys by
// concatenating item lists (idempotent when sources are already unique),
// and applies the total source ordering.
func groupAndSort(results []Results) []Results {
	grouped := make([]Results, 0, len(results))
	index := make(map[string]int)

	for _, r := range results {
		if len(r.Items) == 0 {
			continue
		}
		key := r.Source.Key()
		if at, ok := index[key]; ok {
			grouped[at].Items = append(grouped[at].Items, r.Items...)
			continue
		}
		index[key] = len(grouped)
		grouped = append(grouped, Results{Source: r.Source, Items: r.Items})
	}

	sort.SliceStable(grouped, func(i, j int) bool {
		return grouped[i].Source.less(grouped[j].Source)
	})
	return grouped
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
