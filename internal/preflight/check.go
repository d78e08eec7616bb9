// Package preflight validates the QuranKit environment: data directory,
// scripture database, translation catalog, and log destination. The checks
// back the 'qurankit doctor' command.
package preflight

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qurankit/qurankit/internal/config"
	"github.com/qurankit/qurankit/internal/logging"
	"github.com/qurankit/qurankit/internal/store"
	"github.com/qurankit/qurankit/internal/translation"
)

// CheckStatus represents the result of a preflight check.
type CheckStatus int

const (
	// StatusPass indicates the check passed successfully.
	StatusPass CheckStatus = iota
	// StatusWarn indicates a non-critical warning.
	StatusWarn
	// StatusFail indicates the check failed.
	StatusFail
)

// String returns the string representation of a CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusWarn:
		return "WARN"
	case StatusFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// CheckResult holds the result of a single preflight check.
type CheckResult struct {
	Name     string      `json:"name"`
	Status   CheckStatus `json:"status"`
	Message  string      `json:"message"`
	Details  string      `json:"details,omitempty"`
	Required bool        `json:"required"`
}

// IsCritical returns true if this is a required check that failed.
func (r CheckResult) IsCritical() bool {
	return r.Required && r.Status == StatusFail
}

// Checker performs environment validation checks.
type Checker struct {
	verbose bool
	output  io.Writer
}

// Option configures a Checker.
type Option func(*Checker)

// WithVerbose enables verbose output.
func WithVerbose(verbose bool) Option {
	return func(c *Checker) {
		c.verbose = verbose
	}
}

// WithOutput sets the output writer.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.output = w
	}
}

// New creates a new Checker with the given options.
func New(opts ...Option) *Checker {
	c := &Checker{
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunAll runs all environment checks against the given configuration.
func (c *Checker) RunAll(ctx context.Context, cfg *config.Config) []CheckResult {
	var results []CheckResult

	results = append(results, c.CheckDataDir(cfg.Data.Dir))
	results = append(results, c.CheckDiskSpace(cfg.Data.Dir))
	results = append(results, c.CheckQuranDB(ctx, cfg))
	results = append(results, c.CheckTranslations(ctx, cfg))
	results = append(results, c.CheckLogDir())

	return results
}

// HasCriticalFailures returns true if any required check failed.
func (c *Checker) HasCriticalFailures(results []CheckResult) bool {
	for _, r := range results {
		if r.IsCritical() {
			return true
		}
	}
	return false
}

// SummaryStatus returns a summary status string for the results.
func (c *Checker) SummaryStatus(results []CheckResult) string {
	hasWarnings := false
	hasCriticalFailure := false

	for _, r := range results {
		if r.IsCritical() {
			hasCriticalFailure = true
		}
		if r.Status == StatusWarn || (r.Status == StatusFail && !r.Required) {
			hasWarnings = true
		}
	}

	if hasCriticalFailure {
		return "failed"
	}
	if hasWarnings {
		return "ready_with_warnings"
	}
	return "ready"
}

// PrintResults prints check results to the configured output.
func (c *Checker) PrintResults(results []CheckResult) {
	_, _ = fmt.Fprintln(c.output, "QuranKit Environment Check")
	_, _ = fmt.Fprintln(c.output, "==========================")
	_, _ = fmt.Fprintln(c.output)

	for _, r := range results {
		_, _ = fmt.Fprintf(c.output, "[%s] %s: %s\n", r.Status, r.Name, r.Message)
		if c.verbose && r.Details != "" {
			_, _ = fmt.Fprintf(c.output, "      %s\n", r.Details)
		}
	}

	_, _ = fmt.Fprintln(c.output)
	_, _ = fmt.Fprintf(c.output, "Status: %s\n", strings.ToUpper(c.SummaryStatus(results)))

	var warnings, errors []string
	for _, r := range results {
		if r.IsCritical() {
			errors = append(errors, r.Name+": "+r.Message)
		} else if r.Status == StatusWarn || (r.Status == StatusFail && !r.Required) {
			warnings = append(warnings, r.Name+": "+r.Message)
		}
	}

	if len(errors) > 0 {
		_, _ = fmt.Fprintln(c.output)
		_, _ = fmt.Fprintf(c.output, "%d error(s):\n", len(errors))
		for _, e := range errors {
			_, _ = fmt.Fprintf(c.output, "  - %s\n", e)
		}
	}

	if len(warnings) > 0 {
		_, _ = fmt.Fprintln(c.output)
		_, _ = fmt.Fprintf(c.output, "%d warning(s):\n", len(warnings))
		for _, w := range warnings {
			_, _ = fmt.Fprintf(c.output, "  - %s\n", w)
		}
	}
}

// CheckDataDir checks that the data directory exists and is writable.
func (c *Checker) CheckDataDir(dir string) CheckResult {
	result := CheckResult{
		Name:     "data_dir",
		Required: true,
	}

	info, err := os.Stat(dir)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("not found: %s", dir)
		result.Details = "create the directory and place quran.db inside it"
		return result
	}
	if !info.IsDir() {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("not a directory: %s", dir)
		return result
	}

	testFile := filepath.Join(dir, ".qurankit-preflight-test")
	f, err := os.Create(testFile)
	if err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("not writable: %v", err)
		result.Details = "recent searches and config backups need write access"
		return result
	}
	_ = f.Close()
	_ = os.Remove(testFile)

	result.Status = StatusPass
	result.Message = dir
	return result
}

// CheckQuranDB checks that the scripture database opens and carries the
// index tables.
func (c *Checker) CheckQuranDB(ctx context.Context, cfg *config.Config) CheckResult {
	result := CheckResult{
		Name:     "quran_db",
		Required: true,
	}

	path := cfg.QuranDBPath()
	if _, err := os.Stat(path); err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("not found: %s", path)
		return result
	}

	s, err := store.Open(path, store.DefaultConfig())
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("failed to open: %v", err)
		return result
	}
	defer func() { _ = s.Close() }()

	q, err := s.LoadQuran(ctx)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("missing index tables: %v", err)
		return result
	}

	result.Status = StatusPass
	result.Message = "OK"
	result.Details = fmt.Sprintf("%d suras indexed", len(q.Suras))
	return result
}

// CheckTranslations checks the translation catalog. Missing translations are
// a warning, not an error; search degrades to the scripture corpus.
func (c *Checker) CheckTranslations(ctx context.Context, cfg *config.Config) CheckResult {
	result := CheckResult{
		Name:     "translations",
		Required: false,
	}

	dir := cfg.TranslationsPath()
	if _, err := os.Stat(dir); err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("no translations directory at %s", dir)
		return result
	}

	catalog, err := translation.NewDirectoryCatalog(dir, store.DefaultConfig(), nil)
	if err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("failed to open catalog: %v", err)
		return result
	}
	defer func() { _ = catalog.Close() }()

	installed, err := catalog.Installed(ctx)
	if err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("failed to list translations: %v", err)
		return result
	}

	result.Status = StatusPass
	result.Message = fmt.Sprintf("%d translation(s) installed", len(installed))
	for _, inst := range installed {
		if result.Details != "" {
			result.Details += ", "
		}
		result.Details += inst.Info.Name
	}
	return result
}

// CheckLogDir checks that the log directory can be created and written.
func (c *Checker) CheckLogDir() CheckResult {
	result := CheckResult{
		Name:     "log_dir",
		Required: false,
	}

	if err := logging.EnsureLogDir(); err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("cannot create log directory: %v", err)
		return result
	}

	result.Status = StatusPass
	result.Message = logging.DefaultLogDir()
	return result
}
