// Package hygiene implements the gap ranking and hygiene engine. It takes the
// raw gap findings of the four analysis passes over a story, normalizes them
// onto a common severity/likelihood scale, merges near-duplicates, scores and
// categorizes the survivors, reconciles them against the previous run's
// result, and produces a single ranked, summarized gap list.
//
// The engine is a pure, synchronous computation: it performs no I/O, holds no
// state across invocations, and never mutates the caller's inputs. Concurrent
// invocations for independent stories are safe without locking.
package hygiene

import (
	"errors"
	"fmt"
	"time"

	"github.com/gaphound/gaphound/models"
	"github.com/gaphound/gaphound/types"
	"github.com/google/uuid"
)

// ErrNoAnalyses is returned by AnalyzeStrict when none of the four analysis
// sources is supplied.
var ErrNoAnalyses = errors.New("no analysis sources supplied")

// Config controls scoring thresholds, deduplication, and output filtering.
// The zero value is not usable directly; pass it through withDefaults or use
// DefaultConfig.
type Config struct {
	// MaxGaps caps the number of ranked gaps returned. Applied after sorting,
	// so truncation always keeps the highest-scoring gaps.
	MaxGaps int
	// MinScore drops gaps scoring below it. Applied after sorting.
	MinScore int
	// SimilarityThreshold is the lexical similarity at or above which two gap
	// descriptions are considered duplicates. Range (0, 1].
	SimilarityThreshold float64
	// DisableDedupe turns the deduplication pass off entirely.
	DisableDedupe bool
	// IncludeResolved keeps gaps flagged resolved in the returned list.
	IncludeResolved bool
	// BlockingThreshold is the minimum score for mvp_blocking.
	BlockingThreshold int
	// ImportantThreshold is the minimum score for mvp_important.
	ImportantThreshold int
	// FutureThreshold is the minimum score for future; anything below is deferred.
	FutureThreshold int
}

// Default configuration values.
const (
	DefaultMaxGaps             = 50
	DefaultMinScore            = 1
	DefaultSimilarityThreshold = 0.70
	DefaultBlockingThreshold   = 20
	DefaultImportantThreshold  = 12
	DefaultFutureThreshold     = 5
)

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		MaxGaps:             DefaultMaxGaps,
		MinScore:            DefaultMinScore,
		SimilarityThreshold: DefaultSimilarityThreshold,
		BlockingThreshold:   DefaultBlockingThreshold,
		ImportantThreshold:  DefaultImportantThreshold,
		FutureThreshold:     DefaultFutureThreshold,
	}
}

// withDefaults fills unset numeric fields. Defaulting happens once, at engine
// construction.
func (c Config) withDefaults() Config {
	if c.MaxGaps <= 0 {
		c.MaxGaps = DefaultMaxGaps
	}
	if c.MinScore <= 0 {
		c.MinScore = DefaultMinScore
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		c.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if c.BlockingThreshold <= 0 {
		c.BlockingThreshold = DefaultBlockingThreshold
	}
	if c.ImportantThreshold <= 0 {
		c.ImportantThreshold = DefaultImportantThreshold
	}
	if c.FutureThreshold <= 0 {
		c.FutureThreshold = DefaultFutureThreshold
	}
	return c
}

// Input bundles everything one analysis run consumes. Each analysis source is
// optional; the absence of all four is the only fatal input condition.
type Input struct {
	StoryID string
	PM      *types.PMAnalysis
	UX      *types.UXAnalysis
	QA      *types.QAAnalysis
	Attack  *types.AttackAnalysis
	// Previous is the result of the last run for this story, if any. It is
	// read-only to the engine; merged histories are built as new slices.
	Previous *models.HygieneResult
}

// Engine runs hygiene analyses. It is safe for concurrent use.
type Engine struct {
	cfg Config
	now func() time.Time
}

// New creates an engine with the given configuration. Zero-valued config
// fields fall back to the documented defaults.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults(), now: time.Now}
}

// Config returns the engine's effective (defaulted) configuration.
func (e *Engine) Config() Config { return e.cfg }

// Analyze runs the full pipeline and always returns a result. Failures of any
// kind, including panics in the pipeline, are reported through an unanalyzed
// result carrying the error message; no error ever escapes this entry point.
func (e *Engine) Analyze(input Input) (result *models.HygieneResult) {
	defer func() {
		if r := recover(); r != nil {
			result = e.unanalyzed(input.StoryID, fmt.Sprintf("internal error: %v", r))
		}
	}()
	res, err := e.run(input)
	if err != nil {
		return e.unanalyzed(input.StoryID, err.Error())
	}
	return res
}

// AnalyzeStrict is the fail-fast variant of Analyze: missing inputs and
// validation failures are returned as errors instead of a soft-failure result.
func (e *Engine) AnalyzeStrict(input Input) (*models.HygieneResult, error) {
	return e.run(input)
}

// run executes the linear pipeline: normalize, deduplicate, rank, merge
// history, aggregate, validate.
func (e *Engine) run(input Input) (*models.HygieneResult, error) {
	if input.PM == nil && input.UX == nil && input.QA == nil && input.Attack == nil {
		return nil, ErrNoAnalyses
	}

	var warnings []string

	gaps := normalizeAll(input)

	deduped, stats := e.dedupe(gaps)
	if stats.Merged > 0 {
		warnings = append(warnings, fmt.Sprintf("Merged %d similar gaps", stats.Merged))
	}

	ranked, truncated := e.rank(deduped)
	if truncated > 0 {
		warnings = append(warnings, fmt.Sprintf("Dropped %d gaps beyond the configured maximum of %d", truncated, e.cfg.MaxGaps))
	}

	ranked = e.mergeHistory(ranked, input.Previous)
	if !e.cfg.IncludeResolved {
		ranked = filterResolved(ranked)
	}
	assignIDs(ranked)

	result := &models.HygieneResult{
		ReportID:       uuid.NewString(),
		StoryID:        input.StoryID,
		AnalyzedAt:     e.now().UTC(),
		Analyzed:       true,
		Warnings:       warnings,
		Gaps:           ranked,
		Dedup:          stats,
		CategoryCounts: countCategories(ranked),
		TotalGaps:      len(ranked),
	}
	e.aggregate(result)

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("result validation: %w", err)
	}
	return result, nil
}

// unanalyzed builds the soft-failure result shape.
func (e *Engine) unanalyzed(storyID, msg string) *models.HygieneResult {
	return &models.HygieneResult{
		ReportID:   uuid.NewString(),
		StoryID:    storyID,
		AnalyzedAt: e.now().UTC(),
		Analyzed:   false,
		Error:      msg,
		Summary:    "Analysis could not be completed.",
	}
}

// filterResolved drops gaps flagged resolved. This is a view filter: the
// caller's previous result still holds their history.
func filterResolved(gaps []models.RankedGap) []models.RankedGap {
	kept := gaps[:0]
	for _, g := range gaps {
		if !g.Resolved {
			kept = append(kept, g)
		}
	}
	return kept
}

// assignIDs gives the final list dense, sequential ids in rank order.
func assignIDs(gaps []models.RankedGap) {
	for i := range gaps {
		gaps[i].ID = fmt.Sprintf("RG-%03d", i+1)
	}
}
