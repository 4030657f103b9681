package hygiene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gaphound/gaphound/models"
)

// score computes severity * likelihood, clamped to [1, 25].
func score(severity, likelihood int) int {
	s := severity * likelihood
	if s < 1 {
		return 1
	}
	if s > 25 {
		return 25
	}
	return s
}

// categorize assigns the priority category for a score. Thresholds are
// checked from highest to lowest; the first one met wins.
func (e *Engine) categorize(score int) models.GapCategory {
	switch {
	case score >= e.cfg.BlockingThreshold:
		return models.CategoryMVPBlocking
	case score >= e.cfg.ImportantThreshold:
		return models.CategoryMVPImportant
	case score >= e.cfg.FutureThreshold:
		return models.CategoryFuture
	default:
		return models.CategoryDeferred
	}
}

// rank turns the surviving internal gaps into ranked gaps: score, category,
// a fresh created history entry, a stable sort by score descending, then the
// post-sort minimum-score filter and maximum-count truncation. Ranked ids are
// assigned later, once the history merge has settled the final list.
// Returns the ranked gaps and the number dropped by truncation.
func (e *Engine) rank(gaps []gap) ([]models.RankedGap, int) {
	now := e.now().UTC()
	ranked := make([]models.RankedGap, 0, len(gaps))
	for _, g := range gaps {
		s := score(g.severity, g.likelihood)
		history := []models.HistoryEntry{{
			Action:    models.ActionCreated,
			Timestamp: now,
			Notes:     fmt.Sprintf("Identified by %s analysis as %s", g.source, g.id),
		}}
		if len(g.mergedFrom) > 0 {
			history = append(history, models.HistoryEntry{
				Action:    models.ActionMerged,
				Timestamp: now,
				Notes:     fmt.Sprintf("Absorbed %d similar gaps: %s", len(g.mergedFrom), strings.Join(g.mergedFrom, ", ")),
			})
		}
		ranked = append(ranked, models.RankedGap{
			OriginalID:  g.id,
			Source:      g.source,
			Description: g.description,
			Score:       s,
			Severity:    g.severity,
			Likelihood:  g.likelihood,
			Category:    e.categorize(s),
			Suggestion:  g.suggestion,
			RelatedACs:  g.relatedACs,
			MergedFrom:  g.mergedFrom,
			History:     history,
		})
	}

	// Stable: ties keep their source-then-original discovery order.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	kept := ranked[:0]
	for _, g := range ranked {
		if g.Score >= e.cfg.MinScore {
			kept = append(kept, g)
		}
	}
	ranked = kept

	truncated := 0
	if len(ranked) > e.cfg.MaxGaps {
		truncated = len(ranked) - e.cfg.MaxGaps
		ranked = ranked[:e.cfg.MaxGaps]
	}
	return ranked, truncated
}
