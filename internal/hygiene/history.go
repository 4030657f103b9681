package hygiene

import (
	"github.com/gaphound/gaphound/models"
)

// mergeHistory reconciles freshly ranked gaps against the previous run's
// result so history is never lost and user-set statuses survive re-analysis.
//
// A new gap matches a previous one when their original ids are equal or their
// descriptions are exactly equal; the first previous gap that matches wins.
// Two unrelated gaps that happen to share identical description text will
// therefore match across runs. That ambiguity is inherent to the matching
// rule and is kept as-is.
//
// The previous result is caller-owned and read-only: merged histories are
// always built as new slices, never appended onto the previous gap's backing
// array.
func (e *Engine) mergeHistory(gaps []models.RankedGap, previous *models.HygieneResult) []models.RankedGap {
	if previous == nil || len(previous.Gaps) == 0 {
		return gaps
	}
	now := e.now().UTC()
	for i := range gaps {
		prev := findPrevious(previous.Gaps, gaps[i])
		if prev == nil {
			continue
		}

		history := make([]models.HistoryEntry, 0, len(prev.History)+len(gaps[i].History)+1)
		history = append(history, prev.History...)
		history = append(history, gaps[i].History...)
		if prev.Category != gaps[i].Category {
			history = append(history, models.HistoryEntry{
				Action:        models.ActionRecategorized,
				Timestamp:     now,
				PreviousValue: string(prev.Category),
				NewValue:      string(gaps[i].Category),
				Notes:         "Category changed during re-analysis",
			})
		}
		gaps[i].History = history
		gaps[i].Resolved = prev.Resolved
		gaps[i].Acknowledged = prev.Acknowledged
	}
	return gaps
}

// findPrevious returns the first previous gap matching by original id or
// exact description, or nil.
func findPrevious(previous []models.RankedGap, g models.RankedGap) *models.RankedGap {
	for i := range previous {
		if previous[i].OriginalID == g.OriginalID || previous[i].Description == g.Description {
			return &previous[i]
		}
	}
	return nil
}
