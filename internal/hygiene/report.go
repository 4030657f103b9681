package hygiene

import (
	"fmt"
	"math"
	"strings"

	"github.com/gaphound/gaphound/models"
)

// maxActionItems caps the combined action-item list.
const maxActionItems = 10

// actionItemSlots is how many slots blocking gaps get before mvp_important
// gaps fill the remainder.
const actionItemSlots = 5

// noGapsSummary is the fixed narrative for an empty gap list.
const noGapsSummary = "No gaps identified in this story."

// countCategories tallies ranked gaps per category.
func countCategories(gaps []models.RankedGap) models.CategoryCounts {
	var counts models.CategoryCounts
	for _, g := range gaps {
		switch g.Category {
		case models.CategoryMVPBlocking:
			counts.MVPBlocking++
		case models.CategoryMVPImportant:
			counts.MVPImportant++
		case models.CategoryFuture:
			counts.Future++
		case models.CategoryDeferred:
			counts.Deferred++
		}
	}
	return counts
}

// aggregate fills the summary statistics, narrative, and action items of an
// assembled result.
func (e *Engine) aggregate(result *models.HygieneResult) {
	result.BlockingGaps = result.CategoryCounts.MVPBlocking

	total := 0
	highest := 0
	for _, g := range result.Gaps {
		total += g.Score
		if g.Score > highest {
			highest = g.Score
		}
	}
	result.HighestScore = highest
	if len(result.Gaps) > 0 {
		result.AverageScore = round2(float64(total) / float64(len(result.Gaps)))
	}

	result.Summary = summarize(result.CategoryCounts)
	result.ActionItems = actionItems(result.Gaps)
}

// round2 rounds to two decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// summarize composes the deterministic narrative: total count first, then one
// clause per non-zero category in fixed priority order.
func summarize(counts models.CategoryCounts) string {
	total := counts.Total()
	if total == 0 {
		return noGapsSummary
	}
	parts := []string{fmt.Sprintf("Identified %d gaps across all analyses.", total)}
	if counts.MVPBlocking > 0 {
		parts = append(parts, fmt.Sprintf("%d must be addressed before the MVP ships.", counts.MVPBlocking))
	}
	if counts.MVPImportant > 0 {
		parts = append(parts, fmt.Sprintf("%d are important for MVP quality.", counts.MVPImportant))
	}
	if counts.Future > 0 {
		parts = append(parts, fmt.Sprintf("%d can be scheduled for post-MVP iterations.", counts.Future))
	}
	if counts.Deferred > 0 {
		parts = append(parts, fmt.Sprintf("%d are low priority and can be deferred.", counts.Deferred))
	}
	return strings.Join(parts, " ")
}

// actionItems lists every mvp_blocking gap verbatim, fills remaining slots
// (up to 5 total) with the highest-scoring mvp_important gaps, and caps the
// combined list at 10 entries. The gap list is already in rank order.
func actionItems(gaps []models.RankedGap) []string {
	var items []string
	for _, g := range gaps {
		if g.Category == models.CategoryMVPBlocking {
			items = append(items, formatActionItem(g))
		}
	}
	if len(items) < actionItemSlots {
		for _, g := range gaps {
			if len(items) >= actionItemSlots {
				break
			}
			if g.Category == models.CategoryMVPImportant {
				items = append(items, formatActionItem(g))
			}
		}
	}
	if len(items) > maxActionItems {
		items = items[:maxActionItems]
	}
	return items
}

func formatActionItem(g models.RankedGap) string {
	if g.Suggestion == "" {
		return fmt.Sprintf("[%s] %s", g.Source, g.Description)
	}
	return fmt.Sprintf("[%s] %s — %s", g.Source, g.Description, g.Suggestion)
}
