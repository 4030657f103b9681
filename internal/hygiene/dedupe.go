package hygiene

import (
	"sort"
	"strings"

	"github.com/gaphound/gaphound/models"
)

// minWordLength excludes short filler words from similarity comparison.
const minWordLength = 3

// wordSet extracts the distinct lowercase words of length >= minWordLength
// from a description. Plain whitespace tokenization, no stemming.
func wordSet(description string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(description)) {
		if len(w) >= minWordLength {
			words[w] = struct{}{}
		}
	}
	return words
}

// similarity computes the lexical overlap of two word sets: the size of the
// intersection over the size of the smaller set. Two empty sets are trivially
// identical (1); exactly one empty set means no overlap (0).
func similarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	return float64(intersection) / float64(smaller)
}

// dedupe collapses near-duplicate gaps across all sources with a single
// all-pairs pass: for each surviving gap in original order, every later
// not-yet-merged gap whose description similarity meets the threshold is
// merged into it. O(n²), fine at the expected scale of tens to a few hundred
// gaps per story.
func (e *Engine) dedupe(gaps []gap) ([]gap, models.DedupStats) {
	if e.cfg.DisableDedupe {
		return gaps, models.DedupStats{}
	}

	stats := models.DedupStats{TotalBefore: len(gaps)}

	sets := make([]map[string]struct{}, len(gaps))
	for i := range gaps {
		sets[i] = wordSet(gaps[i].description)
	}

	merged := make([]bool, len(gaps))
	absorbed := make([][]string, len(gaps))
	for i := range gaps {
		if merged[i] {
			continue
		}
		for j := i + 1; j < len(gaps); j++ {
			if merged[j] {
				continue
			}
			if similarity(sets[i], sets[j]) >= e.cfg.SimilarityThreshold {
				mergeGap(&gaps[i], gaps[j])
				merged[j] = true
				absorbed[i] = append(absorbed[i], gaps[j].id)
				stats.Merged++
			}
		}
	}

	survivors := make([]gap, 0, len(gaps))
	for i := range gaps {
		if merged[i] {
			continue
		}
		if len(absorbed[i]) > 0 {
			stats.MergeGroups = append(stats.MergeGroups, models.MergeGroup{
				PrimaryID: gaps[i].id,
				MergedIDs: absorbed[i],
			})
		}
		survivors = append(survivors, gaps[i])
	}
	stats.TotalAfter = len(survivors)
	return survivors, stats
}

// mergeGap folds an absorbed duplicate into the surviving gap: severity and
// likelihood take the maximum, related ACs take the union, and a divergent
// suggestion is concatenated rather than discarded.
func mergeGap(survivor *gap, absorbed gap) {
	if absorbed.severity > survivor.severity {
		survivor.severity = absorbed.severity
	}
	if absorbed.likelihood > survivor.likelihood {
		survivor.likelihood = absorbed.likelihood
	}
	if absorbed.suggestion != "" && absorbed.suggestion != survivor.suggestion {
		if survivor.suggestion == "" {
			survivor.suggestion = absorbed.suggestion
		} else {
			survivor.suggestion = survivor.suggestion + "; " + absorbed.suggestion
		}
	}
	survivor.relatedACs = unionACs(survivor.relatedACs, absorbed.relatedACs)
	survivor.mergedFrom = append(survivor.mergedFrom, absorbed.id)
	survivor.mergedFrom = append(survivor.mergedFrom, absorbed.mergedFrom...)
}

// unionACs merges two AC id lists, keeping the result sorted for determinism.
func unionACs(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	for _, id := range b {
		seen[id] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
