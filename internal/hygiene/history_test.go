package hygiene

import (
	"testing"
	"time"

	"github.com/gaphound/gaphound/models"
)

func previousResult(gaps ...models.RankedGap) *models.HygieneResult {
	return &models.HygieneResult{
		StoryID:  "story-1",
		Analyzed: true,
		Gaps:     gaps,
	}
}

func createdEntry(ts time.Time) models.HistoryEntry {
	return models.HistoryEntry{Action: models.ActionCreated, Timestamp: ts}
}

func TestMergeHistory_ConcatenatesAndGrows(t *testing.T) {
	e := New(Config{})
	yesterday := time.Now().Add(-24 * time.Hour).UTC()
	prev := previousResult(models.RankedGap{
		ID:          "RG-001",
		OriginalID:  "scope-1",
		Description: "payment flow unspecified",
		Category:    models.CategoryMVPImportant,
		History: []models.HistoryEntry{
			createdEntry(yesterday),
			{Action: models.ActionAcknowledged, Timestamp: yesterday.Add(time.Hour)},
		},
		Acknowledged: true,
	})

	fresh := []models.RankedGap{{
		OriginalID:  "scope-1",
		Description: "payment flow unspecified",
		Category:    models.CategoryMVPImportant,
		History:     []models.HistoryEntry{createdEntry(time.Now().UTC())},
	}}

	merged := e.mergeHistory(fresh, prev)
	got := merged[0]
	if len(got.History) < 3 {
		t.Fatalf("merged history length = %d, want >= 3 (previous 2 + new created)", len(got.History))
	}
	if got.History[0].Timestamp != yesterday {
		t.Errorf("previous history must come first")
	}
	if !got.Acknowledged {
		t.Errorf("acknowledged flag should carry forward")
	}
	if got.Resolved {
		t.Errorf("resolved flag should stay false")
	}
}

func TestMergeHistory_RecategorizedEntryOnCategoryChange(t *testing.T) {
	e := New(Config{})
	prev := previousResult(models.RankedGap{
		OriginalID:  "dependency-1",
		Description: "provider contract unsigned",
		Category:    models.CategoryFuture,
		History:     []models.HistoryEntry{createdEntry(time.Now().UTC())},
	})
	fresh := []models.RankedGap{{
		OriginalID:  "dependency-1",
		Description: "provider contract unsigned",
		Category:    models.CategoryMVPBlocking,
		History:     []models.HistoryEntry{createdEntry(time.Now().UTC())},
	}}

	merged := e.mergeHistory(fresh, prev)
	history := merged[0].History
	last := history[len(history)-1]
	if last.Action != models.ActionRecategorized {
		t.Fatalf("expected trailing recategorized entry, got %s", last.Action)
	}
	if last.PreviousValue != string(models.CategoryFuture) || last.NewValue != string(models.CategoryMVPBlocking) {
		t.Errorf("recategorized entry values = %q -> %q", last.PreviousValue, last.NewValue)
	}
}

func TestMergeHistory_MatchesByDescription(t *testing.T) {
	e := New(Config{})
	prev := previousResult(models.RankedGap{
		OriginalID:  "usability-7",
		Description: "checkout requires too many steps",
		Category:    models.CategoryMVPImportant,
		History:     []models.HistoryEntry{createdEntry(time.Now().UTC())},
		Resolved:    true,
	})
	// Different original id, identical description text.
	fresh := []models.RankedGap{{
		OriginalID:  "user_flow-2",
		Description: "checkout requires too many steps",
		Category:    models.CategoryMVPImportant,
		History:     []models.HistoryEntry{createdEntry(time.Now().UTC())},
	}}

	merged := e.mergeHistory(fresh, prev)
	if !merged[0].Resolved {
		t.Errorf("description-matched gap should inherit resolved flag")
	}
	if len(merged[0].History) != 2 {
		t.Errorf("history length = %d, want 2", len(merged[0].History))
	}
}

func TestMergeHistory_UnmatchedKeepsFreshHistory(t *testing.T) {
	e := New(Config{})
	prev := previousResult(models.RankedGap{
		OriginalID:  "scope-1",
		Description: "old gap",
		Category:    models.CategoryFuture,
		History:     []models.HistoryEntry{createdEntry(time.Now().UTC())},
	})
	fresh := []models.RankedGap{{
		OriginalID:  "coverage-1",
		Description: "brand new finding",
		Category:    models.CategoryFuture,
		History:     []models.HistoryEntry{createdEntry(time.Now().UTC())},
	}}

	merged := e.mergeHistory(fresh, prev)
	if len(merged[0].History) != 1 {
		t.Errorf("unmatched gap history length = %d, want 1", len(merged[0].History))
	}
	if merged[0].Resolved || merged[0].Acknowledged {
		t.Errorf("unmatched gap should default to unresolved, unacknowledged")
	}
}

func TestMergeHistory_DoesNotMutatePrevious(t *testing.T) {
	e := New(Config{})
	prevHistory := []models.HistoryEntry{createdEntry(time.Now().UTC())}
	prev := previousResult(models.RankedGap{
		OriginalID:  "scope-1",
		Description: "payment flow unspecified",
		Category:    models.CategoryFuture,
		History:     prevHistory,
	})
	fresh := []models.RankedGap{{
		OriginalID:  "scope-1",
		Description: "payment flow unspecified",
		Category:    models.CategoryMVPBlocking,
		History:     []models.HistoryEntry{createdEntry(time.Now().UTC())},
	}}

	_ = e.mergeHistory(fresh, prev)
	if len(prev.Gaps[0].History) != 1 {
		t.Errorf("previous result's history was mutated: length %d", len(prev.Gaps[0].History))
	}
	if len(prevHistory) != 1 {
		t.Errorf("previous backing slice was appended to")
	}
}

func TestFilterResolved(t *testing.T) {
	gaps := []models.RankedGap{
		{OriginalID: "a", Resolved: true},
		{OriginalID: "b"},
		{OriginalID: "c", Resolved: true},
		{OriginalID: "d", Acknowledged: true},
	}
	kept := filterResolved(gaps)
	if len(kept) != 2 {
		t.Fatalf("expected 2 unresolved gaps, got %d", len(kept))
	}
	if kept[0].OriginalID != "b" || kept[1].OriginalID != "d" {
		t.Errorf("wrong gaps kept: %s, %s", kept[0].OriginalID, kept[1].OriginalID)
	}
}
