package store

import (
	"errors"
	"testing"
	"time"

	"github.com/gaphound/gaphound/models"
	"github.com/spf13/afero"
)

func sampleResult(storyID string) *models.HygieneResult {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.HygieneResult{
		ReportID:   "report-1",
		StoryID:    storyID,
		AnalyzedAt: now,
		Analyzed:   true,
		Gaps: []models.RankedGap{{
			ID:          "RG-001",
			OriginalID:  "scope-1",
			Source:      models.SourceScope,
			Description: "offline mode unspecified",
			Score:       12,
			Severity:    4,
			Likelihood:  3,
			Category:    models.CategoryMVPImportant,
			History:     []models.HistoryEntry{{Action: models.ActionCreated, Timestamp: now}},
		}},
		CategoryCounts: models.CategoryCounts{MVPImportant: 1},
		TotalGaps:      1,
		HighestScore:   12,
		AverageScore:   12,
		Summary:        "Identified 1 gaps across all analyses.",
	}
}

func TestFileResultStore_SaveAndLatest(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			s, err := NewFileResultStore(fs, ".gaphound", format)
			if err != nil {
				t.Fatalf("create store: %v", err)
			}

			want := sampleResult("story-1")
			if err := s.Save(want); err != nil {
				t.Fatalf("save: %v", err)
			}

			got, err := s.Latest("story-1")
			if err != nil {
				t.Fatalf("latest: %v", err)
			}
			if got.StoryID != want.StoryID || got.TotalGaps != want.TotalGaps {
				t.Errorf("round trip mismatch: %+v", got)
			}
			if len(got.Gaps) != 1 || got.Gaps[0].ID != "RG-001" {
				t.Errorf("gaps not preserved: %+v", got.Gaps)
			}
			if got.Gaps[0].History[0].Action != models.ActionCreated {
				t.Errorf("history not preserved")
			}
		})
	}
}

func TestFileResultStore_SaveOverwritesLatest(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewFileResultStore(fs, ".gaphound", "json")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	first := sampleResult("story-1")
	if err := s.Save(first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	second := sampleResult("story-1")
	second.ReportID = "report-2"
	if err := s.Save(second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := s.Latest("story-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got.ReportID != "report-2" {
		t.Errorf("latest = %s, want report-2", got.ReportID)
	}
}

func TestFileResultStore_LatestNotFound(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewFileResultStore(fs, ".gaphound", "json")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	_, err = s.Latest("unknown-story")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFileResultStore_Stories(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewFileResultStore(fs, ".gaphound", "json")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	for _, id := range []string{"story-b", "story-a"} {
		if err := s.Save(sampleResult(id)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	ids, err := s.Stories()
	if err != nil {
		t.Fatalf("stories: %v", err)
	}
	if len(ids) != 2 || ids[0] != "story-a" || ids[1] != "story-b" {
		t.Errorf("stories = %v, want sorted [story-a story-b]", ids)
	}
}

func TestFileResultStore_RejectsUnknownFormat(t *testing.T) {
	_, err := NewFileResultStore(afero.NewMemMapFs(), ".gaphound", "toml")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestFileResultStore_SaveRequiresStoryID(t *testing.T) {
	s, err := NewFileResultStore(afero.NewMemMapFs(), ".gaphound", "json")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if err := s.Save(&models.HygieneResult{}); err == nil {
		t.Fatal("expected error for result without story id")
	}
}
