package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// GapSource identifies which analysis pass produced a finding.
type GapSource string

const (
	SourceScope            GapSource = "scope"
	SourceRequirement      GapSource = "requirement_clarity"
	SourceDependency       GapSource = "dependency"
	SourcePrioritization   GapSource = "prioritization"
	SourceAccessibility    GapSource = "accessibility"
	SourceUsability        GapSource = "usability"
	SourceDesignPattern    GapSource = "design_pattern"
	SourceUserFlow         GapSource = "user_flow"
	SourceTestability      GapSource = "testability"
	SourceEdgeCase         GapSource = "edge_case"
	SourceACClarity        GapSource = "ac_clarity"
	SourceCoverage         GapSource = "coverage"
	SourceAttackEdgeCase   GapSource = "attack_edge_case"
	SourceAttackAssumption GapSource = "attack_assumption"
)

// GapCategory is the priority bucket derived from a gap's score.
type GapCategory string

const (
	CategoryMVPBlocking  GapCategory = "mvp_blocking"
	CategoryMVPImportant GapCategory = "mvp_important"
	CategoryFuture       GapCategory = "future"
	CategoryDeferred     GapCategory = "deferred"
)

// HistoryAction represents one kind of lifecycle action taken on a gap.
type HistoryAction string

const (
	ActionCreated       HistoryAction = "created"
	ActionMerged        HistoryAction = "merged"
	ActionRecategorized HistoryAction = "recategorized"
	ActionRescored      HistoryAction = "rescored"
	ActionAcknowledged  HistoryAction = "acknowledged"
	ActionResolved      HistoryAction = "resolved"
	ActionDeferred      HistoryAction = "deferred"
)

// HistoryEntry is one immutable record of an action taken on a gap.
// Entries are only ever appended, never edited or removed.
type HistoryEntry struct {
	Action        HistoryAction `json:"action" validate:"required,oneof=created merged recategorized rescored acknowledged resolved deferred"`
	Timestamp     time.Time     `json:"timestamp" validate:"required"`
	PreviousValue string        `json:"previousValue,omitempty"`
	NewValue      string        `json:"newValue,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}

// RankedGap is the final scored, categorized, deduplicated form of a gap.
type RankedGap struct {
	ID           string         `json:"id" validate:"required"`
	OriginalID   string         `json:"originalId" validate:"required"`
	Source       GapSource      `json:"source" validate:"required"`
	Description  string         `json:"description" validate:"required"`
	Score        int            `json:"score" validate:"min=1,max=25"`
	Severity     int            `json:"severity" validate:"min=1,max=5"`
	Likelihood   int            `json:"likelihood" validate:"min=1,max=5"`
	Category     GapCategory    `json:"category" validate:"required,oneof=mvp_blocking mvp_important future deferred"`
	Suggestion   string         `json:"suggestion,omitempty"`
	RelatedACs   []string       `json:"relatedACs,omitempty"`
	MergedFrom   []string       `json:"mergedFrom,omitempty"`
	History      []HistoryEntry `json:"history" validate:"required,min=1,dive"`
	Resolved     bool           `json:"resolved"`
	Acknowledged bool           `json:"acknowledged"`
}

// MergeGroup records the gaps absorbed into one surviving gap during deduplication.
type MergeGroup struct {
	PrimaryID string   `json:"primaryId"`
	MergedIDs []string `json:"mergedIds"`
}

// DedupStats summarizes one deduplication pass.
type DedupStats struct {
	TotalBefore int          `json:"totalBefore"`
	TotalAfter  int          `json:"totalAfter"`
	Merged      int          `json:"merged"`
	MergeGroups []MergeGroup `json:"mergeGroups,omitempty"`
}

// CategoryCounts holds the number of ranked gaps per category.
type CategoryCounts struct {
	MVPBlocking  int `json:"mvp_blocking"`
	MVPImportant int `json:"mvp_important"`
	Future       int `json:"future"`
	Deferred     int `json:"deferred"`
}

// Total returns the sum of all category counts.
func (c CategoryCounts) Total() int {
	return c.MVPBlocking + c.MVPImportant + c.Future + c.Deferred
}

// HygieneResult is the complete output of one hygiene analysis run.
type HygieneResult struct {
	ReportID       string         `json:"reportId"`
	StoryID        string         `json:"storyId"`
	AnalyzedAt     time.Time      `json:"analyzedAt"`
	Analyzed       bool           `json:"analyzed"`
	Error          string         `json:"error,omitempty"`
	Warnings       []string       `json:"warnings,omitempty"`
	Gaps           []RankedGap    `json:"gaps" validate:"dive"`
	Dedup          DedupStats     `json:"dedup"`
	CategoryCounts CategoryCounts `json:"categoryCounts"`
	TotalGaps      int            `json:"totalGaps"`
	BlockingGaps   int            `json:"blockingGaps"`
	HighestScore   int            `json:"highestScore"`
	AverageScore   float64        `json:"averageScore"`
	Summary        string         `json:"summary"`
	ActionItems    []string       `json:"actionItems,omitempty"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs tag-based validation on any struct in this package.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

// Validate checks the structural invariants of an analyzed result on top of
// the tag-based field validation:
//
//   - score == severity * likelihood for every gap
//   - ranked-gap ids are dense and sequential ("RG-001", "RG-002", ...)
//   - category counts sum to the number of returned gaps
//   - the per-category counters match the gaps actually present
//
// An unanalyzed result (Analyzed == false) is always considered valid; it is
// the error-reporting shape, not a computed one.
func (r *HygieneResult) Validate() error {
	if !r.Analyzed {
		return nil
	}
	if err := ValidateStruct(r); err != nil {
		return err
	}
	counts := CategoryCounts{}
	for i, g := range r.Gaps {
		if g.Score != g.Severity*g.Likelihood {
			return fmt.Errorf("gap %s: score %d does not equal severity %d * likelihood %d", g.ID, g.Score, g.Severity, g.Likelihood)
		}
		if want := fmt.Sprintf("RG-%03d", i+1); g.ID != want {
			return fmt.Errorf("gap ids are not dense: position %d has id %q, want %q", i, g.ID, want)
		}
		switch g.Category {
		case CategoryMVPBlocking:
			counts.MVPBlocking++
		case CategoryMVPImportant:
			counts.MVPImportant++
		case CategoryFuture:
			counts.Future++
		case CategoryDeferred:
			counts.Deferred++
		}
	}
	if counts != r.CategoryCounts {
		return fmt.Errorf("category counts %+v do not match gap list %+v", r.CategoryCounts, counts)
	}
	if r.CategoryCounts.Total() != len(r.Gaps) {
		return fmt.Errorf("category counts sum to %d but result contains %d gaps", r.CategoryCounts.Total(), len(r.Gaps))
	}
	if r.TotalGaps != len(r.Gaps) {
		return fmt.Errorf("totalGaps %d does not match gap list length %d", r.TotalGaps, len(r.Gaps))
	}
	if r.BlockingGaps != counts.MVPBlocking {
		return fmt.Errorf("blockingGaps %d does not match mvp_blocking count %d", r.BlockingGaps, counts.MVPBlocking)
	}
	return nil
}

// FindGap returns the gap with the given ranked id or original id, or nil.
func (r *HygieneResult) FindGap(id string) *RankedGap {
	for i := range r.Gaps {
		if r.Gaps[i].ID == id || r.Gaps[i].OriginalID == id {
			return &r.Gaps[i]
		}
	}
	return nil
}
