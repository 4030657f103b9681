package hygiene

import (
	"testing"

	"github.com/gaphound/gaphound/models"
	"github.com/gaphound/gaphound/types"
)

func TestScaleWord_UnknownDefaultsToMedium(t *testing.T) {
	cases := []struct {
		table map[string]int
		word  string
		want  int
	}{
		{uxSeverityScale, "critical", 5},
		{uxSeverityScale, "MAJOR", 4},
		{uxSeverityScale, " minor ", 2},
		{uxSeverityScale, "suggestion", 1},
		{uxSeverityScale, "catastrophic", 3},
		{qaSeverityScale, "high", 4},
		{qaSeverityScale, "low", 2},
		{qaSeverityScale, "", 3},
		{impactScale, "negligible", 1},
		{likelihoodScale, "certain", 5},
		{likelihoodScale, "rare", 1},
		{likelihoodScale, "whenever", 3},
	}
	for _, tc := range cases {
		if got := scaleWord(tc.table, tc.word); got != tc.want {
			t.Errorf("scaleWord(%q) = %d, want %d", tc.word, got, tc.want)
		}
	}
}

func TestClampScale(t *testing.T) {
	cases := []struct{ in, want int }{
		{-1, 1}, {0, 1}, {1, 1}, {3, 3}, {5, 5}, {6, 5}, {100, 5},
	}
	for _, tc := range cases {
		if got := clampScale(tc.in); got != tc.want {
			t.Errorf("clampScale(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePM_LikelihoodRules(t *testing.T) {
	pm := &types.PMAnalysis{
		ScopeGaps: []types.ScopeGap{
			{Description: "payment flow unspecified", Severity: 4, Category: "missing"},
			{Description: "checkout scope ambiguous", Severity: 4, Category: "ambiguous"},
		},
		DependencyGaps: []types.DependencyGap{
			{Description: "payment provider contract unsigned", Severity: 5, Blocking: true},
			{Description: "analytics vendor undecided", Severity: 2, Blocking: false},
		},
		PrioritizationGaps: []types.PrioritizationGap{
			{Description: "phase ordering unclear", Severity: 3, AffectsPlanning: true},
			{Description: "nice-to-haves unmarked", Severity: 2},
		},
	}
	gaps := normalizePM(pm)
	if len(gaps) != 6 {
		t.Fatalf("expected 6 gaps, got %d", len(gaps))
	}

	wantLikelihood := []int{
		likelihoodScopeMissing, likelihoodScopeOther,
		likelihoodDepBlocking, likelihoodDepNonBlocking,
		likelihoodPrioPlanning, likelihoodPrioOther,
	}
	for i, want := range wantLikelihood {
		if gaps[i].likelihood != want {
			t.Errorf("gap %d: likelihood = %d, want %d", i, gaps[i].likelihood, want)
		}
	}
}

func TestNormalizePM_ClampsRawSeverity(t *testing.T) {
	pm := &types.PMAnalysis{
		RequirementGaps: []types.RequirementGap{
			{Description: "too high", Severity: 9},
			{Description: "too low", Severity: -2},
		},
	}
	gaps := normalizePM(pm)
	if gaps[0].severity != 5 {
		t.Errorf("severity 9 should clamp to 5, got %d", gaps[0].severity)
	}
	if gaps[1].severity != 1 {
		t.Errorf("severity -2 should clamp to 1, got %d", gaps[1].severity)
	}
}

func TestNormalizeUX_WCAGLevelDrivesLikelihood(t *testing.T) {
	ux := &types.UXAnalysis{
		AccessibilityGaps: []types.AccessibilityGap{
			{Description: "images missing alt text", Severity: "critical", WCAGLevel: "A"},
			{Description: "contrast below ratio", Severity: "major", WCAGLevel: "AA"},
			{Description: "no sign language track", Severity: "minor", WCAGLevel: "AAA"},
			{Description: "unlabeled region", Severity: "minor"},
		},
	}
	gaps := normalizeUX(ux)
	wantLikelihood := []int{5, 4, 2, defaultScale}
	for i, want := range wantLikelihood {
		if gaps[i].likelihood != want {
			t.Errorf("accessibility gap %d: likelihood = %d, want %d", i, gaps[i].likelihood, want)
		}
	}
	if gaps[0].severity != 5 {
		t.Errorf("critical should map to severity 5, got %d", gaps[0].severity)
	}
}

func TestNormalizeQA_UntestableACPinsLikelihoodHigh(t *testing.T) {
	qa := &types.QAAnalysis{
		ACClarityGaps: []types.ACClarityGap{
			{ACID: "AC-3", Description: "criterion has no measurable outcome", Issue: "untestable"},
			{ACID: "AC-4", Description: "criterion wording is vague", Issue: "vague"},
		},
	}
	gaps := normalizeQA(qa)
	if gaps[0].likelihood != likelihoodACUntestable {
		t.Errorf("untestable AC likelihood = %d, want %d", gaps[0].likelihood, likelihoodACUntestable)
	}
	if gaps[1].likelihood != likelihoodACClarity {
		t.Errorf("vague AC likelihood = %d, want %d", gaps[1].likelihood, likelihoodACClarity)
	}
	if len(gaps[0].relatedACs) != 1 || gaps[0].relatedACs[0] != "AC-3" {
		t.Errorf("expected relatedACs [AC-3], got %v", gaps[0].relatedACs)
	}
}

func TestNormalizeAttack_ValidAssumptionsSkipped(t *testing.T) {
	attack := &types.AttackAnalysis{
		EdgeCases: []types.AttackEdgeCase{
			{Description: "concurrent checkout of last item", Impact: "high", Likelihood: "likely"},
		},
		Assumptions: []types.ChallengedAssumption{
			{Assumption: "users always have stable connections", Validity: types.ValidityInvalid, Remediation: "add offline handling"},
			{Assumption: "carts are small", Validity: types.ValidityPartiallyValid},
			{Assumption: "payments are idempotent", Validity: types.ValidityValid},
		},
	}
	gaps := normalizeAttack(attack)
	if len(gaps) != 3 {
		t.Fatalf("expected 3 gaps (valid assumption skipped), got %d", len(gaps))
	}
	if gaps[0].severity != 4 || gaps[0].likelihood != 4 {
		t.Errorf("edge case: severity/likelihood = %d/%d, want 4/4", gaps[0].severity, gaps[0].likelihood)
	}
	if gaps[1].severity != severityAssumptionInvalid {
		t.Errorf("invalid assumption severity = %d, want %d", gaps[1].severity, severityAssumptionInvalid)
	}
	if gaps[2].severity != severityAssumptionPartially {
		t.Errorf("partially valid assumption severity = %d, want %d", gaps[2].severity, severityAssumptionPartially)
	}
}

func TestNormalizeAll_SourceThenOriginalOrder(t *testing.T) {
	input := Input{
		PM: &types.PMAnalysis{ScopeGaps: []types.ScopeGap{
			{Description: "first scope gap", Severity: 3},
			{Description: "second scope gap", Severity: 1},
		}},
		QA: &types.QAAnalysis{TestabilityGaps: []types.TestabilityGap{
			{Description: "first testability gap", Severity: "low"},
		}},
	}
	gaps := normalizeAll(input)
	if len(gaps) != 3 {
		t.Fatalf("expected 3 gaps, got %d", len(gaps))
	}
	wantSources := []models.GapSource{models.SourceScope, models.SourceScope, models.SourceTestability}
	for i, want := range wantSources {
		if gaps[i].source != want {
			t.Errorf("gap %d: source = %s, want %s", i, gaps[i].source, want)
		}
	}
	if gaps[0].id != "scope-1" || gaps[1].id != "scope-2" {
		t.Errorf("expected synthesized ids scope-1, scope-2; got %s, %s", gaps[0].id, gaps[1].id)
	}
}

func TestSourceID_ExplicitWins(t *testing.T) {
	if got := sourceID("SG-9", models.SourceScope, 0); got != "SG-9" {
		t.Errorf("explicit id should be kept, got %s", got)
	}
	if got := sourceID("", models.SourceCoverage, 2); got != "coverage-3" {
		t.Errorf("synthesized id = %s, want coverage-3", got)
	}
}
