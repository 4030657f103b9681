// Package types defines the upstream analysis payloads consumed by the
// hygiene engine. Each analysis pass (PM, UX, QA, attack) reports gaps in its
// own schema and vocabulary; the engine normalizes them onto a common scale.
package types

// PMAnalysis carries the gaps found by the product-management pass.
type PMAnalysis struct {
	ScopeGaps          []ScopeGap          `json:"scopeGaps,omitempty"`
	RequirementGaps    []RequirementGap    `json:"requirementGaps,omitempty"`
	DependencyGaps     []DependencyGap     `json:"dependencyGaps,omitempty"`
	PrioritizationGaps []PrioritizationGap `json:"prioritizationGaps,omitempty"`
}

// ScopeGap flags functionality that is missing from or ambiguous in the story scope.
type ScopeGap struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description"`
	Severity    int    `json:"severity"` // 1-5
	Suggestion  string `json:"suggestion,omitempty"`
	Category    string `json:"category,omitempty"` // "missing", "ambiguous", "conflicting"
}

// RequirementGap flags an unclear or underspecified requirement.
type RequirementGap struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description"`
	Severity    int    `json:"severity"` // 1-5
	Suggestion  string `json:"suggestion,omitempty"`
}

// DependencyGap flags a missing or unstated dependency. Blocking dependencies
// are near-certain to cause delivery problems if left unaddressed.
type DependencyGap struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description"`
	Severity    int    `json:"severity"` // 1-5
	Suggestion  string `json:"suggestion,omitempty"`
	Blocking    bool   `json:"blocking,omitempty"`
}

// PrioritizationGap flags unclear or conflicting prioritization signals.
type PrioritizationGap struct {
	ID              string `json:"id,omitempty"`
	Description     string `json:"description"`
	Severity        int    `json:"severity"` // 1-5
	Suggestion      string `json:"suggestion,omitempty"`
	AffectsPlanning bool   `json:"affectsPlanning,omitempty"`
}

// UXAnalysis carries the gaps found by the user-experience pass.
// Severities use the word scale critical/major/minor/suggestion.
type UXAnalysis struct {
	AccessibilityGaps []AccessibilityGap `json:"accessibilityGaps,omitempty"`
	UsabilityGaps     []UsabilityGap     `json:"usabilityGaps,omitempty"`
	DesignPatternGaps []DesignPatternGap `json:"designPatternGaps,omitempty"`
	UserFlowGaps      []UserFlowGap      `json:"userFlowGaps,omitempty"`
}

// AccessibilityGap flags a WCAG conformance problem. The conformance level of
// the violated criterion drives how likely the gap is to affect real users.
type AccessibilityGap struct {
	ID             string   `json:"id,omitempty"`
	Description    string   `json:"description"`
	Severity       string   `json:"severity"`            // critical, major, minor, suggestion
	WCAGLevel      string   `json:"wcagLevel,omitempty"` // A, AA, AAA
	Recommendation string   `json:"recommendation,omitempty"`
	AffectedACs    []string `json:"affectedACs,omitempty"`
}

// UsabilityGap flags friction in the expected user experience.
type UsabilityGap struct {
	ID             string   `json:"id,omitempty"`
	Description    string   `json:"description"`
	Severity       string   `json:"severity"` // critical, major, minor, suggestion
	Recommendation string   `json:"recommendation,omitempty"`
	AffectedACs    []string `json:"affectedACs,omitempty"`
}

// DesignPatternGap flags a deviation from established interaction patterns.
type DesignPatternGap struct {
	ID             string   `json:"id,omitempty"`
	Description    string   `json:"description"`
	Severity       string   `json:"severity"` // critical, major, minor, suggestion
	Recommendation string   `json:"recommendation,omitempty"`
	AffectedACs    []string `json:"affectedACs,omitempty"`
}

// UserFlowGap flags a missing or broken step in a user flow.
type UserFlowGap struct {
	ID             string   `json:"id,omitempty"`
	Description    string   `json:"description"`
	Severity       string   `json:"severity"` // critical, major, minor, suggestion
	Recommendation string   `json:"recommendation,omitempty"`
	AffectedACs    []string `json:"affectedACs,omitempty"`
}

// QAAnalysis carries the gaps found by the quality-assurance pass.
// Severities and priorities use the word scale high/medium/low.
type QAAnalysis struct {
	TestabilityGaps []TestabilityGap `json:"testabilityGaps,omitempty"`
	EdgeCaseGaps    []EdgeCaseGap    `json:"edgeCaseGaps,omitempty"`
	ACClarityGaps   []ACClarityGap   `json:"acClarityGaps,omitempty"`
	CoverageGaps    []CoverageGap    `json:"coverageGaps,omitempty"`
}

// TestabilityGap flags a requirement that is hard to verify as written.
type TestabilityGap struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description"`
	Severity    string `json:"severity"` // high, medium, low
	Suggestion  string `json:"suggestion,omitempty"`
	RelatedAC   string `json:"relatedAC,omitempty"`
}

// EdgeCaseGap flags an unhandled edge case.
type EdgeCaseGap struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // high, medium, low
	Suggestion  string `json:"suggestion,omitempty"`
	RelatedAC   string `json:"relatedAC,omitempty"`
}

// ACClarityGap flags an acceptance criterion whose wording is too vague to
// verify. An "untestable" criterion is virtually guaranteed to cause
// downstream defects, so the engine pins its likelihood high.
type ACClarityGap struct {
	ID          string `json:"id,omitempty"`
	ACID        string `json:"acId,omitempty"`
	Description string `json:"description"`
	Issue       string `json:"issue,omitempty"` // "untestable", "vague", "ambiguous"
	Suggestion  string `json:"suggestion,omitempty"`
}

// CoverageGap flags functionality with no acceptance criterion covering it.
type CoverageGap struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description"`
	Severity    string `json:"severity"` // high, medium, low
	Suggestion  string `json:"suggestion,omitempty"`
	RelatedAC   string `json:"relatedAC,omitempty"`
}

// AttackAnalysis carries the findings of the adversarial pass: hostile edge
// cases and challenged assumptions.
type AttackAnalysis struct {
	EdgeCases   []AttackEdgeCase       `json:"edgeCases,omitempty"`
	Assumptions []ChallengedAssumption `json:"assumptions,omitempty"`
}

// AttackEdgeCase is a hostile scenario with an impact and likelihood estimate.
type AttackEdgeCase struct {
	ID           string `json:"id,omitempty"`
	Description  string `json:"description"`
	Impact       string `json:"impact"`     // critical, high, medium, low, negligible
	Likelihood   string `json:"likelihood"` // certain, likely, possible, unlikely, rare
	Mitigation   string `json:"mitigation,omitempty"`
	AssumptionID string `json:"assumptionId,omitempty"`
}

// Assumption validity verdicts produced by the adversarial pass.
const (
	ValidityInvalid        = "invalid"
	ValidityPartiallyValid = "partially_valid"
	ValidityValid          = "valid"
)

// ChallengedAssumption is the verdict on one assumption the story makes.
// Only invalid and partially valid assumptions become gaps.
type ChallengedAssumption struct {
	ID          string `json:"id,omitempty"`
	Assumption  string `json:"assumption"`
	Validity    string `json:"validity"` // invalid, partially_valid, valid
	Challenge   string `json:"challenge,omitempty"`
	Remediation string `json:"remediation,omitempty"`
}
