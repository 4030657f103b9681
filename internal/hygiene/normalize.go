package hygiene

import (
	"fmt"
	"strings"

	"github.com/gaphound/gaphound/models"
	"github.com/gaphound/gaphound/types"
)

// gap is the canonical internal shape every upstream record is converted to
// before deduplication and scoring.
type gap struct {
	id          string
	source      models.GapSource
	description string
	severity    int
	likelihood  int
	suggestion  string
	relatedACs  []string
	mergedFrom  []string
}

// defaultScale is used for any vocabulary token the tables don't recognize.
// Normalization never fails on unexpected vocabulary.
const defaultScale = 3

// Severity/likelihood vocabulary tables. Each closed vocabulary maps
// deterministically onto the 1-5 scale.
var (
	// UX severity words.
	uxSeverityScale = map[string]int{
		"critical":   5,
		"major":      4,
		"minor":      2,
		"suggestion": 1,
	}

	// QA severity/priority words.
	qaSeverityScale = map[string]int{
		"high":   4,
		"medium": 3,
		"low":    2,
	}

	// Adversarial impact words.
	impactScale = map[string]int{
		"critical":   5,
		"high":       4,
		"medium":     3,
		"low":        2,
		"negligible": 1,
	}

	// Adversarial likelihood words.
	likelihoodScale = map[string]int{
		"certain":  5,
		"likely":   4,
		"possible": 3,
		"unlikely": 2,
		"rare":     1,
	}

	// WCAG conformance level of an accessibility gap drives its likelihood:
	// level A violations affect nearly every user of assistive technology.
	wcagLikelihood = map[string]int{
		"a":   5,
		"aa":  4,
		"aaa": 2,
	}
)

// Per-source likelihood constants. These are fixed by the semantics of each
// analysis pass, not inferred from the finding text.
const (
	likelihoodScopeMissing      = 4
	likelihoodScopeOther        = 3
	likelihoodRequirement       = 4
	likelihoodDepBlocking       = 5
	likelihoodDepNonBlocking    = 3
	likelihoodPrioPlanning      = 4
	likelihoodPrioOther         = 2
	likelihoodUsability         = 4
	likelihoodDesignPattern     = 3
	likelihoodUserFlow          = 4
	likelihoodTestability       = 4
	likelihoodEdgeCase          = 3
	likelihoodACUntestable      = 5
	likelihoodACClarity         = 4
	likelihoodCoverage          = 4
	severityAssumptionInvalid   = 4
	severityAssumptionPartially = 3
)

// scaleWord maps a vocabulary token onto 1-5 via the given table, defaulting
// to 3 for unrecognized tokens.
func scaleWord(table map[string]int, word string) int {
	if v, ok := table[strings.ToLower(strings.TrimSpace(word))]; ok {
		return v
	}
	return defaultScale
}

// clampScale clamps a raw integer rating to [1, 5].
func clampScale(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

// sourceID returns the explicit source-local id, or synthesizes one from the
// source tag and position so every gap is traceable.
func sourceID(explicit string, source models.GapSource, i int) string {
	if explicit != "" {
		return explicit
	}
	return fmt.Sprintf("%s-%d", source, i+1)
}

// normalizeAll converts every supplied analysis into canonical gaps, in fixed
// source order (PM, UX, QA, attack) with original order preserved within each
// list. No sorting happens here.
func normalizeAll(input Input) []gap {
	var gaps []gap
	if input.PM != nil {
		gaps = append(gaps, normalizePM(input.PM)...)
	}
	if input.UX != nil {
		gaps = append(gaps, normalizeUX(input.UX)...)
	}
	if input.QA != nil {
		gaps = append(gaps, normalizeQA(input.QA)...)
	}
	if input.Attack != nil {
		gaps = append(gaps, normalizeAttack(input.Attack)...)
	}
	return gaps
}

func normalizePM(pm *types.PMAnalysis) []gap {
	var gaps []gap
	for i, g := range pm.ScopeGaps {
		likelihood := likelihoodScopeOther
		if strings.EqualFold(g.Category, "missing") {
			likelihood = likelihoodScopeMissing
		}
		gaps = append(gaps, gap{
			id:          sourceID(g.ID, models.SourceScope, i),
			source:      models.SourceScope,
			description: g.Description,
			severity:    clampScale(g.Severity),
			likelihood:  likelihood,
			suggestion:  g.Suggestion,
		})
	}
	for i, g := range pm.RequirementGaps {
		gaps = append(gaps, gap{
			id:          sourceID(g.ID, models.SourceRequirement, i),
			source:      models.SourceRequirement,
			description: g.Description,
			severity:    clampScale(g.Severity),
			likelihood:  likelihoodRequirement,
			suggestion:  g.Suggestion,
		})
	}
	for i, g := range pm.DependencyGaps {
		likelihood := likelihoodDepNonBlocking
		if g.Blocking {
			likelihood = likelihoodDepBlocking
		}
		gaps = append(gaps, gap{
			id:          sourceID(g.ID, models.SourceDependency, i),
			source:      models.SourceDependency,
			description: g.Description,
			severity:    clampScale(g.Severity),
			likelihood:  likelihood,
			suggestion:  g.Suggestion,
		})
	}
	for i, g := range pm.PrioritizationGaps {
		likelihood := likelihoodPrioOther
		if g.AffectsPlanning {
			likelihood = likelihoodPrioPlanning
		}
		gaps = append(gaps, gap{
			id:          sourceID(g.ID, models.SourcePrioritization, i),
			source:      models.SourcePrioritization,
			description: g.Description,
			severity:    clampScale(g.Severity),
			likelihood:  likelihood,
			suggestion:  g.Suggestion,
		})
	}
	return gaps
}

func normalizeUX(ux *types.UXAnalysis) []gap {
	var gaps []gap
	for i, g := range ux.AccessibilityGaps {
		likelihood := defaultScale
		if g.WCAGLevel != "" {
			likelihood = scaleWord(wcagLikelihood, g.WCAGLevel)
		}
		gaps = append(gaps, gap{
			id:          sourceID(g.ID, models.SourceAccessibility, i),
			source:      models.SourceAccessibility,
			description: g.Description,
			severity:    scaleWord(uxSeverityScale, g.Severity),
			likelihood:  likelihood,
			suggestion:  g.Recommendation,
			relatedACs:  g.AffectedACs,
		})
	}
	for i, g := range ux.UsabilityGaps {
		gaps = append(gaps, gap{
			id:          sourceID(g.ID, models.SourceUsability, i),
			source:      models.SourceUsability,
			description: g.Description,
			severity:    scaleWord(uxSeverityScale, g.Severity),
			likelihood:  likelihoodUsability,
			suggestion:  g.Recommendation,
			relatedACs:  g.AffectedACs,
		})
	}
	for i, g := range ux.DesignPatternGaps {
		gaps = append(gaps, gap{
			id:          sourceID(g.ID, models.SourceDesignPattern, i),
			source:      models.SourceDesignPattern,
			description: g.Description,
			severity:    scaleWord(uxSeverityScale, g.Severity),
			likelihood:  likelihoodDesignPattern,
			suggestion:  g.Recommendation,
			relatedACs:  g.AffectedACs,
		})
	}
	for i, g := range ux.UserFlowGaps {
		gaps = append(gaps, gap{
			id:          sourceID(g.ID, models.SourceUserFlow, i),
			source:      models.SourceUserFlow,
			description: g.Description,
			severity:    scaleWord(uxSeverityScale, g.Severity),
			likelihood:  likelihoodUserFlow,
			suggestion:  g.Recommendation,
			relatedACs:  g.AffectedACs,
		})
	}
	return gaps
}

func normalizeQA(qa *types.QAAnalysis) []gap {
	var gaps []gap
	for i, g := range qa.TestabilityGaps {
		gaps = append(gaps, gap{
			id:          sourceID(g.ID, models.SourceTestability, i),
			source:      models.SourceTestability,
			description: g.Description,
			severity:    scaleWord(qaSeverityScale, g.Severity),
			likelihood:  likelihoodTestability,
			suggestion:  g.Suggestion,
			relatedACs:  relatedAC(g.RelatedAC),
		})
	}
	for i, g := range qa.EdgeCaseGaps {
		gaps = append(gaps, gap{
			id:          sourceID(g.ID, models.SourceEdgeCase, i),
			source:      models.SourceEdgeCase,
			description: g.Description,
			severity:    scaleWord(qaSeverityScale, g.Priority),
			likelihood:  likelihoodEdgeCase,
			suggestion:  g.Suggestion,
			relatedACs:  relatedAC(g.RelatedAC),
		})
	}
	for i, g := range qa.ACClarityGaps {
		// An untestable criterion is virtually guaranteed to cause defects.
		likelihood := likelihoodACClarity
		if strings.EqualFold(g.Issue, "untestable") {
			likelihood = likelihoodACUntestable
		}
		gaps = append(gaps, gap{
			id:          sourceID(g.ID, models.SourceACClarity, i),
			source:      models.SourceACClarity,
			description: g.Description,
			severity:    4,
			likelihood:  likelihood,
			suggestion:  g.Suggestion,
			relatedACs:  relatedAC(g.ACID),
		})
	}
	for i, g := range qa.CoverageGaps {
		gaps = append(gaps, gap{
			id:          sourceID(g.ID, models.SourceCoverage, i),
			source:      models.SourceCoverage,
			description: g.Description,
			severity:    scaleWord(qaSeverityScale, g.Severity),
			likelihood:  likelihoodCoverage,
			suggestion:  g.Suggestion,
			relatedACs:  relatedAC(g.RelatedAC),
		})
	}
	return gaps
}

func normalizeAttack(attack *types.AttackAnalysis) []gap {
	var gaps []gap
	for i, g := range attack.EdgeCases {
		gaps = append(gaps, gap{
			id:          sourceID(g.ID, models.SourceAttackEdgeCase, i),
			source:      models.SourceAttackEdgeCase,
			description: g.Description,
			severity:    scaleWord(impactScale, g.Impact),
			likelihood:  scaleWord(likelihoodScale, g.Likelihood),
			suggestion:  g.Mitigation,
		})
	}
	for i, g := range attack.Assumptions {
		severity := 0
		switch strings.ToLower(strings.TrimSpace(g.Validity)) {
		case types.ValidityInvalid:
			severity = severityAssumptionInvalid
		case types.ValidityPartiallyValid:
			severity = severityAssumptionPartially
		default:
			// Valid assumptions are not gaps.
			continue
		}
		description := g.Challenge
		if description == "" {
			description = g.Assumption
		}
		gaps = append(gaps, gap{
			id:          sourceID(g.ID, models.SourceAttackAssumption, i),
			source:      models.SourceAttackAssumption,
			description: description,
			severity:    severity,
			likelihood:  severity,
			suggestion:  g.Remediation,
		})
	}
	return gaps
}

func relatedAC(id string) []string {
	if id == "" {
		return nil
	}
	return []string{id}
}
