// Package policy evaluates project-wide security policies. Each rule is a
// named predicate over the full project graph; a failing rule emits one
// violation carrying the ids of the entities responsible. Rules are
// independent and all of them always run.
package policy

import (
	"github.com/otsec/zonegraph/pkg/model"
)

// Severity ranks a policy violation
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Violation is a failed policy rule
type Violation struct {
	RuleID           string   `json:"rule_id"`
	Severity         Severity `json:"severity"`
	Message          string   `json:"message"`
	AffectedEntities []string `json:"affected_entities"`
}

// Rule identifiers. Severities are fixed per rule.
const (
	RuleSL3ZoneInspection = "SL3_ZONE_INSPECTED_CONDUIT"
	RuleDMZRequired       = "DMZ_TIER_REQUIRED"
	RuleSafetyIsolation   = "SAFETY_ZONE_ISOLATION"
	RuleSafetySLFloor     = "SAFETY_ZONE_SL_FLOOR"
	RuleHighCritAsset     = "HIGH_CRITICALITY_ASSET_PROTECTION"
	RuleCleartextHighSL   = "CLEARTEXT_PROTOCOL_HIGH_SL"
)

// Rule is one policy predicate over the project graph
type Rule interface {
	// ID returns the stable rule identifier
	ID() string

	// Evaluate checks the rule; it returns nil when the project complies
	Evaluate(p *model.Project) *Violation
}

// rules is the static ordered rule set. Adding a rule means adding a type
// and appending it here.
var rules = []Rule{
	sl3InspectionRule{},
	dmzRequiredRule{},
	safetyIsolationRule{},
	safetySLFloorRule{},
	highCritAssetRule{},
	cleartextHighSLRule{},
}

// Rules returns the registered rule set in evaluation order
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// EvaluatePolicies runs every rule against the project and collects the
// violations in rule order. A compliant project yields an empty slice, not
// nil.
func EvaluatePolicies(p *model.Project) []Violation {
	violations := make([]Violation, 0)
	for _, rule := range rules {
		if v := rule.Evaluate(p); v != nil {
			violations = append(violations, *v)
		}
	}
	return violations
}
