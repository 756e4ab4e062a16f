// Package compliance maps engine diagnostics onto compliance standards and
// composes the combined report. The mapping tables are static metadata:
// they never change what the validator or policy evaluator compute, only
// how results are filtered and presented downstream.
package compliance

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/otsec/zonegraph/pkg/model"
	"github.com/otsec/zonegraph/pkg/policy"
	"github.com/otsec/zonegraph/pkg/validation"
)

// checkStandards maps each validator diagnostic code to the standards it is
// relevant under.
var checkStandards = map[string][]model.Standard{
	validation.CodeZoneCircularRef:            {model.StandardIEC62443, model.StandardPurdue},
	validation.CodeConduitSLInsufficient:      {model.StandardIEC62443},
	validation.CodeConduitInspectionRecommend: {model.StandardIEC62443, model.StandardNISTCSF},
	validation.CodeDMZBypass:                  {model.StandardIEC62443, model.StandardPurdue, model.StandardNERCCIP},
	validation.CodeCellIsolationViolation:     {model.StandardIEC62443, model.StandardPurdue},
	validation.CodeProtocolNotInAllowlist:     {model.StandardIEC62443, model.StandardNISTCSF, model.StandardNERCCIP},
	validation.CodeCriticalAssetLowSL:         {model.StandardIEC62443, model.StandardNERCCIP},
	validation.CodeZoneNoConduits:             {model.StandardIEC62443},
	validation.CodeConduitNoFlows:             {model.StandardIEC62443, model.StandardNISTCSF},
	validation.CodeSafetyZoneNonSafetyAsset:   {model.StandardIEC62443},
}

// ruleStandards maps each policy rule id to the standards it is relevant
// under.
var ruleStandards = map[string][]model.Standard{
	policy.RuleSL3ZoneInspection: {model.StandardIEC62443, model.StandardNISTCSF},
	policy.RuleDMZRequired:       {model.StandardIEC62443, model.StandardPurdue, model.StandardNERCCIP},
	policy.RuleSafetyIsolation:   {model.StandardIEC62443, model.StandardPurdue},
	policy.RuleSafetySLFloor:     {model.StandardIEC62443},
	policy.RuleHighCritAsset:     {model.StandardIEC62443, model.StandardNERCCIP},
	policy.RuleCleartextHighSL:   {model.StandardIEC62443, model.StandardNISTCSF, model.StandardNERCCIP},
}

// StandardsForCheck returns the standards a validator code is tagged with
func StandardsForCheck(code string) []model.Standard {
	return append([]model.Standard(nil), checkStandards[code]...)
}

// StandardsForRule returns the standards a policy rule is tagged with
func StandardsForRule(ruleID string) []model.Standard {
	return append([]model.Standard(nil), ruleStandards[ruleID]...)
}

// TaggedCheckCodes returns every mapped validator code, sorted
func TaggedCheckCodes() []string {
	codes := maps.Keys(checkStandards)
	sort.Strings(codes)
	return codes
}

// TaggedRuleIDs returns every mapped policy rule id, sorted
func TaggedRuleIDs() []string {
	ids := maps.Keys(ruleStandards)
	sort.Strings(ids)
	return ids
}

func tagged(tags []model.Standard, standard model.Standard) bool {
	for _, t := range tags {
		if t == standard {
			return true
		}
	}
	return false
}

// FilterResults keeps only the diagnostics relevant under the given
// standard, preserving order
func FilterResults(results []validation.Result, standard model.Standard) []validation.Result {
	filtered := make([]validation.Result, 0)
	for _, r := range results {
		if tagged(checkStandards[r.Code], standard) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// FilterViolations keeps only the violations relevant under the given
// standard, preserving order
func FilterViolations(violations []policy.Violation, standard model.Standard) []policy.Violation {
	filtered := make([]policy.Violation, 0)
	for _, v := range violations {
		if tagged(ruleStandards[v.RuleID], standard) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
