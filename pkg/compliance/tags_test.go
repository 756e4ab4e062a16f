package compliance

import (
	"reflect"
	"testing"

	"github.com/otsec/zonegraph/pkg/model"
	"github.com/otsec/zonegraph/pkg/policy"
	"github.com/otsec/zonegraph/pkg/validation"
)

func TestEveryCheckCodeTagged(t *testing.T) {
	for _, check := range validation.Checks() {
		tags := StandardsForCheck(check.Code())
		if len(tags) == 0 {
			t.Errorf("validator code %s has no standards mapping", check.Code())
		}
	}
}

func TestEveryRuleIDTagged(t *testing.T) {
	for _, rule := range policy.Rules() {
		tags := StandardsForRule(rule.ID())
		if len(tags) == 0 {
			t.Errorf("policy rule %s has no standards mapping", rule.ID())
		}
	}
}

func TestNoOrphanTags(t *testing.T) {
	// The tag tables must not reference codes or rule ids the engines no
	// longer register.
	registered := make(map[string]bool)
	for _, check := range validation.Checks() {
		registered[check.Code()] = true
	}
	for _, code := range TaggedCheckCodes() {
		if !registered[code] {
			t.Errorf("tag table references unregistered validator code %s", code)
		}
	}

	ruleIDs := make(map[string]bool)
	for _, rule := range policy.Rules() {
		ruleIDs[rule.ID()] = true
	}
	for _, id := range TaggedRuleIDs() {
		if !ruleIDs[id] {
			t.Errorf("tag table references unregistered policy rule %s", id)
		}
	}
}

func TestEveryTagUnderIEC62443(t *testing.T) {
	// IEC 62443 is the base standard; every diagnostic is relevant under it.
	for _, code := range TaggedCheckCodes() {
		if !tagged(StandardsForCheck(code), model.StandardIEC62443) {
			t.Errorf("validator code %s not tagged IEC62443", code)
		}
	}
	for _, id := range TaggedRuleIDs() {
		if !tagged(StandardsForRule(id), model.StandardIEC62443) {
			t.Errorf("policy rule %s not tagged IEC62443", id)
		}
	}
}

func TestFilterResultsPreservesOrder(t *testing.T) {
	results := []validation.Result{
		{Severity: validation.SeverityError, Code: validation.CodeDMZBypass, Message: "a"},
		{Severity: validation.SeverityInfo, Code: validation.CodeZoneNoConduits, Message: "b"},
		{Severity: validation.SeverityWarning, Code: validation.CodeCellIsolationViolation, Message: "c"},
	}

	filtered := FilterResults(results, model.StandardPurdue)
	want := []validation.Result{results[0], results[2]}
	if !reflect.DeepEqual(filtered, want) {
		t.Errorf("filtered = %v, want %v", filtered, want)
	}

	// ZONE_NO_CONDUITS is IEC62443-only, so nothing survives a NERC filter
	// here except the DMZ bypass.
	filtered = FilterResults(results, model.StandardNERCCIP)
	if len(filtered) != 1 || filtered[0].Code != validation.CodeDMZBypass {
		t.Errorf("NERC filter = %v", filtered)
	}
}

func TestFilterViolationsPreservesOrder(t *testing.T) {
	violations := []policy.Violation{
		{RuleID: policy.RuleSafetySLFloor, Severity: policy.SeverityCritical},
		{RuleID: policy.RuleDMZRequired, Severity: policy.SeverityHigh},
		{RuleID: policy.RuleSafetyIsolation, Severity: policy.SeverityCritical},
	}

	filtered := FilterViolations(violations, model.StandardPurdue)
	want := []policy.Violation{violations[1], violations[2]}
	if !reflect.DeepEqual(filtered, want) {
		t.Errorf("filtered = %v, want %v", filtered, want)
	}
}
