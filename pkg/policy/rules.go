package policy

import (
	"fmt"
	"strings"

	"github.com/otsec/zonegraph/pkg/model"
	"github.com/otsec/zonegraph/pkg/seclevel"
)

// sl3InspectionRule: every zone targeting SL 3 or higher must have at least
// one attached conduit with inspection enabled. A high-security zone whose
// traffic nobody inspects defeats its own level.
type sl3InspectionRule struct{}

func (sl3InspectionRule) ID() string { return RuleSL3ZoneInspection }

func (sl3InspectionRule) Evaluate(p *model.Project) *Violation {
	affected := make([]string, 0)
	for i := range p.Zones {
		zone := &p.Zones[i]
		if zone.SecurityLevel < 3 {
			continue
		}
		conduits := p.ConduitsFor(zone.ID)
		if len(conduits) == 0 {
			continue
		}
		inspected := false
		for _, c := range conduits {
			if c.RequiresInspection {
				inspected = true
				break
			}
		}
		if !inspected {
			affected = append(affected, zone.ID)
		}
	}
	if len(affected) == 0 {
		return nil
	}
	return &Violation{
		RuleID:   RuleSL3ZoneInspection,
		Severity: SeverityHigh,
		Message: fmt.Sprintf("zones at SL 3+ have no inspected conduit: %s",
			strings.Join(affected, ", ")),
		AffectedEntities: affected,
	}
}

// dmzRequiredRule: a project that contains both an enterprise tier and a
// control tier (cell, area, or safety zones) must also contain a DMZ tier
// to buffer them.
type dmzRequiredRule struct{}

func (dmzRequiredRule) ID() string { return RuleDMZRequired }

func (dmzRequiredRule) Evaluate(p *model.Project) *Violation {
	if p.HasZoneOfType(model.ZoneTypeDMZ) {
		return nil
	}
	hasControl := p.HasZoneOfType(model.ZoneTypeCell) ||
		p.HasZoneOfType(model.ZoneTypeArea) ||
		p.HasZoneOfType(model.ZoneTypeSafety)
	if !p.HasZoneOfType(model.ZoneTypeEnterprise) || !hasControl {
		return nil
	}

	affected := make([]string, 0)
	for _, z := range p.ZonesOfType(model.ZoneTypeEnterprise) {
		affected = append(affected, z.ID)
	}
	return &Violation{
		RuleID:           RuleDMZRequired,
		Severity:         SeverityHigh,
		Message:          "project mixes enterprise and control tiers without a DMZ zone",
		AffectedEntities: affected,
	}
}

// safetyIsolationRule: safety zones may only connect to control-tier zones.
// A direct conduit from a safety zone to the enterprise tier or the DMZ is
// a critical failure of separation.
type safetyIsolationRule struct{}

func (safetyIsolationRule) ID() string { return RuleSafetyIsolation }

func (safetyIsolationRule) Evaluate(p *model.Project) *Violation {
	affected := make([]string, 0)
	for i := range p.Conduits {
		conduit := &p.Conduits[i]
		from := p.Zone(conduit.FromZone)
		to := p.Zone(conduit.ToZone)

		var other *model.Zone
		switch {
		case from.Type == model.ZoneTypeSafety:
			other = to
		case to.Type == model.ZoneTypeSafety:
			other = from
		default:
			continue
		}
		if other.Type == model.ZoneTypeEnterprise || other.Type == model.ZoneTypeDMZ {
			affected = append(affected, conduit.ID)
		}
	}
	if len(affected) == 0 {
		return nil
	}
	return &Violation{
		RuleID:   RuleSafetyIsolation,
		Severity: SeverityCritical,
		Message: fmt.Sprintf("conduits connect safety zones outside the control tier: %s",
			strings.Join(affected, ", ")),
		AffectedEntities: affected,
	}
}

// safetySLFloorRule: safety zones must target at least SL 3. The safety
// instrumented system is the last line of defense and cannot share the
// threat model of an ordinary cell.
type safetySLFloorRule struct{}

func (safetySLFloorRule) ID() string { return RuleSafetySLFloor }

func (safetySLFloorRule) Evaluate(p *model.Project) *Violation {
	affected := make([]string, 0)
	for _, z := range p.ZonesOfType(model.ZoneTypeSafety) {
		if z.SecurityLevel < 3 {
			affected = append(affected, z.ID)
		}
	}
	if len(affected) == 0 {
		return nil
	}
	return &Violation{
		RuleID:   RuleSafetySLFloor,
		Severity: SeverityCritical,
		Message: fmt.Sprintf("safety zones target below SL 3: %s",
			strings.Join(affected, ", ")),
		AffectedEntities: affected,
	}
}

// highCritAssetRule: assets at the maximum criticality must sit in zones
// targeting SL 3 or higher.
type highCritAssetRule struct{}

func (highCritAssetRule) ID() string { return RuleHighCritAsset }

func (highCritAssetRule) Evaluate(p *model.Project) *Violation {
	affected := make([]string, 0)
	for i := range p.Zones {
		zone := &p.Zones[i]
		if zone.SecurityLevel >= 3 {
			continue
		}
		for ai := range zone.Assets {
			if zone.Assets[ai].Criticality == 5 {
				affected = append(affected, zone.ID)
				break
			}
		}
	}
	if len(affected) == 0 {
		return nil
	}
	return &Violation{
		RuleID:   RuleHighCritAsset,
		Severity: SeverityHigh,
		Message: fmt.Sprintf("criticality-5 assets sit in zones below SL 3: %s",
			strings.Join(affected, ", ")),
		AffectedEntities: affected,
	}
}

// cleartextProtocols lists protocols that carry credentials or commands in
// the clear.
var cleartextProtocols = map[string]bool{
	"http":   true,
	"ftp":    true,
	"telnet": true,
	"vnc":    true,
	"snmp":   true,
}

// cleartextHighSLRule: conduits whose effective required level is 3 or
// higher must not carry cleartext protocols.
type cleartextHighSLRule struct{}

func (cleartextHighSLRule) ID() string { return RuleCleartextHighSL }

func (cleartextHighSLRule) Evaluate(p *model.Project) *Violation {
	affected := make([]string, 0)
	for i := range p.Conduits {
		conduit := &p.Conduits[i]
		from := p.Zone(conduit.FromZone)
		to := p.Zone(conduit.ToZone)
		effective := seclevel.EffectiveConduitLevel(conduit.RequiredSecurityLevel, from.SecurityLevel, to.SecurityLevel)
		if effective < 3 {
			continue
		}
		for fi := range conduit.Flows {
			if cleartextProtocols[strings.ToLower(conduit.Flows[fi].Protocol)] {
				affected = append(affected, conduit.ID)
				break
			}
		}
	}
	if len(affected) == 0 {
		return nil
	}
	return &Violation{
		RuleID:   RuleCleartextHighSL,
		Severity: SeverityMedium,
		Message: fmt.Sprintf("conduits at SL 3+ carry cleartext protocols: %s",
			strings.Join(affected, ", ")),
		AffectedEntities: affected,
	}
}
