package validation

import (
	"fmt"

	"github.com/otsec/zonegraph/pkg/model"
	"github.com/otsec/zonegraph/pkg/seclevel"
)

// conduitSLCheck verifies that each conduit's effective required level
// covers the more sensitive of its endpoints. An explicit override below
// that bar is a hard error.
type conduitSLCheck struct{}

func (conduitSLCheck) Code() string { return CodeConduitSLInsufficient }

func (conduitSLCheck) Run(p *model.Project) []Result {
	results := make([]Result, 0)
	for i := range p.Conduits {
		conduit := &p.Conduits[i]
		from := p.Zone(conduit.FromZone)
		to := p.Zone(conduit.ToZone)

		required := seclevel.ConduitSecurityLevel(from.SecurityLevel, to.SecurityLevel)
		effective := seclevel.EffectiveConduitLevel(conduit.RequiredSecurityLevel, from.SecurityLevel, to.SecurityLevel)
		if effective < required {
			results = append(results, Result{
				Severity: SeverityError,
				Code:     CodeConduitSLInsufficient,
				Message: fmt.Sprintf("conduit %q requires SL %d but is configured for SL %d",
					conduit.ID, required, effective),
				Location: "conduit/" + conduit.ID,
			})
		}
	}
	return results
}

// conduitInspectionCheck warns when the trust gap between endpoints calls
// for deep inspection but the conduit does not enable it.
type conduitInspectionCheck struct{}

func (conduitInspectionCheck) Code() string { return CodeConduitInspectionRecommend }

func (conduitInspectionCheck) Run(p *model.Project) []Result {
	results := make([]Result, 0)
	for i := range p.Conduits {
		conduit := &p.Conduits[i]
		from := p.Zone(conduit.FromZone)
		to := p.Zone(conduit.ToZone)

		if seclevel.RequiresInspection(from.SecurityLevel, to.SecurityLevel) && !conduit.RequiresInspection {
			results = append(results, Result{
				Severity: SeverityWarning,
				Code:     CodeConduitInspectionRecommend,
				Message: fmt.Sprintf("conduit %q crosses a %d-level trust gap without inspection enabled",
					conduit.ID, levelGap(from.SecurityLevel, to.SecurityLevel)),
				Location: "conduit/" + conduit.ID,
			})
		}
	}
	return results
}

func levelGap(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// dmzBypassCheck errors on conduits that connect an enterprise zone
// directly to a cell zone while the project contains a DMZ tier that the
// conduit skips.
type dmzBypassCheck struct{}

func (dmzBypassCheck) Code() string { return CodeDMZBypass }

func (dmzBypassCheck) Run(p *model.Project) []Result {
	results := make([]Result, 0)
	if !p.HasZoneOfType(model.ZoneTypeDMZ) {
		return results
	}

	for i := range p.Conduits {
		conduit := &p.Conduits[i]
		from := p.Zone(conduit.FromZone)
		to := p.Zone(conduit.ToZone)

		bypass := (from.Type == model.ZoneTypeEnterprise && to.Type == model.ZoneTypeCell) ||
			(from.Type == model.ZoneTypeCell && to.Type == model.ZoneTypeEnterprise)
		if bypass {
			results = append(results, Result{
				Severity: SeverityError,
				Code:     CodeDMZBypass,
				Message: fmt.Sprintf("conduit %q connects enterprise zone %q directly to cell zone %q, bypassing the DMZ",
					conduit.ID, conduit.FromZone, conduit.ToZone),
				Location: "conduit/" + conduit.ID,
			})
		}
	}
	return results
}

// cellIsolationCheck warns on conduits that link two cell zones directly.
// Cell-to-cell traffic should transit an area or aggregation tier.
type cellIsolationCheck struct{}

func (cellIsolationCheck) Code() string { return CodeCellIsolationViolation }

func (cellIsolationCheck) Run(p *model.Project) []Result {
	results := make([]Result, 0)
	for i := range p.Conduits {
		conduit := &p.Conduits[i]
		from := p.Zone(conduit.FromZone)
		to := p.Zone(conduit.ToZone)

		if from.Type == model.ZoneTypeCell && to.Type == model.ZoneTypeCell {
			results = append(results, Result{
				Severity: SeverityWarning,
				Code:     CodeCellIsolationViolation,
				Message: fmt.Sprintf("conduit %q connects cell zones %q and %q directly",
					conduit.ID, conduit.FromZone, conduit.ToZone),
				Location: "conduit/" + conduit.ID,
			})
		}
	}
	return results
}

// conduitNoFlowsCheck warns on conduits that define no protocol flows. A
// conduit with no declared flows cannot be turned into firewall policy.
type conduitNoFlowsCheck struct{}

func (conduitNoFlowsCheck) Code() string { return CodeConduitNoFlows }

func (conduitNoFlowsCheck) Run(p *model.Project) []Result {
	results := make([]Result, 0)
	for i := range p.Conduits {
		conduit := &p.Conduits[i]
		if len(conduit.Flows) == 0 {
			results = append(results, Result{
				Severity: SeverityWarning,
				Code:     CodeConduitNoFlows,
				Message:  fmt.Sprintf("conduit %q defines no protocol flows", conduit.ID),
				Location: "conduit/" + conduit.ID,
			})
		}
	}
	return results
}

// protocolAllowlistCheck reports flows whose protocol is neither on the
// project allowlist (when one is set) nor in the built-in known-protocol
// list.
type protocolAllowlistCheck struct{}

func (protocolAllowlistCheck) Code() string { return CodeProtocolNotInAllowlist }

func (protocolAllowlistCheck) Run(p *model.Project) []Result {
	results := make([]Result, 0)
	useAllowlist := len(p.Metadata.AllowedProtocols) > 0

	for i := range p.Conduits {
		conduit := &p.Conduits[i]
		for fi := range conduit.Flows {
			flow := &conduit.Flows[fi]

			permitted := false
			if useAllowlist {
				permitted = p.AllowsProtocol(flow.Protocol)
			} else {
				permitted = KnownProtocol(flow.Protocol)
			}
			if !permitted {
				results = append(results, Result{
					Severity: SeverityInfo,
					Code:     CodeProtocolNotInAllowlist,
					Message: fmt.Sprintf("conduit %q carries protocol %q which is not in the allowed protocol list",
						conduit.ID, flow.Protocol),
					Location: "conduit/" + conduit.ID,
				})
			}
		}
	}
	return results
}
