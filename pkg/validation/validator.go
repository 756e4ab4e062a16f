// Package validation implements the zone and conduit check battery. Each
// check is a pure function over an already-constructed Project; checks are
// registered in a fixed order so reports are deterministic across runs, and
// every check always runs to completion regardless of earlier findings.
package validation

import (
	"github.com/otsec/zonegraph/pkg/model"
)

// checks is the static ordered battery: zone-scoped checks first, then
// conduit-scoped checks, each iterating the project in declaration order.
// Adding a check means adding a type and appending it here.
var checks = []Check{
	zoneCircularRefCheck{},
	criticalAssetLowSLCheck{},
	safetyZoneAssetCheck{},
	zoneNoConduitsCheck{},
	conduitSLCheck{},
	conduitInspectionCheck{},
	dmzBypassCheck{},
	cellIsolationCheck{},
	conduitNoFlowsCheck{},
	protocolAllowlistCheck{},
}

// Checks returns the registered battery in evaluation order
func Checks() []Check {
	out := make([]Check, len(checks))
	copy(out, checks)
	return out
}

// ValidateProject runs every registered check against the project and
// tallies the findings. In strict mode any warning renders the project
// invalid; otherwise only errors do.
func ValidateProject(p *model.Project, strict bool) *Report {
	report := &Report{
		Results: make([]Result, 0),
	}

	for _, check := range checks {
		report.Results = append(report.Results, check.Run(p)...)
	}

	for _, res := range report.Results {
		switch res.Severity {
		case SeverityError:
			report.ErrorCount++
		case SeverityWarning:
			report.WarningCount++
		}
	}

	report.Valid = report.ErrorCount == 0
	if strict && report.WarningCount > 0 {
		report.Valid = false
	}

	return report
}
