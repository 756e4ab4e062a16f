package validation

import (
	"github.com/otsec/zonegraph/pkg/model"
)

// Severity indicates the importance of a diagnostic
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic codes emitted by the check battery. Severities are fixed per
// code and not configurable.
const (
	CodeZoneCircularRef            = "ZONE_CIRCULAR_REF"
	CodeConduitSLInsufficient      = "CONDUIT_SL_INSUFFICIENT"
	CodeConduitInspectionRecommend = "CONDUIT_INSPECTION_RECOMMENDED"
	CodeDMZBypass                  = "DMZ_BYPASS"
	CodeCellIsolationViolation     = "CELL_ISOLATION_VIOLATION"
	CodeProtocolNotInAllowlist     = "PROTOCOL_NOT_IN_ALLOWLIST"
	CodeCriticalAssetLowSL         = "CRITICAL_ASSET_LOW_SL"
	CodeZoneNoConduits             = "ZONE_NO_CONDUITS"
	CodeConduitNoFlows             = "CONDUIT_NO_FLOWS"
	CodeSafetyZoneNonSafetyAsset   = "SAFETY_ZONE_NON_SAFETY_ASSET"
)

// Result is a single diagnostic produced by one check
type Result struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Location string   `json:"location,omitempty"`
}

// Report contains the results of validating a project against all checks
type Report struct {
	Results      []Result `json:"results"`
	ErrorCount   int      `json:"error_count"`
	WarningCount int      `json:"warning_count"`
	Valid        bool     `json:"valid"`
}

// ResultsByCode returns the diagnostics carrying the given code
func (r *Report) ResultsByCode(code string) []Result {
	filtered := make([]Result, 0)
	for _, res := range r.Results {
		if res.Code == code {
			filtered = append(filtered, res)
		}
	}
	return filtered
}

// ResultsBySeverity returns the diagnostics carrying the given severity
func (r *Report) ResultsBySeverity(severity Severity) []Result {
	filtered := make([]Result, 0)
	for _, res := range r.Results {
		if res.Severity == severity {
			filtered = append(filtered, res)
		}
	}
	return filtered
}

// Check is one rule in the validation battery. A check walks the project
// and returns zero or more diagnostics; it never mutates the project and
// never fails.
type Check interface {
	// Code returns the stable diagnostic code this check emits
	Code() string

	// Run evaluates the check against the project
	Run(p *model.Project) []Result
}
