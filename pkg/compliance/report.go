package compliance

import (
	"time"

	"github.com/google/uuid"

	"github.com/otsec/zonegraph/pkg/model"
	"github.com/otsec/zonegraph/pkg/policy"
	"github.com/otsec/zonegraph/pkg/resolver"
	"github.com/otsec/zonegraph/pkg/risk"
	"github.com/otsec/zonegraph/pkg/validation"
)

// Report composes the output of all four engine components for one project
type Report struct {
	ID          string              `json:"id"`
	ProjectID   string              `json:"project_id"`
	ProjectName string              `json:"project_name"`
	GeneratedAt time.Time           `json:"generated_at"`
	Standards   []model.Standard    `json:"standards"`
	Validation  *validation.Report  `json:"validation"`
	Violations  []policy.Violation  `json:"violations"`
	Risk        *risk.Assessment    `json:"risk"`
	Controls    *resolver.Resolution `json:"controls"`
}

// BuildReport runs the validator, policy evaluator, risk engine, and
// resolver against the project and composes their outputs. The engine
// components themselves stay pure; the run id and timestamp live only on
// this wrapper.
func BuildReport(p *model.Project, strict bool) *Report {
	return &Report{
		ID:          uuid.NewString(),
		ProjectID:   p.ID,
		ProjectName: p.Metadata.Name,
		GeneratedAt: time.Now().UTC(),
		Standards:   append([]model.Standard(nil), p.Metadata.Standards...),
		Validation:  validation.ValidateProject(p, strict),
		Violations:  policy.EvaluatePolicies(p),
		Risk:        risk.AssessProject(p),
		Controls:    resolver.ResolveSecurityControls(p),
	}
}

// ForStandard returns a copy of the report with diagnostics and violations
// narrowed to those relevant under one standard. Risk and controls are not
// standard-specific and carry over unchanged.
func (r *Report) ForStandard(standard model.Standard) *Report {
	narrowed := *r
	narrowed.Standards = []model.Standard{standard}

	if r.Validation != nil {
		filtered := FilterResults(r.Validation.Results, standard)
		report := &validation.Report{Results: filtered}
		for _, res := range filtered {
			switch res.Severity {
			case validation.SeverityError:
				report.ErrorCount++
			case validation.SeverityWarning:
				report.WarningCount++
			}
		}
		report.Valid = report.ErrorCount == 0
		narrowed.Validation = report
	}
	narrowed.Violations = FilterViolations(r.Violations, standard)
	return &narrowed
}
