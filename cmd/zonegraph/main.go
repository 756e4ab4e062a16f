package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/otsec/zonegraph/pkg/compliance"
	"github.com/otsec/zonegraph/pkg/logging"
	"github.com/otsec/zonegraph/pkg/metrics"
	"github.com/otsec/zonegraph/pkg/model"
	"github.com/otsec/zonegraph/pkg/policy"
	"github.com/otsec/zonegraph/pkg/resolver"
	"github.com/otsec/zonegraph/pkg/risk"
	"github.com/otsec/zonegraph/pkg/validation"
)

func main() {
	var (
		projectFile = flag.String("project", "project.yaml", "Project definition file (YAML)")
		mode        = flag.String("mode", "report", "What to run: validate, risk, policy, resolve, report")
		format      = flag.String("format", "text", "Output format for report mode: json, text, markdown")
		strict      = flag.Bool("strict", false, "Strict validation: warnings make the project invalid")
		standard    = flag.String("standard", "", "Filter report to one standard (IEC62443, PURDUE, NIST_CSF, NERC_CIP)")
	)
	flag.Parse()

	logger := logging.DefaultLogger()

	project, err := model.Load(*projectFile)
	if err != nil {
		logger.Error("failed to load project", logging.Path(*projectFile), logging.Error(err))
		os.Exit(1)
	}

	reg := metrics.DefaultRegistry()
	reg.SetProjectSize(len(project.Zones), len(project.Conduits), project.AssetCount())
	logger.Info("project loaded",
		logging.ProjectID(project.ID),
		logging.String("name", project.Metadata.Name),
		logging.Int("zones", len(project.Zones)),
		logging.Int("conduits", len(project.Conduits)),
	)

	switch *mode {
	case "validate":
		start := time.Now()
		report := validation.ValidateProject(project, *strict)
		infoCount := len(report.Results) - report.ErrorCount - report.WarningCount
		reg.RecordValidation(report.Valid, report.ErrorCount, report.WarningCount, infoCount, time.Since(start))
		emitJSON(report)
		if !report.Valid {
			os.Exit(2)
		}

	case "risk":
		start := time.Now()
		assessment := risk.AssessProject(project)
		reg.RecordRiskAssessment(assessment.Score, time.Since(start))
		emitJSON(assessment)

	case "policy":
		violations := policy.EvaluatePolicies(project)
		bySeverity := make(map[string]int)
		for _, v := range violations {
			bySeverity[string(v.Severity)]++
		}
		reg.RecordPolicyEvaluation(bySeverity)
		emitJSON(violations)

	case "resolve":
		start := time.Now()
		resolution := resolver.ResolveSecurityControls(project)
		reg.RecordResolverRun(time.Since(start))
		emitJSON(resolution)

	case "report":
		report := compliance.BuildReport(project, *strict)
		if *standard != "" {
			report = report.ForStandard(model.Standard(*standard))
		}
		if err := compliance.ExportReport(report, *format, os.Stdout); err != nil {
			logger.Error("failed to export report", logging.Error(err))
			os.Exit(1)
		}
		if !report.Validation.Valid {
			os.Exit(2)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		flag.Usage()
		os.Exit(1)
	}
}

func emitJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
		os.Exit(1)
	}
}
