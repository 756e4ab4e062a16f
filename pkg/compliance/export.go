package compliance

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// ExportReport writes the report in the requested format
func ExportReport(report *Report, format string, writer io.Writer) error {
	switch format {
	case "json":
		return exportJSON(report, writer)
	case "text":
		return exportText(report, writer)
	case "markdown":
		return exportMarkdown(report, writer)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func exportJSON(report *Report, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func exportText(report *Report, writer io.Writer) error {
	fmt.Fprintf(writer, "Security Assessment: %s\n", report.ProjectName)
	fmt.Fprintf(writer, "Generated: %s\n", report.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(writer, "Standards: %v\n\n", report.Standards)

	fmt.Fprintf(writer, "Validation:\n")
	fmt.Fprintf(writer, "  Valid: %t (%d errors, %d warnings)\n",
		report.Validation.Valid, report.Validation.ErrorCount, report.Validation.WarningCount)
	for _, res := range report.Validation.Results {
		fmt.Fprintf(writer, "  [%s] %s: %s\n", res.Severity, res.Code, res.Message)
	}

	fmt.Fprintf(writer, "\nPolicy violations: %d\n", len(report.Violations))
	for _, v := range report.Violations {
		fmt.Fprintf(writer, "  [%s] %s: %s\n", v.Severity, v.RuleID, v.Message)
	}

	fmt.Fprintf(writer, "\nRisk: %.1f (%s)\n", report.Risk.Score, report.Risk.Level)
	for _, zr := range report.Risk.Zones {
		fmt.Fprintf(writer, "  %s: %.1f (%s)\n", zr.ZoneID, zr.Score, zr.Level)
	}

	fmt.Fprintf(writer, "\nMax security level: SL %d\n", report.Controls.MaxSecurityLevel)
	fmt.Fprintf(writer, "Global controls:\n")
	for _, c := range report.Controls.GlobalControls {
		fmt.Fprintf(writer, "  - %s\n", c)
	}

	return nil
}

func exportMarkdown(report *Report, writer io.Writer) error {
	fmt.Fprintf(writer, "# Security Assessment: %s\n\n", report.ProjectName)
	fmt.Fprintf(writer, "Generated: %s  \n", report.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(writer, "Standards: %v\n\n", report.Standards)

	fmt.Fprintf(writer, "## Validation\n\n")
	fmt.Fprintf(writer, "Valid: **%t** (%d errors, %d warnings)\n\n",
		report.Validation.Valid, report.Validation.ErrorCount, report.Validation.WarningCount)
	if len(report.Validation.Results) > 0 {
		fmt.Fprintf(writer, "| Severity | Code | Message |\n|---|---|---|\n")
		for _, res := range report.Validation.Results {
			fmt.Fprintf(writer, "| %s | %s | %s |\n", res.Severity, res.Code, res.Message)
		}
		fmt.Fprintln(writer)
	}

	fmt.Fprintf(writer, "## Policy Violations\n\n")
	if len(report.Violations) == 0 {
		fmt.Fprintf(writer, "None.\n\n")
	} else {
		fmt.Fprintf(writer, "| Severity | Rule | Affected |\n|---|---|---|\n")
		for _, v := range report.Violations {
			fmt.Fprintf(writer, "| %s | %s | %v |\n", v.Severity, v.RuleID, v.AffectedEntities)
		}
		fmt.Fprintln(writer)
	}

	fmt.Fprintf(writer, "## Risk\n\n")
	fmt.Fprintf(writer, "Project risk: **%.1f (%s)**\n\n", report.Risk.Score, report.Risk.Level)
	for _, zr := range report.Risk.Zones {
		fmt.Fprintf(writer, "- %s: %.1f (%s)\n", zr.ZoneID, zr.Score, zr.Level)
	}

	fmt.Fprintf(writer, "\n## Controls\n\n")
	fmt.Fprintf(writer, "Max security level: SL %d\n\n", report.Controls.MaxSecurityLevel)
	for _, c := range report.Controls.GlobalControls {
		fmt.Fprintf(writer, "- %s\n", c)
	}

	return nil
}
