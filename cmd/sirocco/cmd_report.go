package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sirocco/internal/aggregate"
	"sirocco/internal/format"
)

var reportFlags struct {
	projectID      string
	versionID      string
	includeDetails bool
	output         string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a release test report",
	Long: `Generates the composite release report: overall metrics, per-cycle
breakdown, and the defect and execution summaries. A summary table is
printed; use -o to also write the full report as JSON.`,
	RunE: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportFlags.projectID, "project-id", "", "Project ID (required)")
	f.StringVar(&reportFlags.versionID, "version-id", "", "Version ID (required)")
	f.BoolVar(&reportFlags.includeDetails, "include-details", false, "Carry per-execution detail in the JSON report")
	f.StringVarP(&reportFlags.output, "output", "o", "", "Write the full report JSON to this path")

	_ = reportCmd.MarkFlagRequired("project-id")
	_ = reportCmd.MarkFlagRequired("version-id")
}

func runReport(cmd *cobra.Command, _ []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	report, err := engine.GenerateReport(cmd.Context(),
		reportFlags.projectID, reportFlags.versionID, reportFlags.includeDetails)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderReportTable(report))

	if reportFlags.output != "" {
		return writeJSON(cmd, reportFlags.output, report)
	}
	return nil
}

func renderReportTable(report *aggregate.Report) string {
	tbl := format.NewTable(tableMode())
	tbl.Title(fmt.Sprintf("Release report %s / %s (%s)",
		report.ProjectID, report.VersionID, report.GeneratedAt))
	tbl.Header("CYCLE", "TOTAL", "PASSED", "FAILED", "BLOCKED", "UNEXECUTED", "EXECUTED", "PASS RATE")
	tbl.Columns(
		format.ColumnConfig{Number: 2, Align: format.AlignRight},
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
		format.ColumnConfig{Number: 6, Align: format.AlignRight},
		format.ColumnConfig{Number: 7, Align: format.AlignRight},
		format.ColumnConfig{Number: 8, Align: format.AlignRight},
	)
	for _, cb := range report.CycleBreakdown {
		m := cb.Metrics
		tbl.Row(cb.Cycle.Name, m.Total, m.Passed, m.Failed, m.Blocked, m.Unexecuted,
			format.FmtPercent(m.ExecutionRate), format.FmtPercent(m.PassRate))
	}
	o := report.Overall
	tbl.Footer("overall", o.TotalTests, o.Passed, o.Failed, o.Blocked, o.Unexecuted,
		format.FmtPercent(o.ExecutionRate), format.FmtPercent(o.PassRate))
	return tbl.String()
}
