package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sirocco/internal/format"
)

var progressFlags struct {
	projectID string
	versionID string
	cycleID   string
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show per-cycle execution progress for a version",
	RunE:  runProgress,
}

func init() {
	f := progressCmd.Flags()
	f.StringVar(&progressFlags.projectID, "project-id", "", "Project ID (required)")
	f.StringVar(&progressFlags.versionID, "version-id", "", "Version ID (required)")
	f.StringVar(&progressFlags.cycleID, "cycle-id", "", "Narrow to a single cycle")

	_ = progressCmd.MarkFlagRequired("project-id")
	_ = progressCmd.MarkFlagRequired("version-id")
}

func runProgress(cmd *cobra.Command, _ []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	progress, err := engine.ExecutionProgress(cmd.Context(),
		progressFlags.projectID, progressFlags.versionID, progressFlags.cycleID)
	if err != nil {
		return fmt.Errorf("execution progress: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(progress.Cycles) == 0 {
		fmt.Fprintf(out, "No cycles found for version %s of project %s\n",
			progress.VersionID, progress.ProjectID)
		return nil
	}

	tbl := format.NewTable(tableMode())
	tbl.Title(fmt.Sprintf("Execution progress for version %s", progress.VersionID))
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
	for _, c := range progress.Cycles {
		tbl.Row(c.Cycle.Name, c.TotalTests, c.Passed, c.Failed, c.Blocked, c.Unexecuted,
			format.FmtPercent(c.ExecutionRate), format.FmtPercent(c.PassRate))
	}
	o := progress.Overall
	tbl.Footer("overall", o.Total, o.Passed, o.Failed, o.Blocked, o.Unexecuted,
		format.FmtPercent(o.ExecutionRate), format.FmtPercent(o.PassRate))
	fmt.Fprintln(out, tbl.String())
	return nil
}
