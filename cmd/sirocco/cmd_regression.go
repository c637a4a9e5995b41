package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sirocco/internal/format"
)

var regressionFlags struct {
	projectID string
	versionID string
	cycleName string
}

var regressionCmd = &cobra.Command{
	Use:   "regression",
	Short: "Count regression tests across a version's regression cycles",
	RunE:  runRegression,
}

func init() {
	f := regressionCmd.Flags()
	f.StringVar(&regressionFlags.projectID, "project-id", "", "Project ID (required)")
	f.StringVar(&regressionFlags.versionID, "version-id", "", "Version ID (required)")
	f.StringVar(&regressionFlags.cycleName, "cycle-name", "", "Extra cycle name filter")

	_ = regressionCmd.MarkFlagRequired("project-id")
	_ = regressionCmd.MarkFlagRequired("version-id")
}

func runRegression(cmd *cobra.Command, _ []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	summary, err := engine.RegressionCount(cmd.Context(),
		regressionFlags.projectID, regressionFlags.versionID, regressionFlags.cycleName)
	if err != nil {
		return fmt.Errorf("regression count: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(summary.RegressionCycles) == 0 {
		fmt.Fprintf(out, "No regression cycles in version %s of project %s\n",
			summary.VersionID, summary.ProjectID)
		return nil
	}

	tbl := format.NewTable(tableMode())
	tbl.Title(fmt.Sprintf("Regression cycles of version %s", summary.VersionID))
	tbl.Header("CYCLE", "NAME", "ENVIRONMENT", "BUILD")
	for _, c := range summary.RegressionCycles {
		tbl.Row(c.ID, c.Name, c.Environment, c.Build)
	}
	tbl.Footer("", "total regression tests", "", summary.TotalRegression)
	fmt.Fprintln(out, tbl.String())
	return nil
}
