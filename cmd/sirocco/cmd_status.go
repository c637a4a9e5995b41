package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sirocco/internal/format"
)

var statusFlags struct {
	projectID string
	versionID string
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show release status for a project",
	RunE:  runStatus,
}

func init() {
	f := statusCmd.Flags()
	f.StringVar(&statusFlags.projectID, "project-id", "", "Project ID (required)")
	f.StringVar(&statusFlags.versionID, "version-id", "", "Narrow to a single version")

	_ = statusCmd.MarkFlagRequired("project-id")
}

func runStatus(cmd *cobra.Command, _ []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	status, err := engine.ReleaseStatus(cmd.Context(), statusFlags.projectID, statusFlags.versionID)
	if err != nil {
		return fmt.Errorf("release status: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(status.Releases) == 0 {
		fmt.Fprintf(out, "No releases found for project %s\n", status.ProjectID)
		return nil
	}

	tbl := format.NewTable(tableMode())
	tbl.Title(fmt.Sprintf("Releases of project %s", status.ProjectID))
	tbl.Header("VERSION", "NAME", "RELEASED", "CYCLES")
	tbl.Columns(format.ColumnConfig{Number: 4, Align: format.AlignRight})
	for _, r := range status.Releases {
		tbl.Row(r.Version.ID, r.Version.Name, format.BoolMark(r.Version.Released), r.CycleCount)
	}
	fmt.Fprintln(out, tbl.String())
	return nil
}
