package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sirocco/internal/format"
)

var negativeFlags struct {
	projectID string
	versionID string
}

var negativeCmd = &cobra.Command{
	Use:   "negative",
	Short: "Count negative tests in a version",
	Long: `Counts tests whose name or description marks them as negative
("negative", "error", "invalid") across all cycles of a version.`,
	RunE: runNegative,
}

func init() {
	f := negativeCmd.Flags()
	f.StringVar(&negativeFlags.projectID, "project-id", "", "Project ID (required)")
	f.StringVar(&negativeFlags.versionID, "version-id", "", "Version ID (required)")

	_ = negativeCmd.MarkFlagRequired("project-id")
	_ = negativeCmd.MarkFlagRequired("version-id")
}

func runNegative(cmd *cobra.Command, _ []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	summary, err := engine.NegativeCount(cmd.Context(),
		negativeFlags.projectID, negativeFlags.versionID)
	if err != nil {
		return fmt.Errorf("negative count: %w", err)
	}

	out := cmd.OutOrStdout()
	tbl := format.NewTable(tableMode())
	tbl.Title(fmt.Sprintf("Negative tests in version %s", summary.VersionID))
	tbl.Header("ID", "NAME", "STATUS")
	for _, e := range summary.NegativeTests {
		tbl.Row(e.ID, format.Truncate(e.Name, 60), e.Status)
	}
	tbl.Footer("", "negative / total", format.FmtRatio(summary.NegativeCount, summary.TotalTests))
	fmt.Fprintln(out, tbl.String())
	return nil
}
