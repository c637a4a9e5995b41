package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sirocco/internal/format"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects visible to the configured credentials",
	RunE:  runProjects,
}

func runProjects(cmd *cobra.Command, _ []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	list, err := engine.Projects(cmd.Context())
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	tbl := format.NewTable(tableMode())
	tbl.Title("Projects")
	tbl.Header("ID", "KEY", "NAME", "DESCRIPTION")
	for _, p := range list.Projects {
		tbl.Row(p.ID, p.Key, p.Name, format.Truncate(p.Description, 60))
	}
	tbl.Footer("", "", "total", list.TotalCount)
	fmt.Fprintln(cmd.OutOrStdout(), tbl.String())
	return nil
}
