package zephyr

import (
	"context"
	"io"
	"log/slog"

	"sirocco/internal/aggregate"
)

// Fetcher implements aggregate.Fetcher by calling the ZAPI through Client
// and mapping wire resources into domain entities. Required-field handling
// lives here and nowhere else: project, version, and cycle records arriving
// without an identifier are unusable downstream and get dropped with a
// warning. Executions are never dropped; a record without an identifier
// still counts toward metrics.
type Fetcher struct {
	client *Client
	logger *slog.Logger
}

var _ aggregate.Fetcher = (*Fetcher)(nil)

// NewFetcher returns a Fetcher backed by the given client. A nil logger
// disables logging.
func NewFetcher(client *Client, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Fetcher{client: client, logger: logger}
}

// ListProjects implements aggregate.Fetcher.
func (f *Fetcher) ListProjects(ctx context.Context) ([]aggregate.Project, error) {
	resources, err := f.client.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	projects := make([]aggregate.Project, 0, len(resources))
	for _, r := range resources {
		if r.ID == "" {
			f.logger.WarnContext(ctx, "dropping project without id", "name", r.Name)
			continue
		}
		projects = append(projects, aggregate.Project{
			ID:          r.ID.String(),
			Key:         r.Key,
			Name:        r.Name,
			Description: r.Description,
		})
	}
	return projects, nil
}

// ListVersions implements aggregate.Fetcher.
func (f *Fetcher) ListVersions(ctx context.Context, projectID string) ([]aggregate.Version, error) {
	resources, err := f.client.ListVersions(ctx, projectID)
	if err != nil {
		return nil, err
	}
	versions := make([]aggregate.Version, 0, len(resources))
	for _, r := range resources {
		if r.ID == "" {
			f.logger.WarnContext(ctx, "dropping version without id",
				"project_id", projectID, "name", r.Name)
			continue
		}
		versions = append(versions, aggregate.Version{
			ID:          r.ID.String(),
			Name:        r.Name,
			Description: r.Description,
			Released:    r.Released,
		})
	}
	return versions, nil
}

// ListCycles implements aggregate.Fetcher.
func (f *Fetcher) ListCycles(ctx context.Context, projectID, versionID string) ([]aggregate.Cycle, error) {
	resources, err := f.client.ListCycles(ctx, projectID, versionID)
	if err != nil {
		return nil, err
	}
	cycles := make([]aggregate.Cycle, 0, len(resources))
	for _, r := range resources {
		if r.ID == "" {
			f.logger.WarnContext(ctx, "dropping cycle without id",
				"project_id", projectID, "version_id", versionID, "name", r.Name)
			continue
		}
		cycles = append(cycles, aggregate.Cycle{
			ID:          r.ID.String(),
			Name:        r.Name,
			Description: r.Description,
			Environment: r.Environment,
			Build:       r.Build,
		})
	}
	return cycles, nil
}

// ListExecutions implements aggregate.Fetcher.
func (f *Fetcher) ListExecutions(ctx context.Context, projectID, versionID, cycleID string) ([]aggregate.Execution, error) {
	resources, err := f.client.ListExecutions(ctx, projectID, versionID, cycleID)
	if err != nil {
		return nil, err
	}
	execs := make([]aggregate.Execution, len(resources))
	for i, r := range resources {
		execs[i] = aggregate.Execution{
			ID:          r.ID.String(),
			Name:        r.TestCaseName,
			Description: r.TestCaseDescription,
			Status:      r.Status,
		}
	}
	return execs, nil
}

// GetDefectSummary implements aggregate.Fetcher.
func (f *Fetcher) GetDefectSummary(ctx context.Context, projectID, versionID string) (aggregate.DefectSummary, error) {
	defects, err := f.client.GetDefectSummary(ctx, projectID, versionID)
	if err != nil {
		return nil, err
	}
	return aggregate.DefectSummary(defects), nil
}

// GetExecutionSummary implements aggregate.Fetcher.
func (f *Fetcher) GetExecutionSummary(ctx context.Context, projectID, versionID string) (aggregate.ExecutionSummary, error) {
	summary, err := f.client.GetExecutionSummary(ctx, projectID, versionID)
	if err != nil {
		return nil, err
	}
	return aggregate.ExecutionSummary(summary), nil
}
