package aggregate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// defaultWorkers bounds the per-cycle fetch fan-out when no explicit
// worker count is configured.
const defaultWorkers = 4

// Fetcher supplies the remote test-management records the engine
// aggregates. Implementations return their errors unchanged; the engine
// never retries. Where a method allows it, an empty versionID or cycleID
// means unfiltered.
type Fetcher interface {
	ListProjects(ctx context.Context) ([]Project, error)
	ListVersions(ctx context.Context, projectID string) ([]Version, error)
	ListCycles(ctx context.Context, projectID, versionID string) ([]Cycle, error)
	ListExecutions(ctx context.Context, projectID, versionID, cycleID string) ([]Execution, error)
	GetDefectSummary(ctx context.Context, projectID, versionID string) (DefectSummary, error)
	GetExecutionSummary(ctx context.Context, projectID, versionID string) (ExecutionSummary, error)
}

// Engine drives fetching, classification, and aggregation. It holds no
// state beyond its configuration and is safe for concurrent use.
type Engine struct {
	fetcher Fetcher
	workers int
	logger  *slog.Logger
}

// EngineOption configures the Engine during construction.
type EngineOption func(*Engine)

// WithWorkers bounds the number of concurrent per-cycle execution fetches.
// Non-positive values keep the default.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine returns an Engine reading from f.
func NewEngine(f Fetcher, opts ...EngineOption) *Engine {
	e := &Engine{
		fetcher: f,
		workers: defaultWorkers,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// timestamp returns the current UTC time in RFC 3339, the stamp carried by
// every response envelope.
func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// nonNil guards response arrays against serializing as JSON null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// collectCycles fetches every cycle's executions through a bounded worker
// pool. Results land in an index-addressed slice, so output order matches
// the cycle listing no matter which fetch finishes first. The first failed
// fetch cancels the remaining ones and fails the whole collection; callers
// never see a partial result.
func (e *Engine) collectCycles(ctx context.Context, projectID, versionID string, cycles []Cycle) ([]CycleExecutions, error) {
	collected := make([]CycleExecutions, len(cycles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, c := range cycles {
		g.Go(func() error {
			execs, err := e.fetcher.ListExecutions(gctx, projectID, versionID, c.ID)
			if err != nil {
				return fmt.Errorf("cycle %s: %w", c.ID, err)
			}
			collected[i] = CycleExecutions{Cycle: c, Executions: execs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return collected, nil
}

// Projects lists all projects visible to the configured credentials.
func (e *Engine) Projects(ctx context.Context) (*ProjectList, error) {
	projects, err := e.fetcher.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	return &ProjectList{
		Projects:   nonNil(projects),
		TotalCount: len(projects),
		Timestamp:  timestamp(),
	}, nil
}

// ReleaseStatus summarizes each release of a project: the version record,
// its execution summary gadget, and its cycles. A supplied versionID
// narrows the listing to that single release; an unknown versionID yields
// an empty release list.
func (e *Engine) ReleaseStatus(ctx context.Context, projectID, versionID string) (*ReleaseStatus, error) {
	if err := requireID("project_id", projectID); err != nil {
		return nil, err
	}

	versions, err := e.fetcher.ListVersions(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if versionID != "" {
		var selected []Version
		for _, v := range versions {
			if v.ID == versionID {
				selected = append(selected, v)
			}
		}
		versions = selected
	}

	releases := make([]ReleaseOverview, 0, len(versions))
	for _, v := range versions {
		summary, err := e.fetcher.GetExecutionSummary(ctx, projectID, v.ID)
		if err != nil {
			return nil, err
		}
		cycles, err := e.fetcher.ListCycles(ctx, projectID, v.ID)
		if err != nil {
			return nil, err
		}
		releases = append(releases, ReleaseOverview{
			Version:          v,
			ExecutionSummary: summary,
			Cycles:           nonNil(cycles),
			CycleCount:       len(cycles),
		})
	}

	return &ReleaseStatus{
		ProjectID: projectID,
		Releases:  releases,
		Timestamp: timestamp(),
	}, nil
}

// ExecutionSummary passes through the execution-summary gadget for a
// project, optionally narrowed to a version.
func (e *Engine) ExecutionSummary(ctx context.Context, projectID, versionID string) (*SummaryReport, error) {
	if err := requireID("project_id", projectID); err != nil {
		return nil, err
	}
	summary, err := e.fetcher.GetExecutionSummary(ctx, projectID, versionID)
	if err != nil {
		return nil, err
	}
	return &SummaryReport{
		ProjectID:        projectID,
		VersionID:        versionID,
		ExecutionSummary: summary,
		Timestamp:        timestamp(),
	}, nil
}

// DefectSummary passes through the defect-summary gadget for a project,
// optionally narrowed to a version.
func (e *Engine) DefectSummary(ctx context.Context, projectID, versionID string) (*DefectReport, error) {
	if err := requireID("project_id", projectID); err != nil {
		return nil, err
	}
	defects, err := e.fetcher.GetDefectSummary(ctx, projectID, versionID)
	if err != nil {
		return nil, err
	}
	return &DefectReport{
		ProjectID:     projectID,
		VersionID:     versionID,
		DefectSummary: defects,
		Timestamp:     timestamp(),
	}, nil
}

// ExecutionDetails lists the raw executions of a version, optionally
// narrowed to a single cycle.
func (e *Engine) ExecutionDetails(ctx context.Context, projectID, versionID, cycleID string) (*ExecutionList, error) {
	if err := requireID("project_id", projectID); err != nil {
		return nil, err
	}
	if err := requireID("version_id", versionID); err != nil {
		return nil, err
	}
	execs, err := e.fetcher.ListExecutions(ctx, projectID, versionID, cycleID)
	if err != nil {
		return nil, err
	}
	return &ExecutionList{
		ProjectID:  projectID,
		VersionID:  versionID,
		CycleID:    cycleID,
		Executions: nonNil(execs),
		TotalCount: len(execs),
		Timestamp:  timestamp(),
	}, nil
}

// NegativeCount counts negative tests across a whole version in one
// unfiltered execution fetch.
func (e *Engine) NegativeCount(ctx context.Context, projectID, versionID string) (*NegativeSummary, error) {
	if err := requireID("project_id", projectID); err != nil {
		return nil, err
	}
	if err := requireID("version_id", versionID); err != nil {
		return nil, err
	}

	execs, err := e.fetcher.ListExecutions(ctx, projectID, versionID, "")
	if err != nil {
		return nil, err
	}
	negative := make([]Execution, 0)
	for _, ex := range execs {
		if IsNegative(ex) {
			negative = append(negative, ex)
		}
	}
	return &NegativeSummary{
		ProjectID:     projectID,
		VersionID:     versionID,
		NegativeCount: len(negative),
		NegativeTests: negative,
		TotalTests:    len(execs),
		Timestamp:     timestamp(),
	}, nil
}

// regressionCycle reports whether a cycle belongs to the regression suite:
// its name contains "regression" case-insensitively, or the optional extra
// filter when one is supplied.
func regressionCycle(c Cycle, filter string) bool {
	name := strings.ToLower(c.Name)
	if strings.Contains(name, "regression") {
		return true
	}
	return filter != "" && strings.Contains(name, strings.ToLower(filter))
}

// RegressionCount totals executions across the version's regression
// cycles. Qualifying cycles' executions are fetched through the same
// bounded fan-out as reporting.
func (e *Engine) RegressionCount(ctx context.Context, projectID, versionID, cycleName string) (*RegressionSummary, error) {
	if err := requireID("project_id", projectID); err != nil {
		return nil, err
	}
	if err := requireID("version_id", versionID); err != nil {
		return nil, err
	}

	cycles, err := e.fetcher.ListCycles(ctx, projectID, versionID)
	if err != nil {
		return nil, err
	}
	var qualifying []Cycle
	for _, c := range cycles {
		if regressionCycle(c, cycleName) {
			qualifying = append(qualifying, c)
		}
	}

	collected, err := e.collectCycles(ctx, projectID, versionID, qualifying)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, ce := range collected {
		total += len(ce.Executions)
	}

	e.logger.DebugContext(ctx, "regression cycles counted",
		"project_id", projectID, "version_id", versionID,
		"qualifying", len(qualifying), "total", total)

	return &RegressionSummary{
		ProjectID:        projectID,
		VersionID:        versionID,
		RegressionCycles: nonNil(qualifying),
		TotalRegression:  total,
		Timestamp:        timestamp(),
	}, nil
}

// ExecutionProgress reports per-cycle progress for a version. A cycleID
// narrows the report to that cycle; an unknown cycleID yields an empty
// progress list rather than an error. Overall rolls up exactly the
// selected cycles.
func (e *Engine) ExecutionProgress(ctx context.Context, projectID, versionID, cycleID string) (*Progress, error) {
	if err := requireID("project_id", projectID); err != nil {
		return nil, err
	}
	if err := requireID("version_id", versionID); err != nil {
		return nil, err
	}

	cycles, err := e.fetcher.ListCycles(ctx, projectID, versionID)
	if err != nil {
		return nil, err
	}
	if cycleID != "" {
		var selected []Cycle
		for _, c := range cycles {
			if c.ID == cycleID {
				selected = append(selected, c)
			}
		}
		cycles = selected
	}

	collected, err := e.collectCycles(ctx, projectID, versionID, cycles)
	if err != nil {
		return nil, err
	}

	vr := AggregateVersion(collected)
	progress := make([]CycleProgress, len(vr.Cycles))
	for i, cb := range vr.Cycles {
		progress[i] = CycleProgress{
			Cycle:         cb.Cycle,
			TotalTests:    cb.Metrics.Total,
			Passed:        cb.Metrics.Passed,
			Failed:        cb.Metrics.Failed,
			Blocked:       cb.Metrics.Blocked,
			Unexecuted:    cb.Metrics.Unexecuted,
			ExecutionRate: cb.Metrics.ExecutionRate,
			PassRate:      cb.Metrics.PassRate,
		}
	}

	return &Progress{
		ProjectID: projectID,
		VersionID: versionID,
		CycleID:   cycleID,
		Cycles:    progress,
		Overall:   vr.Overall,
		Timestamp: timestamp(),
	}, nil
}
