package aggregate

import (
	"context"
	"time"
)

// AssembleReport builds the composite release report from a version rollup
// and the gadget passthroughs. GeneratedAt is stamped in UTC RFC 3339.
// When includeDetails is false the per-cycle execution lists are dropped,
// so the serialized report carries no executions arrays at all.
func AssembleReport(projectID, versionID string, vr VersionReport, defects DefectSummary, summary ExecutionSummary, includeDetails bool) *Report {
	breakdown := make([]CycleBreakdown, len(vr.Cycles))
	copy(breakdown, vr.Cycles)
	if !includeDetails {
		for i := range breakdown {
			breakdown[i].Executions = nil
		}
	}

	return &Report{
		ProjectID:   projectID,
		VersionID:   versionID,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Overall: OverallMetrics{
			TotalTests:      vr.Overall.Total,
			Passed:          vr.Overall.Passed,
			Failed:          vr.Overall.Failed,
			Blocked:         vr.Overall.Blocked,
			Unexecuted:      vr.Overall.Unexecuted,
			ExecutionRate:   vr.Overall.ExecutionRate,
			PassRate:        vr.Overall.PassRate,
			RegressionTests: vr.RegressionTests,
			NegativeTests:   vr.NegativeTests,
		},
		CycleBreakdown:   breakdown,
		DefectSummary:    defects,
		ExecutionSummary: summary,
	}
}

// GenerateReport produces the full release report for a version. Cycle
// executions are fetched exactly once through the bounded fan-out; the
// same lists feed the per-cycle metrics, the version rollup, and the
// regression/negative counts.
func (e *Engine) GenerateReport(ctx context.Context, projectID, versionID string, includeDetails bool) (*Report, error) {
	if err := requireID("project_id", projectID); err != nil {
		return nil, err
	}
	if err := requireID("version_id", versionID); err != nil {
		return nil, err
	}

	summary, err := e.fetcher.GetExecutionSummary(ctx, projectID, versionID)
	if err != nil {
		return nil, err
	}
	defects, err := e.fetcher.GetDefectSummary(ctx, projectID, versionID)
	if err != nil {
		return nil, err
	}
	cycles, err := e.fetcher.ListCycles(ctx, projectID, versionID)
	if err != nil {
		return nil, err
	}

	collected, err := e.collectCycles(ctx, projectID, versionID, cycles)
	if err != nil {
		return nil, err
	}

	vr := AggregateVersion(collected)
	e.logger.InfoContext(ctx, "report generated",
		"project_id", projectID, "version_id", versionID,
		"cycles", len(collected), "total", vr.Overall.Total)

	return AssembleReport(projectID, versionID, vr, defects, summary, includeDetails), nil
}
