package aggregate

// CycleExecutions pairs a cycle with its canonical execution list. Each
// reporting pass fetches every cycle's executions exactly once and carries
// them through in this form, so metrics, rollups, and keyword counts all
// read from the same data.
type CycleExecutions struct {
	Cycle      Cycle
	Executions []Execution
}

// AggregateVersion rolls per-cycle execution lists up to version level.
// Counters are summed across cycles and the version rates recomputed from
// the sums; averaging per-cycle rates would weight a two-test cycle the
// same as a two-hundred-test one. Regression and negative counts are
// classified once over the union of all executions. Breakdown entries keep
// the order of the input and carry the full execution lists; the report
// assembler decides whether those survive serialization.
func AggregateVersion(cycles []CycleExecutions) VersionReport {
	vr := VersionReport{Cycles: make([]CycleBreakdown, len(cycles))}
	for i, ce := range cycles {
		m := AggregateCycle(ce.Executions)
		vr.Cycles[i] = CycleBreakdown{
			Cycle:      ce.Cycle,
			Metrics:    m,
			Executions: ce.Executions,
		}
		vr.Overall.Total += m.Total
		vr.Overall.Passed += m.Passed
		vr.Overall.Failed += m.Failed
		vr.Overall.Blocked += m.Blocked
		vr.Overall.Unexecuted += m.Unexecuted

		for _, e := range ce.Executions {
			if IsRegression(e, "") {
				vr.RegressionTests++
			}
			if IsNegative(e) {
				vr.NegativeTests++
			}
		}
	}
	vr.Overall.ExecutionRate = rate(vr.Overall.Total-vr.Overall.Unexecuted, vr.Overall.Total)
	vr.Overall.PassRate = rate(vr.Overall.Passed, vr.Overall.Total)
	return vr
}
