package aggregate

import "math"

// AggregateCycle folds a cycle's executions into counters and rates in a
// single pass. Each execution bumps exactly one counter, so the four
// buckets always sum to Total. An empty input produces all-zero metrics
// with both rates 0 rather than an error.
func AggregateCycle(execs []Execution) CycleMetrics {
	m := CycleMetrics{Total: len(execs)}
	for _, e := range execs {
		switch Classify(e) {
		case Passed:
			m.Passed++
		case Failed:
			m.Failed++
		case Blocked:
			m.Blocked++
		case Unexecuted:
			m.Unexecuted++
		}
	}
	m.ExecutionRate = rate(m.Total-m.Unexecuted, m.Total)
	m.PassRate = rate(m.Passed, m.Total)
	return m
}

// rate returns part/total as a percentage rounded to two decimals, or 0
// when total is zero.
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
