package aggregate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// twoCycleFixture is the canonical two-cycle rollup: 4 executions in the
// first cycle, 2 in the second.
func twoCycleFixture() []CycleExecutions {
	return []CycleExecutions{
		{
			Cycle: Cycle{ID: "c1", Name: "Smoke"},
			Executions: []Execution{
				{ID: "1", Name: "Login happy path", Status: "PASS"},
				{ID: "2", Name: "Checkout regression", Status: "PASS"},
				{ID: "3", Name: "Invalid card rejected", Status: "FAIL"},
				{ID: "4", Name: "Refund flow", Status: ""},
			},
		},
		{
			Cycle: Cycle{ID: "c2", Name: "Regression Sweep"},
			Executions: []Execution{
				{ID: "5", Name: "API error responses", Status: "PASS"},
				{ID: "6", Name: "Session timeout", Status: "BLOCKED"},
			},
		},
	}
}

func TestAggregateVersion(t *testing.T) {
	vr := AggregateVersion(twoCycleFixture())

	wantOverall := CycleMetrics{
		Total:         6,
		Passed:        3,
		Failed:        1,
		Blocked:       1,
		Unexecuted:    1,
		ExecutionRate: 83.33,
		PassRate:      50.0,
	}
	if diff := cmp.Diff(wantOverall, vr.Overall); diff != "" {
		t.Errorf("overall mismatch (-want +got):\n%s", diff)
	}

	if len(vr.Cycles) != 2 {
		t.Fatalf("breakdown has %d cycles, want 2", len(vr.Cycles))
	}
	if vr.Cycles[0].Cycle.ID != "c1" || vr.Cycles[1].Cycle.ID != "c2" {
		t.Errorf("breakdown order = %s, %s; want c1, c2",
			vr.Cycles[0].Cycle.ID, vr.Cycles[1].Cycle.ID)
	}

	wantFirst := CycleMetrics{Total: 4, Passed: 2, Failed: 1, Unexecuted: 1, ExecutionRate: 75.0, PassRate: 50.0}
	if diff := cmp.Diff(wantFirst, vr.Cycles[0].Metrics); diff != "" {
		t.Errorf("first cycle metrics mismatch (-want +got):\n%s", diff)
	}
	wantSecond := CycleMetrics{Total: 2, Passed: 1, Blocked: 1, ExecutionRate: 100.0, PassRate: 50.0}
	if diff := cmp.Diff(wantSecond, vr.Cycles[1].Metrics); diff != "" {
		t.Errorf("second cycle metrics mismatch (-want +got):\n%s", diff)
	}

	// The breakdown keeps the canonical execution lists.
	if len(vr.Cycles[0].Executions) != 4 || len(vr.Cycles[1].Executions) != 2 {
		t.Errorf("breakdown executions = %d, %d; want 4, 2",
			len(vr.Cycles[0].Executions), len(vr.Cycles[1].Executions))
	}
}

func TestAggregateVersion_KeywordCounts(t *testing.T) {
	vr := AggregateVersion(twoCycleFixture())

	// "Checkout regression" by name; "Invalid card rejected" and
	// "API error responses" by keyword.
	if vr.RegressionTests != 1 {
		t.Errorf("RegressionTests = %d, want 1", vr.RegressionTests)
	}
	if vr.NegativeTests != 2 {
		t.Errorf("NegativeTests = %d, want 2", vr.NegativeTests)
	}
}

func TestAggregateVersion_Empty(t *testing.T) {
	vr := AggregateVersion(nil)
	if vr.Cycles == nil {
		t.Error("Cycles must be non-nil for an empty rollup")
	}
	if diff := cmp.Diff(CycleMetrics{}, vr.Overall); diff != "" {
		t.Errorf("overall mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateVersion_RatesRecomputedFromSums(t *testing.T) {
	cycles := []CycleExecutions{
		{Cycle: Cycle{ID: "tiny"}, Executions: []Execution{{Status: "PASS"}}},
		{Cycle: Cycle{ID: "big"}, Executions: []Execution{
			{Status: "FAIL"}, {Status: "FAIL"}, {Status: "FAIL"},
		}},
	}

	vr := AggregateVersion(cycles)
	// Averaging the per-cycle pass rates would give 50; the recomputed
	// rate is 1 of 4.
	if vr.Overall.PassRate != 25.0 {
		t.Errorf("PassRate = %v, want 25", vr.Overall.PassRate)
	}
	if vr.Overall.ExecutionRate != 100.0 {
		t.Errorf("ExecutionRate = %v, want 100", vr.Overall.ExecutionRate)
	}
}

func TestAggregateVersion_CountersAdditive(t *testing.T) {
	fixture := twoCycleFixture()
	vr := AggregateVersion(fixture)

	var total, passed, failed, blocked, unexecuted int
	for _, ce := range fixture {
		m := AggregateCycle(ce.Executions)
		total += m.Total
		passed += m.Passed
		failed += m.Failed
		blocked += m.Blocked
		unexecuted += m.Unexecuted
	}
	if vr.Overall.Total != total || vr.Overall.Passed != passed ||
		vr.Overall.Failed != failed || vr.Overall.Blocked != blocked ||
		vr.Overall.Unexecuted != unexecuted {
		t.Errorf("overall counters %+v are not the per-cycle sums", vr.Overall)
	}
}
