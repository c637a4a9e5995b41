package aggregate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAggregateCycle(t *testing.T) {
	execs := []Execution{
		{ID: "1", Status: "PASS"},
		{ID: "2", Status: "PASS"},
		{ID: "3", Status: "FAIL"},
		{ID: "4", Status: "UNEXECUTED"},
	}

	got := AggregateCycle(execs)
	want := CycleMetrics{
		Total:         4,
		Passed:        2,
		Failed:        1,
		Blocked:       0,
		Unexecuted:    1,
		ExecutionRate: 75.0,
		PassRate:      50.0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AggregateCycle mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateCycle_Empty(t *testing.T) {
	got := AggregateCycle(nil)
	want := CycleMetrics{}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("empty cycle mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateCycle_AllUnexecuted(t *testing.T) {
	got := AggregateCycle([]Execution{{Status: ""}, {Status: "WIP"}})
	if got.ExecutionRate != 0 || got.PassRate != 0 {
		t.Errorf("rates = %v/%v, want 0/0", got.ExecutionRate, got.PassRate)
	}
	if got.Unexecuted != 2 || got.Total != 2 {
		t.Errorf("unexecuted/total = %d/%d, want 2/2", got.Unexecuted, got.Total)
	}
}

func TestAggregateCycle_Rounding(t *testing.T) {
	cases := []struct {
		name     string
		execs    []Execution
		wantExec float64
		wantPass float64
	}{
		{
			name: "five of six executed",
			execs: []Execution{
				{Status: "PASS"}, {Status: "PASS"}, {Status: "PASS"},
				{Status: "FAIL"}, {Status: "BLOCKED"}, {Status: ""},
			},
			wantExec: 83.33,
			wantPass: 50.0,
		},
		{
			name:     "one third",
			execs:    []Execution{{Status: "PASS"}, {Status: ""}, {Status: ""}},
			wantExec: 33.33,
			wantPass: 33.33,
		},
		{
			name:     "two thirds rounds up",
			execs:    []Execution{{Status: "PASS"}, {Status: "PASS"}, {Status: ""}},
			wantExec: 66.67,
			wantPass: 66.67,
		},
		{
			name:     "exact hundred",
			execs:    []Execution{{Status: "PASS"}, {Status: "FAIL"}},
			wantExec: 100.0,
			wantPass: 50.0,
		},
	}
	for _, tc := range cases {
		got := AggregateCycle(tc.execs)
		if got.ExecutionRate != tc.wantExec {
			t.Errorf("%s: ExecutionRate = %v, want %v", tc.name, got.ExecutionRate, tc.wantExec)
		}
		if got.PassRate != tc.wantPass {
			t.Errorf("%s: PassRate = %v, want %v", tc.name, got.PassRate, tc.wantPass)
		}
	}
}

func TestAggregateCycle_BucketsPartitionTotal(t *testing.T) {
	statuses := []string{"PASS", "FAIL", "BLOCKED", "UNEXECUTED", "", "WIP", "PASS", "SCHEDULED"}
	var execs []Execution
	for i := 0; i < 64; i++ {
		execs = append(execs, Execution{Status: statuses[i%len(statuses)]})
	}

	m := AggregateCycle(execs)
	if sum := m.Passed + m.Failed + m.Blocked + m.Unexecuted; sum != m.Total {
		t.Errorf("buckets sum to %d, total is %d", sum, m.Total)
	}
	if m.Total != len(execs) {
		t.Errorf("total = %d, want %d", m.Total, len(execs))
	}
}
