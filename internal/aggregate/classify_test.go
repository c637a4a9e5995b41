package aggregate

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		status string
		want   StatusBucket
	}{
		{"PASS", Passed},
		{"FAIL", Failed},
		{"BLOCKED", Blocked},
		{"UNEXECUTED", Unexecuted},
		{"", Unexecuted},
		{"WIP", Unexecuted},
		{"SCHEDULED", Unexecuted},
		// The comparison is exact; remote deployments send upper case.
		{"pass", Unexecuted},
		{"Fail", Unexecuted},
	}
	for _, tc := range cases {
		if got := Classify(Execution{Status: tc.status}); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.status, got, tc.want)
		}
	}
}

func TestStatusBucketString(t *testing.T) {
	cases := map[StatusBucket]string{
		Passed:     "passed",
		Failed:     "failed",
		Blocked:    "blocked",
		Unexecuted: "unexecuted",
	}
	for bucket, want := range cases {
		if got := bucket.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", bucket, got, want)
		}
	}
}

func TestIsRegression(t *testing.T) {
	cases := []struct {
		name   string
		exec   Execution
		filter string
		want   bool
	}{
		{"keyword in name", Execution{Name: "Payment regression check"}, "", true},
		{"keyword upper case", Execution{Name: "Full REGRESSION run"}, "", true},
		{"no keyword", Execution{Name: "Login smoke"}, "", false},
		{"filter widens match", Execution{Name: "Nightly sweep"}, "sweep", true},
		{"filter case-insensitive", Execution{Name: "Nightly SWEEP"}, "sweep", true},
		{"filter misses", Execution{Name: "Login smoke"}, "sweep", false},
		{"empty filter never matches everything", Execution{Name: "Login smoke"}, "", false},
		{"keyword wins regardless of filter", Execution{Name: "regression pass"}, "zzz", true},
	}
	for _, tc := range cases {
		if got := IsRegression(tc.exec, tc.filter); got != tc.want {
			t.Errorf("%s: IsRegression(%q, %q) = %v, want %v",
				tc.name, tc.exec.Name, tc.filter, got, tc.want)
		}
	}
}

func TestIsNegative(t *testing.T) {
	cases := []struct {
		name string
		exec Execution
		want bool
	}{
		{"negative in name", Execution{Name: "Negative auth flow"}, true},
		{"error in description", Execution{Name: "Timeout", Description: "Expects an error response"}, true},
		{"invalid in name", Execution{Name: "Rejects INVALID payload"}, true},
		{"clean test", Execution{Name: "Checkout flow", Description: "Buys a product"}, false},
		{"empty execution", Execution{}, false},
	}
	for _, tc := range cases {
		if got := IsNegative(tc.exec); got != tc.want {
			t.Errorf("%s: IsNegative = %v, want %v", tc.name, got, tc.want)
		}
	}
}
