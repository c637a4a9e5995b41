package aggregate

import "strings"

// Remote execution status values that classify into their own buckets.
// Anything else, including an absent status, counts as unexecuted.
const (
	StatusPass    = "PASS"
	StatusFail    = "FAIL"
	StatusBlocked = "BLOCKED"
)

// StatusBucket is the classification bucket of a single execution. The four
// buckets are exhaustive: Classify maps every execution to exactly one.
type StatusBucket int

const (
	Passed StatusBucket = iota
	Failed
	Blocked
	Unexecuted
)

// String returns the bucket name for logging and display.
func (b StatusBucket) String() string {
	switch b {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Blocked:
		return "blocked"
	default:
		return "unexecuted"
	}
}

// Classify maps an execution to its status bucket. The comparison is exact:
// remote deployments report the canonical upper-case strings, and anything
// unrecognized means the test was never run to completion.
func Classify(e Execution) StatusBucket {
	switch e.Status {
	case StatusPass:
		return Passed
	case StatusFail:
		return Failed
	case StatusBlocked:
		return Blocked
	default:
		return Unexecuted
	}
}

// IsRegression reports whether an execution belongs to the regression
// suite. The name is matched case-insensitively against "regression", and
// additionally against filter when one is supplied. The filter widens the
// match, it never replaces the default keyword.
func IsRegression(e Execution, filter string) bool {
	name := strings.ToLower(e.Name)
	if strings.Contains(name, "regression") {
		return true
	}
	return filter != "" && strings.Contains(name, strings.ToLower(filter))
}

// negativeKeywords mark a test as exercising a failure path.
var negativeKeywords = []string{"negative", "error", "invalid"}

// IsNegative reports whether an execution is a negative test: any of the
// keywords appearing case-insensitively in its name or description.
func IsNegative(e Execution) bool {
	name := strings.ToLower(e.Name)
	desc := strings.ToLower(e.Description)
	for _, kw := range negativeKeywords {
		if strings.Contains(name, kw) || strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}
