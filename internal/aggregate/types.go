package aggregate

// Project is a test-management project.
type Project struct {
	ID          string `json:"id"`
	Key         string `json:"key,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Version is a release of a project.
type Version struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Released    bool   `json:"released,omitempty"`
}

// Cycle is a test cycle within a project version. The Ad hoc cycle carries
// the reserved ID "-1".
type Cycle struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Environment string `json:"environment,omitempty"`
	Build       string `json:"build,omitempty"`
}

// Execution is a single test execution inside a cycle. Status carries the
// raw remote status string ("PASS", "FAIL", "BLOCKED", "UNEXECUTED") or ""
// when the remote record had none.
type Execution struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// DefectSummary is the defect-summary gadget payload. Its shape varies
// across deployments, so it is passed through undecoded.
type DefectSummary map[string]any

// ExecutionSummary is the execution-summary gadget payload, passed through
// undecoded like DefectSummary.
type ExecutionSummary map[string]any

// CycleMetrics holds the classified counters and derived rates for one set
// of executions. The four counters partition the total: every execution
// lands in exactly one bucket.
type CycleMetrics struct {
	Total         int     `json:"total"`
	Passed        int     `json:"passed"`
	Failed        int     `json:"failed"`
	Blocked       int     `json:"blocked"`
	Unexecuted    int     `json:"unexecuted"`
	ExecutionRate float64 `json:"execution_rate"`
	PassRate      float64 `json:"pass_rate"`
}

// CycleBreakdown pairs a cycle with its aggregated metrics inside a report.
// Executions is only populated when details were requested; a nil slice is
// omitted from the serialized report entirely.
type CycleBreakdown struct {
	Cycle      Cycle        `json:"cycle"`
	Metrics    CycleMetrics `json:"metrics"`
	Executions []Execution  `json:"executions,omitempty"`
}

// VersionReport is the version-level rollup produced by AggregateVersion.
// Overall is recomputed from the summed counters, never averaged from
// per-cycle rates.
type VersionReport struct {
	Overall         CycleMetrics
	RegressionTests int
	NegativeTests   int
	Cycles          []CycleBreakdown
}

// OverallMetrics is the version-level metrics block of a Report, extending
// CycleMetrics with the classification counts.
type OverallMetrics struct {
	TotalTests      int     `json:"total_tests"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	Blocked         int     `json:"blocked"`
	Unexecuted      int     `json:"unexecuted"`
	ExecutionRate   float64 `json:"execution_rate"`
	PassRate        float64 `json:"pass_rate"`
	RegressionTests int     `json:"regression_test_count"`
	NegativeTests   int     `json:"negative_test_count"`
}

// Report is the composite release report.
type Report struct {
	ProjectID        string           `json:"project_id"`
	VersionID        string           `json:"version_id"`
	GeneratedAt      string           `json:"report_generated"`
	Overall          OverallMetrics   `json:"overall_metrics"`
	CycleBreakdown   []CycleBreakdown `json:"cycle_breakdown"`
	DefectSummary    DefectSummary    `json:"defect_summary,omitempty"`
	ExecutionSummary ExecutionSummary `json:"execution_summary,omitempty"`
}

// CycleProgress is the flat per-cycle view returned by ExecutionProgress.
type CycleProgress struct {
	Cycle         Cycle   `json:"cycle"`
	TotalTests    int     `json:"total_tests"`
	Passed        int     `json:"passed"`
	Failed        int     `json:"failed"`
	Blocked       int     `json:"blocked"`
	Unexecuted    int     `json:"unexecuted"`
	ExecutionRate float64 `json:"execution_rate"`
	PassRate      float64 `json:"pass_rate"`
}

// Progress is the execution-progress response for a version, optionally
// narrowed to a single cycle. Overall rolls up the selected cycles.
type Progress struct {
	ProjectID string          `json:"project_id"`
	VersionID string          `json:"version_id"`
	CycleID   string          `json:"cycle_id,omitempty"`
	Cycles    []CycleProgress `json:"progress"`
	Overall   CycleMetrics    `json:"overall"`
	Timestamp string          `json:"timestamp"`
}

// ProjectList is the response envelope for project listing.
type ProjectList struct {
	Projects   []Project `json:"projects"`
	TotalCount int       `json:"total_count"`
	Timestamp  string    `json:"timestamp"`
}

// ReleaseOverview is the per-version entry of a ReleaseStatus response.
type ReleaseOverview struct {
	Version          Version          `json:"version"`
	ExecutionSummary ExecutionSummary `json:"execution_summary,omitempty"`
	Cycles           []Cycle          `json:"cycles"`
	CycleCount       int              `json:"cycle_count"`
}

// ReleaseStatus is the response envelope for release listing.
type ReleaseStatus struct {
	ProjectID string            `json:"project_id"`
	Releases  []ReleaseOverview `json:"releases"`
	Timestamp string            `json:"timestamp"`
}

// RegressionSummary is the response envelope for regression counting.
type RegressionSummary struct {
	ProjectID        string  `json:"project_id"`
	VersionID        string  `json:"version_id"`
	RegressionCycles []Cycle `json:"regression_cycles"`
	TotalRegression  int     `json:"total_regression_tests"`
	Timestamp        string  `json:"timestamp"`
}

// NegativeSummary is the response envelope for negative-test counting.
type NegativeSummary struct {
	ProjectID     string      `json:"project_id"`
	VersionID     string      `json:"version_id"`
	NegativeCount int         `json:"negative_test_count"`
	NegativeTests []Execution `json:"negative_tests"`
	TotalTests    int         `json:"total_tests"`
	Timestamp     string      `json:"timestamp"`
}

// ExecutionList is the response envelope for raw execution listing.
type ExecutionList struct {
	ProjectID  string      `json:"project_id"`
	VersionID  string      `json:"version_id"`
	CycleID    string      `json:"cycle_id,omitempty"`
	Executions []Execution `json:"executions"`
	TotalCount int         `json:"total_count"`
	Timestamp  string      `json:"timestamp"`
}

// DefectReport is the response envelope for the defect summary passthrough.
type DefectReport struct {
	ProjectID     string        `json:"project_id"`
	VersionID     string        `json:"version_id,omitempty"`
	DefectSummary DefectSummary `json:"defect_summary,omitempty"`
	Timestamp     string        `json:"timestamp"`
}

// SummaryReport is the response envelope for the execution summary
// passthrough.
type SummaryReport struct {
	ProjectID        string           `json:"project_id"`
	VersionID        string           `json:"version_id,omitempty"`
	ExecutionSummary ExecutionSummary `json:"execution_summary,omitempty"`
	Timestamp        string           `json:"timestamp"`
}
