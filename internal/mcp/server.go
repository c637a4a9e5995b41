// Package mcp exposes the aggregation engine as MCP tools over stdio, so
// agent frontends can query test-management data without speaking ZAPI.
package mcp

import (
	"context"
	"time"

	"sirocco/internal/aggregate"
	"sirocco/internal/logging"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server around the aggregation engine.
type Server struct {
	MCPServer *sdkmcp.Server
	engine    *aggregate.Engine
}

// NewServer creates an MCP server exposing the test-management tool set.
// The version string ends up in the server's implementation info; empty
// means "dev".
func NewServer(engine *aggregate.Engine, version string) *Server {
	if version == "" {
		version = "dev"
	}
	s := &Server{engine: engine}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "sirocco", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_projects",
		Description: "Get all projects from Zephyr",
	}, s.handleGetProjects)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_release_status",
		Description: "Get comprehensive release status for a project",
	}, s.handleGetReleaseStatus)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_test_execution_summary",
		Description: "Get test execution summary with pass/fail counts",
	}, s.handleGetExecutionSummary)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_regression_test_count",
		Description: "Get count of regression tests for a project/version",
	}, s.handleGetRegressionCount)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_negative_test_count",
		Description: "Get count of negative tests for a project/version",
	}, s.handleGetNegativeCount)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_defect_summary",
		Description: "Get defect summary for a project/version",
	}, s.handleGetDefectSummary)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_execution_progress",
		Description: "Get detailed test execution progress",
	}, s.handleGetExecutionProgress)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_execution_details",
		Description: "Get detailed execution information for tests",
	}, s.handleGetExecutionDetails)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "generate_test_report",
		Description: "Generate comprehensive test report for a release",
	}, s.handleGenerateReport)
}

// nowStamp returns the timestamp attached to structured error outputs.
func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// --- Tool input/output types ---
//
// Every output carries its payload on success, or error + timestamp when a
// remote fetch failed. Missing identifiers never reach the payload path:
// the engine rejects them and the handler returns the error itself, which
// the SDK surfaces as a tool error.

type projectsInput struct{}

type projectsOutput struct {
	ProjectList *aggregate.ProjectList `json:"project_list,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Timestamp   string                 `json:"timestamp,omitempty"`
}

type releaseStatusInput struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	VersionID string `json:"version_id,omitempty" jsonschema:"Version/Release ID (optional)"`
}

type releaseStatusOutput struct {
	ReleaseStatus *aggregate.ReleaseStatus `json:"release_status,omitempty"`
	Error         string                   `json:"error,omitempty"`
	Timestamp     string                   `json:"timestamp,omitempty"`
}

type executionSummaryInput struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	VersionID string `json:"version_id,omitempty" jsonschema:"Version ID (optional)"`
}

type executionSummaryOutput struct {
	Summary   *aggregate.SummaryReport `json:"summary,omitempty"`
	Error     string                   `json:"error,omitempty"`
	Timestamp string                   `json:"timestamp,omitempty"`
}

type regressionCountInput struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	VersionID string `json:"version_id" jsonschema:"Version ID"`
	CycleName string `json:"cycle_name,omitempty" jsonschema:"Cycle name filter (optional)"`
}

type regressionCountOutput struct {
	Regression *aggregate.RegressionSummary `json:"regression,omitempty"`
	Error      string                       `json:"error,omitempty"`
	Timestamp  string                       `json:"timestamp,omitempty"`
}

type negativeCountInput struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	VersionID string `json:"version_id" jsonschema:"Version ID"`
}

type negativeCountOutput struct {
	Negative  *aggregate.NegativeSummary `json:"negative,omitempty"`
	Error     string                     `json:"error,omitempty"`
	Timestamp string                     `json:"timestamp,omitempty"`
}

type defectSummaryInput struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	VersionID string `json:"version_id,omitempty" jsonschema:"Version ID (optional)"`
}

type defectSummaryOutput struct {
	Defects   *aggregate.DefectReport `json:"defects,omitempty"`
	Error     string                  `json:"error,omitempty"`
	Timestamp string                  `json:"timestamp,omitempty"`
}

type executionProgressInput struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	VersionID string `json:"version_id" jsonschema:"Version ID"`
	CycleID   string `json:"cycle_id,omitempty" jsonschema:"Cycle ID (optional)"`
}

type executionProgressOutput struct {
	Progress  *aggregate.Progress `json:"progress,omitempty"`
	Error     string              `json:"error,omitempty"`
	Timestamp string              `json:"timestamp,omitempty"`
}

type executionDetailsInput struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	VersionID string `json:"version_id" jsonschema:"Version ID"`
	CycleID   string `json:"cycle_id,omitempty" jsonschema:"Cycle ID (optional)"`
}

type executionDetailsOutput struct {
	Executions *aggregate.ExecutionList `json:"executions,omitempty"`
	Error      string                   `json:"error,omitempty"`
	Timestamp  string                   `json:"timestamp,omitempty"`
}

type generateReportInput struct {
	ProjectID      string `json:"project_id" jsonschema:"Project ID"`
	VersionID      string `json:"version_id" jsonschema:"Version ID"`
	IncludeDetails bool   `json:"include_details,omitempty" jsonschema:"Include detailed execution info (default: false)"`
}

type generateReportOutput struct {
	Report    *aggregate.Report `json:"report,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp string            `json:"timestamp,omitempty"`
}

// --- Tool handlers ---

func (s *Server) handleGetProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, _ projectsInput) (*sdkmcp.CallToolResult, projectsOutput, error) {
	list, err := s.engine.Projects(ctx)
	if err != nil {
		logging.New("mcp").WarnContext(ctx, "get_projects failed", "error", err)
		return nil, projectsOutput{Error: err.Error(), Timestamp: nowStamp()}, nil
	}
	return nil, projectsOutput{ProjectList: list}, nil
}

func (s *Server) handleGetReleaseStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, input releaseStatusInput) (*sdkmcp.CallToolResult, releaseStatusOutput, error) {
	status, err := s.engine.ReleaseStatus(ctx, input.ProjectID, input.VersionID)
	if err != nil {
		if aggregate.IsInvalidInput(err) {
			return nil, releaseStatusOutput{}, err
		}
		logging.New("mcp").WarnContext(ctx, "get_release_status failed",
			"project_id", input.ProjectID, "error", err)
		return nil, releaseStatusOutput{Error: err.Error(), Timestamp: nowStamp()}, nil
	}
	return nil, releaseStatusOutput{ReleaseStatus: status}, nil
}

func (s *Server) handleGetExecutionSummary(ctx context.Context, _ *sdkmcp.CallToolRequest, input executionSummaryInput) (*sdkmcp.CallToolResult, executionSummaryOutput, error) {
	summary, err := s.engine.ExecutionSummary(ctx, input.ProjectID, input.VersionID)
	if err != nil {
		if aggregate.IsInvalidInput(err) {
			return nil, executionSummaryOutput{}, err
		}
		logging.New("mcp").WarnContext(ctx, "get_test_execution_summary failed",
			"project_id", input.ProjectID, "error", err)
		return nil, executionSummaryOutput{Error: err.Error(), Timestamp: nowStamp()}, nil
	}
	return nil, executionSummaryOutput{Summary: summary}, nil
}

func (s *Server) handleGetRegressionCount(ctx context.Context, _ *sdkmcp.CallToolRequest, input regressionCountInput) (*sdkmcp.CallToolResult, regressionCountOutput, error) {
	regression, err := s.engine.RegressionCount(ctx, input.ProjectID, input.VersionID, input.CycleName)
	if err != nil {
		if aggregate.IsInvalidInput(err) {
			return nil, regressionCountOutput{}, err
		}
		logging.New("mcp").WarnContext(ctx, "get_regression_test_count failed",
			"project_id", input.ProjectID, "version_id", input.VersionID, "error", err)
		return nil, regressionCountOutput{Error: err.Error(), Timestamp: nowStamp()}, nil
	}
	return nil, regressionCountOutput{Regression: regression}, nil
}

func (s *Server) handleGetNegativeCount(ctx context.Context, _ *sdkmcp.CallToolRequest, input negativeCountInput) (*sdkmcp.CallToolResult, negativeCountOutput, error) {
	negative, err := s.engine.NegativeCount(ctx, input.ProjectID, input.VersionID)
	if err != nil {
		if aggregate.IsInvalidInput(err) {
			return nil, negativeCountOutput{}, err
		}
		logging.New("mcp").WarnContext(ctx, "get_negative_test_count failed",
			"project_id", input.ProjectID, "version_id", input.VersionID, "error", err)
		return nil, negativeCountOutput{Error: err.Error(), Timestamp: nowStamp()}, nil
	}
	return nil, negativeCountOutput{Negative: negative}, nil
}

func (s *Server) handleGetDefectSummary(ctx context.Context, _ *sdkmcp.CallToolRequest, input defectSummaryInput) (*sdkmcp.CallToolResult, defectSummaryOutput, error) {
	defects, err := s.engine.DefectSummary(ctx, input.ProjectID, input.VersionID)
	if err != nil {
		if aggregate.IsInvalidInput(err) {
			return nil, defectSummaryOutput{}, err
		}
		logging.New("mcp").WarnContext(ctx, "get_defect_summary failed",
			"project_id", input.ProjectID, "error", err)
		return nil, defectSummaryOutput{Error: err.Error(), Timestamp: nowStamp()}, nil
	}
	return nil, defectSummaryOutput{Defects: defects}, nil
}

func (s *Server) handleGetExecutionProgress(ctx context.Context, _ *sdkmcp.CallToolRequest, input executionProgressInput) (*sdkmcp.CallToolResult, executionProgressOutput, error) {
	progress, err := s.engine.ExecutionProgress(ctx, input.ProjectID, input.VersionID, input.CycleID)
	if err != nil {
		if aggregate.IsInvalidInput(err) {
			return nil, executionProgressOutput{}, err
		}
		logging.New("mcp").WarnContext(ctx, "get_execution_progress failed",
			"project_id", input.ProjectID, "version_id", input.VersionID, "error", err)
		return nil, executionProgressOutput{Error: err.Error(), Timestamp: nowStamp()}, nil
	}
	return nil, executionProgressOutput{Progress: progress}, nil
}

func (s *Server) handleGetExecutionDetails(ctx context.Context, _ *sdkmcp.CallToolRequest, input executionDetailsInput) (*sdkmcp.CallToolResult, executionDetailsOutput, error) {
	executions, err := s.engine.ExecutionDetails(ctx, input.ProjectID, input.VersionID, input.CycleID)
	if err != nil {
		if aggregate.IsInvalidInput(err) {
			return nil, executionDetailsOutput{}, err
		}
		logging.New("mcp").WarnContext(ctx, "get_execution_details failed",
			"project_id", input.ProjectID, "version_id", input.VersionID, "error", err)
		return nil, executionDetailsOutput{Error: err.Error(), Timestamp: nowStamp()}, nil
	}
	return nil, executionDetailsOutput{Executions: executions}, nil
}

func (s *Server) handleGenerateReport(ctx context.Context, _ *sdkmcp.CallToolRequest, input generateReportInput) (*sdkmcp.CallToolResult, generateReportOutput, error) {
	report, err := s.engine.GenerateReport(ctx, input.ProjectID, input.VersionID, input.IncludeDetails)
	if err != nil {
		if aggregate.IsInvalidInput(err) {
			return nil, generateReportOutput{}, err
		}
		logging.New("mcp").WarnContext(ctx, "generate_test_report failed",
			"project_id", input.ProjectID, "version_id", input.VersionID, "error", err)
		return nil, generateReportOutput{Error: err.Error(), Timestamp: nowStamp()}, nil
	}
	return nil, generateReportOutput{Report: report}, nil
}
