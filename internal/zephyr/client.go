package zephyr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// apiPrefix is the root of the ZAPI REST surface, relative to the base URL.
const apiPrefix = "/rest/zapi/latest/"

// Config carries the connection settings for a Zephyr instance. AccessKey
// takes precedence when set; otherwise Username and Password are sent as
// basic auth on every request.
type Config struct {
	BaseURL   string
	Username  string
	Password  string
	AccessKey string
}

// Client is a high-level client for the Zephyr API.
type Client struct {
	baseURL    string
	username   string
	password   string
	accessKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the Client during construction.
type Option func(*clientConfig) error

type clientConfig struct {
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
}

// New creates a new Client from the given Config.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("zephyr: base URL is required")
	}
	if cfg.AccessKey == "" && cfg.Username == "" {
		return nil, fmt.Errorf("zephyr: access key or username/password is required")
	}

	cc := &clientConfig{}
	for _, opt := range opts {
		if err := opt(cc); err != nil {
			return nil, err
		}
	}

	httpClient := cc.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cc.timeout > 0 {
		httpClient.Timeout = cc.timeout
	}

	logger := cc.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		accessKey:  cfg.AccessKey,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithTimeout sets a timeout on the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		cfg.timeout = d
		return nil
	}
}

// endpoint builds a full ZAPI URL for the given path and query parameters.
func (c *Client) endpoint(path string, params url.Values) string {
	u := c.baseURL + apiPrefix + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// doJSON executes an HTTP request and decodes the JSON response into dst.
// If the response has an error status, it returns an *APIError.
func (c *Client) doJSON(ctx context.Context, method, url, operation string, body io.Reader, dst any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", operation, err)
	}
	if c.accessKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessKey)
	} else {
		req.SetBasicAuth(c.username, c.password)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.DebugContext(ctx, "API request", "operation", operation, "method", method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: do request: %w", operation, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "API response", "operation", operation, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		var errRS errorRS
		if json.Unmarshal(respBody, &errRS) == nil && errRS.ErrorDesc != "" {
			return newAPIError(operation, resp.StatusCode, errRS.ErrorID, errRS.ErrorDesc)
		}
		msg := string(respBody)
		if msg == "" {
			msg = resp.Status
		}
		return newAPIError(operation, resp.StatusCode, 0, msg)
	}

	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return fmt.Errorf("%s: decode response: %w", operation, err)
		}
	}
	return nil
}

// CheckAuth probes the API with the configured credentials. Zephyr has no
// dedicated auth endpoint, so this hits util/teststep and reports whether
// the credentials were accepted.
func (c *Client) CheckAuth(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, c.endpoint("util/teststep", nil), "check auth", nil, nil)
}

// ListProjects returns all projects visible to the authenticated user.
func (c *Client) ListProjects(ctx context.Context) ([]ProjectResource, error) {
	var projects projectCollection
	u := c.endpoint("util/project", nil)
	if err := c.doJSON(ctx, http.MethodGet, u, "list projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ListVersions returns the versions (releases) of a project.
func (c *Client) ListVersions(ctx context.Context, projectID string) ([]VersionResource, error) {
	var versions versionCollection
	u := c.endpoint("util/versionBoard-versions/"+url.PathEscape(projectID), nil)
	if err := c.doJSON(ctx, http.MethodGet, u, "list versions", nil, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

// ListCycles returns the test cycles of a project version.
func (c *Client) ListCycles(ctx context.Context, projectID, versionID string) ([]CycleResource, error) {
	params := url.Values{}
	params.Set("projectId", projectID)
	params.Set("versionId", versionID)

	var cycles cycleCollection
	u := c.endpoint("cycle", params)
	if err := c.doJSON(ctx, http.MethodGet, u, "list cycles", nil, &cycles); err != nil {
		return nil, err
	}
	return cycles, nil
}

// ListExecutions returns the executions of a project version, optionally
// narrowed to a single cycle when cycleID is non-empty.
func (c *Client) ListExecutions(ctx context.Context, projectID, versionID, cycleID string) ([]ExecutionResource, error) {
	params := url.Values{}
	params.Set("projectId", projectID)
	params.Set("versionId", versionID)
	if cycleID != "" {
		params.Set("cycleId", cycleID)
	}

	var executions executionCollection
	u := c.endpoint("execution", params)
	if err := c.doJSON(ctx, http.MethodGet, u, "list executions", nil, &executions); err != nil {
		return nil, err
	}
	return executions, nil
}

// GetExecutionSummary returns the execution summary gadget payload for a
// project, optionally narrowed to a version when versionID is non-empty.
// The payload shape varies across Zephyr deployments, so it is passed
// through undecoded.
func (c *Client) GetExecutionSummary(ctx context.Context, projectID, versionID string) (map[string]any, error) {
	params := url.Values{}
	params.Set("projectId", projectID)
	if versionID != "" {
		params.Set("versionId", versionID)
	}

	var summary map[string]any
	u := c.endpoint("dashboard/gadget/execution-summary-gadget", params)
	if err := c.doJSON(ctx, http.MethodGet, u, "get execution summary", nil, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// GetDefectSummary returns the defect summary gadget payload for a project,
// optionally narrowed to a version when versionID is non-empty.
func (c *Client) GetDefectSummary(ctx context.Context, projectID, versionID string) (map[string]any, error) {
	params := url.Values{}
	params.Set("projectId", projectID)
	if versionID != "" {
		params.Set("versionId", versionID)
	}

	var defects map[string]any
	u := c.endpoint("dashboard/gadget/defect-summary-gadget", params)
	if err := c.doJSON(ctx, http.MethodGet, u, "get defect summary", nil, &defects); err != nil {
		return nil, err
	}
	return defects, nil
}
