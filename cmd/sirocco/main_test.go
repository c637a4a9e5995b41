package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"sirocco/internal/config"
)

// newRunCmd returns a command shell for driving run functions directly,
// with output captured and a live context attached.
func newRunCmd(buf *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetContext(context.Background())
	return cmd
}

func resetFlags(t *testing.T) {
	t.Helper()
	saved := rootFlags
	t.Cleanup(func() { rootFlags = saved })
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	resetFlags(t)
	t.Setenv(config.EnvBaseURL, "http://env.example.com")
	t.Setenv(config.EnvAccessKey, "k")

	rootFlags.baseURL = "http://flag.example.com"
	rootFlags.workers = 8

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.BaseURL != "http://flag.example.com" {
		t.Errorf("BaseURL = %q, want flag value", cfg.BaseURL)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
}

func TestRunProjects_Table(t *testing.T) {
	resetFlags(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/zapi/latest/util/project" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "10000", "key": "PAY", "name": "Payment Gateway"},
			{"id": "10001", "key": "IDN", "name": "Identity"}
		]`))
	}))
	defer srv.Close()

	t.Setenv(config.EnvBaseURL, srv.URL)
	t.Setenv(config.EnvAccessKey, "k")

	var buf bytes.Buffer
	if err := runProjects(newRunCmd(&buf), nil); err != nil {
		t.Fatalf("runProjects: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Payment Gateway", "Identity", "PAY", "total"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// zapiFixture serves one version with one keyed-object cycle and one
// wrapped execution listing, the loose encodings a live instance produces.
func zapiFixture() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/rest/zapi/latest/dashboard/gadget/execution-summary-gadget"):
			w.Write([]byte(`{"totalExecuted": 1}`))
		case strings.HasPrefix(r.URL.Path, "/rest/zapi/latest/dashboard/gadget/defect-summary-gadget"):
			w.Write([]byte(`{"open": 0}`))
		case r.URL.Path == "/rest/zapi/latest/cycle":
			w.Write([]byte(`{"7": {"name": "Smoke", "environment": "stage"}, "recordsCount": 1}`))
		case r.URL.Path == "/rest/zapi/latest/execution":
			w.Write([]byte(`{"executions": [
				{"id": 1, "executionStatus": "PASS", "testCaseName": "Login"}
			], "recordsCount": 1}`))
		default:
			http.NotFound(w, r)
		}
	})
}

func TestRunReport_WritesJSON(t *testing.T) {
	resetFlags(t)
	srv := httptest.NewServer(zapiFixture())
	defer srv.Close()

	t.Setenv(config.EnvBaseURL, srv.URL)
	t.Setenv(config.EnvAccessKey, "k")

	outPath := filepath.Join(t.TempDir(), "report.json")
	saved := reportFlags
	t.Cleanup(func() { reportFlags = saved })
	reportFlags.projectID = "10000"
	reportFlags.versionID = "401"
	reportFlags.output = outPath

	var buf bytes.Buffer
	if err := runReport(newRunCmd(&buf), nil); err != nil {
		t.Fatalf("runReport: %v", err)
	}

	if !strings.Contains(buf.String(), "Smoke") {
		t.Errorf("summary table missing cycle name:\n%s", buf.String())
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var report map[string]any
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	overall, _ := report["overall_metrics"].(map[string]any)
	if overall["total_tests"] != float64(1) {
		t.Errorf("total_tests = %v, want 1", overall["total_tests"])
	}
	if overall["execution_rate"] != float64(100) {
		t.Errorf("execution_rate = %v, want 100", overall["execution_rate"])
	}
}

func TestRunProgress_Table(t *testing.T) {
	resetFlags(t)
	srv := httptest.NewServer(zapiFixture())
	defer srv.Close()

	t.Setenv(config.EnvBaseURL, srv.URL)
	t.Setenv(config.EnvAccessKey, "k")

	saved := progressFlags
	t.Cleanup(func() { progressFlags = saved })
	progressFlags.projectID = "10000"
	progressFlags.versionID = "401"
	progressFlags.cycleID = ""

	var buf bytes.Buffer
	if err := runProgress(newRunCmd(&buf), nil); err != nil {
		t.Fatalf("runProgress: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Smoke", "overall", "100.00%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunProjects_BadConfig(t *testing.T) {
	resetFlags(t)
	t.Setenv(config.EnvBaseURL, "")
	t.Setenv(config.EnvAccessKey, "")
	t.Setenv(config.EnvUsername, "")
	t.Setenv(config.EnvPassword, "")

	var buf bytes.Buffer
	if err := runProjects(newRunCmd(&buf), nil); err == nil {
		t.Fatal("expected error when no base URL is configured")
	}
}
