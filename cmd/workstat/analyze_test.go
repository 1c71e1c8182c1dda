package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/workstat/internal/config"
	"github.com/nao1215/workstat/internal/model"
)

// TestNewAnalyzeCmd tests the analyze command creation.
func TestNewAnalyzeCmd(t *testing.T) {
	t.Parallel()

	cmd := NewAnalyzeCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "analyze [dataset files]" {
			t.Errorf("expected use 'analyze [dataset files]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has batch flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("batch")
		if flag == nil {
			t.Fatal("expected batch flag")
		}
		if flag.Shorthand != "b" {
			t.Errorf("expected shorthand 'b', got %q", flag.Shorthand)
		}
	})

	t.Run("has config flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("config")
		if flag == nil {
			t.Fatal("expected config flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
	})

	t.Run("has json flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("json")
		if flag == nil {
			t.Fatal("expected json flag")
		}
		if flag.Shorthand != "j" {
			t.Errorf("expected shorthand 'j', got %q", flag.Shorthand)
		}
	})

	t.Run("has markdown flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("markdown")
		if flag == nil {
			t.Fatal("expected markdown flag")
		}
		if flag.Shorthand != "m" {
			t.Errorf("expected shorthand 'm', got %q", flag.Shorthand)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
	})

	t.Run("has no-save flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("no-save")
		if flag == nil {
			t.Fatal("expected no-save flag")
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("does not have db-dir flag (uses XDG)", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("db-dir")
		if flag != nil {
			t.Error("db-dir flag should not exist (always uses XDG data directory)")
		}
	})
}

// TestGetVerboseFlag tests the verbose flag retrieval.
func TestGetVerboseFlag(t *testing.T) {
	t.Run("returns false when flag not set", func(t *testing.T) {
		cmd := NewAnalyzeCmd()
		result := getVerboseFlag(cmd)
		if result {
			t.Error("expected false when flag not set")
		}
	})

	t.Run("returns value from parent verbose flag", func(t *testing.T) {
		root := NewRootCmd()
		_ = root.PersistentFlags().Set("verbose", "true")

		analyzeCmd, _, err := root.Find([]string{"analyze"})
		if err != nil {
			t.Fatalf("failed to find analyze command: %v", err)
		}

		result := getVerboseFlag(analyzeCmd)
		if !result {
			t.Error("expected true from parent verbose flag")
		}
	})
}

// TestBuildConfig tests configuration building from flags.
func TestBuildConfig(t *testing.T) {
	t.Run("builds config with default values", func(t *testing.T) {
		cmd := NewAnalyzeCmd()
		cfg, err := buildConfig(cmd, []string{"employees.csv"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg == nil {
			t.Fatal("expected non-nil config")
		}
		if len(cfg.Inputs) != 1 || cfg.Inputs[0] != "employees.csv" {
			t.Errorf("expected inputs [employees.csv], got %v", cfg.Inputs)
		}
		if cfg.BatchSize != config.DefaultBatchSize {
			t.Errorf("expected batch size %d, got %d", config.DefaultBatchSize, cfg.BatchSize)
		}
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB to default to true")
		}
	})

	t.Run("no-save flag disables database saving", func(t *testing.T) {
		cmd := NewAnalyzeCmd()
		if err := cmd.Flags().Set("no-save", "true"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"employees.csv"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.SaveToDB {
			t.Error("expected SaveToDB to be false with --no-save")
		}
	})

	t.Run("returns error for missing explicit config file", func(t *testing.T) {
		cmd := NewAnalyzeCmd()
		if err := cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		if _, err := buildConfig(cmd, []string{"employees.csv"}); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("loads explicit config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "workstat.yaml")
		content := `datasets:
  payroll:
    delimiter: ";"
    currency: "€"
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewAnalyzeCmd()
		if err := cmd.Flags().Set("config", path); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"payroll.csv"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		dc := cfg.DatasetConfigs.GetDatasetConfig("payroll")
		if dc.Delimiter != ";" {
			t.Errorf("expected delimiter ';', got %q", dc.Delimiter)
		}
		if dc.Currency != "€" {
			t.Errorf("expected currency '€', got %q", dc.Currency)
		}
	})
}

// TestDatasetNameFromPath tests dataset name derivation.
func TestDatasetNameFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"employees.csv", "employees"},
		{"/data/reports/q1.json", "q1"},
		{"payroll", "payroll"},
		{"dir.name/staff.csv", "staff"},
	}
	for _, tt := range tests {
		if got := datasetNameFromPath(tt.path); got != tt.want {
			t.Errorf("datasetNameFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

// writeEmployeeCSV writes a small employee dataset and returns its path.
func writeEmployeeCSV(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "employees.csv")
	content := `age,salary,department,city
30,50000,Engineering,Tokyo
40,70000,Engineering,Osaka
25,40000,Sales,Tokyo
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	return path
}

// TestRunAnalyzeCmd tests the analyze command end-to-end without a database.
func TestRunAnalyzeCmd(t *testing.T) {
	t.Run("renders text report to stdout", func(t *testing.T) {
		path := writeEmployeeCSV(t, t.TempDir())

		var out, errOut bytes.Buffer
		cmd := NewAnalyzeCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&errOut)
		cmd.SetArgs([]string{"--no-save", path})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := out.String()
		if !strings.Contains(got, "EMPLOYEE ANALYSIS REPORT") {
			t.Errorf("expected report header, got %q", got)
		}
		if !strings.Contains(got, "Total Employees: 3") {
			t.Errorf("expected headcount line, got %q", got)
		}
		if !strings.Contains(got, "- Engineering: $60,000") {
			t.Errorf("expected department salary line, got %q", got)
		}
	})

	t.Run("renders JSON report", func(t *testing.T) {
		path := writeEmployeeCSV(t, t.TempDir())

		var out bytes.Buffer
		cmd := NewAnalyzeCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--no-save", "--json", path})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var summary model.Summary
		if err := json.Unmarshal(out.Bytes(), &summary); err != nil {
			t.Fatalf("failed to decode JSON report: %v", err)
		}
		if summary.TotalEmployees != 3 {
			t.Errorf("expected 3 employees, got %d", summary.TotalEmployees)
		}
		if summary.Dataset != "employees" {
			t.Errorf("expected dataset 'employees', got %q", summary.Dataset)
		}
	})

	t.Run("writes report to file", func(t *testing.T) {
		dir := t.TempDir()
		path := writeEmployeeCSV(t, dir)
		reportPath := filepath.Join(dir, "out", "report.txt")

		cmd := NewAnalyzeCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--no-save", "-o", reportPath, path})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(reportPath) //nolint:gosec // Test-controlled path
		if err != nil {
			t.Fatalf("failed to read report file: %v", err)
		}
		if !strings.Contains(string(content), "EMPLOYEE ANALYSIS REPORT") {
			t.Errorf("expected report header in file, got %q", string(content))
		}
	})

	t.Run("fails without input files", func(t *testing.T) {
		cmd := NewAnalyzeCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--no-save"})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error without input files")
		}
	})

	t.Run("fails for conflicting report formats", func(t *testing.T) {
		path := writeEmployeeCSV(t, t.TempDir())

		cmd := NewAnalyzeCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--no-save", "--json", "--markdown", path})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for conflicting report formats")
		}
	})

	t.Run("fails for missing dataset file", func(t *testing.T) {
		cmd := NewAnalyzeCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--no-save", filepath.Join(t.TempDir(), "nope.csv")})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for missing dataset file")
		}
	})
}
