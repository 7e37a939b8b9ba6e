package main

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"strings"
	"testing"

	"github.com/gorewood/keelson/internal/gitcmd"
)

// initRepo creates a scratch repository with one commit and makes it
// the working directory for the test.
func initRepo(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	t.Chdir(t.TempDir())
	steps := [][]string{
		{"init", "-q", "-b", "main"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "Test"},
		{"commit", "--allow-empty", "-q", "-m", "initial"},
	}
	for _, args := range steps {
		if _, err := gitcmd.Run(args...); err != nil {
			t.Fatalf("git %v: %v", args, err)
		}
	}
}

// runCLI executes the root command with args and returns combined
// output and the error.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"

	out, err := runCLI(t, "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "1.2.3") {
		t.Errorf("--version output should contain version: %q", out)
	}
	if !strings.Contains(out, "keelson") {
		t.Errorf("--version output should contain 'keelson': %q", out)
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := runCLI(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	expectations := []string{
		"keelson",
		"Usage:",
		"--json",
		"--help",
	}
	for _, expected := range expectations {
		if !strings.Contains(out, expected) {
			t.Errorf("--help output should contain %q: %q", expected, out)
		}
	}
}

func TestRootCommand_JSONFlag_NoSubcommand(t *testing.T) {
	out, err := runCLI(t, "--json")
	// Should error because no subcommand is provided
	if err == nil {
		t.Fatal("Expected error when running with --json but no subcommand")
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, out)
	}
	if _, ok := result["error"]; !ok {
		t.Errorf("JSON output should contain 'error' field: %s", out)
	}
	if _, ok := result["code"]; !ok {
		t.Errorf("JSON output should contain 'code' field: %s", out)
	}
}

func TestRootCommand_JSONFlag_Persistence(t *testing.T) {
	cmd := newRootCmd()
	if cmd.PersistentFlags().Lookup("json") == nil {
		t.Fatal("--json flag should be a persistent flag")
	}
}

func TestBuildVersion(t *testing.T) {
	version, commit, date = "dev", "none", "unknown"
	if got := buildVersion(); got != "dev" {
		t.Errorf("buildVersion() = %q, want %q", got, "dev")
	}

	version, commit, date = "1.0.0", "abcdef1234567890", "2026-01-01"
	got := buildVersion()
	if !strings.Contains(got, "1.0.0") || !strings.Contains(got, "abcdef1") {
		t.Errorf("buildVersion() = %q, want version and short commit", got)
	}
	if strings.Contains(got, "abcdef12345") {
		t.Errorf("buildVersion() = %q, commit should be truncated", got)
	}
}
