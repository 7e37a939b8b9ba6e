package main

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gorewood/keelson/internal/output"
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a Unix shell")
	}
}

func exitCodeOf(err error) int {
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

func TestRunCommand_Success(t *testing.T) {
	requireUnix(t)
	if _, err := runCLI(t, "run", "--", "true"); err != nil {
		t.Fatalf("run true error = %v", err)
	}
}

func TestRunCommand_RelaysExitStatus(t *testing.T) {
	requireUnix(t)
	_, err := runCLI(t, "run", "--", "sh", "-c", "exit 7")
	if err == nil {
		t.Fatal("run should relay nonzero exit")
	}
	if code := exitCodeOf(err); code != 7 {
		t.Errorf("exit code = %d, want 7", code)
	}
}

func TestRunCommand_NotFoundIs127(t *testing.T) {
	requireUnix(t)
	_, err := runCLI(t, "run", "--", "keelson-no-such-program")
	if err == nil {
		t.Fatal("run should fail for a missing program")
	}
	if code := exitCodeOf(err); code != 127 {
		t.Errorf("exit code = %d, want 127", code)
	}
}

func TestRunCommand_ShellMetachars(t *testing.T) {
	requireUnix(t)
	marker := filepath.Join(t.TempDir(), "marker")
	_, err := runCLI(t, "run", "--", "printf ab > "+marker+"; printf c >> "+marker)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "abc" {
		t.Errorf("marker = %q, want %q", data, "abc")
	}
}

func TestRunCommand_WorkingDirectory(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	_, err := runCLI(t, "run", "-C", dir, "--", "sh", "-c", "pwd > out")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); err != nil {
		t.Errorf("command did not run in %s: %v", dir, err)
	}
}

func TestRunCommand_EnvOverride(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	marker := filepath.Join(dir, "marker")
	_, err := runCLI(t, "run", "-e", "KEELSON_RUN_VAR=abc", "--",
		"sh", "-c", `printf '%s' "$KEELSON_RUN_VAR" > `+marker)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "abc" {
		t.Errorf("child saw %q, want %q", data, "abc")
	}
}
