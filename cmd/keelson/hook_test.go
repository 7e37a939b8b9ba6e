package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gorewood/keelson/internal/gitcmd"
)

// installHook writes an executable hook script into the repository's
// hooks directory.
func installHook(t *testing.T, name, body string) {
	t.Helper()
	hooksDir, err := gitcmd.HooksDir()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		t.Fatal(err)
	}
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(filepath.Join(hooksDir, name), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestHookRun_AbsentIsSilentSuccess(t *testing.T) {
	requireUnix(t)
	initRepo(t)
	if _, err := runCLI(t, "hook", "run", "no-such-hook"); err != nil {
		t.Fatalf("absent hook should succeed, got %v", err)
	}
}

func TestHookRun_ExitStatusRelayed(t *testing.T) {
	requireUnix(t)
	initRepo(t)
	installHook(t, "pre-commit", "exit 3")

	_, err := runCLI(t, "hook", "run", "pre-commit")
	if err == nil {
		t.Fatal("failing hook should produce an error")
	}
	if code := exitCodeOf(err); code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
}

func TestHookRun_PassesArgsAndEnv(t *testing.T) {
	requireUnix(t)
	initRepo(t)
	marker := filepath.Join(t.TempDir(), "marker")
	installHook(t, "post-checkout", `printf '%s %s' "$1" "$KEELSON_HOOK_VAR" > `+marker)

	if _, err := runCLI(t, "hook", "run", "post-checkout", "arg1", "-e", "KEELSON_HOOK_VAR=hookenv"); err != nil {
		t.Fatalf("hook run error = %v", err)
	}
	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "arg1 hookenv" {
		t.Errorf("hook observed %q, want %q", data, "arg1 hookenv")
	}
}

func TestHookRun_ConfiguredHooksDir(t *testing.T) {
	requireUnix(t)
	initRepo(t)

	hooksDir := t.TempDir()
	script := "#!/bin/sh\nexit 5\n"
	if err := os.WriteFile(filepath.Join(hooksDir, "pre-push"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	confDir := t.TempDir()
	t.Setenv("KEELSON_CONFIG_HOME", confDir)
	conf := "hooks_dir: " + hooksDir + "\n"
	if err := os.WriteFile(filepath.Join(confDir, "config.yaml"), []byte(conf), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := runCLI(t, "hook", "run", "pre-push")
	if code := exitCodeOf(err); code != 5 {
		t.Errorf("exit code = %d, want 5", code)
	}
}
