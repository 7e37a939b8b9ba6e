package run

import (
	"os"
	"path/filepath"
	"testing"
)

// writeHook installs a shell script hook in dir with the given mode.
func writeHook(t *testing.T, dir, name, body string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), mode); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindHook(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	writeHook(t, dir, "pre-commit", "exit 0", 0o755)
	writeHook(t, dir, "pre-push", "exit 0", 0o644) // not executable

	tests := []struct {
		name string
		hook string
		want bool
	}{
		{name: "executable hook found", hook: "pre-commit", want: true},
		{name: "non-executable ignored", hook: "pre-push", want: false},
		{name: "absent hook ignored", hook: "post-merge", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindHook(dir, tt.hook)
			if (got != "") != tt.want {
				t.Errorf("FindHook(%q) = %q, want found=%v", tt.hook, got, tt.want)
			}
		})
	}
}

func TestHook_AbsentIsSilentSuccess(t *testing.T) {
	code, err := Hook(t.TempDir(), nil, "no-such-hook")
	if err != nil {
		t.Fatalf("Hook() error = %v", err)
	}
	if code != 0 {
		t.Errorf("Hook() = %d, want 0", code)
	}
}

func TestHook_ExitStatusPropagates(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	writeHook(t, dir, "pre-commit", "exit 3", 0o755)
	code, err := Hook(dir, nil, "pre-commit")
	if err != nil {
		t.Fatalf("Hook() error = %v", err)
	}
	if code != 3 {
		t.Errorf("Hook() = %d, want 3", code)
	}
}

func TestHook_ReceivesArgsAndEnv(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	marker := filepath.Join(dir, "marker")
	writeHook(t, dir, "post-checkout",
		`printf '%s %s' "$1" "$KEELSON_HOOK_VAR" > `+marker, 0o755)
	code, err := Hook(dir, []string{"KEELSON_HOOK_VAR=hookenv"}, "post-checkout", "arg1")
	if err != nil {
		t.Fatalf("Hook() error = %v", err)
	}
	if code != 0 {
		t.Fatalf("Hook() = %d, want 0", code)
	}
	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "arg1 hookenv" {
		t.Errorf("hook observed %q, want %q", data, "arg1 hookenv")
	}
}

func TestHookWithIndex(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	marker := filepath.Join(dir, "marker")
	writeHook(t, dir, "pre-commit",
		`printf '%s' "$GIT_INDEX_FILE" > `+marker, 0o755)
	code, err := HookWithIndex(dir, "/tmp/alt-index", "pre-commit")
	if err != nil {
		t.Fatalf("HookWithIndex() error = %v", err)
	}
	if code != 0 {
		t.Fatalf("HookWithIndex() = %d, want 0", code)
	}
	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "/tmp/alt-index" {
		t.Errorf("hook saw index %q, want %q", data, "/tmp/alt-index")
	}
}
