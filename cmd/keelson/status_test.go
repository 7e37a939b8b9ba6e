package main

import (
	"encoding/json"
	"testing"
)

func TestStatusCommand_JSON(t *testing.T) {
	initRepo(t)

	out, err := runCLI(t, "status", "--json")
	if err != nil {
		t.Fatalf("status error = %v\noutput: %s", err, out)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON: %v\noutput: %s", err, out)
	}
	if result["branch"] != "main" {
		t.Errorf("branch = %v, want main", result["branch"])
	}
	if dirty, ok := result["dirty"].(bool); !ok || dirty {
		t.Errorf("dirty = %v, want false", result["dirty"])
	}
}

func TestStatusCommand_OutsideRepo(t *testing.T) {
	initRepo(t)
	t.Chdir(t.TempDir())
	t.Setenv("GIT_CEILING_DIRECTORIES", "/")

	if _, err := runCLI(t, "status"); err == nil {
		t.Error("status outside a repository should fail")
	}
}
