package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRefsListCommand_Table(t *testing.T) {
	initRepo(t)

	out, err := runCLI(t, "refs", "list", "refs/heads")
	if err != nil {
		t.Fatalf("refs list error = %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "refs/heads/main") {
		t.Errorf("output missing branch ref:\n%s", out)
	}
	if !strings.Contains(out, "NAME") {
		t.Errorf("output missing table header:\n%s", out)
	}
}

func TestRefsListCommand_JSON(t *testing.T) {
	initRepo(t)

	out, err := runCLI(t, "refs", "list", "refs/heads", "--json")
	if err != nil {
		t.Fatalf("refs list error = %v\noutput: %s", err, out)
	}

	var result struct {
		Count int `json:"count"`
		Refs  []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"refs"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON: %v\noutput: %s", err, out)
	}
	if result.Count != 1 || result.Refs[0].Name != "refs/heads/main" {
		t.Errorf("refs = %+v, want one ref refs/heads/main", result)
	}
}

func TestRefsListCommand_Format(t *testing.T) {
	initRepo(t)

	out, err := runCLI(t, "refs", "list", "--format", "%(refname:short)", "refs/heads")
	if err != nil {
		t.Fatalf("refs list --format error = %v\noutput: %s", err, out)
	}
	if strings.TrimSpace(out) != "main" {
		t.Errorf("formatted output = %q, want %q", out, "main")
	}
}
