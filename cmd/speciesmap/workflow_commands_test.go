package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"speciesmap/internal/mapper"
	"speciesmap/internal/testsupport"
)

func TestLoadGenerateBrowseExport(t *testing.T) {
	env := setupCLITestEnv(t)
	csvPath := writeSpecimens(t, env, testsupport.MegachileRows)

	out, _, err := runCLI(t, []string{"load", csvPath}, env.configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	requireContains(t, out, "Records kept")

	out, _, err = runCLI(t, []string{"taxa", "genera", "--family", "Apidae"}, env.configPath)
	if err != nil {
		t.Fatalf("taxa genera: %v", err)
	}
	requireContains(t, out, "Megachile")
	requireContains(t, out, "Not Specified")

	out, _, err = runCLI(t, []string{"generate", "--family", "Apidae", "--genus", "Megachile", "--color", "blue"}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	requireContains(t, out, "2 species on 1 page(s)")

	out, _, err = runCLI(t, []string{"page", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("page show: %v", err)
	}
	requireContains(t, out, "Figure 1A.")
	requireContains(t, out, "Page 1 of 1")

	previewPath := filepath.Join(env.baseDir, "preview.png")
	if _, _, err := runCLI(t, []string{"page", "preview", "--out", previewPath}, env.configPath); err != nil {
		t.Fatalf("page preview: %v", err)
	}
	if info, err := os.Stat(previewPath); err != nil || info.Size() == 0 {
		t.Fatalf("expected preview at %s: %v", previewPath, err)
	}

	out, _, err = runCLI(t, []string{"--json", "export", "all"}, env.configPath)
	if err != nil {
		t.Fatalf("export all: %v", err)
	}
	var exported mapper.ExportResult
	if err := json.Unmarshal([]byte(out), &exported); err != nil {
		t.Fatalf("decode export json: %v\n%s", err, out)
	}
	if filepath.Ext(exported.Path) != ".zip" || len(exported.Pages) != 1 {
		t.Fatalf("unexpected export result %+v", exported)
	}
	if _, err := os.Stat(exported.Path); err != nil {
		t.Fatalf("expected archive: %v", err)
	}

	out, _, err = runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, "export_all")
	requireContains(t, out, "generate")
}

func TestGenerateWithoutDataset(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"generate", "--family", "All", "--genus", "All"}, env.configPath)
	if !errors.Is(err, mapper.ErrNoDataset) {
		t.Fatalf("expected ErrNoDataset, got %v", err)
	}
	if mapper.Hint(err) == "" {
		t.Fatal("expected a hint for a missing dataset")
	}
}

func TestGenerateColorFlagValidation(t *testing.T) {
	env := setupCLITestEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"color with split", []string{"--color", "red", "--split-year", "2015"}},
		{"pre without split", []string{"--pre-color", "green"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"generate", "--family", "All", "--genus", "All"}, tt.args...)
			if _, _, err := runCLI(t, args, env.configPath); err == nil {
				t.Fatal("expected flag validation error")
			}
		})
	}
}

func TestStatusJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--json", "status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var status mapper.Status
	if err := json.Unmarshal([]byte(out), &status); err != nil {
		t.Fatalf("decode status: %v\n%s", err, out)
	}
	if status.Dataset != nil || status.Gallery != nil {
		t.Fatalf("expected empty session, got %+v", status)
	}
	if len(status.Checks) == 0 {
		t.Fatal("expected preflight checks")
	}
}
