package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "tycho.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[project]
name = "demo"

[analysis]
paths = ["queries"]
allow_implicit_scalar_cast = true

[output]
color = "off"
max_diagnostics = 25
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Project.Name != "demo" {
		t.Fatalf("name = %q", cfg.Project.Name)
	}
	if !cfg.CastConfig().AllowImplicitScalarCast {
		t.Fatalf("coercion toggle not propagated")
	}
	if len(cfg.Analysis.Paths) != 1 || cfg.Analysis.Paths[0] != "queries" {
		t.Fatalf("paths = %v", cfg.Analysis.Paths)
	}
	if cfg.Output.Color != "off" || cfg.Output.MaxDiagnostics != 25 {
		t.Fatalf("output = %+v", cfg.Output)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[project]
name = "demo"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Analysis.AllowImplicitScalarCast {
		t.Fatalf("coercion must default to off")
	}
	if cfg.Output.Color != "auto" || cfg.Output.MaxDiagnostics != 100 {
		t.Fatalf("defaults not applied: %+v", cfg.Output)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := []string{
		``,
		`[project]`,
		"[project]\nname = \"x\"\n[output]\ncolor = \"sometimes\"",
		"[project]\nname = \"x\"\n[output]\nmax_diagnostics = 0",
	}
	for _, body := range cases {
		path := writeManifest(t, t.TempDir(), body)
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("manifest %q must be rejected", body)
		}
	}
}

func TestFindTychoTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[project]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := FindTychoToml(nested)
	if err != nil || !ok {
		t.Fatalf("FindTychoToml: ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found %q, want a file under %q", path, root)
	}

	gotRoot, ok, err := FindProjectRoot(nested)
	if err != nil || !ok || gotRoot != root {
		t.Fatalf("FindProjectRoot = %q ok=%v err=%v", gotRoot, ok, err)
	}
}

func TestFindTychoTomlMissing(t *testing.T) {
	_, ok, err := FindTychoToml(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("no manifest should be found in an empty directory")
	}
}
