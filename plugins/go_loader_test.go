package plugins

import (
	"os"
	"path/filepath"
	"testing"
)

const goManifestSource = `package main

func CommandManifests() ([]map[string]any, error) {
	return []map[string]any{
		{
			"id":      "quick-rebar",
			"title":   "Quick Rebar",
			"version": "1.0.0",
			"command": "place-rebar",
			"config": map[string]any{
				"counts": "4 4",
			},
		},
	}, nil
}`

func TestLoadGoManifestDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "quick-rebar.go"), []byte(goManifestSource), 0o644); err != nil {
		t.Fatalf("write manifest script: %v", err)
	}
	manifests, err := LoadGoManifestDir(dir)
	if err != nil {
		t.Fatalf("load go manifests: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("expected 1 manifest, got %d", len(manifests))
	}
	manifest := manifests[0].Manifest
	if manifest.ID != "quick-rebar" || manifest.Command != "place-rebar" {
		t.Fatalf("unexpected manifest: %+v", manifest)
	}
	if manifest.Config.String("counts", "") != "4 4" {
		t.Fatalf("config lost in round trip: %+v", manifest.Config)
	}
}

func TestLoadGoManifestDirMissingFunc(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatalf("write broken script: %v", err)
	}
	if _, err := LoadGoManifestDir(dir); err == nil {
		t.Fatalf("expected error for missing CommandManifests function")
	}
}

func TestLoadGoManifestDirMissing(t *testing.T) {
	manifests, err := LoadGoManifestDir(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if manifests != nil {
		t.Fatalf("expected nil slice, got %v", manifests)
	}
}
