package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[package]\nname = \"demo\"\nversion = \"0.2.0\"\nentry = \"app/main.fn\"\n")
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Package.Name != "demo" {
		t.Fatalf("name: got %q, want demo", m.Package.Name)
	}
	if got, want := m.EntryPath(dir), filepath.Join(dir, "app", "main.fn"); got != want {
		t.Fatalf("entry: got %q, want %q", got, want)
	}
}

func TestLoadManifestDefaultsEntry(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[package]\nname = \"demo\"\n")
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, want := m.Package.Entry, filepath.Join("src", "main.fn"); got != want {
		t.Fatalf("default entry: got %q, want %q", got, want)
	}
}

func TestLoadManifestRequiresName(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[package]\nversion = \"0.1.0\"\n")
	if _, err := LoadManifest(path); err == nil {
		t.Fatal("expected error for missing package name")
	}
}

func TestFindRootWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, ok, err := FindRoot(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !ok {
		t.Fatal("manifest not found from nested dir")
	}
	// TempDir may sit behind a symlink; compare resolved paths.
	wantReal, _ := filepath.EvalSymlinks(root)
	gotReal, _ := filepath.EvalSymlinks(got)
	if gotReal != wantReal {
		t.Fatalf("root: got %q, want %q", gotReal, wantReal)
	}
}

func TestFindRootAbsentManifest(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := FindRoot(dir)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if ok {
		t.Fatal("unexpected manifest above temp dir")
	}
}

func TestWriteDefaultManifestRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	if _, err := WriteDefaultManifest(dir, "demo"); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if _, err := WriteDefaultManifest(dir, "demo"); err == nil {
		t.Fatal("expected error on second write")
	}
}
