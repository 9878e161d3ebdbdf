// Package project locates and reads the fern.toml manifest.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file name the walk-up search looks for.
const ManifestName = "fern.toml"

// Manifest mirrors the fern.toml layout.
type Manifest struct {
	Package PackageSection `toml:"package"`
}

// PackageSection is the [package] table of the manifest.
type PackageSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Entry   string `toml:"entry"`
}

// LoadManifest reads and decodes the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ManifestName, err)
	}
	if m.Package.Name == "" {
		return nil, fmt.Errorf("%s: [package] name is required", path)
	}
	if m.Package.Entry == "" {
		m.Package.Entry = filepath.Join("src", "main.fn")
	}
	return &m, nil
}

// EntryPath resolves the manifest entry file relative to the project root.
func (m *Manifest) EntryPath(root string) string {
	entry := m.Package.Entry
	if filepath.IsAbs(entry) {
		return entry
	}
	return filepath.Join(root, entry)
}

// WriteDefaultManifest scaffolds a fresh manifest in dir. It refuses to
// overwrite an existing one.
func WriteDefaultManifest(dir, name string) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	content := fmt.Sprintf("[package]\nname = %q\nversion = \"0.1.0\"\nentry = \"src/main.fn\"\n", name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", ManifestName, err)
	}
	return path, nil
}
