package version

import "testing"

func TestVersionDefault(t *testing.T) {
	if Version == "" {
		t.Fatal("Version should have a default value")
	}
}

func TestVersionOverride(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2026-01-15T10:30:00Z"

	if Version != "1.2.3" {
		t.Fatalf("Version = %q, want 1.2.3", Version)
	}
	if GitCommit != "abc123def456" {
		t.Fatalf("GitCommit = %q, want abc123def456", GitCommit)
	}
	if BuildDate != "2026-01-15T10:30:00Z" {
		t.Fatalf("BuildDate = %q, want 2026-01-15T10:30:00Z", BuildDate)
	}
}
