package version

import (
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	// Test that default values are set
	if Version == "" {
		t.Error("Version should have a default value")
	}

	// GitCommit and BuildDate can be empty (optional)
	// Just verify they exist as variables
	_ = GitCommit
	_ = BuildDate
}

func TestVersion_CanBeOverridden(t *testing.T) {
	// Save original values
	origVersion := Version
	origGitCommit := GitCommit
	origBuildDate := BuildDate

	// Override values (simulating build-time ldflags)
	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	// Verify overrides worked
	if Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", Version, "1.2.3")
	}
	if GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q, want %q", GitCommit, "abc123def456")
	}
	if BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("BuildDate = %q, want %q", BuildDate, "2024-01-15T10:30:00Z")
	}

	// Restore original values
	Version = origVersion
	GitCommit = origGitCommit
	BuildDate = origBuildDate
}

func TestVersion_SemanticVersionFormat(t *testing.T) {
	// Save original
	origVersion := Version

	// Test various semantic version formats
	validVersions := []string{
		"0.1.0",
		"1.0.0",
		"2.0.0-alpha",
		"1.0.0-beta.1",
		"0.1.0-dev",
	}

	for _, v := range validVersions {
		Version = v
		if Version != v {
			t.Errorf("Failed to set version to %q, got %q", v, Version)
		}
	}

	// Restore
	Version = origVersion
}
