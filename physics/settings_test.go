package physics

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClampIterationsEnforcesMinimums(t *testing.T) {
	s := Settings{VelocityIterations: 0, PositionIterations: -3}
	s.clampIterations()
	if s.VelocityIterations != 1 {
		t.Errorf("VelocityIterations = %v, want clamped to 1", s.VelocityIterations)
	}
	if s.PositionIterations != 1 {
		t.Errorf("PositionIterations = %v, want clamped to 1", s.PositionIterations)
	}
}

func TestSaveLoadSettingsYAMLRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.MaxVelocity = 42
	s.VelocityIterations = 6
	s.ContinuousDetectionMode = ContinuousAll

	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := SaveSettingsYAML(s, path); err != nil {
		t.Fatalf("SaveSettingsYAML: %v", err)
	}

	got, err := LoadSettingsYAML(path)
	if err != nil {
		t.Fatalf("LoadSettingsYAML: %v", err)
	}
	if got.MaxVelocity != 42 {
		t.Errorf("MaxVelocity = %v, want 42", got.MaxVelocity)
	}
	if got.VelocityIterations != 6 {
		t.Errorf("VelocityIterations = %v, want 6", got.VelocityIterations)
	}
	if got.ContinuousDetectionMode != ContinuousAll {
		t.Errorf("ContinuousDetectionMode = %v, want ContinuousAll", got.ContinuousDetectionMode)
	}
}

func TestLoadSettingsYAMLMissingFieldsKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("max_velocity: 99\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := LoadSettingsYAML(path)
	if err != nil {
		t.Fatalf("LoadSettingsYAML: %v", err)
	}
	want := DefaultSettings()
	if got.MaxVelocity != 99 {
		t.Errorf("MaxVelocity = %v, want 99", got.MaxVelocity)
	}
	if got.Baumgarte != want.Baumgarte {
		t.Errorf("Baumgarte = %v, want default %v for an unset field", got.Baumgarte, want.Baumgarte)
	}
}

func TestLoadSettingsYAMLMissingFileReturnsError(t *testing.T) {
	if _, err := LoadSettingsYAML(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a nonexistent file")
	}
}
