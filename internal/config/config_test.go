package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Chenchunxuan/qbit-simulator/internal/dynamo"
	"github.com/Chenchunxuan/qbit-simulator/internal/traj"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Maneuver != "trim-cruise" {
		t.Errorf("expected maneuver trim-cruise, got %s", cfg.Maneuver)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidateRejectsUnknownNames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Maneuver = "barrel-roll"
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrUnknownManeuver) {
		t.Errorf("expected ErrUnknownManeuver, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Integrator = "leapfrog"
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Dt = 0
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrBadConfig) {
		t.Errorf("expected ErrBadConfig for zero dt, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	cfg := GetPreset("transition")
	if cfg == nil {
		t.Fatal("expected transition preset")
	}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Maneuver != cfg.Maneuver {
		t.Errorf("maneuver: got %s, want %s", loaded.Maneuver, cfg.Maneuver)
	}
	if loaded.TerminalAlpha != cfg.TerminalAlpha {
		t.Errorf("terminal alpha: got %f, want %f", loaded.TerminalAlpha, cfg.TerminalAlpha)
	}
	if loaded.Vehicle.Mass != cfg.Vehicle.Mass {
		t.Errorf("vehicle mass: got %f, want %f", loaded.Vehicle.Mass, cfg.Vehicle.Mass)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("maneuver: barrel-roll\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, dynamo.ErrUnknownManeuver) {
		t.Errorf("expected ErrUnknownManeuver, got %v", err)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsAllValidate(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s: nil", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestParsedManeuver(t *testing.T) {
	cfg := GetPreset("hover-step")
	m, err := cfg.ParsedManeuver()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m != traj.StepPosition {
		t.Errorf("got %v, want step-in-position", m)
	}
}
