package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultGameIsValid(t *testing.T) {
	cfg := DefaultGame()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestValidateRejectsBadGapBounds(t *testing.T) {
	cfg := DefaultGame()
	cfg.Pipes.MinGapY = 500
	cfg.Pipes.MaxGapY = 100

	if err := cfg.Validate(); err == nil {
		t.Error("min_gap_y > max_gap_y should fail validation")
	}
}

func TestValidateRejectsNegativeTransition(t *testing.T) {
	cfg := DefaultGame()
	cfg.Pipes.MaxGapTransition = -1

	if err := cfg.Validate(); err == nil {
		t.Error("negative max_gap_transition should fail validation")
	}
}

func TestValidateRejectsImpassableGap(t *testing.T) {
	cfg := DefaultGame()
	cfg.Pipes.GapHeight = cfg.Bird.Height

	if err := cfg.Validate(); err == nil {
		t.Error("gap no taller than the bird should fail validation")
	}
}

func TestValidateRejectsZeroFPS(t *testing.T) {
	cfg := DefaultGame()
	cfg.Screen.FPS = 0

	if err := cfg.Validate(); err == nil {
		t.Error("zero fps should fail validation")
	}
}

func TestLoadCustomPath(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "custom.yaml")

	yaml := `
screen:
  width: 640
  height: 360
  fps: 60
physics:
  gravity: 0.5
  flap_impulse: -5.0
  max_fall_speed: 8.0
  max_rise_speed: 6.0
bird:
  x: 128
  width: 17
  height: 12
pipes:
  width: 52
  gap_height: 80
  scroll_speed: 3.0
  spawn_margin: 5
  spacing_factor: 2.5
  min_gap_y: 60
  max_gap_y: 300
  max_gap_transition: 100
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("cannot write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Screen.Width != 640 {
		t.Errorf("screen width = %g, expected 640", cfg.Screen.Width)
	}
	if cfg.Pipes.MaxGapTransition != 100 {
		t.Errorf("max_gap_transition = %g, expected 100", cfg.Pipes.MaxGapTransition)
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	if _, err := Load("/nonexistent/flappy.yaml"); err == nil {
		t.Error("missing custom config path should be an error")
	}
}

func TestLoadInvalidCustomConfig(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.yaml")

	// Parses fine but fails validation (inverted gap bounds).
	yaml := `
screen: {width: 1280, height: 720, fps: 30}
physics: {gravity: 1.0, flap_impulse: -9.0, max_fall_speed: 10.0, max_rise_speed: 9.0}
bird: {x: 256, width: 34, height: 24}
pipes:
  width: 104
  gap_height: 120
  scroll_speed: 5.0
  spawn_margin: 10
  spacing_factor: 2.5
  min_gap_y: 500
  max_gap_y: 100
  max_gap_transition: 150
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("cannot write temp config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("invalid gap bounds should fail at load time")
	}
}

func TestTickDuration(t *testing.T) {
	cfg := DefaultGame()
	cfg.Screen.FPS = 30

	if got := cfg.TickDuration(); got != 1.0/30.0 {
		t.Errorf("TickDuration() = %v, expected %v", got, 1.0/30.0)
	}
}
