package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dripsim/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DRIPSIM_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Program != DefaultProgram || cfg.Speed != domain.DefaultSpeed || cfg.Mode != string(domain.DefaultMode) {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.BaseInterval != time.Second || cfg.TemplateTimeout != DefaultTemplateTimeout {
		t.Errorf("unexpected durations %s %s", cfg.BaseInterval, cfg.TemplateTimeout)
	}
	if cfg.TimelineCap != domain.DefaultTimelineCap || cfg.Relaxed || cfg.Seed != 0 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	data := []byte("program: ds\nspeed: 9\nmode: always_open\nbase_interval: 250ms\nrelaxed: true\n")
	if err := os.WriteFile(filepath.Join(dir, "dripsim.yaml"), data, 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DRIPSIM_CONFIG_PATH", dir)
	t.Setenv("DRIPSIM_SPEED", "3")
	t.Setenv("DRIPSIM_SEED", "42")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Program != "ds" || cfg.Mode != "always_open" || !cfg.Relaxed {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Speed != 3 {
		t.Errorf("env should override file speed, got %d", cfg.Speed)
	}
	if cfg.Seed != 42 || cfg.BaseInterval != 250*time.Millisecond {
		t.Errorf("unexpected seed/interval %d %s", cfg.Seed, cfg.BaseInterval)
	}

	jc := cfg.Journey()
	if jc.Speed != 3 || jc.Mode != domain.ModeAlwaysOpen || jc.Seed != 42 || !jc.Relaxed {
		t.Errorf("unexpected journey config %+v", jc)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"speed too high", "DRIPSIM_SPEED", "12"},
		{"unknown mode", "DRIPSIM_MODE", "sometimes"},
		{"zero interval", "DRIPSIM_BASE_INTERVAL", "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DRIPSIM_CONFIG_PATH", t.TempDir())
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("expected an error for %s=%s", tt.key, tt.val)
			}
		})
	}
}
