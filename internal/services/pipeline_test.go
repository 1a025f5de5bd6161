package services

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPipelineConfigMissingFile(t *testing.T) {
	cfg := LoadPipelineConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	if cfg.CheckIntervalSeconds != 60 {
		t.Fatalf("CheckIntervalSeconds = %d, want default 60", cfg.CheckIntervalSeconds)
	}
	if cfg.RunHourUTC != 1 {
		t.Fatalf("RunHourUTC = %d, want default 1", cfg.RunHourUTC)
	}
}

func TestLoadPipelineConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	body := "check_interval_seconds: 300\nrun_hour_utc: 4\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg := LoadPipelineConfig(path, nil)
	if cfg.CheckIntervalSeconds != 300 {
		t.Fatalf("CheckIntervalSeconds = %d, want 300", cfg.CheckIntervalSeconds)
	}
	if cfg.RunHourUTC != 4 {
		t.Fatalf("RunHourUTC = %d, want 4", cfg.RunHourUTC)
	}
}

func TestLoadPipelineConfigRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	body := "check_interval_seconds: -5\nrun_hour_utc: 99\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg := LoadPipelineConfig(path, nil)
	if cfg.CheckIntervalSeconds != 60 {
		t.Fatalf("CheckIntervalSeconds = %d, want default 60 for out-of-range value", cfg.CheckIntervalSeconds)
	}
	if cfg.RunHourUTC != 1 {
		t.Fatalf("RunHourUTC = %d, want default 1 for out-of-range value", cfg.RunHourUTC)
	}
}

func TestLoadPipelineConfigUnparseable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg := LoadPipelineConfig(path, nil)
	if cfg != defaultPipelineConfig() {
		t.Fatalf("unparseable config should fall back to defaults, got %+v", cfg)
	}
}
