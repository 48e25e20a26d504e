package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load with a missing file must fall back to defaults: %v", err)
	}
	if cfg.Data.ModelPath != "data/model.json" {
		t.Errorf("unexpected default model path %q", cfg.Data.ModelPath)
	}
	if cfg.Profile.RiskScore != 50 || cfg.Profile.TimeHorizon != "medium" {
		t.Errorf("unexpected default profile: %+v", cfg.Profile)
	}
	if cfg.Server.Port != 8080 || cfg.Server.TopK != 5 || cfg.Server.CacheTTLMinutes != 60 {
		t.Errorf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Schedule.RefreshCron != "0 0 7 * * 1-5" {
		t.Errorf("unexpected default cron %q", cfg.Schedule.RefreshCron)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
data:
  csv_paths: [data/a.csv]
  model_path: file-model.json
server:
  port: 9000
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MODEL_PATH", "env-model.json")
	t.Setenv("SERVER_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.ModelPath != "env-model.json" {
		t.Errorf("env must override the file, got %q", cfg.Data.ModelPath)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("env must override the file port, got %d", cfg.Server.Port)
	}
	if len(cfg.Data.CSVPaths) != 1 || cfg.Data.CSVPaths[0] != "data/a.csv" {
		t.Errorf("file values must survive, got %v", cfg.Data.CSVPaths)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Data.CSVPaths = []string{"data/a.csv"}
		cfg.Data.ModelPath = "data/model.json"
		cfg.Profile.RiskScore = 50
		cfg.Profile.TimeHorizon = "medium"
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg := valid()
	cfg.Data.CSVPaths = nil
	if err := cfg.Validate(); err == nil {
		t.Errorf("missing csv_paths must fail validation")
	}

	cfg = valid()
	cfg.Profile.TimeHorizon = "forever"
	if err := cfg.Validate(); err == nil {
		t.Errorf("bad horizon must fail validation")
	}

	cfg = valid()
	cfg.Profile.RiskScore = 120
	if err := cfg.Validate(); err == nil {
		t.Errorf("out-of-range risk score must fail validation")
	}
}
