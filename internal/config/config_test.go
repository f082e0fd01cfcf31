package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Backend != "sqlite" {
		t.Errorf("expected backend=sqlite, got %s", cfg.Backend)
	}
	if cfg.DBPath != "health_tracker.db" {
		t.Errorf("expected db=health_tracker.db, got %s", cfg.DBPath)
	}
	if cfg.StorageKey != "logs" {
		t.Errorf("expected key=logs, got %s", cfg.StorageKey)
	}
	if cfg.LogFile != "" || cfg.Debug {
		t.Errorf("expected logging off by default, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HEALTH_TRACKER_BACKEND", "bolt")
	t.Setenv("HEALTH_TRACKER_DB", "/tmp/health.bolt")
	t.Setenv("HEALTH_TRACKER_KEY", "metrics")
	t.Setenv("HEALTH_TRACKER_LOG_FILE", "/tmp/health.log")
	t.Setenv("HEALTH_TRACKER_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Config{
		Backend:    "bolt",
		DBPath:     "/tmp/health.bolt",
		StorageKey: "metrics",
		LogFile:    "/tmp/health.log",
		Debug:      true,
	}
	if *cfg != want {
		t.Errorf("unexpected config\n got: %+v\nwant: %+v", *cfg, want)
	}
}

func TestLoadError(t *testing.T) {
	t.Setenv("HEALTH_TRACKER_DEBUG", "not-a-bool")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "valid sqlite",
			config: Config{Backend: "sqlite", DBPath: "x.db", StorageKey: "logs"},
		},
		{
			name:   "memory needs no path",
			config: Config{Backend: "memory", StorageKey: "logs"},
		},
		{
			name:    "unknown backend",
			config:  Config{Backend: "redis", DBPath: "x", StorageKey: "logs"},
			wantErr: true,
		},
		{
			name:    "missing key",
			config:  Config{Backend: "sqlite", DBPath: "x.db"},
			wantErr: true,
		},
		{
			name:    "bolt without path",
			config:  Config{Backend: "bolt", StorageKey: "logs"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
