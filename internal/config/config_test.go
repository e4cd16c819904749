package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tmp := t.TempDir()

	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				Port:       "8081",
				DataDir:    tmp,
				ExportPath: filepath.Join(tmp, "out.csv"),
				LogLevel:   "info",
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:       "abc",
				DataDir:    tmp,
				ExportPath: filepath.Join(tmp, "out.csv"),
				LogLevel:   "info",
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:       "70000",
				DataDir:    tmp,
				ExportPath: filepath.Join(tmp, "out.csv"),
				LogLevel:   "info",
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "empty data dir",
			config: Config{
				Port:       "8081",
				DataDir:    "",
				ExportPath: filepath.Join(tmp, "out.csv"),
				LogLevel:   "info",
			},
			wantErr:     true,
			errorString: "data directory cannot be empty",
		},
		{
			name: "missing policy file",
			config: Config{
				Port:       "8081",
				DataDir:    tmp,
				PolicyFile: filepath.Join(tmp, "nope.toml"),
				ExportPath: filepath.Join(tmp, "out.csv"),
				LogLevel:   "info",
			},
			wantErr:     true,
			errorString: "is not readable",
		},
		{
			name: "invalid log level",
			config: Config{
				Port:       "8081",
				DataDir:    tmp,
				ExportPath: filepath.Join(tmp, "out.csv"),
				LogLevel:   "loud",
			},
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Validate() error = %v, want it to contain %q", err, tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	cfg := Config{Port: "8081", DataDir: dir, ExportPath: "out.csv", LogLevel: "info"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("EXPORT_PATH", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("default port = %q, want 8081", cfg.Port)
	}
	if cfg.DataDir != "./data" {
		t.Errorf("default data dir = %q, want ./data", cfg.DataDir)
	}
	if cfg.ExportPath != filepath.Join("./data", "labeled_transactions.csv") {
		t.Errorf("default export path = %q", cfg.ExportPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_DIR", "/tmp/books")
	t.Setenv("EXPORT_PATH", "/tmp/out.csv")

	cfg := Load()
	if cfg.Port != "9000" || cfg.DataDir != "/tmp/books" || cfg.ExportPath != "/tmp/out.csv" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}
