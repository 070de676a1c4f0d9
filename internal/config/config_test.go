package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear any existing env vars that might interfere
	clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvDevelopment)
	}
	if cfg.DatabasePath != "./data/litcal.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "./data/litcal.db")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv()

	os.Setenv("PORT", "3000")
	os.Setenv("ENV", "production")
	os.Setenv("DATABASE_PATH", "/data/test.db")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvProduction)
	}
	if cfg.DatabasePath != "/data/test.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "/data/test.db")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid development config",
			config: Config{
				Port:         8080,
				Env:          EnvDevelopment,
				DatabasePath: "./data/litcal.db",
				LogLevel:     "info",
				LogFormat:    "text",
			},
			wantErr: false,
		},
		{
			name: "invalid port",
			config: Config{
				Port:         0,
				Env:          EnvDevelopment,
				DatabasePath: "./data/litcal.db",
				LogLevel:     "info",
				LogFormat:    "text",
			},
			wantErr: true,
		},
		{
			name: "invalid environment",
			config: Config{
				Port:         8080,
				Env:          "sandbox",
				DatabasePath: "./data/litcal.db",
				LogLevel:     "info",
				LogFormat:    "text",
			},
			wantErr: true,
		},
		{
			name: "missing database path",
			config: Config{
				Port:      8080,
				Env:       EnvDevelopment,
				LogLevel:  "info",
				LogFormat: "text",
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			config: Config{
				Port:         8080,
				Env:          EnvDevelopment,
				DatabasePath: "./data/litcal.db",
				LogLevel:     "verbose",
				LogFormat:    "text",
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			config: Config{
				Port:         8080,
				Env:          EnvDevelopment,
				DatabasePath: "./data/litcal.db",
				LogLevel:     "info",
				LogFormat:    "xml",
			},
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

// clearEnv removes all configuration environment variables.
func clearEnv() {
	for _, key := range []string{
		"PORT", "ENV", "DATABASE_PATH", "LOG_LEVEL", "LOG_FORMAT",
	} {
		os.Unsetenv(key)
	}
}
