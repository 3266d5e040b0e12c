package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				Port:          "8080",
				SQLiteDBPath:  "./test.db",
				JWTSecret:     "0123456789abcdef0123456789abcdef",
				TokenDuration: 24 * time.Hour,
				LogLevel:      "info",
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:          "abc",
				SQLiteDBPath:  "./test.db",
				JWTSecret:     "0123456789abcdef0123456789abcdef",
				TokenDuration: 24 * time.Hour,
				LogLevel:      "info",
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:          "70000",
				SQLiteDBPath:  "./test.db",
				JWTSecret:     "0123456789abcdef0123456789abcdef",
				TokenDuration: 24 * time.Hour,
				LogLevel:      "info",
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "missing JWT secret",
			config: Config{
				Port:          "8080",
				SQLiteDBPath:  "./test.db",
				TokenDuration: 24 * time.Hour,
				LogLevel:      "info",
			},
			wantErr:     true,
			errorString: "JWT_SECRET must be set",
		},
		{
			name: "short JWT secret",
			config: Config{
				Port:          "8080",
				SQLiteDBPath:  "./test.db",
				JWTSecret:     "short",
				TokenDuration: 24 * time.Hour,
				LogLevel:      "info",
			},
			wantErr:     true,
			errorString: "JWT secret too short",
		},
		{
			name: "token duration too short",
			config: Config{
				Port:          "8080",
				SQLiteDBPath:  "./test.db",
				JWTSecret:     "0123456789abcdef0123456789abcdef",
				TokenDuration: 5 * time.Second,
				LogLevel:      "info",
			},
			wantErr:     true,
			errorString: "must be at least 1 minute",
		},
		{
			name: "invalid log level",
			config: Config{
				Port:          "8080",
				SQLiteDBPath:  "./test.db",
				JWTSecret:     "0123456789abcdef0123456789abcdef",
				TokenDuration: 24 * time.Hour,
				LogLevel:      "loud",
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
					t.Fatal("Validate() returned nil, want error")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Validate() error = %q, want it to contain %q", err, tt.errorString)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SQLITE_DB_PATH", "JWT_SECRET", "TOKEN_DURATION", "LOG_LEVEL"} {
		os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.TokenDuration != 24*time.Hour {
		t.Errorf("TokenDuration = %v, want 24h", cfg.TokenDuration)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_DURATION", "1h")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.TokenDuration != time.Hour {
		t.Errorf("TokenDuration = %v, want 1h", cfg.TokenDuration)
	}
}
