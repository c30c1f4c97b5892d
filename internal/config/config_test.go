package config

import (
	"os"
	"path/filepath"
	"testing"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: Config{LogLevel: "info", Backend: "native"},
		},
		{
			name: "all set",
			env: map[string]string{
				EnvLogLevel: "DEBUG",
				EnvLogFile:  "/tmp/iris.log",
				EnvPresets:  " presets.yaml ",
				EnvBackend:  "opencv",
			},
			want: Config{LogLevel: "debug", LogFile: "/tmp/iris.log", PresetsFile: "presets.yaml", Backend: "opencv"},
		},
		{
			name: "empty backend keeps default",
			env:  map[string]string{EnvBackend: ""},
			want: Config{LogLevel: "info", Backend: "native"},
		},
		{
			name:    "bad level",
			env:     map[string]string{EnvLogLevel: "loud"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromEnv(lookupFrom(tt.env))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("FromEnv failed: %v", err)
			}
			if *cfg != tt.want {
				t.Errorf("got %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "IRIS_MCP_PRESETS=/etc/iris/presets.yaml\nIRIS_MCP_LOG_LEVEL=warn\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing env file: %v", err)
	}

	// Variables already in the environment win over the file.
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvPresets, "")
	os.Unsetenv(EnvPresets)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PresetsFile != "/etc/iris/presets.yaml" {
		t.Errorf("PresetsFile: got %q", cfg.PresetsFile)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel: got %q, want the pre-set environment value", cfg.LogLevel)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing env file should not fail: %v", err)
	}
}
