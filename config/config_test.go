package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/chatseg/errors"
)

type evalSection struct {
	UnknownEntityID string `yaml:"unknown_entity_id" mapstructure:"unknown_entity_id"`
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Eval          evalSection `yaml:"eval" mapstructure:"eval"`
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected logging level 'info', got %q", cfg.Logging.Level)
		}
	})

	t.Run("debug raises the default log level", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Debug: true}
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected logging level 'debug', got %q", cfg.Logging.Level)
		}
	})

	t.Run("explicit level is kept", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Debug: true}
		cfg.Logging.Level = "error"
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "error" {
			t.Errorf("expected logging level 'error', got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func(env string) ServiceConfig {
		cfg := ServiceConfig{Name: "svc", Environment: env}
		cfg.Logging.ApplyDefaults()
		return cfg
	}
	badLogging := valid("production")
	badLogging.Logging.Level = "loud"

	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
		errMsg  string
	}{
		{"valid development", valid("development"), false, ""},
		{"valid production", valid("production"), false, ""},
		{"missing name", ServiceConfig{Environment: "production"}, true, "name: is required"},
		{"invalid environment", valid("invalid"), true, "environment: must be one of: development, staging, production"},
		{"invalid logging", badLogging, true, "logging.level: must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: elscore
environment: staging
logging:
  level: debug
eval:
  unknown_entity_id: NIL
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg testConfig
	err := LoadConfig("elscore", &cfg, WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "missing.env")))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "elscore" {
		t.Errorf("expected name 'elscore', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %q", cfg.Logging.Level)
	}
	if cfg.Eval.UnknownEntityID != "NIL" {
		t.Errorf("expected unknown_entity_id 'NIL', got %q", cfg.Eval.UnknownEntityID)
	}
}

func TestLoadConfigDefaultsAndEnvOverride(t *testing.T) {
	t.Setenv("ELSCORE_EVAL_UNKNOWN_ENTITY_ID", "FROM_ENV")
	t.Setenv("EVAL_UNKNOWN_ENTITY_ID", "UNPREFIXED")
	t.Setenv("NAME", "not-elscore")

	var cfg testConfig
	err := LoadConfig("elscore", &cfg,
		WithFileSystem(&mockFS{files: map[string]bool{}}),
		WithDefaults(map[string]any{
			"name":                   "elscore",
			"eval.unknown_entity_id": "Unknown",
			"logging.level":          "warn",
		}),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "elscore" {
		t.Errorf("expected default name, got %q", cfg.Name)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected default logging level 'warn', got %q", cfg.Logging.Level)
	}
	if cfg.Eval.UnknownEntityID != "FROM_ENV" {
		t.Errorf("expected env override 'FROM_ENV', got %q", cfg.Eval.UnknownEntityID)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Run("nothing in the search paths", func(t *testing.T) {
		var cfg testConfig
		err := LoadConfig("nonexistent-service", &cfg, WithFileSystem(&mockFS{files: map[string]bool{}}))
		if err != nil {
			t.Fatalf("expected LoadConfig to succeed without a config file, got %v", err)
		}
	})

	t.Run("explicit path that does not exist", func(t *testing.T) {
		var cfg testConfig
		err := LoadConfig("elscore", &cfg, WithConfigFile("/nonexistent/typo.yml"))
		if !errors.IsCode(err, errors.ErrCodeMalformedInput) {
			t.Fatalf("expected MALFORMED_INPUT, got %v", err)
		}
		if !strings.Contains(err.Error(), "/nonexistent/typo.yml") {
			t.Errorf("expected the path in the error, got %q", err.Error())
		}
	})
}

func TestLoadConfigIgnoresUnprefixedEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("LOGGING_LEVEL", "loud")
	t.Setenv("ELSCORE_LOGGING_LEVEL", "debug")

	var cfg testConfig
	err := LoadConfig("elscore", &cfg,
		WithFileSystem(&mockFS{files: map[string]bool{}}),
		WithDefaults(map[string]any{
			"environment":   "development",
			"logging.level": "warn",
		}),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected unprefixed ENVIRONMENT to be ignored, got %q", cfg.Environment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected ELSCORE_LOGGING_LEVEL to win, got %q", cfg.Logging.Level)
	}
}

func TestEnvPrefix(t *testing.T) {
	tests := map[string]string{
		"elscore":     "ELSCORE",
		"chatfmt":     "CHATFMT",
		"my-tool.dev": "MY_TOOL_DEV",
	}
	for in, want := range tests {
		if got := EnvPrefix(in); got != want {
			t.Errorf("EnvPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("name: [unterminated"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg testConfig
	err := LoadConfig("elscore", &cfg, WithConfigFile(configPath))
	if err == nil {
		t.Fatal("expected error for an unparsable config file")
	}
	if !errors.IsCode(err, errors.ErrCodeMalformedInput) || !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/elscore/config.yml": true,
		"./.env":                   true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("elscore", LoaderConfig{})
	if files.ConfigFile != "./cmd/elscore/config.yml" {
		t.Errorf("expected config file at ./cmd/elscore/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("expected env file at ./.env, got %q", files.EnvFile)
	}
}

func TestResolverExplicitPathsWin(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./config.yml": true}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("elscore", LoaderConfig{ConfigFile: "/etc/elscore.yml"})
	if files.ConfigFile != "/etc/elscore.yml" {
		t.Errorf("expected explicit config path, got %q", files.ConfigFile)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithDefaults(map[string]any{"a": 1})(&lc)
	WithDefaults(map[string]any{"b": 2})(&lc)

	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
	if lc.Defaults["a"] != 1 || lc.Defaults["b"] != 2 {
		t.Errorf("expected merged defaults, got %v", lc.Defaults)
	}
}
