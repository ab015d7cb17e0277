package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/kbukum/livechat/logger"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	API           struct {
		BaseURL     string        `mapstructure:"base_url"`
		AccessToken string        `mapstructure:"access_token"`
		Timeout     time.Duration `mapstructure:"timeout"`
	} `mapstructure:"api"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return p
}

func TestServiceConfig_ApplyDefaults(t *testing.T) {
	t.Run("empty config", func(t *testing.T) {
		var cfg ServiceConfig
		cfg.ApplyDefaults()
		if cfg.Name != "livechat" || cfg.Environment != "development" {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
		if !cfg.Debug || cfg.Logging.Level != "debug" {
			t.Errorf("development should enable debug logging, got debug=%v level=%q", cfg.Debug, cfg.Logging.Level)
		}
		if cfg.Logging.ServiceName != "livechat" {
			t.Errorf("expected logging service name, got %q", cfg.Logging.ServiceName)
		}
	})

	t.Run("production keeps debug off", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected info level, got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid", ServiceConfig{Name: "svc", Environment: "staging"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "qa"}, "config.environment must be one of"},
		{"invalid log level", ServiceConfig{Name: "svc", Environment: "staging", Logging: logger.Config{Level: "loud"}}, "config.logging"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: livechat-cli
environment: staging
api:
  base_url: https://api.livechatinc.com
  timeout: 5s
`)

	var cfg testConfig
	if err := LoadConfig("livechat-test", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "none.env"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "livechat-cli" || cfg.Environment != "staging" {
		t.Errorf("unexpected service config %+v", cfg.ServiceConfig)
	}
	if cfg.API.BaseURL != "https://api.livechatinc.com" || cfg.API.Timeout != 5*time.Second {
		t.Errorf("unexpected api config %+v", cfg.API)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "api:\n  access_token: from-file\n")
	t.Setenv("LCTEST_API_ACCESS_TOKEN", "from-env")
	t.Setenv("API_ACCESS_TOKEN", "unprefixed")

	var cfg testConfig
	err := LoadConfig("lctest", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "none.env")))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.API.AccessToken != "from-env" {
		t.Errorf("expected prefixed env to win, got %q", cfg.API.AccessToken)
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: svc\n")
	envPath := writeFile(t, dir, ".env", "LCENV_API_BASE_URL=http://localhost:8081\n")
	t.Cleanup(func() { os.Unsetenv("LCENV_API_BASE_URL") })

	var cfg testConfig
	if err := LoadConfig("lcenv", &cfg, WithConfigFile(path), WithEnvFile(envPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8081" {
		t.Errorf("expected base url from .env, got %q", cfg.API.BaseURL)
	}
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("livechat", &cfg, WithConfigFile("/nonexistent/config.yml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestResolver_SearchesStandardLocations(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/livechat/config.yml": true,
		"./config/.env":             true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("livechat", LoaderConfig{})
	if files.ConfigFile != "./cmd/livechat/config.yml" {
		t.Errorf("unexpected config file %q", files.ConfigFile)
	}
	if files.EnvFile != "./config/.env" {
		t.Errorf("unexpected env file %q", files.EnvFile)
	}
}

func TestResolver_ServiceEnvFileWins(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./.env":          true,
		"./.env.livechat": true,
	}}
	files := (&Resolver{FileSystem: fs}).ResolveFiles("livechat", LoaderConfig{})
	if files.EnvFile != "./.env.livechat" {
		t.Errorf("expected service env file, got %q", files.EnvFile)
	}
}

func TestResolver_ExplicitPaths(t *testing.T) {
	files := (&Resolver{FileSystem: &mockFS{}}).ResolveFiles("livechat", LoaderConfig{ConfigFile: "a.yml", EnvFile: "b.env"})
	if files.ConfigFile != "a.yml" || files.EnvFile != "b.env" {
		t.Errorf("explicit paths not kept: %+v", files)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	got := generateEnvKeyVariants("TWIN_SIGNING_KEY")
	want := []string{"twin_signing_key", "twin.signing.key", "twin.signing_key", "twin_signing.key"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("variant %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if v := generateEnvKeyVariants("NAME"); len(v) != 1 || v[0] != "name" {
		t.Errorf("unexpected single-part variants %v", v)
	}
}

func TestBindPrefixedEnv(t *testing.T) {
	v := viper.New()
	bindPrefixedEnv(v, "LIVECHAT_", []string{
		"LIVECHAT_TWIN_ADDR=:9000",
		"PATH=/usr/bin",
		"LIVECHAT_=ignored",
		"malformed",
	})
	if v.GetString("twin.addr") != ":9000" {
		t.Errorf("expected twin.addr, got %q", v.GetString("twin.addr"))
	}
	if v.IsSet("path") {
		t.Error("unprefixed variables must not be bound")
	}
}

func TestDefaultEnvPrefix(t *testing.T) {
	if got := defaultEnvPrefix("live-chat"); got != "LIVE_CHAT_" {
		t.Errorf("unexpected prefix %q", got)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }
