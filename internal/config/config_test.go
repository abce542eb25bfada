package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL || cfg.CoinsURL != DefaultCoinsURL {
		t.Fatalf("unexpected hosts: %+v", cfg)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DEFILLAMA_COINS_URL", "http://localhost:8080")
	t.Setenv("DEFILLAMA_TIMEOUT_SECONDS", "5")
	t.Setenv("DEFILLAMA_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.CoinsURL != "http://localhost:8080" {
		t.Fatalf("unexpected coins url: %s", cfg.CoinsURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("DEFILLAMA_TIMEOUT_SECONDS", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero timeout")
	}
}

func TestLoadRejectsBadURL(t *testing.T) {
	t.Setenv("DEFILLAMA_API_URL", "ftp://example.com")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-http scheme")
	}
}

func TestLoadAppliesHostsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "hosts.yaml")
	content := `
hosts:
  api: https://api.example.com/
  yields: https://yields.example.com
headers:
  User-Agent: test-agent
  " ": dropped
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write hosts file: %v", err)
	}
	t.Setenv("DEFILLAMA_HOSTS_FILE", file)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "https://api.example.com" {
		t.Fatalf("unexpected api url: %s", cfg.APIURL)
	}
	if cfg.YieldsURL != "https://yields.example.com" {
		t.Fatalf("unexpected yields url: %s", cfg.YieldsURL)
	}
	if cfg.CoinsURL != DefaultCoinsURL {
		t.Fatalf("coins url should keep default, got %s", cfg.CoinsURL)
	}
	if len(cfg.Headers) != 1 || cfg.Headers["User-Agent"] != "test-agent" {
		t.Fatalf("unexpected headers: %v", cfg.Headers)
	}
}

func TestLoadHostsFileJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "hosts.json")
	if err := os.WriteFile(file, []byte(`{"hosts":{"coins":"https://coins.example.com"}}`), 0o644); err != nil {
		t.Fatalf("write hosts file: %v", err)
	}

	hf, err := LoadHostsFile(file)
	if err != nil {
		t.Fatalf("LoadHostsFile returned error: %v", err)
	}
	if hf.Hosts.Coins != "https://coins.example.com" {
		t.Fatalf("unexpected coins host: %s", hf.Hosts.Coins)
	}
}

func TestLoadHostsFileRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "hosts.json")
	if err := os.WriteFile(file, []byte(`hosts: [`), 0o644); err != nil {
		t.Fatalf("write hosts file: %v", err)
	}
	if _, err := LoadHostsFile(file); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoadReadsConfiguredEnvFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "defillama.env")
	if err := os.WriteFile(file, []byte("DEFILLAMA_USER_AGENT=from-env-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// t.Setenv restores the unset state after godotenv writes the variable.
	t.Setenv("DEFILLAMA_USER_AGENT", "")
	os.Unsetenv("DEFILLAMA_USER_AGENT")
	t.Setenv("DEFILLAMA_ENV_FILE", file)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.UserAgent != "from-env-file" {
		t.Fatalf("unexpected user agent: %q", cfg.UserAgent)
	}
}

func TestLoadIgnoresDotEnvInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DEFILLAMA_USER_AGENT=stray\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("DEFILLAMA_USER_AGENT", "")
	os.Unsetenv("DEFILLAMA_USER_AGENT")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.UserAgent != "" {
		t.Fatalf("stray .env was loaded: %q", cfg.UserAgent)
	}
	if _, ok := os.LookupEnv("DEFILLAMA_USER_AGENT"); ok {
		t.Fatal("process environment was modified")
	}
}

func TestLoadRejectsMissingEnvFile(t *testing.T) {
	t.Setenv("DEFILLAMA_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing env file")
	}
}
