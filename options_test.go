package defillama

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOptionsApply(t *testing.T) {
	c := New(
		WithAPIURL(" https://api.example.com/ "),
		WithCoinsURL("https://coins.example.com"),
		WithTimeout(5*time.Second),
		WithTimeout(0),
		WithHeader("X-Api-Key", " secret "),
		WithHeader("", "ignored"),
		WithLogger(nil),
		nil,
	)
	defer c.Close()

	if c.hosts.api != "https://api.example.com" {
		t.Errorf("api host = %q", c.hosts.api)
	}
	if c.hosts.coins != "https://coins.example.com" {
		t.Errorf("coins host = %q", c.hosts.coins)
	}
	if c.hosts.yields != "https://yields.llama.fi" {
		t.Errorf("yields host = %q", c.hosts.yields)
	}
	if c.timeout != 5*time.Second {
		t.Errorf("timeout = %v", c.timeout)
	}
	if c.headers["X-Api-Key"] != "secret" || len(c.headers) != 2 {
		t.Errorf("headers = %v", c.headers)
	}
	if c.log == nil {
		t.Error("logger should default to a no-op")
	}
	if !c.ownsTransport {
		t.Error("client should own the transport it created")
	}
}

func TestNewFromEnv(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		_, _ = w.Write([]byte(`[{"name":"Ethereum"}]`))
	}))
	defer srv.Close()

	hosts := filepath.Join(t.TempDir(), "hosts.yaml")
	yaml := "hosts:\n  api: " + srv.URL + "/\nheaders:\n  X-Api-Key: pro-key\n"
	if err := os.WriteFile(hosts, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write hosts file: %v", err)
	}
	t.Setenv("DEFILLAMA_HOSTS_FILE", hosts)
	t.Setenv("DEFILLAMA_TIMEOUT_SECONDS", "7")
	t.Setenv("DEFILLAMA_LOG_LEVEL", "error")

	c, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	defer c.Close()

	if c.timeout != 7*time.Second {
		t.Errorf("timeout = %v", c.timeout)
	}
	chains, err := c.GetChains(context.Background())
	if err != nil {
		t.Fatalf("GetChains: %v", err)
	}
	if len(chains) != 1 || chains[0].Name != "Ethereum" {
		t.Errorf("chains = %+v", chains)
	}
	if gotKey != "pro-key" {
		t.Errorf("X-Api-Key = %q", gotKey)
	}
}

func TestNewFromEnvRejectsBadTimeout(t *testing.T) {
	t.Setenv("DEFILLAMA_TIMEOUT_SECONDS", "0")
	if _, err := NewFromEnv(); err == nil {
		t.Fatal("expected error for zero timeout")
	}
}
