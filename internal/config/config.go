package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultAPIURL         = "https://api.llama.fi"
	DefaultCoinsURL       = "https://coins.llama.fi"
	DefaultStablecoinsURL = "https://stablecoins.llama.fi"
	DefaultYieldsURL      = "https://yields.llama.fi"

	envPrefix  = "DEFILLAMA"
	envFileVar = envPrefix + "_ENV_FILE"
)

// Config holds client settings loaded from the environment and an optional hosts file.
type Config struct {
	APIURL         string        `mapstructure:"api_url"`
	CoinsURL       string        `mapstructure:"coins_url"`
	StablecoinsURL string        `mapstructure:"stablecoins_url"`
	YieldsURL      string        `mapstructure:"yields_url"`
	TimeoutSeconds int64         `mapstructure:"timeout_seconds"`
	Timeout        time.Duration `mapstructure:"-"`
	LogLevel       string        `mapstructure:"log_level"`
	UserAgent      string        `mapstructure:"user_agent"`
	HostsFile      string        `mapstructure:"hosts_file"`

	Headers map[string]string `mapstructure:"-"`
}

// Load reads DEFILLAMA_* environment variables. When DEFILLAMA_ENV_FILE names a
// dotenv file, its entries are added to the process environment first; variables
// already set are left alone.
func Load() (*Config, error) {
	if path := strings.TrimSpace(os.Getenv(envFileVar)); path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", path, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)

	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("coins_url", DefaultCoinsURL)
	v.SetDefault("stablecoins_url", DefaultStablecoinsURL)
	v.SetDefault("yields_url", DefaultYieldsURL)
	v.SetDefault("timeout_seconds", 30)
	v.SetDefault("log_level", "")
	v.SetDefault("user_agent", "")
	v.SetDefault("hosts_file", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid timeout_seconds (must be positive seconds)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	if path := strings.TrimSpace(cfg.HostsFile); path != "" {
		hf, err := LoadHostsFile(path)
		if err != nil {
			return nil, err
		}
		cfg.applyHosts(hf)
	}

	for name, raw := range map[string]string{
		"api_url":         cfg.APIURL,
		"coins_url":       cfg.CoinsURL,
		"stablecoins_url": cfg.StablecoinsURL,
		"yields_url":      cfg.YieldsURL,
	} {
		if err := validateBaseURL(raw); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	return &cfg, nil
}

func (c *Config) applyHosts(hf HostsFile) {
	if hf.Hosts.API != "" {
		c.APIURL = hf.Hosts.API
	}
	if hf.Hosts.Coins != "" {
		c.CoinsURL = hf.Hosts.Coins
	}
	if hf.Hosts.Stablecoins != "" {
		c.StablecoinsURL = hf.Hosts.Stablecoins
	}
	if hf.Hosts.Yields != "" {
		c.YieldsURL = hf.Hosts.Yields
	}
	if len(hf.Headers) > 0 {
		c.Headers = hf.Headers
	}
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is empty")
	}
	return nil
}
