package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// HostsFile overrides API hosts and adds static request headers.
//
//	hosts:
//	  api: https://api.llama.fi
//	  coins: https://coins.llama.fi
//	headers:
//	  User-Agent: my-app/1.0
type HostsFile struct {
	Hosts   Hosts             `json:"hosts" yaml:"hosts"`
	Headers map[string]string `json:"headers" yaml:"headers"`
}

// Hosts lists per-service base URLs. Empty entries keep the default.
type Hosts struct {
	API         string `json:"api" yaml:"api"`
	Coins       string `json:"coins" yaml:"coins"`
	Stablecoins string `json:"stablecoins" yaml:"stablecoins"`
	Yields      string `json:"yields" yaml:"yields"`
}

// LoadHostsFile reads a YAML or JSON hosts file.
func LoadHostsFile(path string) (HostsFile, error) {
	if strings.TrimSpace(path) == "" {
		return HostsFile{}, errors.New("hosts file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return HostsFile{}, fmt.Errorf("open hosts file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return HostsFile{}, fmt.Errorf("read hosts file: %w", err)
	}

	hf, err := parseHostsFile(raw, filepath.Ext(path))
	if err != nil {
		return HostsFile{}, err
	}
	return sanitizeHostsFile(hf), nil
}

type unmarshalFn func([]byte, any) error

func parseHostsFile(data []byte, ext string) (HostsFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	var lastErr error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var hf HostsFile
		if err := d.fn(data, &hf); err != nil {
			lastErr = fmt.Errorf("decode %s hosts file: %w", d.name, err)
			continue
		}
		return hf, nil
	}
	if lastErr != nil {
		return HostsFile{}, lastErr
	}
	return HostsFile{}, errors.New("hosts file format not recognized (expected YAML or JSON)")
}

func sanitizeHostsFile(hf HostsFile) HostsFile {
	hf.Hosts.API = strings.TrimRight(strings.TrimSpace(hf.Hosts.API), "/")
	hf.Hosts.Coins = strings.TrimRight(strings.TrimSpace(hf.Hosts.Coins), "/")
	hf.Hosts.Stablecoins = strings.TrimRight(strings.TrimSpace(hf.Hosts.Stablecoins), "/")
	hf.Hosts.Yields = strings.TrimRight(strings.TrimSpace(hf.Hosts.Yields), "/")

	if len(hf.Headers) == 0 {
		hf.Headers = nil
		return hf
	}
	headers := make(map[string]string, len(hf.Headers))
	for k, v := range hf.Headers {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		headers[key] = val
	}
	hf.Headers = headers
	return hf
}
