package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally to the flag and env surface.
type FileConfig struct {
	Transport string `yaml:"transport" json:"transport"`
	Addr      string `yaml:"addr" json:"addr"`
	BaseURL   string `yaml:"baseURL" json:"baseURL"`

	HN struct {
		BaseURL   string `yaml:"base" json:"base"`
		UserAgent string `yaml:"ua" json:"ua"`
	} `yaml:"hn" json:"hn"`

	Fetch struct {
		Timeout      time.Duration `yaml:"timeout" json:"timeout"`
		MaxBodyBytes int64         `yaml:"maxBodyBytes" json:"maxBodyBytes"`
		RedirectHops int           `yaml:"redirectHops" json:"redirectHops"`
	} `yaml:"fetch" json:"fetch"`

	Verbose      bool `yaml:"verbose" json:"verbose"`
	DebugVerbose bool `yaml:"debugVerbose" json:"debugVerbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for fields still
// holding their flag defaults. Flags must already have been parsed; explicit
// flag values win over the file.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}

	if (cfg.Transport == "" || cfg.Transport == TransportSSE) && fc.Transport != "" {
		cfg.Transport = fc.Transport
	}
	if (cfg.Addr == "" || cfg.Addr == DefaultAddr) && fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if cfg.BaseURL == "" && fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}

	if cfg.HNBaseURL == "" && fc.HN.BaseURL != "" {
		cfg.HNBaseURL = fc.HN.BaseURL
	}
	if (cfg.UserAgent == "" || cfg.UserAgent == DefaultUserAgent) && fc.HN.UserAgent != "" {
		cfg.UserAgent = fc.HN.UserAgent
	}

	if cfg.FetchTimeout == 0 && fc.Fetch.Timeout > 0 {
		cfg.FetchTimeout = fc.Fetch.Timeout
	}
	if cfg.MaxBodyBytes == 0 && fc.Fetch.MaxBodyBytes > 0 {
		cfg.MaxBodyBytes = fc.Fetch.MaxBodyBytes
	}
	if cfg.RedirectMaxHops == 0 && fc.Fetch.RedirectHops > 0 {
		cfg.RedirectMaxHops = fc.Fetch.RedirectHops
	}

	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
	if !cfg.DebugVerbose && fc.DebugVerbose {
		cfg.DebugVerbose = true
	}
}
