package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// KnownSources lists every supported source key in the default query order.
var KnownSources = []string{"weworkremotely", "web3career", "berlinstartupjobs"}

// Config is the root configuration for jobscrapper.
type Config struct {
	Server  ServerConfig
	HTTP    HTTPConfig
	Browser BrowserConfig
	Retry   RetryConfig
	Crawl   CrawlConfig
	Export  ExportConfig
	Sources []string // source keys, queried and concatenated in this order
}

// ServerConfig controls the web front end.
type ServerConfig struct {
	Addr string
}

// HTTPConfig controls the plain HTTP page fetcher.
type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// BrowserConfig controls the headless browser used for rendered sources.
type BrowserConfig struct {
	Wait            time.Duration // bound on waiting for the listings container
	NavigateTimeout time.Duration
	ExecPath        string // empty lets chromedp find Chrome
}

// RetryConfig controls per-page retries. MaxRetries of zero disables them.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// CrawlConfig bounds pagination. MaxPages of zero means unlimited.
type CrawlConfig struct {
	MaxPages int
}

// ExportConfig controls where CSV exports are written.
type ExportConfig struct {
	Dir string
}

const (
	defaultAddr            = ":5000"
	defaultHTTPTimeout     = 30 * time.Second
	defaultBrowserWait     = 10 * time.Second
	defaultNavigateTimeout = 30 * time.Second
	defaultRetryBaseDelay  = 2 * time.Second
)

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Server  rawServerConfig  `yaml:"server"`
	HTTP    rawHTTPConfig    `yaml:"http"`
	Browser rawBrowserConfig `yaml:"browser"`
	Retry   rawRetryConfig   `yaml:"retry"`
	Crawl   rawCrawlConfig   `yaml:"crawl"`
	Export  rawExportConfig  `yaml:"export"`
	Sources []string         `yaml:"sources"`
}

type rawServerConfig struct {
	Addr string `yaml:"addr"`
}

type rawHTTPConfig struct {
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
}

type rawBrowserConfig struct {
	Wait            string `yaml:"wait"`
	NavigateTimeout string `yaml:"navigate_timeout"`
	ExecPath        string `yaml:"exec_path"`
}

type rawRetryConfig struct {
	MaxRetries int    `yaml:"max_retries"`
	BaseDelay  string `yaml:"base_delay"`
}

type rawCrawlConfig struct {
	MaxPages int `yaml:"max_pages"`
}

type rawExportConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: defaultAddr},
		HTTP:    HTTPConfig{Timeout: defaultHTTPTimeout},
		Browser: BrowserConfig{Wait: defaultBrowserWait, NavigateTimeout: defaultNavigateTimeout},
		Retry:   RetryConfig{BaseDelay: defaultRetryBaseDelay},
		Export:  ExportConfig{Dir: "."},
		Sources: append([]string(nil), KnownSources...),
	}
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse expands environment variables in data, applies defaults for absent
// keys and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.Server.Addr != "" {
		cfg.Server.Addr = raw.Server.Addr
	}
	cfg.HTTP.UserAgent = raw.HTTP.UserAgent
	cfg.Browser.ExecPath = raw.Browser.ExecPath
	cfg.Retry.MaxRetries = raw.Retry.MaxRetries
	cfg.Crawl.MaxPages = raw.Crawl.MaxPages
	if raw.Export.Dir != "" {
		cfg.Export.Dir = raw.Export.Dir
	}
	if raw.Sources != nil {
		cfg.Sources = raw.Sources
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"http.timeout", raw.HTTP.Timeout, &cfg.HTTP.Timeout},
		{"browser.wait", raw.Browser.Wait, &cfg.Browser.Wait},
		{"browser.navigate_timeout", raw.Browser.NavigateTimeout, &cfg.Browser.NavigateTimeout},
		{"retry.base_delay", raw.Retry.BaseDelay, &cfg.Retry.BaseDelay},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s %q: %w", d.key, d.raw, err)
		}
		*d.dst = v
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %v", cfg.HTTP.Timeout)
	}
	if cfg.Browser.Wait <= 0 {
		return fmt.Errorf("browser.wait must be positive, got %v", cfg.Browser.Wait)
	}
	if cfg.Browser.NavigateTimeout <= 0 {
		return fmt.Errorf("browser.navigate_timeout must be positive, got %v", cfg.Browser.NavigateTimeout)
	}
	if cfg.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative, got %d", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.MaxRetries > 0 && cfg.Retry.BaseDelay <= 0 {
		return fmt.Errorf("retry.base_delay must be positive when retries are enabled, got %v", cfg.Retry.BaseDelay)
	}
	if cfg.Crawl.MaxPages < 0 {
		return fmt.Errorf("crawl.max_pages must not be negative, got %d", cfg.Crawl.MaxPages)
	}

	if len(cfg.Sources) == 0 {
		return fmt.Errorf("at least one source must be configured")
	}
	seen := make(map[string]bool)
	for _, s := range cfg.Sources {
		if !isKnownSource(s) {
			return fmt.Errorf("unknown source %q (known: %v)", s, KnownSources)
		}
		if seen[s] {
			return fmt.Errorf("source %q listed twice", s)
		}
		seen[s] = true
	}

	return nil
}

func isKnownSource(name string) bool {
	for _, k := range KnownSources {
		if k == name {
			return true
		}
	}
	return false
}
