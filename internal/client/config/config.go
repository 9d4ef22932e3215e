package config

import "time"

// Config holds runtime settings for the account CLI.
//
// Fields:
//   - ServerEndpointURL: base URL of the backend REST API.
//   - RequestTimeout: per-request timeout for API calls.
//   - DatabaseDSN: path of the local SQLite database file.
type Config struct {
	ServerEndpointURL string
	RequestTimeout    time.Duration
	DatabaseDSN       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://127.0.0.1:8080/api/auth"
	c.RequestTimeout = 10 * time.Second
	c.DatabaseDSN = "account.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
