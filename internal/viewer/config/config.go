// Package config handles configuration for the viewer component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the card viewer.
//
// Fields:
//   - ServerBaseURL: address of the card service.
//   - DatabaseDSN: path of the local SQLite database holding navigation state.
//   - RequestTimeout: upper bound for the card fetch.
type Config struct {
	ServerBaseURL  string
	DatabaseDSN    string
	RequestTimeout time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080"
	c.DatabaseDSN = "navstate.db"
	c.RequestTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
