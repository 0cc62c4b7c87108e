package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the gophsession CLI.
//
// Fields:
//   - APIBaseURL: base URL of the account service.
//   - CallbackURL: where the provider sends the user back after sign-in.
//   - DataDir: directory holding the session and per-identity databases.
//   - RequestTimeout: upper bound for a single account service call.
//   - TestMode: enables the synthetic test login.
type Config struct {
	APIBaseURL     string
	CallbackURL    string
	DataDir        string
	RequestTimeout time.Duration
	TestMode       bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.CallbackURL = "http://127.0.0.1:8765/"
	c.DataDir = "./data"
	c.RequestTimeout = 10 * time.Second
	c.TestMode = false
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config, then the remaining flags. Later sources win.
func LoadConfig() (*Config, error) {
	return loadConfig(os.Args[1:])
}

func loadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
