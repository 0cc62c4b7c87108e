package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophsession/internal/flagx"
)

var knownFlags = []string{"-a", "-r", "-d", "-t", "-test"}

// parseFlags overlays cfg with command-line flags. Unknown arguments are
// filtered out first so other components can own them.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("gophsession", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "account service base URL")
	fs.StringVar(&cfg.CallbackURL, "r", cfg.CallbackURL, "sign-in callback URL")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout (e.g. 10s)")
	fs.BoolVar(&cfg.TestMode, "test", cfg.TestMode, "enable test login")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
