// Package config loads runtime configuration for the gophsession CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     account service base URL
//	-r string     sign-in callback URL
//	-d string     data directory
//	-t duration   request timeout
//	-test         enable the test login
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "10s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "callback_url": "http://127.0.0.1:8765/",
//	  "data_dir": "./data",
//	  "request_timeout": "10s",
//	  "test_mode": false
//	}
package config
