// Package config loads runtime configuration for the PhishShield CLI and the
// mock API server.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected with -c or --config.
//  3. Environment variables prefixed PHISHSHIELD_ (see parseEnv). Values
//     from a .env file (--env-file, default ".env") fill in variables that
//     are not already set in the process environment.
//  4. Command-line flags (see parseFlags); only flags given explicitly
//     override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds. Every key is optional:
//
//	{
//	  "api_url": "http://127.0.0.1:8080/api",
//	  "mock_api": true,
//	  "request_timeout": "15s",
//	  "database_path": "phishshield.db",
//	  "log_level": "info",
//	  "fixture_latency": "300ms",
//	  "fixture_secret": "change-me",
//	  "fixture_token_ttl": "24h",
//	  "chat_rate_interval": "1s",
//	  "chat_burst": 3,
//	  "listen_addr": "127.0.0.1:8080",
//	  "avatar": {
//	    "bucket": "avatars",
//	    "region": "us-east-1",
//	    "base_endpoint": "http://127.0.0.1:9000",
//	    "access_key": "admin",
//	    "secret_key": "secretpassword",
//	    "public_base_url": "http://127.0.0.1:9000/avatars"
//	  }
//	}
//
// Primary API
//
//   - type Config                           holds every setting
//   - func RegisterFlags(*pflag.FlagSet)    declares the flags
//   - func LoadConfig(*pflag.FlagSet)       applies defaults, JSON, env, flags
package config
