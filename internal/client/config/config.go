package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Config holds runtime settings for the PhishShield CLI and mock API server.
//
// Fields:
//   - APIURL: root of the PhishShield API, e.g. "https://host/api".
//   - MockAPI: serve requests from the in-process fixture instead of APIURL.
//   - RequestTimeout: per-request deadline of the HTTP transport.
//   - DatabasePath: SQLite file holding the persisted credential.
//   - LogLevel: debug, info, warn or error.
//   - FixtureLatency / FixtureSecret / FixtureTokenTTL: fixture backend tuning.
//     The secret is fixed by default so fixture tokens outlive the process.
//   - ChatRateInterval / ChatBurst: client-side chat throttling.
//   - ListenAddr: bind address of the mock API server.
//   - Avatar: object storage for profile pictures.
type Config struct {
	APIURL           string
	MockAPI          bool
	RequestTimeout   time.Duration
	DatabasePath     string
	LogLevel         string
	FixtureLatency   time.Duration
	FixtureSecret    string
	FixtureTokenTTL  time.Duration
	ChatRateInterval time.Duration
	ChatBurst        int
	ListenAddr       string
	Avatar           AvatarConfig
}

// AvatarConfig points at an S3-compatible bucket. Uploads are disabled
// while Bucket is empty.
type AvatarConfig struct {
	Bucket        string
	Region        string
	BaseEndpoint  string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

func (a AvatarConfig) Enabled() bool {
	return a.Bucket != ""
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://127.0.0.1:8080/api"
	c.MockAPI = true
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "phishshield.db"
	c.LogLevel = "info"
	c.FixtureLatency = 0
	c.FixtureSecret = "phishshield-demo"
	c.FixtureTokenTTL = 24 * time.Hour
	c.ChatRateInterval = time.Second
	c.ChatBurst = 3
	c.ListenAddr = "127.0.0.1:8080"
	c.Avatar = AvatarConfig{Region: "us-east-1"}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the JSON file named by --config, the environment (including a .env file)
// and the flags of fs that were set explicitly. Later sources take precedence
// over earlier ones. fs must have been prepared with RegisterFlags.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path, _ := fs.GetString(FlagConfig)
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}

	envFile, _ := fs.GetString(FlagEnvFile)
	lookup, err := envLookup(envFile)
	if err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, fs); err != nil {
		return nil, err
	}

	if cfg.ChatBurst < 1 {
		return nil, fmt.Errorf("chat burst must be positive, got %d", cfg.ChatBurst)
	}

	return cfg, nil
}
