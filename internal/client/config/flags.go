package config

import (
	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagConfig           = "config"
	FlagEnvFile          = "env-file"
	FlagAPIURL           = "api-url"
	FlagMockAPI          = "mock"
	FlagRequestTimeout   = "timeout"
	FlagDatabasePath     = "db"
	FlagLogLevel         = "log-level"
	FlagFixtureLatency   = "fixture-latency"
	FlagFixtureSecret    = "fixture-secret"
	FlagFixtureTokenTTL  = "fixture-token-ttl"
	FlagChatRateInterval = "chat-interval"
	FlagChatBurst        = "chat-burst"
	FlagListenAddr       = "listen"
	FlagAvatarBucket     = "avatar-bucket"
	FlagAvatarRegion     = "avatar-region"
	FlagAvatarEndpoint   = "avatar-endpoint"
	FlagAvatarAccessKey  = "avatar-access-key"
	FlagAvatarSecretKey  = "avatar-secret-key"
	FlagAvatarPublicURL  = "avatar-public-url"
)

// RegisterFlags declares every configuration flag on fs with the built-in
// defaults shown in help output.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON config file")
	fs.String(FlagEnvFile, ".env", "dotenv file with PHISHSHIELD_* variables")
	fs.StringP(FlagAPIURL, "a", d.APIURL, "PhishShield API root URL")
	fs.Bool(FlagMockAPI, d.MockAPI, "serve API calls from the built-in fixture")
	fs.Duration(FlagRequestTimeout, d.RequestTimeout, "per-request timeout")
	fs.String(FlagDatabasePath, d.DatabasePath, "local SQLite database file")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	fs.Duration(FlagFixtureLatency, d.FixtureLatency, "simulated fixture latency")
	fs.String(FlagFixtureSecret, d.FixtureSecret, "fixture token signing secret")
	fs.Duration(FlagFixtureTokenTTL, d.FixtureTokenTTL, "fixture token lifetime")
	fs.Duration(FlagChatRateInterval, d.ChatRateInterval, "minimum interval between chat messages")
	fs.Int(FlagChatBurst, d.ChatBurst, "chat messages allowed in a burst")
	fs.String(FlagListenAddr, d.ListenAddr, "mock API listen address")
	fs.String(FlagAvatarBucket, d.Avatar.Bucket, "S3 bucket for avatars (empty disables uploads)")
	fs.String(FlagAvatarRegion, d.Avatar.Region, "S3 region")
	fs.String(FlagAvatarEndpoint, d.Avatar.BaseEndpoint, "S3 base endpoint")
	fs.String(FlagAvatarAccessKey, d.Avatar.AccessKey, "S3 access key")
	fs.String(FlagAvatarSecretKey, d.Avatar.SecretKey, "S3 secret key")
	fs.String(FlagAvatarPublicURL, d.Avatar.PublicBaseURL, "public base URL of uploaded avatars")
}

// parseFlags overlays cfg with the flags of fs that were set explicitly.
// Flags that were never declared on fs are skipped.
func parseFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	changed := func(name string) bool {
		return err == nil && fs.Lookup(name) != nil && fs.Changed(name)
	}

	if changed(FlagAPIURL) {
		cfg.APIURL, err = fs.GetString(FlagAPIURL)
	}
	if changed(FlagMockAPI) {
		cfg.MockAPI, err = fs.GetBool(FlagMockAPI)
	}
	if changed(FlagRequestTimeout) {
		cfg.RequestTimeout, err = fs.GetDuration(FlagRequestTimeout)
	}
	if changed(FlagDatabasePath) {
		cfg.DatabasePath, err = fs.GetString(FlagDatabasePath)
	}
	if changed(FlagLogLevel) {
		cfg.LogLevel, err = fs.GetString(FlagLogLevel)
	}
	if changed(FlagFixtureLatency) {
		cfg.FixtureLatency, err = fs.GetDuration(FlagFixtureLatency)
	}
	if changed(FlagFixtureSecret) {
		cfg.FixtureSecret, err = fs.GetString(FlagFixtureSecret)
	}
	if changed(FlagFixtureTokenTTL) {
		cfg.FixtureTokenTTL, err = fs.GetDuration(FlagFixtureTokenTTL)
	}
	if changed(FlagChatRateInterval) {
		cfg.ChatRateInterval, err = fs.GetDuration(FlagChatRateInterval)
	}
	if changed(FlagChatBurst) {
		cfg.ChatBurst, err = fs.GetInt(FlagChatBurst)
	}
	if changed(FlagListenAddr) {
		cfg.ListenAddr, err = fs.GetString(FlagListenAddr)
	}
	if changed(FlagAvatarBucket) {
		cfg.Avatar.Bucket, err = fs.GetString(FlagAvatarBucket)
	}
	if changed(FlagAvatarRegion) {
		cfg.Avatar.Region, err = fs.GetString(FlagAvatarRegion)
	}
	if changed(FlagAvatarEndpoint) {
		cfg.Avatar.BaseEndpoint, err = fs.GetString(FlagAvatarEndpoint)
	}
	if changed(FlagAvatarAccessKey) {
		cfg.Avatar.AccessKey, err = fs.GetString(FlagAvatarAccessKey)
	}
	if changed(FlagAvatarSecretKey) {
		cfg.Avatar.SecretKey, err = fs.GetString(FlagAvatarSecretKey)
	}
	if changed(FlagAvatarPublicURL) {
		cfg.Avatar.PublicBaseURL, err = fs.GetString(FlagAvatarPublicURL)
	}

	return err
}
