package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAPIURL           = "PHISHSHIELD_API_URL"
	EnvMockAPI          = "PHISHSHIELD_MOCK_API"
	EnvRequestTimeout   = "PHISHSHIELD_REQUEST_TIMEOUT"
	EnvDatabasePath     = "PHISHSHIELD_DB"
	EnvLogLevel         = "PHISHSHIELD_LOG_LEVEL"
	EnvFixtureLatency   = "PHISHSHIELD_FIXTURE_LATENCY"
	EnvFixtureSecret    = "PHISHSHIELD_FIXTURE_SECRET"
	EnvFixtureTokenTTL  = "PHISHSHIELD_FIXTURE_TOKEN_TTL"
	EnvChatRateInterval = "PHISHSHIELD_CHAT_INTERVAL"
	EnvChatBurst        = "PHISHSHIELD_CHAT_BURST"
	EnvListenAddr       = "PHISHSHIELD_LISTEN_ADDR"
	EnvAvatarBucket     = "PHISHSHIELD_AVATAR_BUCKET"
	EnvAvatarRegion     = "PHISHSHIELD_AVATAR_REGION"
	EnvAvatarEndpoint   = "PHISHSHIELD_AVATAR_ENDPOINT"
	EnvAvatarAccessKey  = "PHISHSHIELD_AVATAR_ACCESS_KEY"
	EnvAvatarSecretKey  = "PHISHSHIELD_AVATAR_SECRET_KEY"
	EnvAvatarPublicURL  = "PHISHSHIELD_AVATAR_PUBLIC_URL"
)

type lookupFunc func(key string) (string, bool)

// envLookup resolves variables from the process environment first and from
// the dotenv file at path second. A missing file is not an error.
func envLookup(path string) (lookupFunc, error) {
	fileVars := map[string]string{}
	if path != "" {
		vars, err := godotenv.Read(path)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read env file %s: %w", path, err)
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}, nil
}

func envString(lookup lookupFunc, key string, dst *string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func envBool(lookup lookupFunc, key string, dst *bool) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("env %s: %w", key, err)
	}
	*dst = b
	return nil
}

func envInt(lookup lookupFunc, key string, dst *int) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("env %s: %w", key, err)
	}
	*dst = n
	return nil
}

func envDuration(lookup lookupFunc, key string, dst *time.Duration) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("env %s: %w", key, err)
	}
	*dst = d
	return nil
}

// parseEnv overlays cfg with the PHISHSHIELD_* variables visible through
// lookup.
func parseEnv(cfg *Config, lookup lookupFunc) error {
	envString(lookup, EnvAPIURL, &cfg.APIURL)
	envString(lookup, EnvDatabasePath, &cfg.DatabasePath)
	envString(lookup, EnvLogLevel, &cfg.LogLevel)
	envString(lookup, EnvFixtureSecret, &cfg.FixtureSecret)
	envString(lookup, EnvListenAddr, &cfg.ListenAddr)
	envString(lookup, EnvAvatarBucket, &cfg.Avatar.Bucket)
	envString(lookup, EnvAvatarRegion, &cfg.Avatar.Region)
	envString(lookup, EnvAvatarEndpoint, &cfg.Avatar.BaseEndpoint)
	envString(lookup, EnvAvatarAccessKey, &cfg.Avatar.AccessKey)
	envString(lookup, EnvAvatarSecretKey, &cfg.Avatar.SecretKey)
	envString(lookup, EnvAvatarPublicURL, &cfg.Avatar.PublicBaseURL)

	return errors.Join(
		envBool(lookup, EnvMockAPI, &cfg.MockAPI),
		envDuration(lookup, EnvRequestTimeout, &cfg.RequestTimeout),
		envDuration(lookup, EnvFixtureLatency, &cfg.FixtureLatency),
		envDuration(lookup, EnvFixtureTokenTTL, &cfg.FixtureTokenTTL),
		envDuration(lookup, EnvChatRateInterval, &cfg.ChatRateInterval),
		envInt(lookup, EnvChatBurst, &cfg.ChatBurst),
	)
}
