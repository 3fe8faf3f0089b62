package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/phishshield/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell absent keys apart from zero values.
type JsonConfig struct {
	APIURL           *string         `json:"api_url"`
	MockAPI          *bool           `json:"mock_api"`
	RequestTimeout   *timex.Duration `json:"request_timeout"`
	DatabasePath     *string         `json:"database_path"`
	LogLevel         *string         `json:"log_level"`
	FixtureLatency   *timex.Duration `json:"fixture_latency"`
	FixtureSecret    *string         `json:"fixture_secret"`
	FixtureTokenTTL  *timex.Duration `json:"fixture_token_ttl"`
	ChatRateInterval *timex.Duration `json:"chat_rate_interval"`
	ChatBurst        *int            `json:"chat_burst"`
	ListenAddr       *string         `json:"listen_addr"`
	Avatar           *jsonAvatar     `json:"avatar"`
}

type jsonAvatar struct {
	Bucket        *string `json:"bucket"`
	Region        *string `json:"region"`
	BaseEndpoint  *string `json:"base_endpoint"`
	AccessKey     *string `json:"access_key"`
	SecretKey     *string `json:"secret_key"`
	PublicBaseURL *string `json:"public_base_url"`
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setDurationIf(dst *time.Duration, src *timex.Duration) {
	if src != nil {
		*dst = src.Duration
	}
}

// parseJson overlays cfg with the keys present in the JSON file at path. An
// empty path is a no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&cfg.APIURL, jc.APIURL)
	setIf(&cfg.MockAPI, jc.MockAPI)
	setDurationIf(&cfg.RequestTimeout, jc.RequestTimeout)
	setIf(&cfg.DatabasePath, jc.DatabasePath)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setDurationIf(&cfg.FixtureLatency, jc.FixtureLatency)
	setIf(&cfg.FixtureSecret, jc.FixtureSecret)
	setDurationIf(&cfg.FixtureTokenTTL, jc.FixtureTokenTTL)
	setDurationIf(&cfg.ChatRateInterval, jc.ChatRateInterval)
	setIf(&cfg.ChatBurst, jc.ChatBurst)
	setIf(&cfg.ListenAddr, jc.ListenAddr)

	if a := jc.Avatar; a != nil {
		setIf(&cfg.Avatar.Bucket, a.Bucket)
		setIf(&cfg.Avatar.Region, a.Region)
		setIf(&cfg.Avatar.BaseEndpoint, a.BaseEndpoint)
		setIf(&cfg.Avatar.AccessKey, a.AccessKey)
		setIf(&cfg.Avatar.SecretKey, a.SecretKey)
		setIf(&cfg.Avatar.PublicBaseURL, a.PublicBaseURL)
	}

	return nil
}
