package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/foodkeeper/internal/flagx"
)

// JsonConfig is the on-disk shape of the JSON configuration file. Durations
// are integer milliseconds. Zero values leave the current setting unchanged.
type JsonConfig struct {
	Env                  string `json:"env"`
	EndpointAddrHTTP     string `json:"endpoint_addr_http"`
	StorageDriver        string `json:"storage_driver"`
	DatabaseDSN          string `json:"database_dsn"`
	CORSOrigin           string `json:"cors_origin"`
	RateLimitMaxRequests int    `json:"rate_limit_max_requests"`
	RateLimitWindowMs    int64  `json:"rate_limit_window_ms"`
	LogFormat            string `json:"log_format"`
	LogLevel             string `json:"log_level"`
	ShutdownTimeoutMs    int64  `json:"shutdown_timeout_ms"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flag into config. Without either flag nothing is loaded. An
// unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.Env, c.Env)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.StorageDriver, c.StorageDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.CORSOrigin, c.CORSOrigin)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.LogLevel, c.LogLevel)
	if c.RateLimitMaxRequests != 0 {
		config.RateLimitMaxRequests = c.RateLimitMaxRequests
	}
	if c.RateLimitWindowMs != 0 {
		config.RateLimitWindow = time.Duration(c.RateLimitWindowMs) * time.Millisecond
	}
	if c.ShutdownTimeoutMs != 0 {
		config.ShutdownTimeout = time.Duration(c.ShutdownTimeoutMs) * time.Millisecond
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
