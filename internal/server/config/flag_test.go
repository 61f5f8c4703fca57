package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-e", "production", "-s", "sqlite", "-d", "file:foods.db",
			"-o", "https://foods.example", "-m", "5", "-w", "2000", "-f", "text", "-l", "debug", "-t", "3",
		}, expected: &Config{
			Env:                  "production",
			EndpointAddrHTTP:     "127.0.0.1:9090",
			StorageDriver:        "sqlite",
			DatabaseDSN:          "file:foods.db",
			CORSOrigin:           "https://foods.example",
			RateLimitMaxRequests: 5,
			RateLimitWindow:      2 * time.Second,
			LogFormat:            "text",
			LogLevel:             "debug",
			ShutdownTimeout:      3 * time.Second,
		}},
		{name: "unset duration flags keep sub-unit values", args: []string{"cmd", "-c", "conf.json"},
			expected: &Config{ShutdownTimeout: 1500 * time.Millisecond, RateLimitWindow: 250 * time.Millisecond}},
		{name: "bad int panics", args: []string{"cmd", "-m", "many"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{ShutdownTimeout: 1500 * time.Millisecond, RateLimitWindow: 250 * time.Millisecond}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
