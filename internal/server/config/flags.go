package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/foodkeeper/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., "localhost:3000")
//	-e string   environment (development, production, test)
//	-s string   storage driver (postgres, sqlite, memory)
//	-d string   database DSN
//	-o string   CORS origin
//	-m int      rate limit, requests per window
//	-w int      rate limit window, milliseconds
//	-f string   log format (json, text)
//	-l string   log level (debug, info, warn, error)
//	-t int      shutdown timeout, seconds
//
// Args are filtered with flagx.FilterArgs first, so flags owned by other
// components (-c) do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-e", "-s", "-d", "-o", "-m", "-w", "-f", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.Env, "e", config.Env, "environment")
	fs.StringVar(&config.StorageDriver, "s", config.StorageDriver, "storage driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.CORSOrigin, "o", config.CORSOrigin, "CORS origin")
	fs.IntVar(&config.RateLimitMaxRequests, "m", config.RateLimitMaxRequests, "rate limit, requests per window")

	rateLimitWindow := fs.Int64("w", config.RateLimitWindow.Milliseconds(), "rate limit window (in milliseconds)")

	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	shutdownTimeout := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// unit conversions apply only to flags actually given
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "w":
			config.RateLimitWindow = time.Duration(*rateLimitWindow) * time.Millisecond
		case "t":
			config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
		}
	})
}
