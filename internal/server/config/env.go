package config

import (
	"errors"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/subosito/gotenv"
)

// DotenvPathVar names the variable that overrides the .env file location.
const DotenvPathVar = "DOTENV_PATH"

var lookupEnv = os.LookupEnv

// loadDotenv copies variables from the .env file into the process
// environment. Variables that are already set win. A missing file is not an
// error; an unreadable one panics.
func loadDotenv() {
	path := ".env"
	if p, ok := os.LookupEnv(DotenvPathVar); ok && p != "" {
		path = p
	}
	if err := gotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

// parseEnv overlays environment variables onto config.
//
// Supported variables:
//
//	NODE_ENV or APP_ENV               environment
//	HOST, PORT                        HTTP bind address parts
//	CORS_ORIGIN                       allowed origin
//	COMMON_RATE_LIMIT_MAX_REQUESTS    requests per window
//	COMMON_RATE_LIMIT_WINDOW_MS       window length, milliseconds
//	DB_DRIVER                         postgres, sqlite or memory
//	DATABASE_DSN                      full DSN, takes precedence over DB_*
//	DB_HOST, DB_PORT, DB_USER,
//	DB_PASSWORD, DB_NAME              PostgreSQL DSN parts
//	LOG_FORMAT, LOG_LEVEL             logging
//	SHUTDOWN_TIMEOUT_MS               shutdown grace period, milliseconds
//
// Malformed numbers panic.
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}

	if v, ok := get("APP_ENV"); ok {
		config.Env = v
	}
	if v, ok := get("NODE_ENV"); ok {
		config.Env = v
	}

	host, port, _ := net.SplitHostPort(config.EndpointAddrHTTP)
	h, hok := get("HOST")
	p, pok := get("PORT")
	if hok {
		host = h
	}
	if pok {
		port = p
	}
	if hok || pok {
		config.EndpointAddrHTTP = net.JoinHostPort(host, port)
	}

	if v, ok := get("CORS_ORIGIN"); ok {
		config.CORSOrigin = v
	}
	if v, ok := get("COMMON_RATE_LIMIT_MAX_REQUESTS"); ok {
		config.RateLimitMaxRequests = mustAtoi("COMMON_RATE_LIMIT_MAX_REQUESTS", v)
	}
	if v, ok := get("COMMON_RATE_LIMIT_WINDOW_MS"); ok {
		config.RateLimitWindow = time.Duration(mustAtoi("COMMON_RATE_LIMIT_WINDOW_MS", v)) * time.Millisecond
	}
	if v, ok := get("SHUTDOWN_TIMEOUT_MS"); ok {
		config.ShutdownTimeout = time.Duration(mustAtoi("SHUTDOWN_TIMEOUT_MS", v)) * time.Millisecond
	}

	if v, ok := get("DB_DRIVER"); ok {
		config.StorageDriver = v
	}
	if v, ok := get("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	} else if dsn, ok := postgresDSNFromParts(config.DatabaseDSN, get); ok {
		config.DatabaseDSN = dsn
	}

	if v, ok := get("LOG_FORMAT"); ok {
		config.LogFormat = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		config.LogLevel = v
	}
}

// postgresDSNFromParts rewrites base with whichever DB_* parts are set.
// It reports false when none are set or base is not a URL.
func postgresDSNFromParts(base string, get func(string) (string, bool)) (string, bool) {
	dbHost, hostOK := get("DB_HOST")
	dbPort, portOK := get("DB_PORT")
	dbUser, userOK := get("DB_USER")
	dbPass, passOK := get("DB_PASSWORD")
	dbName, nameOK := get("DB_NAME")
	if !hostOK && !portOK && !userOK && !passOK && !nameOK {
		return "", false
	}

	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" {
		u = &url.URL{Scheme: "postgres", Host: "localhost:5432", RawQuery: "sslmode=disable"}
	}

	host, port, err := net.SplitHostPort(u.Host)
	if err != nil {
		host, port = u.Host, "5432"
	}
	if hostOK {
		host = dbHost
	}
	if portOK {
		port = dbPort
	}
	u.Host = net.JoinHostPort(host, port)

	user := u.User.Username()
	pass, _ := u.User.Password()
	if userOK {
		user = dbUser
	}
	if passOK {
		pass = dbPass
	}
	u.User = url.UserPassword(user, pass)

	if nameOK {
		u.Path = "/" + dbName
	}
	return u.String(), true
}

func mustAtoi(key, v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		panic("invalid " + key + ": " + err.Error())
	}
	return n
}
