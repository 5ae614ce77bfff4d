package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	Addr          string
	AllowOrigins  string
	TimeControl   time.Duration
	MatchInterval time.Duration
	LogLevel      log.Level
	RequestLog    bool
}

// Load reads flags from args, falling back to VCHESS_* environment variables
// and then to the defaults.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", getenv("VCHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("allow-origins", getenv("VCHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	clockSeconds := fs.Int("clock", getenvi("VCHESS_CLOCK_SECONDS", 600), "seconds on each player's clock")
	interval := fs.Duration("match-interval", getenvd("VCHESS_MATCH_INTERVAL", time.Second), "how often queued players are paired")
	level := fs.String("log-level", getenv("VCHESS_LOG_LEVEL", "info"), "trace, debug, info, warn or error")
	requestLog := fs.Bool("request-log", getenb("VCHESS_REQUEST_LOG", true), "log every HTTP request")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *clockSeconds <= 0 {
		return Config{}, fmt.Errorf("clock must be positive, got %d", *clockSeconds)
	}
	if *interval <= 0 {
		return Config{}, fmt.Errorf("match interval must be positive, got %v", *interval)
	}
	lvl, err := ParseLevel(*level)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Addr:          *addr,
		AllowOrigins:  *origins,
		TimeControl:   time.Duration(*clockSeconds) * time.Second,
		MatchInterval: *interval,
		LogLevel:      lvl,
		RequestLog:    *requestLog,
	}, nil
}

func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info", "":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getenvi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func getenvd(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}
