package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/playrift/esports-ingest/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                          string
	ServiceName                     string
	ServiceVersion                  string
	HTTPAddr                        string
	DBURL                           string
	DBDisablePreparedBinary         bool
	DBBootstrapSeed                 bool
	CORSAllowedOrigins              []string
	ReadTimeout                     time.Duration
	WriteTimeout                    time.Duration
	PprofEnabled                    bool
	PprofAddr                       string
	InternalJobToken                string
	LiquipediaBaseURL               string
	LiquipediaOrigin                string
	LiquipediaUserAgent             string
	LiquipediaAcceptGzip            bool
	LiquipediaTimeout               time.Duration
	LiquipediaMaxRetries            int
	LiquipediaPageCacheTTL          time.Duration
	LiquipediaCircuitEnabled        bool
	LiquipediaCircuitFailureCount   int
	LiquipediaCircuitOpenTimeout    time.Duration
	LiquipediaCircuitHalfOpenMaxReq int
	LiquipediaTournamentsPage       string
	LiquipediaTeamsPage             string
	LiquipediaMatchesPage           string
	ReadCacheTTL                    time.Duration
	LogLevel                        logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	liquipediaTimeout, err := time.ParseDuration(getEnv("LIQUIPEDIA_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIQUIPEDIA_TIMEOUT: %w", err)
	}
	if liquipediaTimeout <= 0 {
		return Config{}, fmt.Errorf("LIQUIPEDIA_TIMEOUT must be > 0")
	}
	liquipediaMaxRetries, err := getEnvAsInt("LIQUIPEDIA_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIQUIPEDIA_MAX_RETRIES: %w", err)
	}
	if liquipediaMaxRetries < 0 {
		return Config{}, fmt.Errorf("LIQUIPEDIA_MAX_RETRIES must be >= 0")
	}
	liquipediaAcceptGzip, err := strconv.ParseBool(getEnv("LIQUIPEDIA_ACCEPT_GZIP", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIQUIPEDIA_ACCEPT_GZIP: %w", err)
	}
	liquipediaPageCacheTTL, err := time.ParseDuration(getEnv("LIQUIPEDIA_PAGE_CACHE_TTL", "0s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIQUIPEDIA_PAGE_CACHE_TTL: %w", err)
	}
	if liquipediaPageCacheTTL < 0 {
		return Config{}, fmt.Errorf("LIQUIPEDIA_PAGE_CACHE_TTL must be >= 0")
	}
	liquipediaCircuitEnabled, err := strconv.ParseBool(getEnv("LIQUIPEDIA_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIQUIPEDIA_CIRCUIT_ENABLED: %w", err)
	}
	liquipediaCircuitFailureCount, err := getEnvAsInt("LIQUIPEDIA_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIQUIPEDIA_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if liquipediaCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("LIQUIPEDIA_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	liquipediaCircuitOpenTimeout, err := time.ParseDuration(getEnv("LIQUIPEDIA_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIQUIPEDIA_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if liquipediaCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("LIQUIPEDIA_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	liquipediaCircuitHalfOpenMaxReq, err := getEnvAsInt("LIQUIPEDIA_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIQUIPEDIA_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if liquipediaCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("LIQUIPEDIA_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cfg := Config{
		AppEnv:                          appEnv,
		ServiceName:                     getEnv("APP_SERVICE_NAME", "esports-ingest-api"),
		ServiceVersion:                  getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                        getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                           strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins:              splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:                    pprofEnabled,
		PprofAddr:                       pprofAddr,
		InternalJobToken:                strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		LiquipediaBaseURL:               strings.TrimSpace(getEnv("LIQUIPEDIA_BASE_URL", "https://liquipedia.net/leagueoflegends")),
		LiquipediaOrigin:                strings.TrimSpace(getEnv("LIQUIPEDIA_ORIGIN", "https://liquipedia.net")),
		LiquipediaUserAgent:             strings.TrimSpace(getEnv("LIQUIPEDIA_USER_AGENT", "esports-ingest/1.0 (match data sync)")),
		LiquipediaAcceptGzip:            liquipediaAcceptGzip,
		LiquipediaTimeout:               liquipediaTimeout,
		LiquipediaMaxRetries:            liquipediaMaxRetries,
		LiquipediaPageCacheTTL:          liquipediaPageCacheTTL,
		LiquipediaCircuitEnabled:        liquipediaCircuitEnabled,
		LiquipediaCircuitFailureCount:   liquipediaCircuitFailureCount,
		LiquipediaCircuitOpenTimeout:    liquipediaCircuitOpenTimeout,
		LiquipediaCircuitHalfOpenMaxReq: liquipediaCircuitHalfOpenMaxReq,
		LiquipediaTournamentsPage:       strings.TrimSpace(getEnv("LIQUIPEDIA_TOURNAMENTS_PAGE", "/Portal:Tournaments")),
		LiquipediaTeamsPage:             strings.TrimSpace(getEnv("LIQUIPEDIA_TEAMS_PAGE", "/Portal:Teams")),
		LiquipediaMatchesPage:           strings.TrimSpace(getEnv("LIQUIPEDIA_MATCHES_PAGE", "/Liquipedia:Matches")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.LiquipediaBaseURL == "" {
		return Config{}, fmt.Errorf("LIQUIPEDIA_BASE_URL cannot be empty")
	}
	if cfg.LiquipediaUserAgent == "" {
		return Config{}, fmt.Errorf("LIQUIPEDIA_USER_AGENT cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	dbBootstrapSeed, err := strconv.ParseBool(getEnv("DB_BOOTSTRAP_SEED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_BOOTSTRAP_SEED: %w", err)
	}
	cfg.DBBootstrapSeed = dbBootstrapSeed

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	readCacheTTL, err := time.ParseDuration(getEnv("APP_READ_CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_CACHE_TTL: %w", err)
	}
	if readCacheTTL < 0 {
		return Config{}, fmt.Errorf("APP_READ_CACHE_TTL must be >= 0")
	}

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.ReadCacheTTL = readCacheTTL
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
