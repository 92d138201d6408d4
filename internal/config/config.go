package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/sports-answer/internal/domain/query"
	"github.com/riskibarqy/sports-answer/internal/platform/logging"
	"github.com/riskibarqy/sports-answer/internal/platform/resilience"
)

const defaultLeagueIDMap = "nfl:1,ncaaf:2,nba:12"

// Config stores runtime configuration for the service and the ask CLI.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	RequestTimeout     time.Duration
	LogLevel           logging.Level
	LogFile            string
	Timezone           string
	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	SummaryEnabled     bool

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	APISportsKey               string
	APISportsBasketballBaseURL string
	APISportsFootballBaseURL   string
	APISportsTimeout           time.Duration
	APISportsMaxRetries        int
	APISportsCircuit           resilience.CircuitBreakerConfig
	LeagueIDBySport            map[query.Sport]int64

	LLMBaseURL   string
	LLMAccountID string
	LLMAPIToken  string
	LLMModel     string
	LLMTimeout   time.Duration
	LLMRateLimit resilience.RateLimitConfig
	LLMCircuit   resilience.CircuitBreakerConfig
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	summaryEnabled, err := strconv.ParseBool(getEnv("SUMMARY_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SUMMARY_ENABLED: %w", err)
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "75s")
	if err != nil {
		return Config{}, err
	}
	// Two model calls plus the lookup and stats calls fit in the default.
	requestTimeout, err := getEnvAsDuration("APP_REQUEST_TIMEOUT", "65s")
	if err != nil {
		return Config{}, err
	}
	if requestTimeout >= writeTimeout {
		return Config{}, fmt.Errorf("APP_REQUEST_TIMEOUT (%s) must be shorter than APP_WRITE_TIMEOUT (%s)", requestTimeout, writeTimeout)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	apiSportsKey := strings.TrimSpace(getEnv("APISPORTS_KEY", ""))
	if apiSportsKey == "" {
		return Config{}, fmt.Errorf("APISPORTS_KEY is required")
	}
	apiSportsTimeout, err := getEnvAsDuration("APISPORTS_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	apiSportsMaxRetries, err := getEnvAsInt("APISPORTS_MAX_RETRIES", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_MAX_RETRIES: %w", err)
	}
	if apiSportsMaxRetries < 0 {
		return Config{}, fmt.Errorf("APISPORTS_MAX_RETRIES must be >= 0")
	}
	apiSportsCircuit, err := loadCircuit("APISPORTS")
	if err != nil {
		return Config{}, err
	}
	leagueIDs, err := parseIDMap(getEnv("APISPORTS_LEAGUE_ID_MAP", defaultLeagueIDMap))
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_LEAGUE_ID_MAP: %w", err)
	}
	leagueIDBySport, err := toSportMap(leagueIDs)
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_LEAGUE_ID_MAP: %w", err)
	}

	llmBaseURL := strings.TrimSpace(getEnv("LLM_BASE_URL", ""))
	llmAccountID := strings.TrimSpace(getEnv("CLOUDFLARE_ACCOUNT_ID", ""))
	if llmBaseURL == "" && llmAccountID == "" {
		return Config{}, fmt.Errorf("LLM_BASE_URL or CLOUDFLARE_ACCOUNT_ID is required")
	}
	llmAPIToken := strings.TrimSpace(getEnv("LLM_API_TOKEN", ""))
	if llmAPIToken == "" {
		return Config{}, fmt.Errorf("LLM_API_TOKEN is required")
	}
	llmTimeout, err := getEnvAsDuration("LLM_TIMEOUT", "20s")
	if err != nil {
		return Config{}, err
	}
	llmRate, err := strconv.ParseFloat(getEnv("LLM_RATE_PER_SEC", "5"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse LLM_RATE_PER_SEC: %w", err)
	}
	if llmRate < 0 {
		return Config{}, fmt.Errorf("LLM_RATE_PER_SEC must be >= 0")
	}
	llmBurst, err := getEnvAsInt("LLM_BURST", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse LLM_BURST: %w", err)
	}
	if llmBurst < 1 {
		return Config{}, fmt.Errorf("LLM_BURST must be >= 1")
	}
	llmCircuit, err := loadCircuit("LLM")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "sports-answer-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		RequestTimeout:             requestTimeout,
		LogLevel:                   logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFile:                    strings.TrimSpace(getEnv("APP_LOG_FILE", "")),
		Timezone:                   strings.TrimSpace(getEnv("APP_TIMEZONE", "America/Chicago")),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:             swaggerEnabled,
		SummaryEnabled:             summaryEnabled,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		APISportsKey:               apiSportsKey,
		APISportsBasketballBaseURL: strings.TrimSpace(getEnv("APISPORTS_BASKETBALL_BASE_URL", "https://v2.nba.api-sports.io")),
		APISportsFootballBaseURL:   strings.TrimSpace(getEnv("APISPORTS_FOOTBALL_BASE_URL", "https://v1.american-football.api-sports.io")),
		APISportsTimeout:           apiSportsTimeout,
		APISportsMaxRetries:        apiSportsMaxRetries,
		APISportsCircuit:           apiSportsCircuit,
		LeagueIDBySport:            leagueIDBySport,
		LLMBaseURL:                 llmBaseURL,
		LLMAccountID:               llmAccountID,
		LLMAPIToken:                llmAPIToken,
		LLMModel:                   strings.TrimSpace(getEnv("LLM_MODEL", "@cf/meta/llama-3.3-70b-instruct-fp8-fast")),
		LLMTimeout:                 llmTimeout,
		LLMRateLimit:               resilience.RateLimitConfig{PerSecond: llmRate, Burst: llmBurst},
		LLMCircuit:                 llmCircuit,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

// loadCircuit reads <PREFIX>_CIRCUIT_{ENABLED,FAILURE_COUNT,OPEN_TIMEOUT,HALF_OPEN_MAX_REQ}.
func loadCircuit(prefix string) (resilience.CircuitBreakerConfig, error) {
	defaults := resilience.DefaultCircuitBreakerConfig()

	enabledKey := prefix + "_CIRCUIT_ENABLED"
	enabled, err := strconv.ParseBool(getEnv(enabledKey, strconv.FormatBool(defaults.Enabled)))
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s: %w", enabledKey, err)
	}

	failureKey := prefix + "_CIRCUIT_FAILURE_COUNT"
	failureCount, err := getEnvAsInt(failureKey, defaults.FailureThreshold)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s: %w", failureKey, err)
	}
	if failureCount < 1 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s must be >= 1", failureKey)
	}

	openTimeout, err := getEnvAsDuration(prefix+"_CIRCUIT_OPEN_TIMEOUT", defaults.OpenTimeout.String())
	if err != nil {
		return resilience.CircuitBreakerConfig{}, err
	}

	halfOpenKey := prefix + "_CIRCUIT_HALF_OPEN_MAX_REQ"
	halfOpenMaxReq, err := getEnvAsInt(halfOpenKey, defaults.HalfOpenMaxReq)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s: %w", halfOpenKey, err)
	}
	if halfOpenMaxReq < 1 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s must be >= 1", halfOpenKey)
	}

	return resilience.CircuitBreakerConfig{
		Enabled:          enabled,
		FailureThreshold: failureCount,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	}, nil
}

func toSportMap(ids map[string]int64) (map[query.Sport]int64, error) {
	out := make(map[query.Sport]int64, len(ids))
	for key, id := range ids {
		sport := query.Sport(strings.ToLower(key))
		if !sport.Valid() {
			return nil, fmt.Errorf("unknown sport %q, expected one of %v", key, query.Sports())
		}
		out[sport] = id
	}
	return out, nil
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

// getEnvAsDuration parses key and rejects non-positive values.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
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

func parseIDMap(raw string) (map[string]int64, error) {
	out := make(map[string]int64)
	parts := strings.Split(raw, ",")
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}

		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("invalid map item %q, expected sport:number", item)
		}

		key := strings.TrimSpace(segments[0])
		if key == "" {
			return nil, fmt.Errorf("empty sport in item %q", item)
		}
		value, err := strconv.ParseInt(strings.TrimSpace(segments[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number in item %q: %w", item, err)
		}
		if value <= 0 {
			return nil, fmt.Errorf("id must be > 0 in item %q", item)
		}

		out[key] = value
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
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
