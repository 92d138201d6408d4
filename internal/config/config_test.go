package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/sports-answer/internal/domain/query"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APISPORTS_KEY", "key-123")
	t.Setenv("LLM_BASE_URL", "https://llm.example.test/ai/v1")
	t.Setenv("LLM_API_TOKEN", "token-123")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	setRequired(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_RequiresProviderCredentials(t *testing.T) {
	tests := map[string]string{
		"APISPORTS_KEY": "",
		"LLM_API_TOKEN": "",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error when %s is empty", key)
			}
		})
	}

	t.Run("llm location", func(t *testing.T) {
		setRequired(t)
		t.Setenv("LLM_BASE_URL", "")
		t.Setenv("CLOUDFLARE_ACCOUNT_ID", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error without LLM_BASE_URL or CLOUDFLARE_ACCOUNT_ID")
		}

		t.Setenv("CLOUDFLARE_ACCOUNT_ID", "acct-1")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.LLMAccountID != "acct-1" {
			t.Fatalf("unexpected LLMAccountID: %q", cfg.LLMAccountID)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Timezone != "America/Chicago" {
		t.Fatalf("unexpected Timezone: %q", cfg.Timezone)
	}
	if cfg.APISportsMaxRetries != 0 {
		t.Fatalf("expected no provider retries by default, got %d", cfg.APISportsMaxRetries)
	}
	want := map[query.Sport]int64{query.SportNFL: 1, query.SportNCAAF: 2, query.SportNBA: 12}
	for sport, id := range want {
		if cfg.LeagueIDBySport[sport] != id {
			t.Fatalf("unexpected league id for %s: %d", sport, cfg.LeagueIDBySport[sport])
		}
	}
	if cfg.LLMModel != "@cf/meta/llama-3.3-70b-instruct-fp8-fast" {
		t.Fatalf("unexpected LLMModel: %q", cfg.LLMModel)
	}
	if !cfg.SummaryEnabled || !cfg.SwaggerEnabled {
		t.Fatalf("expected summary and swagger enabled in dev")
	}
	if !cfg.APISportsCircuit.Enabled || cfg.APISportsCircuit.FailureThreshold != 5 {
		t.Fatalf("unexpected provider circuit: %+v", cfg.APISportsCircuit)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		setRequired(t)
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})
}

func TestLoad_CircuitAndRateOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("LLM_CIRCUIT_ENABLED", "false")
	t.Setenv("APISPORTS_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("APISPORTS_CIRCUIT_OPEN_TIMEOUT", "45s")
	t.Setenv("LLM_RATE_PER_SEC", "0.5")
	t.Setenv("LLM_BURST", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LLMCircuit.Enabled {
		t.Fatalf("expected LLM circuit disabled")
	}
	if cfg.APISportsCircuit.FailureThreshold != 3 || cfg.APISportsCircuit.OpenTimeout != 45*time.Second {
		t.Fatalf("unexpected provider circuit: %+v", cfg.APISportsCircuit)
	}
	if cfg.LLMRateLimit.PerSecond != 0.5 || cfg.LLMRateLimit.Burst != 2 {
		t.Fatalf("unexpected rate limit: %+v", cfg.LLMRateLimit)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"APISPORTS_TIMEOUT":               "-1s",
		"APISPORTS_MAX_RETRIES":           "-2",
		"APISPORTS_CIRCUIT_FAILURE_COUNT": "0",
		"APISPORTS_LEAGUE_ID_MAP":         "mlb:1",
		"LLM_BURST":                       "0",
		"LLM_TIMEOUT":                     "soon",
		"SUMMARY_ENABLED":                 "maybe",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoad_RequestTimeoutFitsUnderWriteTimeout(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	budget := 2*cfg.LLMTimeout + 2*cfg.APISportsTimeout
	if cfg.RequestTimeout < budget {
		t.Fatalf("default request timeout %s is below one full answer (%s)", cfg.RequestTimeout, budget)
	}
	if cfg.RequestTimeout >= cfg.WriteTimeout {
		t.Fatalf("request timeout %s must stay under write timeout %s", cfg.RequestTimeout, cfg.WriteTimeout)
	}

	t.Setenv("APP_WRITE_TIMEOUT", "45s")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when the request deadline outlives the write timeout")
	}
}

func TestParseIDMap(t *testing.T) {
	t.Parallel()

	got, err := parseIDMap(" nfl:1 , ncaaf:2,,nba:12 ")
	if err != nil {
		t.Fatalf("parse id map: %v", err)
	}
	if len(got) != 3 || got["nba"] != 12 {
		t.Fatalf("unexpected map: %v", got)
	}

	for _, raw := range []string{"nfl", "nfl:x", ":3", "nba:0"} {
		if _, err := parseIDMap(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
