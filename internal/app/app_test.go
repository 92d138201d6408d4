package app

import (
	"testing"
	"time"

	"github.com/riskibarqy/sports-answer/internal/config"
	"github.com/riskibarqy/sports-answer/internal/domain/query"
	"github.com/riskibarqy/sports-answer/internal/platform/logging"
	"github.com/riskibarqy/sports-answer/internal/platform/metrics"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		Timezone:           "America/Chicago",
		CORSAllowedOrigins: []string{"*"},
		APISportsKey:       "key",
		APISportsTimeout:   time.Second,
		LeagueIDBySport:    map[query.Sport]int64{query.SportNBA: 12},
		LLMAccountID:       "acct",
		LLMAPIToken:        "token",
		LLMTimeout:         time.Second,
		SummaryEnabled:     true,
	}
}

func TestNewHTTPServer_Wires(t *testing.T) {
	srv, err := NewHTTPServer(testConfig(), logging.NewNop(), metrics.New())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	if srv.Handler == nil || srv.Addr != ":0" {
		t.Fatalf("unexpected server: %+v", srv)
	}
}

func TestNewServices_RejectsBadTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Timezone = "Nowhere/Special"

	if _, err := NewServices(cfg, nil, nil); err == nil {
		t.Fatalf("expected timezone error")
	}
}

func TestNewServices_RequiresModelLocation(t *testing.T) {
	cfg := testConfig()
	cfg.LLMAccountID = ""
	cfg.LLMBaseURL = ""

	if _, err := NewServices(cfg, nil, nil); err == nil {
		t.Fatalf("expected language model client error")
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPAddr = ""

	if _, err := NewHTTPServer(cfg, nil, nil); err == nil {
		t.Fatalf("expected addr error")
	}
}
