package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/sports-answer/external/apisports"
	"github.com/riskibarqy/sports-answer/external/workersai"
	"github.com/riskibarqy/sports-answer/internal/config"
	"github.com/riskibarqy/sports-answer/internal/domain/schedule"
	"github.com/riskibarqy/sports-answer/internal/interfaces/httpapi"
	"github.com/riskibarqy/sports-answer/internal/platform/logging"
	"github.com/riskibarqy/sports-answer/internal/platform/metrics"
	"github.com/riskibarqy/sports-answer/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Services is the wired pipeline shared by the API server and the ask CLI.
type Services struct {
	Extraction *usecase.ExtractionService
	GameData   *usecase.GameDataService
	Answers    *usecase.AnswerService
}

func NewServices(cfg config.Config, logger *logging.Logger, recorder *metrics.Recorder) (Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	calendar, err := schedule.NewCalendar(cfg.Timezone, nil)
	if err != nil {
		return Services{}, err
	}

	outbound := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	sportsClient := apisports.NewClient(apisports.ClientConfig{
		HTTPClient:        outbound,
		BasketballBaseURL: cfg.APISportsBasketballBaseURL,
		FootballBaseURL:   cfg.APISportsFootballBaseURL,
		APIKey:            cfg.APISportsKey,
		Timeout:           cfg.APISportsTimeout,
		MaxRetries:        cfg.APISportsMaxRetries,
		Logger:            logger,
		Metrics:           recorder,
		CircuitBreaker:    cfg.APISportsCircuit,
	})

	model, err := workersai.NewClient(workersai.ClientConfig{
		HTTPClient:     outbound,
		BaseURL:        cfg.LLMBaseURL,
		AccountID:      cfg.LLMAccountID,
		APIToken:       cfg.LLMAPIToken,
		Model:          cfg.LLMModel,
		Timeout:        cfg.LLMTimeout,
		RateLimit:      cfg.LLMRateLimit,
		CircuitBreaker: cfg.LLMCircuit,
		Logger:         logger,
		Metrics:        recorder,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build language model client: %w", err)
	}

	extraction := usecase.NewExtractionService(model, logger, recorder)
	gameData := usecase.NewGameDataService(sportsClient, sportsClient, calendar, cfg.LeagueIDBySport, logger, recorder)
	answers := usecase.NewAnswerService(extraction, gameData, model, cfg.SummaryEnabled, logger, recorder)

	return Services{
		Extraction: extraction,
		GameData:   gameData,
		Answers:    answers,
	}, nil
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger, recorder *metrics.Recorder) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	services, err := NewServices(cfg, logger, recorder)
	if err != nil {
		return nil, err
	}

	handler := httpapi.NewHandler(services.Extraction, services.GameData, services.Answers, logger)
	router := httpapi.NewRouter(handler, logger, recorder, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.RequestTimeout)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
