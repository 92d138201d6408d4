package httpapi

import (
	"net/http"

	"github.com/riskibarqy/sports-answer/internal/platform/metrics"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, recorder *metrics.Recorder, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.Handle("GET /metrics", recorder.Handler())
	mux.HandleFunc("/", handler.Fallback)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerToolRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/extract", handler.Extract)
	mux.HandleFunc("POST /api/stats", handler.Stats)
	mux.HandleFunc("POST /api/answer", handler.Answer)
}
