package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/sports-answer/internal/platform/logging"
	"github.com/riskibarqy/sports-answer/internal/platform/metrics"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	recorder *metrics.Recorder,
	swaggerEnabled bool,
	corsAllowedOrigins []string,
	requestTimeout time.Duration,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, recorder, swaggerEnabled)
	registerToolRoutes(mux, handler)

	return RequestTracing(RequestID(RequestLogging(logger, recorder, CORS(corsAllowedOrigins, recoverPanic(logger, RequestDeadline(requestTimeout, mux))))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
