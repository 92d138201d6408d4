package httpapi

import (
	"context"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/sports-answer/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "sports-answer"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain   string `json:"domain"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

// mappedError separates the code reported in the body from the transport
// status. Pipeline failures are answered with 200 and an error body; only
// request-shape problems and internal faults change the HTTP status.
type mappedError struct {
	Code       int
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

// writeError reports err. Entities carried by the error are echoed under
// data.entities so callers can see what the question was understood as.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	var data any
	if entities, ok := usecase.EntitiesFromError(err); ok {
		data = errorDataDTO{Entities: entitiesToDTO(entities)}
	}
	writeErrorWithData(ctx, w, err, data)
}

func writeErrorWithData(ctx context.Context, w http.ResponseWriter, err error, data any) {
	mapped := mapError(ctx, err)
	if mapped.HTTPStatus == http.StatusInternalServerError {
		writeInternalError(ctx, w)
		return
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
		Error: &googleErrorBody{
			Code:    mapped.Code,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:   errorDomain,
					Reason:   mapped.Reason,
					Message:  err.Error(),
					Location: string(usecase.StageOf(err)),
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch usecase.Kind(err) {
	case "Timeout":
		return domainError(http.StatusGatewayTimeout, "timeout", "DEADLINE_EXCEEDED")
	case "Canceled":
		return domainError(499, "requestCanceled", "CANCELLED")
	case "InvalidInput":
		return mappedError{
			Code:       http.StatusBadRequest,
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case "ModelUnavailable":
		return domainError(http.StatusServiceUnavailable, "modelUnavailable", "UNAVAILABLE")
	case "MalformedModelOutput":
		return domainError(http.StatusBadGateway, "malformedModelOutput", "INTERNAL")
	case "IncompleteExtraction":
		return domainError(http.StatusUnprocessableEntity, "incompleteExtraction", "FAILED_PRECONDITION")
	case "UnsupportedSport":
		return domainError(http.StatusBadRequest, "unsupportedSport", "INVALID_ARGUMENT")
	case "NoGameFound":
		return domainError(http.StatusNotFound, "noGameFound", "NOT_FOUND")
	case "ProviderUnavailable":
		return domainError(http.StatusServiceUnavailable, "providerUnavailable", "UNAVAILABLE")
	case "SummarizationUnavailable":
		return domainError(http.StatusServiceUnavailable, "summarizationUnavailable", "UNAVAILABLE")
	default:
		return mappedError{
			Code:       http.StatusInternalServerError,
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}

func domainError(code int, reason, status string) mappedError {
	return mappedError{
		Code:       code,
		HTTPStatus: http.StatusOK,
		Reason:     reason,
		Status:     status,
	}
}
