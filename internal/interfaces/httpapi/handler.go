package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/sports-answer/internal/domain/query"
	"github.com/riskibarqy/sports-answer/internal/platform/logging"
	"github.com/riskibarqy/sports-answer/internal/usecase"
)

// maxBodyBytes caps inbound JSON payloads.
const maxBodyBytes = 64 << 10

type Handler struct {
	extractionService *usecase.ExtractionService
	gameDataService   *usecase.GameDataService
	answerService     *usecase.AnswerService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	extractionService *usecase.ExtractionService,
	gameDataService *usecase.GameDataService,
	answerService *usecase.AnswerService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		extractionService: extractionService,
		gameDataService:   gameDataService,
		answerService:     answerService,
		logger:            logger,
		validator:         validator.New(),
	}
}

type messageRequest struct {
	Message string `json:"message" validate:"required"`
}

type statsRequest struct {
	Sport string `json:"sport" validate:"required"`
	Team  string `json:"team" validate:"required"`
	When  string `json:"when" validate:"omitempty"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Fallback answers every unmatched path or method with a plain "ok".
func (h *Handler) Fallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Extract")
	defer span.End()

	var req messageRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entities, err := h.extractionService.Extract(ctx, req.Message)
	if err != nil {
		h.logger.WarnContext(ctx, "extract entities failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entitiesToDTO(entities))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Stats")
	defer span.End()

	var req statsRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	// Unknown sports are kept as sent so they surface as unsupported
	// instead of falling back to the default league.
	sport, _ := query.ParseSport(req.Sport)
	entities := query.Entities{
		Sport: sport,
		Team:  strings.ToLower(strings.TrimSpace(req.Team)),
		When:  query.NormalizeWhen(req.When),
	}

	data, err := h.gameDataService.TeamGameStats(ctx, entities)
	if err != nil {
		h.logger.WarnContext(ctx, "team game stats failed",
			"sport", entities.Sport,
			"team", entities.Team,
			"when", entities.When,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsResponseDTO{
		Entities: entitiesToDTO(entities),
		Query:    resolvedToDTO(data.Query),
		GameID:   data.Game.ID,
		Scores:   data.Scores,
		Stats:    data.Stats,
	})
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Answer")
	defer span.End()

	var req messageRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	answer, err := h.answerService.Answer(ctx, req.Message)
	if err != nil {
		h.logger.WarnContext(ctx, "answer question failed", "stage", usecase.StageOf(err), "error", err)
		writeError(ctx, w, err)
		return
	}

	payload := answerResponseDTO{
		Entities: entitiesToDTO(answer.Entities),
		Query:    resolvedToDTO(answer.Query),
		Scores:   answer.Scores,
		Stats:    answer.Stats,
		Summary:  answer.Summary,
	}
	if answer.SummaryErr != nil {
		writeErrorWithData(ctx, w, answer.SummaryErr, payload)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, payload)
}

func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
