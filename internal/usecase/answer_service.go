package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/sports-answer/internal/domain/assistant"
	"github.com/riskibarqy/sports-answer/internal/domain/query"
	"github.com/riskibarqy/sports-answer/internal/platform/logging"
	"github.com/riskibarqy/sports-answer/internal/platform/metrics"
)

// Answer is the full pipeline result. SummaryErr is set when the data was
// fetched but the summary could not be produced; the answer is still usable.
type Answer struct {
	Entities   query.Entities
	Query      query.Resolved
	Scores     json.RawMessage
	Stats      json.RawMessage
	Summary    string
	SummaryErr error
}

type AnswerService struct {
	extractor      *ExtractionService
	data           *GameDataService
	model          assistant.LanguageModel
	summaryEnabled bool
	logger         *logging.Logger
	metrics        *metrics.Recorder
}

func NewAnswerService(
	extractor *ExtractionService,
	data *GameDataService,
	model assistant.LanguageModel,
	summaryEnabled bool,
	logger *logging.Logger,
	recorder *metrics.Recorder,
) *AnswerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AnswerService{
		extractor:      extractor,
		data:           data,
		model:          model,
		summaryEnabled: summaryEnabled,
		logger:         logger,
		metrics:        recorder,
	}
}

// Answer runs extraction, lookup and summarization for one question.
func (s *AnswerService) Answer(ctx context.Context, text string) (Answer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnswerService.Answer")
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	entities, err := s.extractor.Extract(ctx, text)
	if err != nil {
		err = stageError(StageExtraction, nil, err)
		return Answer{}, err
	}
	if !entities.Complete() {
		err = stageError(StageExtraction, &entities, fmt.Errorf("%w: need sport, team and when", ErrIncompleteExtraction))
		return Answer{}, err
	}

	data, err := s.data.TeamGameStats(ctx, entities)
	if err != nil {
		return Answer{}, err
	}

	out := Answer{
		Entities: entities,
		Query:    data.Query,
		Scores:   data.Scores,
		Stats:    data.Stats,
	}
	if !s.summaryEnabled {
		return out, nil
	}

	out.Summary, out.SummaryErr = s.Summarize(ctx, text, entities, data)
	if out.SummaryErr != nil {
		s.logger.WarnContext(ctx, "summary unavailable, returning data only",
			"sport", entities.Sport,
			"team", entities.Team,
			"error", out.SummaryErr,
		)
	}
	return out, nil
}

// Summarize turns scores and stats into a short analyst-style answer. Any
// failure, including an empty reply, is ErrSummarizationUnavailable.
func (s *AnswerService) Summarize(ctx context.Context, question string, entities query.Entities, data GameData) (summary string, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnswerService.Summarize")
	started := time.Now()
	defer func() {
		observeStage(s.metrics, StageSummary, started, err)
		endUsecaseSpan(span, err)
	}()

	reply, err := s.model.Complete(ctx, summaryRequest(question, entities, data.Scores, data.Stats))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummarizationUnavailable, err)
	}

	summary = strings.TrimSpace(reply)
	if summary == "" {
		return "", fmt.Errorf("%w: model returned empty text", ErrSummarizationUnavailable)
	}
	return summary, nil
}
