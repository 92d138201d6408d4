package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/sports-answer/internal/domain/assistant"
	"github.com/riskibarqy/sports-answer/internal/domain/query"
	"github.com/riskibarqy/sports-answer/internal/platform/logging"
	"github.com/riskibarqy/sports-answer/internal/platform/metrics"
)

type ExtractionService struct {
	model   assistant.LanguageModel
	logger  *logging.Logger
	metrics *metrics.Recorder
}

func NewExtractionService(model assistant.LanguageModel, logger *logging.Logger, recorder *metrics.Recorder) *ExtractionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ExtractionService{
		model:   model,
		logger:  logger,
		metrics: recorder,
	}
}

// Extract asks the model for {sport, team, when} and normalizes the reply.
// The result may still lack a team; callers that need one check Complete.
func (s *ExtractionService) Extract(ctx context.Context, text string) (entities query.Entities, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExtractionService.Extract")
	started := time.Now()
	defer func() {
		observeStage(s.metrics, StageExtraction, started, err)
		endUsecaseSpan(span, err)
	}()

	text = strings.TrimSpace(text)
	if text == "" {
		return query.Entities{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	reply, err := s.model.Complete(ctx, extractionRequest(text))
	if err != nil {
		if ctxErr := contextError(ctx, err); ctxErr != nil {
			err = ctxErr
		} else if Kind(err) == KindInternal {
			err = fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		}
		return query.Entities{}, fmt.Errorf("extract entities: %w", err)
	}

	entities, err = parseEntities(reply)
	if err != nil {
		s.logger.WarnContext(ctx, "model returned unusable extraction", "reply", abbreviate(reply, 200), "error", err)
		return query.Entities{}, err
	}

	s.logger.DebugContext(ctx, "entities extracted",
		"sport", entities.Sport,
		"team", entities.Team,
		"when", entities.When,
	)
	return entities, nil
}

// parseEntities decodes a JSON object reply. Fields that are absent or not
// strings count as empty before normalization.
func parseEntities(reply string) (query.Entities, error) {
	body := trimCodeFence(reply)
	if body == "" {
		return query.Entities{}, fmt.Errorf("%w: empty reply", ErrMalformedModelOutput)
	}

	var fields map[string]any
	if err := sonic.UnmarshalString(body, &fields); err != nil {
		return query.Entities{}, fmt.Errorf("%w: %v", ErrMalformedModelOutput, err)
	}
	if fields == nil {
		return query.Entities{}, fmt.Errorf("%w: reply is not a JSON object", ErrMalformedModelOutput)
	}

	return query.NormalizeFields(
		stringField(fields, "sport"),
		stringField(fields, "team"),
		stringField(fields, "when"),
	), nil
}

func stringField(fields map[string]any, key string) string {
	value, _ := fields[key].(string)
	return value
}

// trimCodeFence strips a ```json ... ``` wrapper some models add despite
// JSON mode.
func trimCodeFence(reply string) string {
	body := strings.TrimSpace(reply)
	if !strings.HasPrefix(body, "```") {
		return body
	}
	body = strings.TrimPrefix(body, "```")
	if idx := strings.IndexByte(body, '\n'); idx >= 0 && !strings.HasPrefix(strings.TrimSpace(body[:idx]), "{") {
		body = body[idx+1:]
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}

func abbreviate(text string, limit int) string {
	text = strings.TrimSpace(text)
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
