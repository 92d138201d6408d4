package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/sports-answer/internal/domain/query"
)

var (
	ErrInvalidInput             = errors.New("invalid input")
	ErrModelUnavailable         = errors.New("language model unavailable")
	ErrMalformedModelOutput     = errors.New("malformed model output")
	ErrIncompleteExtraction     = errors.New("incomplete extraction")
	ErrUnsupportedSport         = errors.New("unsupported sport")
	ErrNoGameFound              = errors.New("no game found")
	ErrProviderUnavailable      = errors.New("provider unavailable")
	ErrSummarizationUnavailable = errors.New("summarization unavailable")
	ErrTimeout                  = errors.New("upstream timeout")
)

const KindInternal = "Internal"

// kinds is ordered: a timeout wins over whatever else it was wrapped with.
var kinds = []struct {
	err  error
	code string
}{
	{ErrTimeout, "Timeout"},
	{context.Canceled, "Canceled"},
	{ErrInvalidInput, "InvalidInput"},
	{ErrModelUnavailable, "ModelUnavailable"},
	{ErrMalformedModelOutput, "MalformedModelOutput"},
	{ErrIncompleteExtraction, "IncompleteExtraction"},
	{ErrUnsupportedSport, "UnsupportedSport"},
	{ErrNoGameFound, "NoGameFound"},
	{ErrProviderUnavailable, "ProviderUnavailable"},
	{ErrSummarizationUnavailable, "SummarizationUnavailable"},
}

// Kind returns the short code of the sentinel err wraps, or KindInternal.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.code
		}
	}
	return KindInternal
}

// Stage names the pipeline step an error came from.
type Stage string

const (
	StageExtraction Stage = "extraction"
	StageResolution Stage = "resolution"
	StageLookup     Stage = "lookup"
	StageStats      Stage = "stats"
	StageSummary    Stage = "summary"
)

// StageError carries the entities that were already extracted when a later
// stage failed, so callers can still report them.
type StageError struct {
	Stage    Stage
	Entities *query.Entities
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageError(stage Stage, entities *query.Entities, err error) error {
	if err == nil {
		return nil
	}
	var existing *StageError
	if errors.As(err, &existing) {
		if existing.Entities == nil && entities != nil {
			existing.Entities = entities
		}
		return err
	}
	return &StageError{Stage: stage, Entities: entities, Err: err}
}

// EntitiesFromError returns the entities attached to err, if any.
func EntitiesFromError(err error) (query.Entities, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) && stageErr.Entities != nil {
		return *stageErr.Entities, true
	}
	return query.Entities{}, false
}

// StageOf returns the failing stage recorded on err, or "".
func StageOf(err error) Stage {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage
	}
	return ""
}

// contextError reports the caller's own deadline or cancellation ahead of
// whatever the dependency said about it. It returns nil while ctx is live.
func contextError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: request deadline passed: %v", ErrTimeout, err)
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %v", ctx.Err(), err)
	}
	return nil
}

// providerError makes sure an adapter failure carries a kind.
func providerError(ctx context.Context, op string, err error) error {
	if ctxErr := contextError(ctx, err); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}
	if Kind(err) == KindInternal {
		return fmt.Errorf("%w: %s: %v", ErrProviderUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
