package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

// BatchResult is the outcome of one question in AnswerAll.
type BatchResult struct {
	Question   string
	Answer     Answer
	Err        error
	DurationMs int64
}

// AnswerAll answers questions on a bounded worker pool. Results are returned
// in input order; a failed question never aborts the others.
func (s *AnswerService) AnswerAll(ctx context.Context, questions []string, workerCount int) ([]BatchResult, error) {
	if len(questions) == 0 {
		return nil, nil
	}
	workerCount = min(max(workerCount, 1), len(questions))

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]BatchResult, len(questions))
	var workers sync.WaitGroup
	for i, question := range questions {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			answer, err := s.Answer(ctx, question)
			results[i] = BatchResult{
				Question:   question,
				Answer:     answer,
				Err:        err,
				DurationMs: time.Since(start).Milliseconds(),
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit question to worker pool: %w", err)
		}
	}
	workers.Wait()

	return results, nil
}
