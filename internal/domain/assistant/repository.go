package assistant

import "context"

// LanguageModel returns the text of the model's reply to a prompt.
type LanguageModel interface {
	Complete(ctx context.Context, req Request) (string, error)
}
