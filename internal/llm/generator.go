package llm

import (
	"context"
	"errors"
	"fmt"
)

// Generator is the one capability the pipeline needs from a
// text-generation service: submit a prompt, get text back or a typed
// failure. Everything that talks to a model depends on this interface so
// it can be tested against a deterministic stub.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RetryableError indicates a transient failure (rate limiting, upstream
// 5xx) that is worth retrying. Anything else is a hard failure.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
