// Package analysis generates the per-chapter prose review. Failures here
// are never fatal to a run: once segmentation has succeeded, a chapter
// whose analysis cannot be produced gets placeholder error text instead.
package analysis

import (
	"context"
	"fmt"
	"time"

	retry "github.com/avast/retry-go/v4"

	"github.com/wesleyflorence/bookchat/internal/llm"
	"github.com/wesleyflorence/bookchat/internal/segment"
)

// ScratchpadLimit caps how much of the previous analysis is threaded into
// the next chapter's prompt.
const ScratchpadLimit = 1000

// DefaultMaxAttempts bounds the backoff loop around transient failures.
const DefaultMaxAttempts = 5

// Analyzer produces chapter analyses and answers questions about them.
// Retry policy lives here, wrapped around the Generator — the
// segmentation core upstream has no retry behavior of its own.
type Analyzer struct {
	gen         llm.Generator
	maxAttempts uint
	retryDelay  time.Duration
}

func NewAnalyzer(gen llm.Generator, maxAttempts int) *Analyzer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Analyzer{
		gen:         gen,
		maxAttempts: uint(maxAttempts),
		retryDelay:  1 * time.Second,
	}
}

// AnalyzeChapter generates the analysis for one chapter, retrying
// transient failures with bounded exponential backoff. The returned text
// is always usable as chapter content: when retries are exhausted or the
// service fails hard, it is placeholder error text and the error is
// returned alongside so the caller can record the failure.
func (a *Analyzer) AnalyzeChapter(ctx context.Context, ch segment.ChapterRange, scratchpad string) (string, error) {
	prompt := buildAnalysisPrompt(ch, scratchpad)

	var out string
	err := retry.Do(
		func() error {
			text, err := a.gen.Generate(ctx, prompt)
			if err != nil {
				return err
			}
			out = text
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(a.maxAttempts),
		retry.Delay(a.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.MaxDelay(30*time.Second),
		retry.RetryIf(llm.IsRetryable),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if llm.IsRetryable(err) {
			return fmt.Sprintf("Error: Unable to analyze chapter due to rate limiting. Please try again later.\n\nChapter: %s", ch.Title), err
		}
		return fmt.Sprintf("Error: An unexpected error occurred while analyzing the chapter.\n\nChapter: %s\nError: %s", ch.Title, err), err
	}
	return out, nil
}

// AnswerQuestion answers a user question about one chapter. A single
// call, no retry; failures are converted to error text.
func (a *Analyzer) AnswerQuestion(ctx context.Context, ch segment.ChapterRange, question string) (string, error) {
	answer, err := a.gen.Generate(ctx, buildQuestionPrompt(ch, question))
	if err != nil {
		return fmt.Sprintf("Error: An error occurred while answering the question. Error: %s", err), err
	}
	return answer, nil
}

// NextScratchpad returns the tail of an analysis to carry into the next
// chapter's prompt. The scratchpad is an explicit value threaded through
// each call, not shared state.
func NextScratchpad(analysis string) string {
	runes := []rune(analysis)
	if len(runes) <= ScratchpadLimit {
		return analysis
	}
	return string(runes[len(runes)-ScratchpadLimit:])
}
