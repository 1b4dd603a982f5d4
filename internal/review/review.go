// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package review turns paper records into a structured literature review by
// calling a language-model backend. The backend is treated as an untrusted
// text generator: every reply passes through ValidatedGenerate before the
// rest of the program sees it.
package review

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/pkg/types"
)

var (
	// ErrNoReview is the uniform failure of Summarize. Callers only need
	// errors.Is(err, ErrNoReview); the wrapped cause is for diagnostics.
	ErrNoReview = errors.New("no review produced")

	// ErrNoContent means there were no records to summarize.
	ErrNoContent = errors.New("no content to summarize")

	// ErrBackendUnavailable means no backend is configured.
	ErrBackendUnavailable = errors.New("language-model backend unavailable")

	// ErrValidation means the backend reply failed schema or struct checks.
	ErrValidation = errors.New("response failed validation")
)

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// Generator produces LiteratureReviews. A nil Backend is allowed and makes
// every Summarize call fail with ErrBackendUnavailable.
type Generator struct {
	backend    Backend
	maxRetries int
	logger     *zap.Logger
}

// NewGenerator returns a Generator. maxRetries is the number of extra
// attempts after a failed call; 0 means a single attempt.
func NewGenerator(backend Backend, maxRetries int, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{backend: backend, maxRetries: max(maxRetries, 0), logger: logger}
}

// Summarize asks the backend for a review of records. The returned review's
// Topic is topic verbatim and it has one summary per record, in order. On
// any failure the error wraps ErrNoReview and the cause is logged.
func (g *Generator) Summarize(ctx context.Context, records []types.PaperRecord, topic string) (types.LiteratureReview, error) {
	review, err := g.summarize(ctx, records, topic)
	if err != nil {
		g.logger.Warn("review generation failed",
			zap.String("topic", topic),
			zap.String("cause", failureCause(err)),
			zap.Error(err))
		return types.LiteratureReview{}, fmt.Errorf("%w: %w", ErrNoReview, err)
	}
	return review, nil
}

func (g *Generator) summarize(ctx context.Context, records []types.PaperRecord, topic string) (types.LiteratureReview, error) {
	if len(records) == 0 {
		return types.LiteratureReview{}, ErrNoContent
	}
	if g.backend == nil {
		return types.LiteratureReview{}, ErrBackendUnavailable
	}

	req, err := buildRequest(records, topic)
	if err != nil {
		return types.LiteratureReview{}, fmt.Errorf("rendering prompt: %w", err)
	}

	g.logger.Info("generating review",
		zap.String("backend", g.backend.Name()),
		zap.Int("papers", len(records)))

	review, err := g.callWithRetry(ctx, req, len(records))
	if err != nil {
		return types.LiteratureReview{}, err
	}

	if review.Topic != topic {
		g.logger.Debug("replacing model topic with requested topic",
			zap.String("model_topic", review.Topic))
		review.Topic = topic
	}
	return review, nil
}

// callWithRetry runs one validated generation plus up to maxRetries more
// with exponential backoff. A reply whose summary count differs from the
// record count counts as a validation failure.
func (g *Generator) callWithRetry(ctx context.Context, req Request, want int) (types.LiteratureReview, error) {
	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			g.logger.Info("retrying review generation",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return types.LiteratureReview{}, ctx.Err()
			case <-time.After(backoff):
			}
		}

		review, err := ValidatedGenerate[types.LiteratureReview](ctx, g.backend, req)
		if err == nil && len(review.IndividualSummaries) != want {
			err = fmt.Errorf("%w: got %d paper summaries for %d papers",
				ErrValidation, len(review.IndividualSummaries), want)
		}
		if err == nil {
			return review, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	if g.maxRetries > 0 {
		return types.LiteratureReview{}, fmt.Errorf("after %d retries: %w", g.maxRetries, lastErr)
	}
	return types.LiteratureReview{}, lastErr
}

// failureCause names the failure class for logs.
func failureCause(err error) string {
	switch {
	case errors.Is(err, ErrNoContent):
		return "no_content"
	case errors.Is(err, ErrBackendUnavailable):
		return "backend_unavailable"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "backend_call"
	}
}
