package analysis

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/fathom-relay/internal/domain/entities"
	"github.com/johnquangdev/fathom-relay/internal/infrastructure/metrics"
	pkgai "github.com/johnquangdev/fathom-relay/pkg/ai"
)

// Sentinel summaries for degraded results
const (
	SummaryNotConfigured = entities.SummaryNotConfigured
	SummaryNoTranscript  = "No transcript provided"
	summaryFailedPrefix  = "Analysis failed: "
)

// Completer sends one prompt to a language model and returns its text
type Completer interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service summarizes transcripts. Summarize never fails: every problem is
// reported through a degraded AnalysisResult.
type Service interface {
	Summarize(ctx context.Context, transcript string) entities.AnalysisResult
	Configured() bool
}

// Options bounds the outbound provider call
type Options struct {
	// Timeout applies to the whole call including retries
	Timeout time.Duration
	// RetryMaxElapsed is the backoff budget for transient failures; zero
	// disables retries
	RetryMaxElapsed      time.Duration
	RetryInitialInterval time.Duration
}

type analysisService struct {
	completer Completer
	parser    *Parser
	opts      Options
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewService constructs the analyzer. A nil completer yields an analyzer
// that always returns the "not configured" result.
func NewService(completer Completer, opts Options, logger *zap.Logger, m *metrics.Metrics) Service {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryInitialInterval <= 0 {
		opts.RetryInitialInterval = 500 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &analysisService{
		completer: completer,
		parser:    NewParser(),
		opts:      opts,
		logger:    logger,
		metrics:   m,
	}
}

func (s *analysisService) Configured() bool {
	return s.completer != nil
}

func (s *analysisService) Summarize(ctx context.Context, transcript string) (result entities.AnalysisResult) {
	if s.completer == nil {
		s.metrics.ObserveAnalysis("none", "unconfigured")
		return entities.DegradedAnalysis(SummaryNotConfigured)
	}
	provider := s.completer.Name()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("analysis panicked", zap.String("panic", fmt.Sprint(r)), zap.Stack("stack"))
			result = s.degrade(provider, fmt.Errorf("panic: %v", r))
		}
	}()

	if strings.TrimSpace(transcript) == "" {
		s.metrics.ObserveAnalysis(provider, "skipped")
		return entities.DegradedAnalysis(SummaryNoTranscript)
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	started := time.Now()
	text, err := s.complete(ctx, BuildPrompt(transcript))
	if err != nil {
		return s.degrade(provider, err)
	}

	result, err = s.parser.ParseAnalysis(text)
	if err != nil {
		return s.degrade(provider, err)
	}

	s.metrics.ObserveAnalysis(provider, "ok")
	s.logger.Info("analysis complete",
		zap.String("provider", provider),
		zap.Int("action_items", len(result.ActionItems)),
		zap.Int("topics", len(result.Topics)),
		zap.Duration("took", time.Since(started)),
	)
	return result
}

func (s *analysisService) degrade(provider string, err error) entities.AnalysisResult {
	s.metrics.ObserveAnalysis(provider, "failed")
	s.logger.Error("analysis failed", zap.String("provider", provider), zap.Error(err))
	return entities.DegradedAnalysis(summaryFailedPrefix + err.Error())
}

// complete calls the provider, retrying transient failures with exponential
// backoff inside the caller's deadline
func (s *analysisService) complete(ctx context.Context, prompt string) (string, error) {
	if s.opts.RetryMaxElapsed <= 0 {
		return s.completer.Complete(ctx, prompt)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.opts.RetryInitialInterval
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = s.opts.RetryMaxElapsed

	var text string
	attempt := 0
	op := func() error {
		attempt++
		out, err := s.completer.Complete(ctx, prompt)
		if err != nil {
			if !retryable(err) {
				return backoff.Permanent(err)
			}
			s.logger.Warn("analysis provider call failed, retrying",
				zap.String("provider", s.completer.Name()),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}
		text = out
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("after %d attempt(s): %w", attempt, err)
	}
	return text, nil
}

func retryable(err error) bool {
	if stdErrors.Is(err, context.DeadlineExceeded) || stdErrors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *pkgai.StatusError
	if stdErrors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	var netErr net.Error
	return stdErrors.As(err, &netErr)
}
