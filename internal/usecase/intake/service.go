package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/fathom-relay/errors"
	"github.com/johnquangdev/fathom-relay/internal/domain/entities"
	"github.com/johnquangdev/fathom-relay/internal/infrastructure/metrics"
	pkgvalidator "github.com/johnquangdev/fathom-relay/pkg/validator"
)

// Status is the outcome reported back to the webhook provider
type Status string

const (
	StatusSuccess            Status = "success"
	StatusIgnored            Status = "ignored"
	StatusDuplicate          Status = "duplicate"
	StatusNotificationFailed Status = "notification_failed"
)

// MessageNotificationFailed accompanies StatusNotificationFailed
const MessageNotificationFailed = "Failed to post to chat"

// Outcome is the result of handling one delivery
type Outcome struct {
	Status   Status
	Analysis *entities.AnalysisResult
	Message  string
}

// ProcessedSet records call ids that already reached the notifier
type ProcessedSet interface {
	CheckAndMark(id string) bool
	Unmark(id string)
	Len() int
}

// Analyzer summarizes a transcript without failing
type Analyzer interface {
	Summarize(ctx context.Context, transcript string) entities.AnalysisResult
}

// Notifier delivers a call notification and reports success
type Notifier interface {
	Notify(ctx context.Context, call entities.CallEvent, analysis entities.AnalysisResult) bool
}

// Validator validates decoded payloads
type Validator interface {
	Validate(i interface{}) error
}

// Options selects deployment policies
type Options struct {
	// RequireTranscript rejects completions without transcript text
	RequireTranscript bool
	// RollbackOnFailure un-marks a call whose notification failed
	RollbackOnFailure bool
}

// Service handles call-completion webhooks: validation, deduplication,
// analysis and notification.
type Service interface {
	Handle(ctx context.Context, body []byte) (*Outcome, error)
}

type intakeService struct {
	processed ProcessedSet
	analyzer  Analyzer
	notifier  Notifier
	validator Validator
	opts      Options
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewService constructs the intake service. analyzer may be nil, in which
// case every call is notified with a "not configured" analysis.
func NewService(
	processed ProcessedSet,
	analyzer Analyzer,
	notifier Notifier,
	validator Validator,
	opts Options,
	logger *zap.Logger,
	m *metrics.Metrics,
) Service {
	if validator == nil {
		validator = pkgvalidator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &intakeService{
		processed: processed,
		analyzer:  analyzer,
		notifier:  notifier,
		validator: validator,
		opts:      opts,
		logger:    logger,
		metrics:   m,
	}
}

// Handle processes one raw webhook body. Returned errors are
// errors.AppError values carrying their HTTP status; anything else is an
// internal fault.
func (s *intakeService) Handle(ctx context.Context, body []byte) (*Outcome, error) {
	p, err := s.parse(body)
	if err != nil {
		s.metrics.ObserveWebhook("rejected")
		return nil, err
	}

	if p.ignored() {
		s.logger.Info("ignoring webhook event", zap.String("event", *p.Event))
		s.metrics.ObserveWebhook(string(StatusIgnored))
		return &Outcome{Status: StatusIgnored}, nil
	}

	if err := s.validate(p); err != nil {
		s.metrics.ObserveWebhook("rejected")
		return nil, err
	}

	call := p.normalize()

	if s.opts.RequireTranscript && !call.HasTranscript() {
		s.logger.Warn("no transcript in payload", zap.String("call_id", call.CallID))
		s.metrics.ObserveWebhook("rejected")
		return nil, errors.ErrMissingTranscript(call.CallID)
	}

	if !s.processed.CheckAndMark(call.CallID) {
		s.logger.Info("duplicate webhook delivery", zap.String("call_id", call.CallID))
		s.metrics.ObserveWebhook(string(StatusDuplicate))
		return &Outcome{Status: StatusDuplicate}, nil
	}
	s.metrics.SetProcessed(s.processed.Len())

	s.logger.Info("call webhook received",
		zap.String("event", call.Event),
		zap.String("call_id", call.CallID),
		zap.String("title", call.Title),
		zap.String("date", call.Date),
		zap.Int("duration_min", call.DurationMinutes()),
		zap.Strings("participants", call.Participants),
		zap.Int("transcript_chars", len(call.Transcript)),
	)

	analysis := s.analyze(ctx, call)

	if !s.notifier.Notify(ctx, call, analysis) {
		if s.opts.RollbackOnFailure {
			s.processed.Unmark(call.CallID)
			s.metrics.SetProcessed(s.processed.Len())
		}
		s.logger.Warn("chat notification failed",
			zap.String("call_id", call.CallID),
			zap.Bool("rolled_back", s.opts.RollbackOnFailure),
		)
		s.metrics.ObserveWebhook(string(StatusNotificationFailed))
		return &Outcome{
			Status:   StatusNotificationFailed,
			Analysis: &analysis,
			Message:  MessageNotificationFailed,
		}, nil
	}

	s.metrics.ObserveWebhook(string(StatusSuccess))
	return &Outcome{Status: StatusSuccess, Analysis: &analysis}, nil
}

func (s *intakeService) parse(body []byte) (*payload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, errors.ErrEmptyPayload()
	}

	var p payload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, errors.ErrInvalidPayload(err)
	}
	return &p, nil
}

func (s *intakeService) validate(p *payload) error {
	err := s.validator.Validate(p)
	if err == nil {
		return nil
	}

	fields := pkgvalidator.FieldErrors(err)
	if fields == nil {
		return errors.ErrInternal(fmt.Errorf("validate payload: %w", err))
	}
	if _, missing := fields["call_id"]; missing {
		return errors.ErrMissingCallID()
	}
	return errors.ErrInvalidArgument(pkgvalidator.Describe(err))
}

func (s *intakeService) analyze(ctx context.Context, call entities.CallEvent) entities.AnalysisResult {
	if s.analyzer == nil {
		return entities.DegradedAnalysis(entities.SummaryNotConfigured)
	}
	return s.analyzer.Summarize(ctx, call.Transcript).Normalize()
}
