package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/fathom-relay/internal/domain/entities"
	"github.com/johnquangdev/fathom-relay/internal/infrastructure/external/slack"
	"github.com/johnquangdev/fathom-relay/internal/infrastructure/metrics"
)

// ChatClient delivers a rendered message to the chat backend
type ChatClient interface {
	Configured() bool
	Mode() string
	Post(ctx context.Context, msg slack.Message) (string, error)
}

// Service sends call notifications. Notify never returns an error or
// panics: it reports delivery as a boolean.
type Service interface {
	Notify(ctx context.Context, call entities.CallEvent, analysis entities.AnalysisResult) bool
	Configured() bool
}

type notifyService struct {
	client  ChatClient
	timeout time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewService creates a notifier. An unconfigured client turns Notify into a
// logged no-op that reports success.
func NewService(client ChatClient, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &notifyService{
		client:  client,
		timeout: timeout,
		logger:  logger,
		metrics: m,
	}
}

func (s *notifyService) Configured() bool {
	return s.client != nil && s.client.Configured()
}

func (s *notifyService) Notify(ctx context.Context, call entities.CallEvent, analysis entities.AnalysisResult) (ok bool) {
	if !s.Configured() {
		s.logger.Warn("chat delivery not configured, skipping notification",
			zap.String("call_id", call.CallID),
			zap.String("title", call.Title),
		)
		s.metrics.ObserveNotification("skipped")
		return true
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("chat notification panicked",
				zap.String("call_id", call.CallID),
				zap.String("panic", fmt.Sprint(r)),
				zap.Stack("stack"),
			)
			s.metrics.ObserveNotification("failed")
			ok = false
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ts, err := s.client.Post(ctx, BuildMessage(call, analysis))
	if err != nil {
		s.logger.Error("chat notification failed",
			zap.String("call_id", call.CallID),
			zap.String("mode", s.client.Mode()),
			zap.Error(err),
		)
		s.metrics.ObserveNotification("failed")
		return false
	}

	s.logger.Info("posted call notification",
		zap.String("call_id", call.CallID),
		zap.String("mode", s.client.Mode()),
		zap.String("ts", ts),
	)
	s.metrics.ObserveNotification("sent")
	return true
}
