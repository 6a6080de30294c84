package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/fathom-relay/errors"
	"github.com/johnquangdev/fathom-relay/internal/adapter/dto/common"
	"github.com/johnquangdev/fathom-relay/internal/usecase/intake"
)

// WebhookHandler handles inbound webhooks from the transcription provider
// and the chat service
type WebhookHandler struct {
	svc    intake.Service
	logger *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(svc intake.Service, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{svc: svc, logger: logger}
}

// HandleFathomWebhook receives call-completion events
// @Summary      Fathom call webhook
// @Description  Deduplicates a call-completion event, summarizes its transcript and posts it to chat
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  common.StatusResponse
// @Failure      400  {object}  common.ErrorResponse
// @Failure      500  {object}  common.ErrorResponse
// @Router       /webhook/fathom [post]
func (h *WebhookHandler) HandleFathomWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}

	// Downstream calls run to completion even if the provider disconnects.
	ctx := context.WithoutCancel(c.Request().Context())

	out, err := h.svc.Handle(ctx, body)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, common.StatusResponse{
		Status:   string(out.Status),
		Analysis: out.Analysis,
		Message:  out.Message,
	})
}

// HandleSlackWebhook acknowledges Slack interactive callbacks
// @Summary      Slack interactivity webhook
// @Tags         Webhooks
// @Produce      json
// @Success      200  {object}  common.StatusResponse
// @Router       /webhook/slack [post]
func (h *WebhookHandler) HandleSlackWebhook(c echo.Context) error {
	return c.JSON(http.StatusOK, common.StatusResponse{Status: "ok"})
}
