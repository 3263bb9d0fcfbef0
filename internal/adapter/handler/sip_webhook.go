package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/callcontrol"
)

// SIPWebhookHandler receives call lifecycle events from the telephony platform.
// The platform executes the returned action list verbatim, so the reply is the
// raw wire schema rather than the API's response envelope.
type SIPWebhookHandler struct {
	calls  *callcontrol.Handler
	logger *zap.Logger
}

// NewSIPWebhookHandler creates a new handler
func NewSIPWebhookHandler(calls *callcontrol.Handler, logger *zap.Logger) *SIPWebhookHandler {
	return &SIPWebhookHandler{calls: calls, logger: logger}
}

// HandleSIPEvent processes one call-control webhook invocation
func (h *SIPWebhookHandler) HandleSIPEvent(c echo.Context) error {
	var event entities.SIPMediaApplicationEvent
	if err := c.Bind(&event); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if h.logger != nil {
		h.logger.Info("sip event received",
			zap.String("event", string(event.InvocationEventType)),
			zap.String("transaction_id", event.CallDetails.TransactionID))
	}

	return c.JSON(http.StatusOK, h.calls.Handle(&event))
}
