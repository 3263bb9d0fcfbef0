package handler

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/pipeline"
	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/ai"
)

// TranscriptFetcher pulls a completed transcript as raw JSON by id
type TranscriptFetcher interface {
	GetTranscriptJSON(ctx context.Context, transcriptID string) ([]byte, error)
}

// TextStore writes artifacts into the pipeline bucket
type TextStore interface {
	PutText(ctx context.Context, key, content string) error
}

// transcribeNotification is the webhook body the transcription provider posts
type transcribeNotification struct {
	TranscriptID string `json:"transcript_id"`
	Status       string `json:"status"`
}

// TranscribeWebhookHandler receives completion webhooks from the transcription
// provider. The submitting stage encodes the audio key into the webhook URL's
// "object" query parameter so the completed transcript can be filed under the
// same call id and scheduled time.
type TranscribeWebhookHandler struct {
	store       TextStore
	transcripts TranscriptFetcher
	secret      string
	logger      *zap.Logger
}

// NewTranscribeWebhookHandler creates a new handler
func NewTranscribeWebhookHandler(store TextStore, transcripts TranscriptFetcher, secret string, logger *zap.Logger) *TranscribeWebhookHandler {
	return &TranscribeWebhookHandler{store: store, transcripts: transcripts, secret: secret, logger: logger}
}

// HandleTranscribeWebhook archives the completed transcript JSON
func (h *TranscribeWebhookHandler) HandleTranscribeWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if !h.authorized(c, body) {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var notification transcribeNotification
	if err := json.Unmarshal(body, &notification); err != nil || notification.TranscriptID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if notification.Status != "completed" {
		if h.logger != nil {
			h.logger.Warn("transcription did not complete",
				zap.String("transcript_id", notification.TranscriptID),
				zap.String("status", notification.Status))
		}
		return HandleSuccess(h.logger, c, map[string]interface{}{"status": "ignored"})
	}

	info, err := pipeline.ParseKey(c.QueryParam("object"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("object query parameter is not an artifact key"))
	}

	ctx := c.Request().Context()
	transcript, err := h.transcripts.GetTranscriptJSON(ctx, notification.TranscriptID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrTranscriptionFailed(err))
	}

	outputKey := info.WithPrefix(pipeline.PrefixRawTranscript).WithExt("json").Key()
	if err := h.store.PutText(ctx, outputKey, string(transcript)); err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("put transcript", err))
	}

	if h.logger != nil {
		h.logger.Info("transcript archived",
			zap.String("transcript_id", notification.TranscriptID),
			zap.String("key", outputKey))
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"status": "ok"})
}

// authorized accepts either the provider's HMAC signature header or the raw
// shared secret in the Authorization header, matching how the provider can be
// configured to authenticate webhooks.
func (h *TranscribeWebhookHandler) authorized(c echo.Context, body []byte) bool {
	if h.secret == "" {
		return true
	}
	if signature := c.Request().Header.Get("x-assemblyai-signature"); signature != "" {
		return ai.VerifyHMAC(h.secret, body, signature)
	}
	auth := c.Request().Header.Get("Authorization")
	return subtle.ConstantTimeCompare([]byte(auth), []byte(h.secret)) == 1
}
