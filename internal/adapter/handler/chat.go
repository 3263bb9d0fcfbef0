package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	chatdto "github.com/meeting-summarizer-team/meeting-summarizer/internal/adapter/dto/chat"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/knowledgebase"
)

// Retriever answers free-text questions over ingested meeting content
type Retriever interface {
	RetrieveAndGenerate(ctx context.Context, question string) (*knowledgebase.Answer, error)
}

// ChatHandler exposes the knowledge base question endpoint
type ChatHandler struct {
	retriever Retriever
	logger    *zap.Logger
}

// NewChatHandler creates a new handler
func NewChatHandler(retriever Retriever, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{retriever: retriever, logger: logger}
}

// RetrieveAndGenerate answers one question with citations
// @Summary Ask a question over past meetings
// @Tags chat
// @Accept json
// @Produce json
// @Param request body chat.RetrieveAndGenerateRequest true "question"
// @Success 200 {object} knowledgebase.Answer
// @Router /v1/retrieveAndGenerate [post]
func (h *ChatHandler) RetrieveAndGenerate(c echo.Context) error {
	var req chatdto.RetrieveAndGenerateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	answer, err := h.retriever.RetrieveAndGenerate(c.Request().Context(), req.InputText)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, answer)
}
