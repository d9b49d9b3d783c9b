package handler

import (
	"context"
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/iamvkosarev/prompt-form/internal/model"
	"github.com/iamvkosarev/prompt-form/internal/usecase"
	"go.uber.org/zap"
	"net/http"
)

type GenerationService interface {
	Generate(ctx context.Context, prompt *string) (*string, error)
}

type GatewayHandler struct {
	gateway GenerationService
	logger  *zap.Logger
}

func NewGatewayHandler(gateway GenerationService, logger *zap.Logger) *GatewayHandler {
	return &GatewayHandler{
		gateway: gateway,
		logger:  logger.Named("GatewayHandler"),
	}
}

func (h *GatewayHandler) RegisterRoutes(router gin.IRouter) {
	router.POST(PathGenerateResponse, h.handleGenerateResponse)
}

func (h *GatewayHandler) handleGenerateResponse(c *gin.Context) {
	var req model.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// unreadable bodies are treated as a missing prompt
		h.logger.Debug("Failed to decode prompt request", zap.Error(err))
		req.Prompt = nil
	}

	text, err := h.gateway.Generate(c.Request.Context(), req.Prompt)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, model.Success(text))
	case errors.Is(err, usecase.ErrAPIKeyNotConfigured):
		c.JSON(http.StatusInternalServerError, model.Failure(usecase.MessageAPIKeyNotConfigured))
	case errors.Is(err, usecase.ErrNoPrompt):
		c.JSON(http.StatusBadRequest, model.Failure(usecase.MessageNoPromptGiven))
	default:
		c.JSON(http.StatusInternalServerError, model.Failure(usecase.MessageRequestFailed))
	}
}
