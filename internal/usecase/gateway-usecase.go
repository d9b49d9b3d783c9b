package usecase

import (
	"context"
	"errors"
	"fmt"
	"github.com/iamvkosarev/prompt-form/config"
	"github.com/iamvkosarev/prompt-form/internal/model"
	"go.uber.org/zap"
	"time"
)

const (
	MessageAPIKeyNotConfigured = "OpenAI API key not configured."
	MessageNoPromptGiven       = "No prompt given"
	MessageRequestFailed       = "An error occurred during your request."
)

var (
	ErrAPIKeyNotConfigured = errors.New("openai api key not configured")
	ErrNoPrompt            = errors.New("no prompt given")
)

type CompletionProvider interface {
	Complete(ctx context.Context, req model.GenerationRequest) (*string, error)
}

// TokenCounter estimates prompt size for logs and metrics only.
type TokenCounter func(text, model string) (int, error)

type GatewayUsecaseDeps struct {
	Provider     CompletionProvider
	Logger       *zap.Logger
	TokenCounter TokenCounter
}

type GatewayUsecase struct {
	GatewayUsecaseDeps
	cfg config.OpenAI
}

func NewGatewayUsecase(deps GatewayUsecaseDeps, cfg config.OpenAI) *GatewayUsecase {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &GatewayUsecase{
		GatewayUsecaseDeps: deps,
		cfg:                cfg,
	}
}

// Generate validates prompt and forwards it to the provider. It returns
// ErrAPIKeyNotConfigured, ErrNoPrompt or an error wrapping ErrProviderFailed;
// the provider is only called when the first two checks pass.
func (g *GatewayUsecase) Generate(ctx context.Context, prompt *string) (*string, error) {
	if !g.cfg.APIKeyConfigured() {
		gatewayRequestsTotal.WithLabelValues(outcomeMisconfigured).Inc()
		g.Logger.Error("OpenAI API key not configured")
		return nil, ErrAPIKeyNotConfigured
	}

	if prompt == nil || *prompt == "" {
		gatewayRequestsTotal.WithLabelValues(outcomeNoPrompt).Inc()
		return nil, ErrNoPrompt
	}

	log := g.Logger.With(
		zap.String("model", g.cfg.OpenAIModel),
		zap.Int("prompt_len", len(*prompt)),
	)

	if g.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.RequestTimeout)
		defer cancel()
	}

	// counting only feeds logs and metrics, the request never waits for it
	go g.observePromptTokens(log, *prompt)

	startTime := time.Now()
	text, err := g.Provider.Complete(ctx, model.NewGenerationRequest(g.cfg.OpenAIModel, *prompt))
	duration := time.Since(startTime)

	if err != nil {
		var providerErr *ProviderError
		switch {
		case errors.As(err, &providerErr) && providerErr.HasResponse():
			log.Error(
				"OpenAI API responded with error",
				zap.Int("status", providerErr.StatusCode),
				zap.String("body", providerErr.Body),
				zap.String("type", providerErr.Type),
				zap.String("code", providerErr.Code),
				zap.Duration("duration", duration),
			)
		default:
			log.Error("Error with OpenAI API request", zap.Error(err), zap.Duration("duration", duration))
		}
		providerRequestDuration.WithLabelValues(g.cfg.OpenAIModel, statusError).Observe(duration.Seconds())
		gatewayRequestsTotal.WithLabelValues(outcomeProviderError).Inc()
		if errors.Is(err, ErrProviderFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrProviderFailed, err)
	}

	providerRequestDuration.WithLabelValues(g.cfg.OpenAIModel, statusSuccess).Observe(duration.Seconds())
	gatewayRequestsTotal.WithLabelValues(outcomeSuccess).Inc()
	log.Info("Completion received", zap.Duration("duration", duration), zap.Bool("empty", text == nil))
	return text, nil
}

func (g *GatewayUsecase) observePromptTokens(log *zap.Logger, prompt string) {
	if g.TokenCounter == nil {
		return
	}
	tokens, err := g.TokenCounter(prompt, g.cfg.OpenAIModel)
	if err != nil {
		log.Warn("Failed to count prompt tokens", zap.Error(err))
		return
	}
	promptTokens.WithLabelValues(g.cfg.OpenAIModel).Observe(float64(tokens))
	log.Debug("Prompt tokens counted", zap.Int("prompt_tokens", tokens))
}
