package usecase

import (
	"context"
	"errors"
	"fmt"
	"github.com/iamvkosarev/prompt-form/config"
	"github.com/iamvkosarev/prompt-form/internal/model"
	"github.com/sashabaranov/go-openai"
	"net/url"
)

var ErrProviderFailed = errors.New("provider request failed")

// ProviderError describes a failed completion call. StatusCode and Body are
// set when the provider answered; otherwise only Message is. Type and Code
// carry the provider's own error classification when it sent one.
type ProviderError struct {
	StatusCode int
	Body       string
	Type       string
	Code       string
	Message    string
}

func (e *ProviderError) Error() string {
	if e.HasResponse() {
		return fmt.Sprintf("provider responded with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("error with OpenAI API request: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return ErrProviderFailed
}

func (e *ProviderError) HasResponse() bool {
	return e.StatusCode != 0
}

type OpenAIUsecase struct {
	cfg    config.OpenAI
	client *openai.Client
}

func NewOpenAIUsecase(cfg config.OpenAI) (*OpenAIUsecase, error) {
	baseURL, err := url.JoinPath(cfg.OpenAIBaseURL, "/v1")
	if err != nil {
		return nil, fmt.Errorf("failed to build openai base url: %w", err)
	}
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	clientConfig.BaseURL = baseURL

	return &OpenAIUsecase{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// Complete sends one completion request. The returned text is nil when the
// provider produced no choice or an empty one. Errors are *ProviderError.
func (o *OpenAIUsecase) Complete(ctx context.Context, req model.GenerationRequest) (*string, error) {
	resp, err := o.client.CreateCompletion(
		ctx, openai.CompletionRequest{
			Model:            req.Model,
			Prompt:           req.Prompt,
			Temperature:      req.Temperature,
			MaxTokens:        req.MaxTokens,
			FrequencyPenalty: req.FrequencyPenalty,
			PresencePenalty:  req.PresencePenalty,
		},
	)
	if err != nil {
		return nil, toProviderError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Text == "" {
		return nil, nil
	}
	text := resp.Choices[0].Text
	return &text, nil
}

func toProviderError(err error) *ProviderError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		providerErr := &ProviderError{
			StatusCode: apiErr.HTTPStatusCode,
			Body:       apiErr.Message,
			Type:       apiErr.Type,
			Message:    apiErr.Error(),
		}
		if apiErr.Code != nil {
			providerErr.Code = fmt.Sprint(apiErr.Code)
		}
		return providerErr
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		body := string(reqErr.Body)
		if body == "" {
			body = reqErr.Error()
		}
		return &ProviderError{
			StatusCode: reqErr.HTTPStatusCode,
			Body:       body,
			Message:    reqErr.Error(),
		}
	}
	return &ProviderError{Message: err.Error()}
}
