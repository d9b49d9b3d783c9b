package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/iamvkosarev/prompt-form/config"
	"github.com/iamvkosarev/prompt-form/internal/model"
	"github.com/iamvkosarev/prompt-form/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newFakeProvider serves /v1/completions with handler and returns an
// OpenAIUsecase pointed at it.
func newFakeProvider(t *testing.T, handler http.HandlerFunc) *usecase.OpenAIUsecase {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/completions", handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	openAI, err := usecase.NewOpenAIUsecase(
		config.OpenAI{
			OpenAIAPIKey:  "sk-test",
			OpenAIModel:   testModel,
			OpenAIBaseURL: server.URL,
		},
	)
	require.NoError(t, err)
	return openAI
}

func writeCompletion(w http.ResponseWriter, texts ...string) {
	choices := make([]map[string]any, 0, len(texts))
	for i, text := range texts {
		choices = append(choices, map[string]any{"text": text, "index": i, "finish_reason": "stop"})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(
		map[string]any{
			"id":      "cmpl-1",
			"object":  "text_completion",
			"model":   testModel,
			"choices": choices,
		},
	)
}

func TestOpenAIUsecase_Complete_Success(t *testing.T) {
	var body map[string]any
	var authHeader string
	openAI := newFakeProvider(
		t, func(w http.ResponseWriter, r *http.Request) {
			authHeader = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			writeCompletion(w, "Hello there!", "ignored")
		},
	)

	text, err := openAI.Complete(context.Background(), model.NewGenerationRequest(testModel, "Say hello"))

	require.NoError(t, err)
	require.NotNil(t, text)
	assert.Equal(t, "Hello there!", *text)

	assert.Equal(t, "Bearer sk-test", authHeader)
	assert.Equal(t, testModel, body["model"])
	assert.Equal(t, "Say hello", body["prompt"])
	assert.InDelta(t, 0.6, body["temperature"], 1e-6)
	assert.EqualValues(t, 2048, body["max_tokens"])
	assert.InDelta(t, 0.5, body["frequency_penalty"], 1e-6)
	if presence, ok := body["presence_penalty"]; ok {
		assert.EqualValues(t, 0, presence)
	}
}

func TestOpenAIUsecase_Complete_EmptyChoices(t *testing.T) {
	for name, texts := range map[string][]string{
		"no choices": nil,
		"empty text": {""},
	} {
		t.Run(name, func(t *testing.T) {
			openAI := newFakeProvider(
				t, func(w http.ResponseWriter, r *http.Request) {
					writeCompletion(w, texts...)
				},
			)

			text, err := openAI.Complete(context.Background(), model.NewGenerationRequest(testModel, "Say hello"))

			require.NoError(t, err)
			assert.Nil(t, text)
		})
	}
}

func TestOpenAIUsecase_Complete_APIError(t *testing.T) {
	openAI := newFakeProvider(
		t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`))
		},
	)

	text, err := openAI.Complete(context.Background(), model.NewGenerationRequest(testModel, "Say hello"))

	assert.Nil(t, text)
	var providerErr *usecase.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.True(t, providerErr.HasResponse())
	assert.Equal(t, http.StatusTooManyRequests, providerErr.StatusCode)
	assert.Equal(t, "You exceeded your current quota", providerErr.Body)
	assert.Equal(t, "insufficient_quota", providerErr.Type)
	assert.Equal(t, "insufficient_quota", providerErr.Code)
	assert.ErrorIs(t, err, usecase.ErrProviderFailed)
}

func TestOpenAIUsecase_Complete_APIErrorNumericCode(t *testing.T) {
	openAI := newFakeProvider(
		t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"message":"Overloaded","type":"server_error","code":503}}`))
		},
	)

	_, err := openAI.Complete(context.Background(), model.NewGenerationRequest(testModel, "Say hello"))

	var providerErr *usecase.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, "server_error", providerErr.Type)
	assert.Equal(t, "503", providerErr.Code)
}

func TestOpenAIUsecase_Complete_NonJSONError(t *testing.T) {
	openAI := newFakeProvider(
		t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream boom"))
		},
	)

	_, err := openAI.Complete(context.Background(), model.NewGenerationRequest(testModel, "Say hello"))

	var providerErr *usecase.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, http.StatusBadGateway, providerErr.StatusCode)
	assert.Contains(t, providerErr.Body, "upstream boom")
}

func TestOpenAIUsecase_Complete_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	openAI, err := usecase.NewOpenAIUsecase(
		config.OpenAI{OpenAIAPIKey: "sk-test", OpenAIModel: testModel, OpenAIBaseURL: baseURL},
	)
	require.NoError(t, err)

	_, err = openAI.Complete(context.Background(), model.NewGenerationRequest(testModel, "Say hello"))

	var providerErr *usecase.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.False(t, providerErr.HasResponse())
	assert.NotEmpty(t, providerErr.Message)
	assert.Contains(t, providerErr.Error(), "error with OpenAI API request")
}

func TestProviderError_Error(t *testing.T) {
	withResponse := &usecase.ProviderError{StatusCode: 500, Body: "internal"}
	assert.Equal(t, "provider responded with status 500: internal", withResponse.Error())

	withoutResponse := &usecase.ProviderError{Message: "timeout"}
	assert.Equal(t, "error with OpenAI API request: timeout", withoutResponse.Error())
}
