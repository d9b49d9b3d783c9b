package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/iamvkosarev/prompt-form/internal/model"
	"go.uber.org/zap"
	"net/http"
	"net/url"
	"sync"
)

const (
	CaptionIdle    = "Submit Prompt"
	CaptionLoading = "Loading..."

	MessageRequestFailed = "Request failed. Please try again."

	EndpointGenerateResponse = "/api/generate-response"
)

var (
	ErrSubmitInFlight = errors.New("submit already in flight")
	ErrTransport      = errors.New("gateway request failed")
)

// State is a snapshot of the form.
type State struct {
	Prompt  string
	Loading bool
	Result  *model.GenerationResult
}

func (s State) SubmitCaption() string {
	if s.Loading {
		return CaptionLoading
	}
	return CaptionIdle
}

// Display is what the result area shows; empty until a result arrives.
func (s State) Display() string {
	if s.Result == nil {
		return ""
	}
	return s.Result.Display()
}

type FormControllerDeps struct {
	HTTPClient *http.Client
	Logger     *zap.Logger
	// OnChange, when set, receives a snapshot after every state transition.
	OnChange func(State)
}

// FormController holds the prompt form state and submits prompts to the
// completion gateway. Only one submit may be in flight at a time.
type FormController struct {
	FormControllerDeps
	endpoint string

	mu    sync.Mutex
	state State
}

func NewFormController(gatewayURL string, deps FormControllerDeps) (*FormController, error) {
	endpoint, err := url.JoinPath(gatewayURL, EndpointGenerateResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway endpoint: %w", err)
	}
	if deps.HTTPClient == nil {
		deps.HTTPClient = http.DefaultClient
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &FormController{
		FormControllerDeps: deps,
		endpoint:           endpoint,
	}, nil
}

func (f *FormController) SetPrompt(prompt string) {
	f.mu.Lock()
	f.state.Prompt = prompt
	snapshot := f.state
	f.mu.Unlock()
	f.notify(snapshot)
}

func (f *FormController) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *FormController) SubmitCaption() string {
	return f.State().SubmitCaption()
}

// SubmitDisabled reports whether the submit control is disabled.
func (f *FormController) SubmitDisabled() bool {
	return f.State().Loading
}

func (f *FormController) Display() string {
	return f.State().Display()
}

// Submit sends the current prompt and stores the reply as the last result.
// Gateway errors arrive as failed results with a nil error. When the gateway
// cannot be reached or answers with something unreadable, the stored result
// carries MessageRequestFailed and the returned error wraps ErrTransport.
func (f *FormController) Submit(ctx context.Context) (model.GenerationResult, error) {
	f.mu.Lock()
	if f.state.Loading {
		f.mu.Unlock()
		return model.GenerationResult{}, ErrSubmitInFlight
	}
	f.state.Loading = true
	prompt := f.state.Prompt
	snapshot := f.state
	f.mu.Unlock()
	f.notify(snapshot)

	result, err := f.send(ctx, prompt)
	if err != nil {
		f.Logger.Error("Error submitting prompt", zap.Error(err))
		result = model.Failure(MessageRequestFailed)
		err = fmt.Errorf("%w: %w", ErrTransport, err)
	}

	f.mu.Lock()
	f.state.Result = &result
	f.state.Loading = false
	snapshot = f.state
	f.mu.Unlock()
	f.notify(snapshot)

	return result, err
}

func (f *FormController) send(ctx context.Context, prompt string) (model.GenerationResult, error) {
	body, err := json.Marshal(model.PromptRequest{Prompt: &prompt})
	if err != nil {
		return model.GenerationResult{}, fmt.Errorf("failed to marshal prompt: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return model.GenerationResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return model.GenerationResult{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var result model.GenerationResult
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return model.GenerationResult{}, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK && result.Error == nil {
		return model.GenerationResult{}, fmt.Errorf("unexpected status %d without error payload", resp.StatusCode)
	}
	if result.Error != nil {
		result.Result = nil
	}
	return result, nil
}

func (f *FormController) notify(snapshot State) {
	if f.OnChange != nil {
		f.OnChange(snapshot)
	}
}
