package model

// Generation parameters sent with every completion request. They are not
// exposed to callers.
const (
	GenerationTemperature      = float32(0.6)
	GenerationMaxTokens        = 2048
	GenerationFrequencyPenalty = float32(0.5)
	GenerationPresencePenalty  = float32(0)
)

// PromptRequest is the body accepted by the completion endpoint. A nil Prompt
// means the field was absent or null.
type PromptRequest struct {
	Prompt *string `json:"prompt"`
}

type GenerationRequest struct {
	Model            string
	Prompt           string
	Temperature      float32
	MaxTokens        int
	FrequencyPenalty float32
	PresencePenalty  float32
}

func NewGenerationRequest(model, prompt string) GenerationRequest {
	return GenerationRequest{
		Model:            model,
		Prompt:           prompt,
		Temperature:      GenerationTemperature,
		MaxTokens:        GenerationMaxTokens,
		FrequencyPenalty: GenerationFrequencyPenalty,
		PresencePenalty:  GenerationPresencePenalty,
	}
}

type ResponseError struct {
	Message string `json:"message"`
}

// GenerationResult is either a success (Error is nil, Result may be nil) or a
// failure (Error set, Result nil). Build it with Success or Failure.
type GenerationResult struct {
	Result *string        `json:"result"`
	Error  *ResponseError `json:"error"`
}

func Success(text *string) GenerationResult {
	return GenerationResult{Result: text}
}

func Failure(message string) GenerationResult {
	return GenerationResult{Error: &ResponseError{Message: message}}
}

func (r GenerationResult) Failed() bool {
	return r.Error != nil
}

// Display returns the generated text for a success and the error message for
// a failure.
func (r GenerationResult) Display() string {
	if r.Error != nil {
		return r.Error.Message
	}
	if r.Result != nil {
		return *r.Result
	}
	return ""
}
