package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"strings"
	"time"
)

type OpenAI struct {
	// OpenAIAPIKey is optional at startup: a missing key fails requests, not the process.
	OpenAIAPIKey   string        `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
	OpenAIModel    string        `yaml:"openai_model" env:"OPENAI_MODEL" env-default:"gpt-3.5-turbo-instruct"`
	OpenAIBaseURL  string        `yaml:"openai_base_url" env:"OPENAI_BASE_URL" env-default:"https://api.openai.com"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"OPENAI_REQUEST_TIMEOUT" env-default:"60s"`
	// CountPromptTokens enables tiktoken prompt size estimates in logs and metrics.
	CountPromptTokens bool `yaml:"count_prompt_tokens" env:"OPENAI_COUNT_PROMPT_TOKENS" env-default:"true"`
}

func (o OpenAI) APIKeyConfigured() bool {
	return strings.TrimSpace(o.OpenAIAPIKey) != ""
}

type HTTP struct {
	Addr            string        `yaml:"addr" env:"HTTP_ADDR" env-default:":3000"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-separator:","`
}

type Log struct {
	Level    string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
}

type Config struct {
	OpenAI OpenAI `yaml:"openai"`
	HTTP   HTTP   `yaml:"http"`
	Log    Log    `yaml:"log"`
}

// LoadConfig reads the optional YAML file at cfgPath and then the process
// environment, which takes precedence.
func LoadConfig(cfgPath string) (*Config, error) {
	var cfg Config
	if cfgPath != "" {
		if err := cleanenv.ReadConfig(cfgPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgPath, err)
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}
	return &cfg, nil
}
