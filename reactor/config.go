package reactor

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMaxIterations bounds the number of thought/action/observation cycles
// in one run.
const DefaultMaxIterations = 10

// Config holds all agent construction options. There is no process-wide
// configuration state; everything an Agent or Reactor needs is passed here.
type Config struct {
	// SystemPrompt seeds the transcript. Empty means DefaultSystemPrompt
	// for a Reactor and no system message for a bare Agent.
	SystemPrompt string `yaml:"system_prompt"`

	// Model is the model identifier sent with every completion request.
	Model string `yaml:"model"`

	// Provider routes requests in the llm client ("openai", "anthropic").
	// Empty lets the client resolve by default provider or model catalog.
	Provider string `yaml:"provider"`

	// MaxIterations bounds the reasoning loop. Zero means DefaultMaxIterations.
	MaxIterations int `yaml:"max_iterations"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`

	// ToolOutputLimits caps tool result size (characters) per tool name
	// before the result enters the transcript.
	ToolOutputLimits map[string]int `yaml:"tool_output_limits"`

	// ToolLineLimits caps tool result size (lines) per tool name.
	ToolLineLimits map[string]int `yaml:"tool_line_limits"`

	// Tools are registered on the agent's registry in order.
	Tools []ToolDefinition `yaml:"-"`
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() Config {
	return Config{
		Model:         "gpt-4o-mini",
		MaxIterations: DefaultMaxIterations,
		LogLevel:      "info",
	}
}

// LoadConfig reads a YAML config file and overlays it on DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SlogLevel maps the configured log level to a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
