package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// ApplyOptions folds the option list into an Options struct with the shared
// defaults. Providers layer their own defaults on top afterwards.
func ApplyOptions(opts []Option) *Options {
	options := &Options{Temperature: 0.7}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// LLMProvider defines the contract for any LLM backend. The assistant uses it
// for two jobs: paraphrasing docstrings into explanations and (optionally)
// classifying intent.
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
