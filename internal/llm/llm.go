// Package llm abstracts the text-generation service behind a narrow client
// interface with structured failure categories.
package llm

import (
	"context"
	"errors"
)

// GenerateInput captures a single generation call.
type GenerateInput struct {
	SystemInstruction string
	Prompt            string
	Temperature       float32
	MaxOutputTokens   int32
}

// Client abstracts generation providers.
type Client interface {
	// Generate returns the model's text output. An empty string with a nil
	// error means the model produced no text. Provider failures are mapped
	// to the category sentinel errors below where recognizable.
	Generate(ctx context.Context, input GenerateInput) (string, error)
}

// Category sentinel errors. Callers branch on these with errors.Is instead of
// matching substrings of provider messages.
var (
	// ErrQuotaExhausted covers quota and rate-limit failures.
	ErrQuotaExhausted = errors.New("generation quota exhausted")

	// ErrInvalidCredentials covers rejected or misconfigured API credentials.
	ErrInvalidCredentials = errors.New("invalid generation credentials")

	// ErrInputTooLarge covers token and input-length failures.
	ErrInputTooLarge = errors.New("generation input too large")
)
