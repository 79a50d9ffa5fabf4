// Package analysis turns extracted medical text into a patient-friendly
// explanation via the generation service.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"medreport-backend/internal/llm"
)

const (
	// minTextChars is the minimum trimmed length worth sending downstream.
	minTextChars = 10

	// maxTextChars caps the input sent to the model. Roughly 15,000
	// characters ~ 4,000 tokens; larger inputs risk provider-side failures.
	maxTextChars = 15000

	truncationMarker = "\n...[Text truncated due to length]"

	temperature     = 0.3
	maxOutputTokens = 2048
)

// Fixed user-facing outcomes. Degraded provider states return these as normal
// results, not errors.
const (
	MsgInsufficientText = "Unable to analyze: insufficient text extracted from the document."
	MsgNoOutput         = "AI analysis could not be generated. Please try again or consult your healthcare provider."
	MsgQuotaExhausted   = "Service temporarily unavailable due to high demand. Please try again in a few moments."
	MsgConfigError      = "API configuration error. Please contact support."
	MsgTooLarge         = "Document is too large to analyze. Please try a shorter document or split it into sections."
)

const systemInstruction = `You are a medical AI assistant helping patients understand their medical reports and prescriptions.

IMPORTANT DISCLAIMER: You must always include this in your response:
"⚠️ This is an AI-generated analysis for informational purposes only. It is NOT medical advice. Always consult with your healthcare provider for proper interpretation and clinical decisions."

Your role is to help patients understand their medical documents, not to diagnose or prescribe treatment.`

const promptTemplate = `Analyze the following medical text and provide a clear, patient-friendly explanation that includes:

1. **Document Type**: Identify if this is a lab report, prescription, radiology report, etc.
2. **Key Findings**: List the main test results, medications, or findings
3. **Normal vs Abnormal**: Highlight any values that are outside normal ranges (if applicable)
4. **Simple Explanation**: Explain what these results mean in simple, non-technical language
5. **Recommendations**: Suggest next steps (e.g., "discuss with your doctor", "this appears normal")

Medical Text:
%s

Remember to include the important disclaimer at the end of your analysis.`

// Analyzer generates patient-friendly explanations of extracted text.
type Analyzer struct {
	LLM llm.Client
}

// New constructs an Analyzer.
func New(client llm.Client) *Analyzer {
	return &Analyzer{LLM: client}
}

// Analyze sends the extracted text to the model. Inputs under ten trimmed
// characters short-circuit to a fixed message without a provider call; inputs
// over the size cap are truncated with a visible marker before sending.
// Recognized provider degradations (quota, credentials, input size) come back
// as fixed messages with a nil error.
func (a *Analyzer) Analyze(ctx context.Context, text string) (string, error) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minTextChars {
		return MsgInsufficientText, nil
	}

	// Both limits count characters, not bytes, so multi-byte scripts are
	// measured the same as Latin text and truncation never splits a rune.
	if utf8.RuneCountInString(text) > maxTextChars {
		text = string([]rune(text)[:maxTextChars]) + truncationMarker
	}

	out, err := a.LLM.Generate(ctx, llm.GenerateInput{
		SystemInstruction: systemInstruction,
		Prompt:            fmt.Sprintf(promptTemplate, text),
		Temperature:       temperature,
		MaxOutputTokens:   maxOutputTokens,
	})
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrQuotaExhausted):
			return MsgQuotaExhausted, nil
		case errors.Is(err, llm.ErrInvalidCredentials):
			return MsgConfigError, nil
		case errors.Is(err, llm.ErrInputTooLarge):
			return MsgTooLarge, nil
		default:
			return "", fmt.Errorf("analyze medical text: %w", err)
		}
	}

	if out == "" {
		return MsgNoOutput, nil
	}
	return out, nil
}
