// Package gemini implements llm.Client on Vertex AI Gemini models.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"medreport-backend/internal/llm"
)

// Client calls a Vertex AI generative model.
type Client struct {
	base  *genai.Client
	model string
}

// NewClient creates a Gemini client for the given project, region and model.
func NewClient(ctx context.Context, projectID, region, model string) (*Client, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("gemini: projectID and region are required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("gemini: model is required")
	}

	base, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Client{base: base, model: model}, nil
}

// Generate runs one generation call and returns the concatenated text parts
// of the first candidate.
func (c *Client) Generate(ctx context.Context, input llm.GenerateInput) (string, error) {
	model := c.base.GenerativeModel(c.model)
	if input.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(input.SystemInstruction)},
		}
	}
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     genai.Ptr(input.Temperature),
		MaxOutputTokens: genai.Ptr(input.MaxOutputTokens),
	}

	resp, err := model.GenerateContent(ctx, genai.Text(input.Prompt))
	if err != nil {
		return "", classify(err)
	}

	return responseText(resp), nil
}

// Close releases the underlying client.
func (c *Client) Close() error {
	if c.base != nil {
		return c.base.Close()
	}
	return nil
}

// classify maps provider failures onto the structured llm categories using
// gRPC status codes rather than message substrings.
func classify(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("gemini: generate content: %w", err)
	}
	switch st.Code() {
	case codes.ResourceExhausted:
		return fmt.Errorf("%w: %s", llm.ErrQuotaExhausted, st.Message())
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", llm.ErrInvalidCredentials, st.Message())
	case codes.InvalidArgument, codes.OutOfRange:
		return fmt.Errorf("%w: %s", llm.ErrInputTooLarge, st.Message())
	default:
		return fmt.Errorf("gemini: generate content: %w", err)
	}
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
