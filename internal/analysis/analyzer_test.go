package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"medreport-backend/internal/llm"
)

type fakeLLM struct {
	out   string
	err   error
	calls int
	last  llm.GenerateInput
}

func (f *fakeLLM) Generate(ctx context.Context, input llm.GenerateInput) (string, error) {
	f.calls++
	f.last = input
	return f.out, f.err
}

func TestAnalyzeInsufficientText(t *testing.T) {
	client := &fakeLLM{out: "should not be used"}
	a := New(client)

	got, err := a.Analyze(context.Background(), "  short  ")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got != MsgInsufficientText {
		t.Fatalf("expected insufficient-text message, got %q", got)
	}
	if client.calls != 0 {
		t.Fatalf("generation service must not be invoked, got %d calls", client.calls)
	}
}

func TestAnalyzeTruncatesLongText(t *testing.T) {
	client := &fakeLLM{out: "fine"}
	a := New(client)

	long := strings.Repeat("x", maxTextChars+500)
	if _, err := a.Analyze(context.Background(), long); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("expected one generation call, got %d", client.calls)
	}

	wantBody := long[:maxTextChars] + truncationMarker
	if !strings.Contains(client.last.Prompt, wantBody) {
		t.Fatalf("prompt does not contain truncated text plus marker")
	}
	if strings.Contains(client.last.Prompt, long) {
		t.Fatalf("prompt must not contain the untruncated text")
	}
}

func TestAnalyzeCountsCharactersNotBytes(t *testing.T) {
	client := &fakeLLM{out: "fine"}
	a := New(client)

	// Two-byte runes: under the character cap but well over it in bytes.
	text := strings.Repeat("é", maxTextChars-1)
	if _, err := a.Analyze(context.Background(), text); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if strings.Contains(client.last.Prompt, truncationMarker) {
		t.Fatalf("input under the character cap must not be truncated")
	}
	if !strings.Contains(client.last.Prompt, text) {
		t.Fatalf("prompt missing original text")
	}
}

func TestAnalyzeTruncatesOnRuneBoundary(t *testing.T) {
	client := &fakeLLM{out: "fine"}
	a := New(client)

	text := strings.Repeat("a", maxTextChars-1) + strings.Repeat("é", 500)
	if _, err := a.Analyze(context.Background(), text); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !utf8.ValidString(client.last.Prompt) {
		t.Fatalf("truncated prompt is not valid UTF-8")
	}
	if !strings.Contains(client.last.Prompt, truncationMarker) {
		t.Fatalf("oversized input must carry the truncation marker")
	}

	wantBody := strings.Repeat("a", maxTextChars-1) + "é" + truncationMarker
	if !strings.Contains(client.last.Prompt, wantBody) {
		t.Fatalf("prompt not truncated at the character cap")
	}
}

func TestAnalyzeShortTextPassedVerbatim(t *testing.T) {
	client := &fakeLLM{out: "fine"}
	a := New(client)

	text := "Hemoglobin 13.5 g/dL, within normal range."
	if _, err := a.Analyze(context.Background(), text); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !strings.Contains(client.last.Prompt, text) {
		t.Fatalf("prompt missing original text")
	}
	if strings.Contains(client.last.Prompt, truncationMarker) {
		t.Fatalf("short input must not be truncated")
	}
	if client.last.Temperature != temperature {
		t.Fatalf("expected temperature %v, got %v", temperature, client.last.Temperature)
	}
	if client.last.MaxOutputTokens != maxOutputTokens {
		t.Fatalf("expected max tokens %d, got %d", maxOutputTokens, client.last.MaxOutputTokens)
	}
}

func TestAnalyzeEmptyOutputFallback(t *testing.T) {
	a := New(&fakeLLM{out: ""})

	got, err := a.Analyze(context.Background(), "extracted medical text of reasonable length")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got != MsgNoOutput {
		t.Fatalf("expected fallback message, got %q", got)
	}
}

func TestAnalyzeDegradedCategories(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{llm.ErrQuotaExhausted, MsgQuotaExhausted},
		{llm.ErrInvalidCredentials, MsgConfigError},
		{llm.ErrInputTooLarge, MsgTooLarge},
	}
	for _, tc := range cases {
		a := New(&fakeLLM{err: tc.err})
		got, err := a.Analyze(context.Background(), "extracted medical text of reasonable length")
		if err != nil {
			t.Fatalf("category %v should be a normal outcome, got error %v", tc.err, err)
		}
		if got != tc.want {
			t.Fatalf("category %v: got %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestAnalyzeUnknownFailure(t *testing.T) {
	cause := errors.New("backend exploded")
	a := New(&fakeLLM{err: cause})

	_, err := a.Analyze(context.Background(), "extracted medical text of reasonable length")
	if err == nil {
		t.Fatalf("expected error for unclassified failure")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}
