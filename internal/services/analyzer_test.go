package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

type fakeGenerator struct {
	response   string
	err        error
	waitForCtx bool
	gotPrompt  string
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	f.gotPrompt = prompt
	if f.waitForCtx {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.response, f.err
}

func (f *fakeGenerator) ModelName() string { return "fake-model" }

func TestAnalyzeSuccess(t *testing.T) {
	gen := &fakeGenerator{response: `{"overallScore": 81, "strengths": ["Solid experience"]}`}
	analyzer := NewAnalyzerService(gen, AnalyzerConfig{})

	result, err := analyzer.Analyze(context.Background(), sampleResumeText)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if result.OverallScore != 81 {
		t.Errorf("expected overall score 81, got %d", result.OverallScore)
	}
	if len(result.Strengths) != 1 {
		t.Errorf("unexpected strengths: %v", result.Strengths)
	}
}

func TestAnalyzeRejectsMetadataInput(t *testing.T) {
	gen := &fakeGenerator{response: `{"overallScore": 50}`}
	analyzer := NewAnalyzerService(gen, AnalyzerConfig{})

	_, err := analyzer.Analyze(context.Background(), `{"Title": "resume.pdf", "Author": "x"}`)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for metadata text, got %v", err)
	}
	if gen.gotPrompt != "" {
		t.Error("expected no provider call for rejected input")
	}
}

func TestAnalyzeRejectsShortInput(t *testing.T) {
	gen := &fakeGenerator{response: `{"overallScore": 50}`}
	analyzer := NewAnalyzerService(gen, AnalyzerConfig{})

	_, err := analyzer.Analyze(context.Background(), "too few words here")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short text, got %v", err)
	}
}

func TestAnalyzeTimeout(t *testing.T) {
	gen := &fakeGenerator{waitForCtx: true}
	analyzer := NewAnalyzerService(gen, AnalyzerConfig{Timeout: 20 * time.Millisecond})

	_, err := analyzer.Analyze(context.Background(), sampleResumeText)
	if !errors.Is(err, ErrAnalysisTimeout) {
		t.Fatalf("expected ErrAnalysisTimeout, got %v", err)
	}
}

func TestAnalyzeProviderError(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("rate limit exceeded")}
	analyzer := NewAnalyzerService(gen, AnalyzerConfig{})

	_, err := analyzer.Analyze(context.Background(), sampleResumeText)
	if !errors.Is(err, ErrProviderError) {
		t.Fatalf("expected ErrProviderError, got %v", err)
	}
}

func TestAnalyzeUnparsableResponse(t *testing.T) {
	gen := &fakeGenerator{response: "I cannot help with that."}
	analyzer := NewAnalyzerService(gen, AnalyzerConfig{})

	_, err := analyzer.Analyze(context.Background(), sampleResumeText)
	if !errors.Is(err, ErrUnparsableResponse) {
		t.Fatalf("expected ErrUnparsableResponse, got %v", err)
	}
}

func TestAnalyzeTruncatesLongInput(t *testing.T) {
	gen := &fakeGenerator{response: `{"overallScore": 60}`}
	analyzer := NewAnalyzerService(gen, AnalyzerConfig{MaxPromptChars: 500})

	longText := strings.Repeat(sampleResumeText+"\n", 20)
	if _, err := analyzer.Analyze(context.Background(), longText); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	// The prompt template adds its own scaffolding around the resume text.
	if strings.Count(gen.gotPrompt, "John Smith") > 3 {
		t.Errorf("expected resume text to be truncated, prompt has %d repetitions",
			strings.Count(gen.gotPrompt, "John Smith"))
	}
}
