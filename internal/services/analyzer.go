package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"resumely/resume-analyzer/internal/models"
)

type AnalyzerService interface {
	Analyze(ctx context.Context, text string) (*models.AnalysisResult, error)
}

type AnalyzerConfig struct {
	Timeout         time.Duration // default 45s
	MaxPromptChars  int           // resume text budget, default 8000
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

type analyzerService struct {
	generator     TextGenerator
	promptBuilder *PromptBuilder
	cfg           AnalyzerConfig
}

func NewAnalyzerService(generator TextGenerator, cfg AnalyzerConfig) AnalyzerService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.MaxPromptChars <= 0 {
		cfg.MaxPromptChars = 8000
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 2048
	}
	return &analyzerService{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		cfg:           cfg,
	}
}

// Analyze obtains a scoring record for the resume text from the completion
// provider. The provider call is cancelled when the analysis timeout elapses.
// Nothing is retried here; retry policy belongs to the caller.
func (a *analyzerService) Analyze(ctx context.Context, text string) (*models.AnalysisResult, error) {
	trimmed := strings.TrimSpace(text)

	// Defense in depth: mirror the extractor's quality gates so a bad caller
	// cannot burn a provider call on junk input.
	if looksLikeMetadata(trimmed) {
		return nil, fmt.Errorf("%w: text looks like JSON metadata", ErrInvalidInput)
	}
	if wordCount := len(strings.Fields(trimmed)); wordCount < minExtractedWords {
		return nil, fmt.Errorf("%w: only %d words", ErrInvalidInput, wordCount)
	}

	if len(trimmed) > a.cfg.MaxPromptChars {
		trimmed = trimmed[:a.cfg.MaxPromptChars]
	}

	prompt := a.promptBuilder.BuildAnalysisPrompt(trimmed)
	log.Printf("🤖 Starting AI analysis: %d prompt characters, model %s\n", len(prompt), a.generator.ModelName())

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	start := time.Now()
	response, err := a.generator.GenerateText(ctx, prompt, GenerationParams{
		Temperature:     a.cfg.Temperature,
		TopP:            a.cfg.TopP,
		MaxOutputTokens: a.cfg.MaxOutputTokens,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w after %s", ErrAnalysisTimeout, a.cfg.Timeout)
		}
		return nil, fmt.Errorf("%w: %v", ErrProviderError, err)
	}

	log.Printf("✅ AI response received: %d characters in %dms\n", len(response), time.Since(start).Milliseconds())

	result, err := ParseAnalysisResponse(response)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Analysis parsed: overall score %d\n", result.OverallScore)
	return result, nil
}
