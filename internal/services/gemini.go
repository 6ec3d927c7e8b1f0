package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// TextGenerator is the completion-provider contract the analyzer depends on.
// Auth and model configuration are resolved by the concrete client.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, params GenerationParams) (string, error)
	ModelName() string
}

// Embedder produces embedding vectors for the similarity index.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type GenerationParams struct {
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

type GeminiService interface {
	TextGenerator
	Embedder
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(ctx context.Context, apiKey, modelName string) (GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	return &geminiService{
		client:     client,
		modelName:  modelName,
		embedModel: "text-embedding-004",
	}, nil
}

func (g *geminiService) ModelName() string {
	return g.modelName
}

// GenerateText implements TextGenerator.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: params.MaxOutputTokens,
	}
	if params.Temperature > 0 {
		temp := params.Temperature
		config.Temperature = &temp
	}
	if params.TopP > 0 {
		topP := params.TopP
		config.TopP = &topP
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// GenerateEmbedding implements Embedder.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Stay under the embedding model's input limit.
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}
