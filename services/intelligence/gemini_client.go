package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient is the TextGenerator backed by Google Gemini.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is not configured")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, modelName: modelName}, nil
}

// Generate runs a single prompt. A fresh model handle is configured per call
// so concurrent requests never share generation settings.
func (g *GeminiClient) Generate(ctx context.Context, systemRole, prompt string, temperature float32) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(temperature)
	if systemRole != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemRole)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}
