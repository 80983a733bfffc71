package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/tendant/simple-site/pkg/siteconfig"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiModel implements Model using Google's Gemini API.
type GeminiModel struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiModel creates a Gemini-backed model. An empty API key is a
// configuration error.
func NewGeminiModel(ctx context.Context, apiKey, model string) (*GeminiModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: gemini api key is required", siteconfig.ErrConfigurationError)
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiModel{
		client:      client,
		model:       model,
		temperature: 0.7,
	}, nil
}

// Name returns the model identifier.
func (m *GeminiModel) Name() string {
	return m.model
}

func (m *GeminiModel) Generate(ctx context.Context, p Prompt) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(p.User, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(m.temperature),
	}
	if p.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	return resp.Text(), nil
}
