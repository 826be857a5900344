package enhance

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/BuzzLyutic/reminders-api/internal/model"
)

// GeminiGenerator ходит в Gemini API. Без ретраев и без своих таймаутов.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, cfg Config) (*GeminiGenerator, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	name := cfg.Model
	if name == "" {
		name = DefaultModel
	}
	return &GeminiGenerator{client: client, model: name}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// responseSchema - ровно три обязательных поля, приоритет только из списка меток.
func responseSchema() *genai.Schema {
	labels := make([]string, 0, len(model.Priorities))
	for _, p := range model.Priorities {
		labels = append(labels, p.String())
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"improvedTitle": {
				Type:        genai.TypeString,
				Description: "A short, clear title for the task",
			},
			"improvedDescription": {
				Type:        genai.TypeString,
				Description: "A detailed, actionable description",
			},
			"suggestedPriority": {
				Type:        genai.TypeString,
				Enum:        labels,
				Description: "The suggested priority for the task",
			},
		},
		Required: []string{"improvedTitle", "improvedDescription", "suggestedPriority"},
	}
}
