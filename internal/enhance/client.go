// Package enhance переписывает текст напоминания через Gemini и предлагает приоритет.
// Любой сбой превращается в запасной ответ, ошибка наружу не уходит.
package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/reminders-api/internal/model"
)

const (
	DefaultModel = "gemini-2.5-flash"

	unconfiguredMessage = "Add an API key (API_KEY) to get smart suggestions."
	failureMessage      = "Could not enhance the text automatically right now"
)

var errEmptyResponse = errors.New("no response text from AI")

// Generator - один вызов модели, возвращает сырой JSON-текст ответа.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Client struct {
	gen    Generator
	logger *zap.Logger
}

// New собирает клиента. Без ключа клиент работает в режиме заглушки и в сеть не ходит.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return &Client{logger: logger}, nil
	}
	gen, err := NewGeminiGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewWithGenerator(gen, logger), nil
}

func NewWithGenerator(gen Generator, logger *zap.Logger) *Client {
	return &Client{gen: gen, logger: logger}
}

func (c *Client) Configured() bool {
	return c.gen != nil
}

// Enhance никогда не возвращает ошибку: все пути заканчиваются валидным Enhancement.
func (c *Client) Enhance(ctx context.Context, raw string) model.Enhancement {
	if !c.Configured() {
		c.logger.Warn("API key is missing, returning fallback enhancement")
		return fallback(raw, unconfiguredMessage)
	}

	text, err := c.gen.Generate(ctx, Prompt(raw))
	if err == nil && strings.TrimSpace(text) == "" {
		err = errEmptyResponse
	}
	if err != nil {
		return c.failed(raw, err)
	}

	result, err := parse(text)
	if err != nil {
		return c.failed(raw, err)
	}
	return result
}

func (c *Client) failed(raw string, err error) model.Enhancement {
	c.logger.Error("error enhancing reminder", zap.Error(err))
	return fallback(raw, fmt.Sprintf("%s: %v", failureMessage, err))
}

func fallback(raw, message string) model.Enhancement {
	return model.Enhancement{
		ImprovedTitle:       raw,
		ImprovedDescription: message,
		SuggestedPriority:   model.PriorityMedium,
	}
}

// Prompt - инструкция для модели вместе с исходным текстом
func Prompt(raw string) string {
	labels := make([]string, 0, len(model.Priorities))
	for _, p := range model.Priorities {
		labels = append(labels, p.String())
	}
	return fmt.Sprintf(`Analyze this raw reminder: %q.
Rewrite it to be clearer and actionable.
Suggest a priority (%s) based on the implied urgency.
If the text is very short, expand it with logical details.`, raw, strings.Join(labels, ", "))
}

type response struct {
	ImprovedTitle       *string `json:"improvedTitle"`
	ImprovedDescription *string `json:"improvedDescription"`
	SuggestedPriority   *string `json:"suggestedPriority"`
}

func parse(text string) (model.Enhancement, error) {
	var resp response
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return model.Enhancement{}, fmt.Errorf("malformed AI response: %w", err)
	}
	if resp.ImprovedTitle == nil || resp.ImprovedDescription == nil || resp.SuggestedPriority == nil {
		return model.Enhancement{}, errors.New("AI response is missing required fields")
	}
	if strings.TrimSpace(*resp.ImprovedTitle) == "" {
		return model.Enhancement{}, errors.New("AI response has an empty title")
	}

	p, err := model.ParsePriority(*resp.SuggestedPriority)
	if err != nil || strings.TrimSpace(*resp.SuggestedPriority) == "" {
		return model.Enhancement{}, fmt.Errorf("AI suggested unknown priority %q", *resp.SuggestedPriority)
	}

	return model.Enhancement{
		ImprovedTitle:       *resp.ImprovedTitle,
		ImprovedDescription: *resp.ImprovedDescription,
		SuggestedPriority:   p,
	}, nil
}
