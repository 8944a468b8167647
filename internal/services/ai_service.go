package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"aipipeline/internal/models"
)

const systemPrompt = "You are a helpful assistant for managing sales pipelines."

// AIService relays a user prompt to the completion API and returns the reply
// verbatim. No retries: a failed call surfaces immediately.
type AIService interface {
	Ask(ctx context.Context, prompt string, deals []models.Deal) (string, error)
}

type aiService struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewAIService(ctx context.Context, apiKey, model string, timeout time.Duration) (AIService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("AI API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create AI client: %w", err)
	}
	return &aiService{client: client, model: model, timeout: timeout}, nil
}

func (s *aiService) Ask(ctx context.Context, prompt string, deals []models.Deal) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	full := prompt
	if len(deals) > 0 {
		full = prompt + "\n\nCurrent pipeline:\n" + dealContext(deals)
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		genai.Text(full),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		},
	)
	if err != nil {
		return "", fmt.Errorf("AI completion: %w", err)
	}
	reply := strings.TrimSpace(result.Text())
	if reply == "" {
		return "", fmt.Errorf("AI completion: empty response")
	}
	return reply, nil
}

// dealContext renders a compact one-line-per-deal view for the prompt.
func dealContext(deals []models.Deal) string {
	var b strings.Builder
	for _, d := range deals {
		fmt.Fprintf(&b, "- %s (%s): $%.2f, stage %s, probability %d%%\n",
			d.Title, d.Company, d.Value, d.Stage, d.Probability)
	}
	return b.String()
}
