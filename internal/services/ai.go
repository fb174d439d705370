package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/printflow/internal/constants"
	"github.com/yukikurage/printflow/internal/logging"
)

// Fixed replies used when the assistant cannot produce text.
const (
	AINotConfiguredText = "AI assistant is not configured. Set OPENAI_API_KEY to enable it."
	AIEmptyResponseText = "Could not generate a description."
	AIErrorText         = "Failed to generate a description. Check the connection or API key."
)

// AIService drafts order descriptions and paper suggestions. It never returns an
// error: failures degrade to fixed fallback text.
type AIService struct {
	client *openai.Client
	model  string
	log    logging.Logger
}

// NewAIService returns a service without a client when apiKey is empty.
func NewAIService(apiKey, model, baseURL string, log logging.Logger) *AIService {
	if model == "" {
		model = constants.DefaultOpenAIModel
	}

	s := &AIService{model: model, log: log}
	if apiKey != "" {
		cfg := openai.DefaultConfig(apiKey)
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		s.client = openai.NewClientWithConfig(cfg)
	}
	return s
}

func (s *AIService) Configured() bool {
	return s.client != nil
}

// GenerateOrderDescription drafts a short technical brief for the order.
func (s *AIService) GenerateOrderDescription(ctx context.Context, title, clientName string) string {
	if s.client == nil {
		s.log.Warn(ctx, "AI assistant is not configured")
		return AINotConfiguredText
	}

	prompt := fmt.Sprintf(`You are an experienced production technologist at a modern print shop.
Write a short but technically sound brief for this order.

Order title: %q
Client: %q

List the steps the order needs, considering the usual processes (artwork check, color proof, paper choice, printing, cutting, folding and so on, where they apply to the title).
Be brief and use one line per step. Keep a professional tone. Do not use markdown, plain text only.`, title, clientName)

	text, err := s.complete(ctx, prompt)
	if err != nil {
		s.log.Warn(ctx, "failed to generate order description", "error", err)
		return AIErrorText
	}
	if text == "" {
		return AIEmptyResponseText
	}
	return text
}

// SuggestTechSpecs suggests paper weight and finish in one sentence, or "" on any failure.
func (s *AIService) SuggestTechSpecs(ctx context.Context, description string) string {
	if s.client == nil {
		return ""
	}

	prompt := fmt.Sprintf(`Based on this order description: %q, suggest the recommended paper weight (g/m²) and coating (matte/gloss) where applicable. Answer in one sentence.`, description)

	text, err := s.complete(ctx, prompt)
	if err != nil {
		s.log.Warn(ctx, "failed to suggest tech specs", "error", err)
		return ""
	}
	return text
}

func (s *AIService) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   constants.AIMaxTokens,
			Temperature: constants.AITemperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
