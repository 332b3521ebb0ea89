package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/quote-agent/internal/logger"
)

// chatClient is the subset of *openai.Client used here.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type OpenAIClient struct {
	client chatClient
	model  string
	log    *logger.Logger
}

// NewOpenAIClient builds the adapter. baseURL may be empty.
func NewOpenAIClient(apiKey, model, baseURL string, log *logger.Logger) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return newOpenAIClient(openai.NewClientWithConfig(cfg), model, log)
}

func newOpenAIClient(client chatClient, model string, log *logger.Logger) *OpenAIClient {
	if log == nil {
		log = logger.Nop()
	}
	return &OpenAIClient{client: client, model: model, log: log}
}

func (c *OpenAIClient) GetReply(
	ctx context.Context,
	systemPrompt string,
	input string,
) (string, error) {
	msgs := []Message{
		{Role: openai.ChatMessageRoleSystem, Text: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Text: input},
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toOpenAI(msgs),
		Temperature: 0,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("ai: openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("ai: openai returned no choices")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.log.WithContext(ctx).Debug("ai raw reply", "model", c.model, "reply", short(raw))

	return raw, nil
}

func toOpenAI(msgs []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Text,
		})
	}
	return out
}

const maxLoggedReply = 180

// short cuts s to at most maxLoggedReply bytes on a rune boundary.
func short(s string) string {
	if len(s) <= maxLoggedReply {
		return s
	}
	cut := maxLoggedReply
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
