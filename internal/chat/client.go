package chat

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// systemPrompt is the fixed instruction prepended to every relayed message.
const systemPrompt = "You are a Safety & Travel Advisory Assistant for a community safety platform. " +
	"Your role is to help users stay safe while traveling and report incidents. " +
	"YOUR RESPONSIBILITIES: Guide travelers about safety in their destination areas, " +
	"Help users report incidents (theft, harassment, accidents, etc.) with proper details, " +
	"Provide safety recommendations based on location and time, " +
	"Ask relevant follow-up questions to gather incident details, " +
	"Offer immediate safety advice when users report active threats, " +
	"Just provide any emergency contacts for womens helpline in india, " +
	"Don't ask any other information to user"

// geminiBaseURL is the OpenAI-compatible surface of the Gemini API.
const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

// Client relays a single prompt to the hosted model. No history, no
// streaming, no retries.
type Client interface {
	Ask(ctx context.Context, userPrompt string) (string, error)
}

type client struct {
	api   *openai.Client
	model string
}

// NewClient builds a relay client for the given API key and model.
func NewClient(apiKey, model string) Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = geminiBaseURL
	return &client{api: openai.NewClientWithConfig(cfg), model: model}
}

// NewClientWithBaseURL builds a relay client against an alternate endpoint.
// Used in tests.
func NewClientWithBaseURL(apiKey, model, baseURL string) Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &client{api: openai.NewClientWithConfig(cfg), model: model}
}

// Ask issues one synchronous completion for the fixed system instruction
// plus userPrompt and relays the reply text verbatim.
func (c *client) Ask(ctx context.Context, userPrompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
