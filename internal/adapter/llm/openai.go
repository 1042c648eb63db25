// Package llm adapts chat-completion backends to the Generator port.
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"ragcore/internal/domain"
	"ragcore/internal/port"
)

var _ port.Generator = (*OpenAIGenerator)(nil)

const systemPrompt = `You are a helpful assistant with access to a knowledge base.
Use the provided context to answer the user's question accurately.
If the context doesn't contain relevant information, say so clearly.
Be concise but thorough.`

// OpenAIGenerator answers queries through an OpenAI-compatible chat
// endpoint, feeding it the retrieved context and the conversation so far.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(apiKeyEnv, model, baseURL string) (*OpenAIGenerator, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" && baseURL == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", apiKeyEnv)
	}
	if apiKey == "" {
		apiKey = "local"
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Generate builds the chat transcript from system prompt, context, history
// and query, and returns the model's answer. History is consumed as given;
// bounding it is the caller's policy.
func (g *OpenAIGenerator) Generate(query, contextText string, history []domain.Turn) (string, error) {
	var sys strings.Builder
	sys.WriteString(systemPrompt)
	if contextText != "" {
		sys.WriteString("\n\nContext from knowledge base:\n")
		sys.WriteString(contextText)
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: sys.String()},
	}
	for _, turn := range history {
		if turn.User != "" {
			messages = append(messages, openai.ChatCompletionMessage{
				Role: openai.ChatMessageRoleUser, Content: turn.User,
			})
		}
		if turn.Assistant != "" {
			messages = append(messages, openai.ChatCompletionMessage{
				Role: openai.ChatMessageRoleAssistant, Content: turn.Assistant,
			})
		}
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser, Content: query,
	})

	resp, err := g.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model:    g.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) ModelName() string {
	return g.model
}
