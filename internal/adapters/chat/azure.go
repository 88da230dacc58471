package chat

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"gradinvite/internal/domain"
)

// AzureConfig identifies an Azure OpenAI chat deployment.
type AzureConfig struct {
	APIKey     string
	Endpoint   string
	APIVersion string
	Deployment string
}

// Configured reports whether enough settings are present to call Azure.
func (c AzureConfig) Configured() bool {
	return c.APIKey != "" && c.Endpoint != "" && c.Deployment != ""
}

type azureCompleter struct {
	client     *openai.Client
	deployment string
}

// NewAzureCompleter returns a ChatCompleter for the configured deployment,
// or nil when cfg is incomplete.
func NewAzureCompleter(cfg AzureConfig) domain.ChatCompleter {
	if !cfg.Configured() {
		return nil
	}
	clientCfg := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	if cfg.APIVersion != "" {
		clientCfg.APIVersion = cfg.APIVersion
	}
	deployment := cfg.Deployment
	clientCfg.AzureModelMapperFunc = func(string) string { return deployment }
	return &azureCompleter{
		client:     openai.NewClientWithConfig(clientCfg),
		deployment: deployment,
	}
}

func (c *azureCompleter) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.deployment,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
