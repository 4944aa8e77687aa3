package llmprovider

import (
	"context"
	"fmt"

	"companion-bot/pkg/openai"
)

// OpenAIAdapter adapts pkg/openai to the llmprovider.Provider interface
type OpenAIAdapter struct {
	client *openai.Client
}

// NewOpenAIAdapter creates a new OpenAI adapter
func NewOpenAIAdapter(client *openai.Client) *OpenAIAdapter {
	return &OpenAIAdapter{client: client}
}

// GenerateContent implements the Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || (req.System == "" && len(req.Messages) == 0) {
		return nil, ErrInvalidRequest
	}

	messages := make([]openai.ChatMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatMessage{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		messages = append(messages, convertMessage(m))
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatRequest{
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("openai completion: %w", err)
	}

	out := &Response{
		Text:         resp.Choices[0].Message.Content,
		ProviderName: a.Name(),
		ModelName:    a.Model(),
	}
	if resp.Usage != nil {
		out.Usage = &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}
	return out, nil
}

// convertMessage maps a normalized message onto the OpenAI wire shape.
// Messages carrying an image become multimodal content-part arrays.
func convertMessage(m Message) openai.ChatMessage {
	if m.ImageURL == "" {
		return openai.ChatMessage{Role: m.Role, Content: m.Content}
	}
	parts := []openai.ContentPart{}
	if m.Content != "" {
		parts = append(parts, openai.ContentPart{Type: "text", Text: m.Content})
	}
	parts = append(parts, openai.ContentPart{
		Type:     "image_url",
		ImageURL: &openai.ImageURL{URL: m.ImageURL},
	})
	return openai.ChatMessage{Role: m.Role, Content: parts}
}

// Name implements the Provider interface
func (a *OpenAIAdapter) Name() string {
	return "openai"
}

// Model implements the Provider interface
func (a *OpenAIAdapter) Model() string {
	return a.client.Model()
}
