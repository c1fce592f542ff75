package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultMaxTokens is used when a request leaves MaxTokens at zero.
const DefaultMaxTokens = 3000

// EndpointProvider posts chat-completion JSON to a fixed URL with bearer
// authorization. The URL is used verbatim; nothing is appended to it.
type EndpointProvider struct {
	url    string
	apiKey string
	model  string
	client *http.Client
}

// NewEndpointProvider creates a provider for the given endpoint URL. A zero
// timeout means requests wait until ctx is done.
func NewEndpointProvider(url, apiKey, model string, timeout time.Duration) *EndpointProvider {
	return &EndpointProvider{
		url:    url,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *EndpointProvider) Name() string {
	return "endpoint"
}

type chatRequest struct {
	Messages        []chatMessage `json:"messages"`
	Model           string        `json:"model"`
	MaxTokens       int           `json:"max_tokens"`
	PresencePenalty float64       `json:"presence_penalty"`
	Temperature     float64       `json:"temperature"`
	TopP            float64       `json:"top_p"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

func (p *EndpointProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	messages := make([]chatMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}

	body, err := json.Marshal(chatRequest{
		Messages:        messages,
		Model:           model,
		MaxTokens:       maxTokens,
		PresencePenalty: req.PresencePenalty,
		Temperature:     req.Temperature,
		TopP:            req.TopP,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read completion response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal completion response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return nil, ErrEmptyChoices
	}

	return &CompletionResponse{
		Content:      apiResp.Choices[0].Message.Content,
		InputTokens:  apiResp.Usage.PromptTokens,
		OutputTokens: apiResp.Usage.CompletionTokens,
		Model:        apiResp.Model,
		FinishReason: apiResp.Choices[0].FinishReason,
	}, nil
}
