package inference

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	"geofora/ai-gateway/internal/domain/gateway"
	"geofora/ai-gateway/internal/utils/httpclients"
)

const anthropicVersion = "2023-06-01"

// defaultAnthropicMaxTokens covers requests that leave MaxTokens unset; the
// messages API rejects requests without it.
const defaultAnthropicMaxTokens = 1024

// AnthropicAdapter translates canonical requests into the Anthropic messages
// API. Unlike the OpenAI shape, the system prompt travels as a top-level
// field and usage reports input/output token counts.
type AnthropicAdapter struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

func NewAnthropicAdapter(baseURL, apiKey string) *AnthropicAdapter {
	client := httpclients.NewClient("AnthropicClient")
	client.SetBaseURL(normalizeBaseURL(baseURL))
	client.SetHeader("X-API-Key", apiKey)
	client.SetHeader("Anthropic-Version", anthropicVersion)
	return &AnthropicAdapter{
		client:  client,
		baseURL: normalizeBaseURL(baseURL),
		apiKey:  apiKey,
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature *float32           `json:"temperature,omitempty"`
}

type anthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	ID         string                  `json:"id"`
	Model      string                  `json:"model"`
	StopReason string                  `json:"stop_reason"`
	Content    []anthropicContentBlock `json:"content"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type anthropicModelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (a *AnthropicAdapter) Generate(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
	defer observeGeneration("anthropic", req.Model, time.Now())

	body := anthropicRequest{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
	}
	if body.MaxTokens <= 0 {
		body.MaxTokens = defaultAnthropicMaxTokens
	}
	if req.Temperature > 0 {
		temp := req.Temperature
		body.Temperature = &temp
	}

	for _, m := range applyBusinessContext(req) {
		if m.Role == gateway.RoleSystem {
			if body.System != "" {
				body.System += "\n" + m.Content
				continue
			}
			body.System = m.Content
			continue
		}
		body.Messages = append(body.Messages, anthropicMessage{Role: m.Role, Content: m.Content})
	}

	var result anthropicResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Post("/v1/messages")
	if err != nil {
		return nil, wrapTransportError("anthropic", req.Model, err)
	}
	if resp.IsError() {
		return nil, errorFromResponse("anthropic", req.Model, resp)
	}

	var content string
	for _, block := range result.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}
	if content == "" {
		return nil, &gateway.ProviderError{
			Provider:  "anthropic",
			Model:     req.Model,
			Retryable: false,
			Err:       fmt.Errorf("response contained no text blocks"),
		}
	}

	return &gateway.Response{
		Content:   content,
		Provider:  "anthropic",
		Model:     result.Model,
		Usage:     normalizeUsage(req, result.Usage.InputTokens, result.Usage.OutputTokens, content),
		Timestamp: time.Now().UTC(),
		Metadata:  map[string]string{"stop_reason": result.StopReason},
	}, nil
}

func (a *AnthropicAdapter) HealthCheck(ctx context.Context) error {
	resp, err := a.client.R().SetContext(ctx).Get("/v1/models")
	if err != nil {
		return wrapTransportError("anthropic", "", err)
	}
	if resp.IsError() {
		return errorFromResponse("anthropic", "", resp)
	}
	return nil
}

func (a *AnthropicAdapter) ListModels(ctx context.Context) ([]string, error) {
	var result anthropicModelsResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/v1/models")
	if err != nil {
		return nil, wrapTransportError("anthropic", "", err)
	}
	if resp.IsError() {
		return nil, errorFromResponse("anthropic", "", resp)
	}

	ids := make([]string, 0, len(result.Data))
	for _, m := range result.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}
