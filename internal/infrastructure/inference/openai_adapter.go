package inference

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"geofora/ai-gateway/internal/domain/gateway"
	"geofora/ai-gateway/internal/utils/httpclients"
)

// OpenAIAdapter translates canonical requests into the OpenAI chat completion
// API. The wire types come from go-openai; only the transport is ours.
type OpenAIAdapter struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

func NewOpenAIAdapter(baseURL, apiKey string) *OpenAIAdapter {
	client := httpclients.NewClient("OpenAIClient")
	client.SetBaseURL(normalizeBaseURL(baseURL))
	return &OpenAIAdapter{
		client:  client,
		baseURL: normalizeBaseURL(baseURL),
		apiKey:  apiKey,
	}
}

func (a *OpenAIAdapter) Generate(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
	defer observeGeneration("openai", req.Model, time.Now())

	body := openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    toOpenAIMessages(req),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	var result openai.ChatCompletionResponse
	resp, err := a.prepareRequest(ctx).
		SetBody(body).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		return nil, wrapTransportError("openai", req.Model, err)
	}
	if resp.IsError() {
		return nil, errorFromResponse("openai", req.Model, resp)
	}
	if len(result.Choices) == 0 {
		return nil, &gateway.ProviderError{
			Provider:  "openai",
			Model:     req.Model,
			Retryable: false,
			Err:       fmt.Errorf("response contained no choices"),
		}
	}

	return &gateway.Response{
		Content:  result.Choices[0].Message.Content,
		Provider: "openai",
		Model:    result.Model,
		Usage: normalizeUsage(req,
			result.Usage.PromptTokens,
			result.Usage.CompletionTokens,
			result.Choices[0].Message.Content),
		Timestamp: time.Now().UTC(),
		Metadata:  map[string]string{"finish_reason": string(result.Choices[0].FinishReason)},
	}, nil
}

func (a *OpenAIAdapter) HealthCheck(ctx context.Context) error {
	resp, err := a.prepareRequest(ctx).Get("/models")
	if err != nil {
		return wrapTransportError("openai", "", err)
	}
	if resp.IsError() {
		return errorFromResponse("openai", "", resp)
	}
	return nil
}

func (a *OpenAIAdapter) ListModels(ctx context.Context) ([]string, error) {
	var result openai.ModelsList
	resp, err := a.prepareRequest(ctx).
		SetResult(&result).
		Get("/models")
	if err != nil {
		return nil, wrapTransportError("openai", "", err)
	}
	if resp.IsError() {
		return nil, errorFromResponse("openai", "", resp)
	}

	ids := make([]string, 0, len(result.Models))
	for _, m := range result.Models {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func (a *OpenAIAdapter) prepareRequest(ctx context.Context) *resty.Request {
	req := a.client.R().SetContext(ctx)
	req.SetHeader("Content-Type", "application/json")
	if strings.TrimSpace(a.apiKey) != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", a.apiKey))
	}
	return req
}

func toOpenAIMessages(req *gateway.Request) []openai.ChatCompletionMessage {
	source := applyBusinessContext(req)
	messages := make([]openai.ChatCompletionMessage, 0, len(source))
	for _, m := range source {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return messages
}
