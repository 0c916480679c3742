package inference

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"geofora/ai-gateway/internal/domain/gateway"
	"geofora/ai-gateway/internal/utils/httpclients"
)

// GoogleAdapter translates canonical requests into the Gemini generateContent
// API. Gemini has no system role in contents; system prompts travel in
// system_instruction, and the assistant role is called "model".
type GoogleAdapter struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

func NewGoogleAdapter(baseURL, apiKey string) *GoogleAdapter {
	client := httpclients.NewClient("GoogleAIClient")
	client.SetBaseURL(normalizeBaseURL(baseURL))
	return &GoogleAdapter{
		client:  client,
		baseURL: normalizeBaseURL(baseURL),
		apiKey:  apiKey,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     *float32 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

type geminiModelsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

func (a *GoogleAdapter) Generate(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
	defer observeGeneration("google", req.Model, time.Now())

	body := geminiRequest{}

	genCfg := &geminiGenerationConfig{MaxOutputTokens: req.MaxTokens}
	if req.Temperature > 0 {
		temp := req.Temperature
		genCfg.Temperature = &temp
	}
	if genCfg.Temperature != nil || genCfg.MaxOutputTokens > 0 {
		body.GenerationConfig = genCfg
	}

	for _, m := range applyBusinessContext(req) {
		switch m.Role {
		case gateway.RoleSystem:
			if body.SystemInstruction == nil {
				body.SystemInstruction = &geminiContent{}
			}
			body.SystemInstruction.Parts = append(body.SystemInstruction.Parts, geminiPart{Text: m.Content})
		case gateway.RoleAssistant:
			body.Contents = append(body.Contents, geminiContent{Role: "model", Parts: []geminiPart{{Text: m.Content}}})
		default:
			body.Contents = append(body.Contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: m.Content}}})
		}
	}

	var result geminiResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", a.apiKey).
		SetBody(body).
		SetResult(&result).
		Post(fmt.Sprintf("/models/%s:generateContent", req.Model))
	if err != nil {
		return nil, wrapTransportError("google", req.Model, err)
	}
	if resp.IsError() {
		return nil, errorFromResponse("google", req.Model, resp)
	}
	if len(result.Candidates) == 0 {
		return nil, &gateway.ProviderError{
			Provider:  "google",
			Model:     req.Model,
			Retryable: false,
			Err:       fmt.Errorf("response contained no candidates"),
		}
	}

	var content strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		content.WriteString(part.Text)
	}

	return &gateway.Response{
		Content:  content.String(),
		Provider: "google",
		Model:    req.Model,
		Usage: normalizeUsage(req,
			result.UsageMetadata.PromptTokenCount,
			result.UsageMetadata.CandidatesTokenCount,
			content.String()),
		Timestamp: time.Now().UTC(),
		Metadata:  map[string]string{"finish_reason": result.Candidates[0].FinishReason},
	}, nil
}

func (a *GoogleAdapter) HealthCheck(ctx context.Context) error {
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("key", a.apiKey).
		SetQueryParam("pageSize", "1").
		Get("/models")
	if err != nil {
		return wrapTransportError("google", "", err)
	}
	if resp.IsError() {
		return errorFromResponse("google", "", resp)
	}
	return nil
}

func (a *GoogleAdapter) ListModels(ctx context.Context) ([]string, error) {
	var result geminiModelsResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("key", a.apiKey).
		SetResult(&result).
		Get("/models")
	if err != nil {
		return nil, wrapTransportError("google", "", err)
	}
	if resp.IsError() {
		return nil, errorFromResponse("google", "", resp)
	}

	ids := make([]string, 0, len(result.Models))
	for _, m := range result.Models {
		ids = append(ids, strings.TrimPrefix(m.Name, "models/"))
	}
	return ids, nil
}
