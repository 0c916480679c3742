package inference

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"

	"geofora/ai-gateway/internal/domain/gateway"
	"geofora/ai-gateway/internal/infrastructure/metrics"
)

func normalizeBaseURL(base string) string {
	trimmed := strings.TrimSpace(base)
	trimmed = strings.TrimRight(trimmed, "/")
	return trimmed
}

// applyBusinessContext folds the request's business context into the system
// prompt. A request without a system message gets one prepended so the
// augmentation is never dropped.
func applyBusinessContext(req *gateway.Request) []gateway.Message {
	if req.BusinessContext.Empty() {
		return req.Messages
	}

	messages := make([]gateway.Message, 0, len(req.Messages)+1)
	composed := false
	for _, m := range req.Messages {
		if m.Role == gateway.RoleSystem && !composed {
			m.Content = gateway.ComposeSystemPrompt(m.Content, req.BusinessContext)
			composed = true
		}
		messages = append(messages, m)
	}
	if !composed {
		prefix := gateway.Message{
			Role:    gateway.RoleSystem,
			Content: gateway.ComposeSystemPrompt("", req.BusinessContext),
		}
		messages = append([]gateway.Message{prefix}, messages...)
	}
	return messages
}

// normalizeUsage fills in token accounting from backend-reported counts,
// falling back to the estimator for backends that omit them.
func normalizeUsage(req *gateway.Request, promptTokens, completionTokens int, content string) gateway.Usage {
	if promptTokens == 0 {
		promptTokens = gateway.EstimateMessageTokens(req.Messages)
	}
	if completionTokens == 0 {
		completionTokens = gateway.EstimateTokens(content)
	}
	return gateway.Usage{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
	}
}

// observeGeneration records the round-trip latency of one backend call.
// Intended as `defer observeGeneration(provider, model, time.Now())`.
func observeGeneration(provider, model string, start time.Time) {
	metrics.ProviderDuration.WithLabelValues(model, provider).Observe(time.Since(start).Seconds())
}

// wrapTransportError classifies a transport-level failure (DNS, dial,
// deadline). These never carry a status code; retryability comes from the
// error text.
func wrapTransportError(provider, model string, err error) error {
	metrics.RecordProviderError(provider, "transport")
	return &gateway.ProviderError{
		Provider:  provider,
		Model:     model,
		Retryable: gateway.ClassifyRetryable(0, err.Error()),
		Err:       err,
	}
}

// errorFromResponse classifies a non-2xx backend response.
func errorFromResponse(provider, model string, resp *resty.Response) error {
	status := resp.StatusCode()
	body := strings.TrimSpace(resp.String())
	if body == "" {
		body = resp.Status()
	}
	metrics.RecordProviderError(provider, strconv.Itoa(status))
	return &gateway.ProviderError{
		Provider:   provider,
		Model:      model,
		StatusCode: status,
		Retryable:  gateway.ClassifyRetryable(status, body),
		Err:        fmt.Errorf("backend returned %d: %s", status, truncateBody(body, 512)),
	}
}

func truncateBody(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// IsAuthError reports whether a provider call failed due to bad credentials.
func IsAuthError(err error) bool {
	var provErr *gateway.ProviderError
	if errors.As(err, &provErr) {
		return provErr.StatusCode == 401 || provErr.StatusCode == 403
	}
	return false
}
