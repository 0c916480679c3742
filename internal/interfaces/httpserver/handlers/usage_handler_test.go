package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"geofora/ai-gateway/internal/domain/usage"
	"geofora/ai-gateway/internal/interfaces/httpserver/handlers"
)

type summaryRepo struct {
	memoryUsageRepo
	summaries []usage.ProviderSummary
}

func (r *summaryRepo) SummarizeSince(ctx context.Context, since time.Time) ([]usage.ProviderSummary, error) {
	return r.summaries, nil
}

func setupUsageTestRouter(handler *handlers.UsageHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	v1 := r.Group("/v1")
	v1.GET("/usage/summary", handler.GetSummary)

	return r
}

func TestUsageHandler_GetSummary(t *testing.T) {
	repo := &summaryRepo{
		summaries: []usage.ProviderSummary{
			{
				Provider:    "openai",
				Requests:    12,
				Failures:    2,
				TotalTokens: 3400,
				TotalCost:   decimal.RequireFromString("0.0125"),
			},
		},
	}
	handler := handlers.NewUsageHandler(usage.NewService(repo, zerolog.Nop()), zerolog.Nop())
	router := setupUsageTestRouter(handler)

	req, _ := http.NewRequest("GET", "/v1/usage/summary?window=48h", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Providers []struct {
			Provider    string `json:"provider"`
			Requests    int64  `json:"requests"`
			TotalCost   string `json:"total_cost"`
			TotalTokens int64  `json:"total_tokens"`
		} `json:"providers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Providers) != 1 {
		t.Fatalf("Expected 1 provider summary, got %d", len(response.Providers))
	}
	row := response.Providers[0]
	if row.Provider != "openai" || row.Requests != 12 || row.TotalTokens != 3400 {
		t.Errorf("Unexpected summary row: %+v", row)
	}
	if row.TotalCost != "0.012500" {
		t.Errorf("Expected total cost '0.012500', got %q", row.TotalCost)
	}
}

func TestUsageHandler_GetSummary_BadWindow(t *testing.T) {
	handler := handlers.NewUsageHandler(usage.NewService(&summaryRepo{}, zerolog.Nop()), zerolog.Nop())
	router := setupUsageTestRouter(handler)

	req, _ := http.NewRequest("GET", "/v1/usage/summary?window=yesterday", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestUsageHandler_GetSummary_Disabled(t *testing.T) {
	handler := handlers.NewUsageHandler(usage.NewService(nil, zerolog.Nop()), zerolog.Nop())
	router := setupUsageTestRouter(handler)

	req, _ := http.NewRequest("GET", "/v1/usage/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}
