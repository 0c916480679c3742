package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"geofora/ai-gateway/internal/domain/gateway"
	"geofora/ai-gateway/internal/interfaces/httpserver/handlers"
)

func setupPersonaTestRouter(handler *handlers.PersonaHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	v1 := r.Group("/v1")
	v1.GET("/personas", handler.GetPersonas)
	v1.GET("/personas/:id", handler.GetPersona)

	return r
}

func personaTestGateway(t *testing.T) *gateway.Gateway {
	t.Helper()
	return newTestGateway(t, map[string]gateway.ProviderAdapter{
		"openai":    &MockAdapter{Provider: "openai"},
		"anthropic": &MockAdapter{Provider: "anthropic"},
	})
}

func TestPersonaHandler_GetPersonas(t *testing.T) {
	handler := handlers.NewPersonaHandler(personaTestGateway(t), zerolog.Nop())
	router := setupPersonaTestRouter(handler)

	req, _ := http.NewRequest("GET", "/v1/personas", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Personas []struct {
			ID           string `json:"id"`
			SystemPrompt string `json:"system_prompt"`
		} `json:"personas"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Personas) != 2 {
		t.Fatalf("Expected 2 personas, got %d", len(response.Personas))
	}
	for _, p := range response.Personas {
		if p.SystemPrompt != "" {
			t.Errorf("System prompt must not be exposed, got %q for %s", p.SystemPrompt, p.ID)
		}
	}
}

func TestPersonaHandler_GetPersonas_PlanFilter(t *testing.T) {
	handler := handlers.NewPersonaHandler(personaTestGateway(t), zerolog.Nop())
	router := setupPersonaTestRouter(handler)

	// Starter plan only unlocks openai personas
	req, _ := http.NewRequest("GET", "/v1/personas?plan=starter", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Personas []struct {
			ID         string `json:"id"`
			ProviderID string `json:"provider_id"`
		} `json:"personas"`
		Plan string `json:"plan"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Plan != "starter" {
		t.Errorf("Expected plan 'starter', got %q", response.Plan)
	}
	if len(response.Personas) != 1 {
		t.Fatalf("Expected 1 persona for starter plan, got %d", len(response.Personas))
	}
	if response.Personas[0].ProviderID != "openai" {
		t.Errorf("Expected an openai persona, got %+v", response.Personas[0])
	}
}

func TestPersonaHandler_GetPersona(t *testing.T) {
	handler := handlers.NewPersonaHandler(personaTestGateway(t), zerolog.Nop())
	router := setupPersonaTestRouter(handler)

	req, _ := http.NewRequest("GET", "/v1/personas/tech-expert", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["id"] != "tech-expert" {
		t.Errorf("Expected persona 'tech-expert', got %v", response["id"])
	}
}

func TestPersonaHandler_GetPersona_NotFound(t *testing.T) {
	handler := handlers.NewPersonaHandler(personaTestGateway(t), zerolog.Nop())
	router := setupPersonaTestRouter(handler)

	req, _ := http.NewRequest("GET", "/v1/personas/ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}
