package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niveshai/niveshai-backend/internal/advisor"
	"github.com/niveshai/niveshai-backend/internal/repository"
	"github.com/niveshai/niveshai-backend/internal/riskprofile"
	"github.com/niveshai/niveshai-backend/internal/testutil"
)

func setupAdvisorHandler(t *testing.T) (*AdvisorHandler, repository.Store) {
	t.Helper()
	repo := repository.NewMemoryPortfolioRepository()
	ps := testutil.NewTestPortfolioService(t, repo, nil)
	return NewAdvisorHandler(advisor.New(ps)), repo
}

func TestAdvisorHandler_RiskQuestions(t *testing.T) {
	handler, _ := setupAdvisorHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/risk-profile/questions", nil)
	w := httptest.NewRecorder()
	handler.RiskQuestions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var response RiskQuestionsResponse
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&response)
	if len(response.Questions) != len(riskprofile.Questions()) {
		t.Errorf("Expected %d questions, got %d", len(riskprofile.Questions()), len(response.Questions))
	}
}

// TestAdvisorHandler_ScoreRiskProfile tests scoring through HTTP.
//
// WHY: Radio answers arrive as strings and checkbox answers as arrays; both
// shapes must decode.
func TestAdvisorHandler_ScoreRiskProfile(t *testing.T) {
	handler, _ := setupAdvisorHandler(t)

	t.Run("scores lowest options as conservative", func(t *testing.T) {
		responses := make(map[string]any)
		for _, q := range riskprofile.Questions() {
			lowest := q.Options[0]
			for _, o := range q.Options {
				if o.Score < lowest.Score {
					lowest = o
				}
			}
			if q.Type == riskprofile.TypeCheckbox {
				responses[q.ID] = []string{lowest.Value}
			} else {
				responses[q.ID] = lowest.Value
			}
		}
		body, _ := json.Marshal(map[string]any{"responses": responses})

		req := testutil.NewRequestWithBody(http.MethodPost, "/api/risk-profile", string(body), nil)
		w := httptest.NewRecorder()
		handler.ScoreRiskProfile(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var response riskprofile.Assessment
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)
		if response.Profile.Type != "conservative" {
			t.Errorf("Expected conservative profile, got %s (score %v)", response.Profile.Type, response.Score)
		}
	})

	t.Run("returns 400 when required answers are missing", func(t *testing.T) {
		req := testutil.NewRequestWithBody(http.MethodPost, "/api/risk-profile", `{"responses":{}}`, nil)
		w := httptest.NewRecorder()
		handler.ScoreRiskProfile(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestAdvisorHandler_Chat(t *testing.T) {
	handler, repo := setupAdvisorHandler(t)
	p := testutil.NewPortfolio().WithName("Growth").WithInvestment(testutil.NewInvestment("A").Build()).Build(t, repo)

	tests := []struct {
		name   string
		query  string
		body   string
		status int
		intent advisor.Intent
		html   bool
	}{
		{"stock question", "", `{"message":"Tell me about TCS"}`, http.StatusOK, advisor.IntentStockLookup, false},
		{"html requested", "?format=html", `{"message":"save tax under 80c"}`, http.StatusOK, advisor.IntentTaxPlanning, true},
		{"portfolio question", "", `{"message":"review my portfolio","portfolioId":"` + p.ID + `"}`, http.StatusOK, advisor.IntentPortfolioAdvice, false},
		{"unknown portfolio", "", `{"message":"review my portfolio","portfolioId":"` + testutil.MakeID() + `"}`, http.StatusNotFound, "", false},
		{"invalid portfolio id", "", `{"message":"review my portfolio","portfolioId":"abc"}`, http.StatusBadRequest, "", false},
		{"empty message", "", `{"message":"   "}`, http.StatusBadRequest, "", false},
		{"bad format", "?format=pdf", `{"message":"hi"}`, http.StatusBadRequest, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewRequestWithBody(http.MethodPost, "/api/chat"+tt.query, tt.body, nil)
			w := httptest.NewRecorder()
			handler.Chat(w, req)

			if w.Code != tt.status {
				t.Fatalf("Expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}

			var response advisor.Answer
			//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
			json.NewDecoder(w.Body).Decode(&response)
			if response.Intent != tt.intent {
				t.Errorf("Expected intent %s, got %s", tt.intent, response.Intent)
			}
			if (response.HTML != "") != tt.html {
				t.Errorf("Expected html=%v, got %q", tt.html, response.HTML)
			}
			if !strings.Contains(response.Response, "Disclaimer") {
				t.Error("Expected disclaimer in response")
			}
		})
	}
}
