package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter() http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(NewService(Deps{Orchestrator: testOrchestrator()})))
	return r
}

func postChat(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleChatResponseShape(t *testing.T) {
	rec := postChat(t, newTestRouter(), `{
		"user_id": "u1",
		"message": "Can I see your portfolio?",
		"platform": "web",
		"chat_history": []
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, key := range []string{"response_text", "intent", "estimated_price", "confidence_score", "suggested_actions"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("missing key %q in %s", key, rec.Body.String())
		}
	}
	if body["estimated_price"] != nil {
		t.Fatalf("expected null estimated_price, got %v", body["estimated_price"])
	}
	if body["intent"] != "general_info" {
		t.Fatalf("unexpected intent %v", body["intent"])
	}
}

func TestHandleChatNegotiationOverHTTP(t *testing.T) {
	rec := postChat(t, newTestRouter(), `{
		"user_id": "u1",
		"message": "Fine, $900 it is",
		"platform": "web",
		"chat_history": [
			{"role": "user", "content": "I need a standard business website"},
			{"role": "assistant", "content": "ESTIMATED RANGE: $800 - $960 (USD)"}
		]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Intent != IntentLeadCapture || resp.ConfidenceScore != 0.98 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(resp.SuggestedActions) != 1 || resp.SuggestedActions[0] != "Finalize Deal" {
		t.Fatalf("unexpected actions %v", resp.SuggestedActions)
	}
}

func TestHandleChatRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"user_id":`},
		{"missing fields", `{"message": "hello"}`},
		{"wrong type", `{"user_id": 7, "message": "hi", "platform": "web"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postChat(t, newTestRouter(), tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["error"] == "" || body["error"] == nil {
				t.Fatalf("expected error message, got %s", rec.Body.String())
			}
		})
	}
}
