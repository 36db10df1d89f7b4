package risk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mindbridge-care/sentinel/pkg/config"
)

func newChatServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}

		w.WriteHeader(status)
		if status != http.StatusOK {
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestLLMEstimator(baseURL string) *LLMEstimator {
	cfg := config.NewLocalConfig()
	cfg.LLMProvider = config.ProviderCustom
	cfg.LLMBaseURL = baseURL
	cfg.LLMAPIKey = "test-key"
	cfg.LLMModel = "test-model"
	return NewLLMEstimator(cfg)
}

func TestLLMEstimate(t *testing.T) {
	srv := newChatServer(t, `{"crisis_level": 7, "reason": "acute distress"}`, http.StatusOK)
	defer srv.Close()

	level, err := newTestLLMEstimator(srv.URL).Estimate(context.Background(), "some message")
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if level != 7 {
		t.Errorf("level = %d, want 7", level)
	}
}

func TestLLMEstimateStripsMarkdown(t *testing.T) {
	srv := newChatServer(t, "```json\n{\"crisis_level\": 5, \"reason\": \"x\"}\n```", http.StatusOK)
	defer srv.Close()

	level, err := newTestLLMEstimator(srv.URL).Estimate(context.Background(), "some message")
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if level != 5 {
		t.Errorf("level = %d, want 5", level)
	}
}

func TestLLMEstimateClampsRange(t *testing.T) {
	srv := newChatServer(t, `{"crisis_level": 42, "reason": "overshoot"}`, http.StatusOK)
	defer srv.Close()

	level, err := newTestLLMEstimator(srv.URL).Estimate(context.Background(), "some message")
	if err != nil {
		t.Fatal(err)
	}
	if level != 10 {
		t.Errorf("level = %d, want clamp to 10", level)
	}
}

func TestLLMEstimateBackendError(t *testing.T) {
	srv := newChatServer(t, "", http.StatusInternalServerError)
	defer srv.Close()

	if _, err := newTestLLMEstimator(srv.URL).Estimate(context.Background(), "some message"); err == nil {
		t.Error("expected error on backend failure")
	}
}

func TestLLMEstimatorDisabledProvider(t *testing.T) {
	cfg := config.NewLocalConfig()
	cfg.LLMProvider = config.ProviderNone
	if NewLLMEstimator(cfg) != nil {
		t.Error("provider none should yield a nil estimator")
	}
}

func TestLLMEstimatorRequiresKey(t *testing.T) {
	cfg := config.NewLocalConfig()
	cfg.LLMProvider = config.ProviderOpenRouter
	cfg.LLMAPIKey = ""
	e := NewLLMEstimator(cfg)

	if _, err := e.Estimate(context.Background(), "x"); err == nil {
		t.Error("expected error without API key")
	}
}
