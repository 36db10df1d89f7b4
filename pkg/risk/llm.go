package risk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mindbridge-care/sentinel/pkg/config"
	"github.com/mindbridge-care/sentinel/pkg/httputil"
)

// LLMEstimator asks an OpenAI-compatible chat endpoint for a second opinion
// on the crisis level of a message. It is strictly fail-open: any error or
// timeout leaves the local rule-based reading in force, and the engine only
// ever raises the local level toward the remote estimate, never lowers it.
type LLMEstimator struct {
	client      *http.Client
	provider    config.LLMProvider
	baseURL     string
	apiKey      string
	model       string
	temperature float64
}

// estimateTemperature keeps the estimate as deterministic as the backend
// allows.
const estimateTemperature = 0.1

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewLLMEstimator builds an estimator from config. Returns nil when the
// provider is none, which callers treat as "estimator disabled".
func NewLLMEstimator(cfg *config.Config) *LLMEstimator {
	if cfg.LLMProvider == config.ProviderNone {
		return nil
	}

	baseURL := cfg.LLMBaseURL
	if baseURL == "" {
		switch cfg.LLMProvider {
		case config.ProviderOllama:
			baseURL = "http://localhost:11434/v1"
		case config.ProviderGroq:
			baseURL = "https://api.groq.com/openai/v1"
		case config.ProviderOpenAI:
			baseURL = "https://api.openai.com/v1"
		case config.ProviderOpenRouter:
			baseURL = "https://openrouter.ai/api/v1"
		default:
			baseURL = "https://openrouter.ai/api/v1"
		}
	}

	return &LLMEstimator{
		client:      httputil.Client(httputil.TierMedium),
		provider:    cfg.LLMProvider,
		baseURL:     baseURL,
		apiKey:      cfg.LLMAPIKey,
		model:       cfg.LLMModel,
		temperature: estimateTemperature,
	}
}

const estimatorSystemPrompt = `You are a crisis triage assistant. Rate the crisis
severity of the USER MESSAGE on an integer scale from 0 to 10:
- 0-2: no crisis signal, ordinary conversation
- 3-4: mild distress, worth noting
- 5-6: significant distress, needs attention
- 7-8: acute crisis, intervention required
- 9-10: immediate danger to life

Judge the whole meaning, including indirect or euphemistic phrasing.
Respond with JSON only:
{"crisis_level": 0-10, "reason": "brief explanation"}`

type estimateResponse struct {
	CrisisLevel int    `json:"crisis_level"`
	Reason      string `json:"reason"`
}

// Estimate returns the remote crisis-level reading for a message.
func (e *LLMEstimator) Estimate(ctx context.Context, message string) (int, error) {
	if e.provider != config.ProviderOllama && e.apiKey == "" {
		return 0, fmt.Errorf("API key not configured for provider %s", e.provider)
	}

	respContent, err := e.callChat(ctx, chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: estimatorSystemPrompt},
			{Role: "user", Content: "USER MESSAGE: " + message},
		},
		Temperature: e.temperature,
	})
	if err != nil {
		return 0, err
	}

	var result estimateResponse
	if err := json.Unmarshal([]byte(extractJSON(respContent)), &result); err != nil {
		return 0, fmt.Errorf("parse estimate: %w", err)
	}
	if result.CrisisLevel < 0 {
		result.CrisisLevel = 0
	}
	if result.CrisisLevel > 10 {
		result.CrisisLevel = 10
	}
	return result.CrisisLevel, nil
}

// extractJSON strips markdown fences and prose around a JSON object.
func extractJSON(content string) string {
	clean := strings.TrimSpace(content)
	if start := strings.Index(clean, "{"); start != -1 {
		clean = clean[start:]
	}
	if end := strings.LastIndex(clean, "}"); end != -1 {
		clean = clean[:end+1]
	}
	return clean
}

func (e *LLMEstimator) callChat(ctx context.Context, reqBody chatRequest) (string, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimRight(e.baseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer httputil.DrainAndClose(resp.Body)

	body, err := httputil.ReadResponseBody(resp.Body, 0)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return result.Choices[0].Message.Content, nil
}
