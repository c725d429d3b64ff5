package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/partypulse/partygen/internal/llm"
	"github.com/partypulse/partygen/internal/model"
)

type mockGenerator struct {
	calls    int
	lastReq  *model.GenerationRequest
	lastCID  string
	result   *model.GenerationResult
	err      error
}

func (m *mockGenerator) Generate(ctx context.Context, req *model.GenerationRequest, clientID string) (*model.GenerationResult, error) {
	m.calls++
	m.lastReq = req
	m.lastCID = clientID
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func okResult() *model.GenerationResult {
	return &model.GenerationResult{
		Items: []model.Item{{ID: "gen-ab-0", Type: model.ModeTruth, Text: "你最尴尬的经历是什么？"}},
		Meta:  model.Meta{Provider: "deepseek", PromptID: "prompt-002", Seed: 7},
	}
}

func post(t *testing.T, h *GenerateHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/generate", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.HandleGenerate(w, req)
	return w
}

func TestHandleGenerate_Success(t *testing.T) {
	m := &mockGenerator{result: okResult()}
	h := NewGenerateHandler(m)

	w := post(t, h, `{"mode":"truth","style":"搞笑","count":1,"locale":"zh-CN","audienceAge":"adult","intensity":"medium","seed":7}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp model.GenerationResult
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Type != model.ModeTruth {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}
	if m.lastReq.Seed != 7 || m.lastReq.Count != 1 {
		t.Fatalf("request not passed through: %+v", m.lastReq)
	}
}

func TestHandleGenerate_DefaultsApplied(t *testing.T) {
	m := &mockGenerator{result: okResult()}
	h := NewGenerateHandler(m)

	w := post(t, h, `{"mode":"truth","style":"搞笑"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	got := m.lastReq
	if got.Locale != "zh-CN" || got.Count != 1 || got.AudienceAge != "adult" || got.Intensity != "medium" || got.Seed != 1 {
		t.Fatalf("defaults not applied: %+v", got)
	}
}

func TestHandleGenerate_InvalidJSON(t *testing.T) {
	h := NewGenerateHandler(&mockGenerator{result: okResult()})
	w := post(t, h, `{"mode":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleGenerate_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		status   int
		code     string
	}{
		{
			"validation",
			&model.ValidationError{Kind: model.InvalidCount, Message: "count out of range"},
			http.StatusBadRequest, model.InvalidCount,
		},
		{
			"rate limited",
			model.ErrRateLimited,
			http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
		},
		{
			"config",
			&llm.ConfigError{Provider: "deepseek", Reason: "API key not set"},
			http.StatusInternalServerError, "LLM_CONFIG_ERROR",
		},
		{
			"parse",
			&llm.ParseError{Reason: "no strategy produced items"},
			http.StatusInternalServerError, "LLM_PARSE_ERROR",
		},
		{
			"empty response",
			model.ErrEmptyResponse,
			http.StatusInternalServerError, "LLM_PARSE_ERROR",
		},
		{
			"auth upstream",
			&llm.TransportError{Category: llm.Irrecoverable, StatusCode: 401},
			http.StatusInternalServerError, "LLM_AUTH_ERROR",
		},
		{
			"provider rate limit",
			&llm.TransportError{Category: llm.Recoverable, StatusCode: 429},
			http.StatusInternalServerError, "LLM_RATE_LIMIT",
		},
		{
			"upstream 5xx",
			&llm.TransportError{Category: llm.Recoverable, StatusCode: 502},
			http.StatusInternalServerError, "LLM_SERVICE_ERROR",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewGenerateHandler(&mockGenerator{err: tc.err})
			w := post(t, h, `{"mode":"truth","style":"搞笑"}`)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			var resp struct {
				Error string `json:"error"`
				Code  string `json:"code"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, resp.Code)
			}
			if resp.Error == "" {
				t.Fatal("error message must not be empty")
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/generate", nil)
	r.RemoteAddr = "10.0.0.9:1234"
	if got := clientIP(r); got != "10.0.0.9" {
		t.Fatalf("remote addr host: got %q", got)
	}

	r.Header.Set("X-Real-IP", "3.3.3.3")
	if got := clientIP(r); got != "3.3.3.3" {
		t.Fatalf("x-real-ip: got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "1.1.1.1, 2.2.2.2")
	if got := clientIP(r); got != "1.1.1.1" {
		t.Fatalf("x-forwarded-for first hop: got %q", got)
	}
}

func TestRouter_Routes(t *testing.T) {
	m := &mockGenerator{result: okResult()}
	router := NewRouter(NewGenerateHandler(m))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/generate", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("generate must be POST-only, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", w.Code)
	}
}
