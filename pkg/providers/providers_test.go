package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dotsetgreg/minagent/pkg/config"
)

func newTestConfig(apiBase string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Provider.APIKey = "sk-test"
	cfg.Provider.APIBase = apiBase
	return cfg
}

func TestNewOpenAIProvider_RequiresAPIKey(t *testing.T) {
	cfg := config.DefaultConfig()
	_, err := NewOpenAIProvider(cfg)
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Fatalf("expected env var guidance, got %q", err.Error())
	}
}

func TestNewOpenAIProvider_RejectsNegativeTimeout(t *testing.T) {
	cfg := newTestConfig("http://localhost")
	cfg.Provider.HTTPTimeout = -time.Second
	if _, err := NewOpenAIProvider(cfg); err == nil {
		t.Fatalf("expected negative timeout to be rejected")
	}
}

func TestChat_SendsRequestAndParsesFirstChoice(t *testing.T) {
	var (
		seenAuth   string
		seenPath   string
		seenMethod string
		seenBody   map[string]interface{}
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		seenPath = r.URL.Path
		seenMethod = r.Method
		if err := json.NewDecoder(r.Body).Decode(&seenBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"first"},"finish_reason":"stop"},{"message":{"content":"second"}}],"usage":{"prompt_tokens":3,"completion_tokens":1,"total_tokens":4}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(newTestConfig(server.URL + "/"))
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}

	resp, err := provider.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, "", map[string]interface{}{
		"temperature": 0.7,
		"max_tokens":  500,
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}

	if resp.Content != "first" {
		t.Fatalf("expected first choice content, got %q", resp.Content)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 4 {
		t.Fatalf("expected usage to be parsed, got %+v", resp.Usage)
	}
	if seenAuth != "Bearer sk-test" {
		t.Fatalf("expected bearer auth, got %q", seenAuth)
	}
	if seenMethod != http.MethodPost || seenPath != "/chat/completions" {
		t.Fatalf("expected POST /chat/completions, got %s %s", seenMethod, seenPath)
	}
	if seenBody["model"] != "gpt-4" {
		t.Fatalf("expected default model gpt-4, got %v", seenBody["model"])
	}
	if seenBody["temperature"] != 0.7 {
		t.Fatalf("expected temperature 0.7, got %v", seenBody["temperature"])
	}
	if seenBody["max_tokens"] != float64(500) {
		t.Fatalf("expected max_tokens 500, got %v", seenBody["max_tokens"])
	}
	msgs, ok := seenBody["messages"].([]interface{})
	if !ok || len(msgs) != 1 {
		t.Fatalf("expected one message, got %v", seenBody["messages"])
	}
	msg := msgs[0].(map[string]interface{})
	if msg["role"] != "user" || msg["content"] != "hi" {
		t.Fatalf("unexpected message %v", msg)
	}
}

func TestChat_OmitsUnsetDecodingOptions(t *testing.T) {
	var seen map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&seen)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(newTestConfig(server.URL))
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}
	if _, err := provider.Chat(context.Background(), []Message{{Role: "user", Content: "x"}}, "", nil); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if _, ok := seen["max_tokens"]; ok {
		t.Fatalf("expected max_tokens to be omitted, got %v", seen["max_tokens"])
	}
	if _, ok := seen["temperature"]; ok {
		t.Fatalf("expected temperature to be omitted, got %v", seen["temperature"])
	}
	if len(seen) != 2 {
		t.Fatalf("expected only model and messages, got %v", seen)
	}
}

func TestChat_ModelOverride(t *testing.T) {
	var seenModel interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&req)
		seenModel = req["model"]
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(newTestConfig(server.URL))
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}
	if _, err := provider.Chat(context.Background(), []Message{{Role: "user", Content: "x"}}, "gpt-4o-mini", nil); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if seenModel != "gpt-4o-mini" {
		t.Fatalf("expected model override, got %v", seenModel)
	}
}

func TestChat_ContentParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":[{"type":"text","text":"Hello, "},{"type":"text","text":"world"}]}}]}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(newTestConfig(server.URL))
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}
	resp, err := provider.Chat(context.Background(), []Message{{Role: "user", Content: "x"}}, "", nil)
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if resp.Content != "Hello, world" {
		t.Fatalf("expected flattened content, got %q", resp.Content)
	}
}

func TestChat_NoChoicesFailsClosed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(newTestConfig(server.URL))
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}
	_, err = provider.Chat(context.Background(), []Message{{Role: "user", Content: "x"}}, "", nil)
	if !errors.Is(err, ErrNoChoices) {
		t.Fatalf("expected ErrNoChoices, got %v", err)
	}
}

func TestChat_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(newTestConfig(server.URL))
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}
	_, err = provider.Chat(context.Background(), []Message{{Role: "user", Content: "x"}}, "", nil)
	if err == nil || !strings.Contains(err.Error(), "parse openai response") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestChat_ErrorStatusCarriesAPIMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided: sk-test.","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(newTestConfig(server.URL))
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}
	_, err = provider.Chat(context.Background(), []Message{{Role: "user", Content: "x"}}, "", nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"status=401", "Incorrect API key provided", "Hint:"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in error, got %q", want, err.Error())
		}
	}
}

func TestChat_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	provider, err := NewOpenAIProvider(newTestConfig(server.URL))
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	_, err = provider.Chat(ctx, []Message{{Role: "user", Content: "x"}}, "", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExtractAPIError(t *testing.T) {
	cases := map[string]string{
		``:                               "empty response body",
		`{"message":"top-level"}`:        "top-level",
		`{"error":{"message":"nested"}}`: "nested",
		`plain failure`:                  "plain failure",
	}
	for body, want := range cases {
		if got := extractAPIError([]byte(body)); got != want {
			t.Errorf("extractAPIError(%q) = %q, want %q", body, got, want)
		}
	}
}
