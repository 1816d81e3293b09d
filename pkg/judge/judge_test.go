package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/logicgraphy/zeo/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeCompleter struct {
	available bool
	response  string
	err       error
	prompt    string
}

func (f *fakeCompleter) Available() bool { return f.available }

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func fullResponse() string {
	return `{
		"scores": {
			"content_quality": {"score": 4, "reason": "clear answers"},
			"structure_optimization": {"score": 3, "reason": "some headings"},
			"authority_trust": {"score": 2, "reason": "no author info"},
			"ai_agent_compatibility": {"score": 5, "reason": "clean markup"}
		}
	}`
}

func TestEvaluateParsesAllCategories(t *testing.T) {
	llm := &fakeCompleter{available: true, response: fullResponse()}
	rec := models.NewContentRecord("https://example.com")
	rec.Title = "Example"

	js := Evaluate(context.Background(), llm, testLogger(), rec)
	if js == nil {
		t.Fatal("Evaluate returned nil for a valid response")
	}
	for _, key := range models.JudgeCategories {
		if _, ok := js.Category(key); !ok {
			t.Errorf("missing category %q", key)
		}
	}
	if cs, _ := js.Category(models.CategoryContentQuality); cs.Score != 4 {
		t.Errorf("content_quality score = %d, want 4", cs.Score)
	}
}

func TestEvaluatePromptCarriesPageContent(t *testing.T) {
	llm := &fakeCompleter{available: true, response: fullResponse()}
	rec := models.NewContentRecord("https://example.com")
	rec.Title = "Serverless FAQ"
	rec.Headings = []string{"How does billing work"}

	Evaluate(context.Background(), llm, testLogger(), rec)
	if !strings.Contains(llm.prompt, "Serverless FAQ") {
		t.Error("prompt does not include the page title")
	}
	if !strings.Contains(llm.prompt, "How does billing work") {
		t.Error("prompt does not include the headings")
	}
}

func TestEvaluateNilWhenUnavailable(t *testing.T) {
	llm := &fakeCompleter{available: false}
	rec := models.NewContentRecord("https://example.com")
	if js := Evaluate(context.Background(), llm, testLogger(), rec); js != nil {
		t.Errorf("Evaluate with unavailable model = %+v, want nil", js)
	}
	if js := Evaluate(context.Background(), nil, testLogger(), rec); js != nil {
		t.Errorf("Evaluate with nil model = %+v, want nil", js)
	}
}

func TestEvaluateNilOnCallError(t *testing.T) {
	llm := &fakeCompleter{available: true, err: errors.New("boom")}
	rec := models.NewContentRecord("https://example.com")
	if js := Evaluate(context.Background(), llm, testLogger(), rec); js != nil {
		t.Errorf("Evaluate after call error = %+v, want nil", js)
	}
}

func TestParseResponseFencedJSON(t *testing.T) {
	raw := "Here is the audit:\n```json\n" + fullResponse() + "\n```\nDone."
	js := ParseResponse(raw)
	if js == nil {
		t.Fatal("ParseResponse returned nil for fenced JSON")
	}
	if len(js.Categories) != len(models.JudgeCategories) {
		t.Errorf("parsed %d categories, want %d", len(js.Categories), len(models.JudgeCategories))
	}
}

func TestParseResponseDropsOutOfRangeScores(t *testing.T) {
	raw := `{
		"scores": {
			"content_quality": {"score": 9, "reason": "too high"},
			"structure_optimization": {"score": 0, "reason": "too low"},
			"authority_trust": {"score": 3, "reason": "fine"}
		}
	}`
	js := ParseResponse(raw)
	if js == nil {
		t.Fatal("ParseResponse returned nil with one usable category")
	}
	if _, ok := js.Category(models.CategoryContentQuality); ok {
		t.Error("score above 5 was kept")
	}
	if _, ok := js.Category(models.CategoryStructureOptimization); ok {
		t.Error("score below 1 was kept")
	}
	if cs, ok := js.Category(models.CategoryAuthorityTrust); !ok || cs.Score != 3 {
		t.Errorf("authority_trust = %+v (ok=%v), want score 3", cs, ok)
	}
}

func TestParseResponseTruncatesLongReasons(t *testing.T) {
	reason := strings.Repeat("r", 500)
	raw := fmt.Sprintf(`{"scores": {"content_quality": {"score": 2, "reason": %q}}}`, reason)
	js := ParseResponse(raw)
	if js == nil {
		t.Fatal("ParseResponse returned nil")
	}
	cs, _ := js.Category(models.CategoryContentQuality)
	if len(cs.Reason) != maxReasonLen {
		t.Errorf("reason length = %d, want %d", len(cs.Reason), maxReasonLen)
	}
}

func TestParseResponseUnusable(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "the model refused to answer"},
		{"no scores key", `{"verdict": "good"}`},
		{"empty scores", `{"scores": {}}`},
		{"all out of range", `{"scores": {"content_quality": {"score": 7, "reason": "x"}}}`},
		{"unknown categories only", `{"scores": {"seo_basics": {"score": 3, "reason": "x"}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if js := ParseResponse(tt.raw); js != nil {
				t.Errorf("ParseResponse(%q) = %+v, want nil", tt.raw, js)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	direct := `{"a": 1}`
	if got := ExtractJSON(direct); string(got) != direct {
		t.Errorf("ExtractJSON(direct) = %q, want input unchanged", got)
	}
	wrapped := "prefix {\"a\": 1} suffix"
	if got := ExtractJSON(wrapped); string(got) != `{"a": 1}` {
		t.Errorf("ExtractJSON(wrapped) = %q", got)
	}
	if got := ExtractJSON("no braces here"); got != nil {
		t.Errorf("ExtractJSON(prose) = %q, want nil", got)
	}
}

func TestClientAvailable(t *testing.T) {
	unconfigured := NewClient(models.LLMConfig{Model: "gpt-5-nano"})
	if unconfigured.Available() {
		t.Error("client without API key reports available")
	}
	configured := NewClient(models.LLMConfig{APIKey: "sk-test", Model: "gpt-5-nano"})
	if !configured.Available() {
		t.Error("client with API key reports unavailable")
	}
}

func TestClientCompleteUnavailable(t *testing.T) {
	c := NewClient(models.LLMConfig{})
	if _, err := c.Complete(context.Background(), "hi"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Complete error = %v, want ErrUnavailable", err)
	}
}

func TestClientComplete(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		fmt.Fprint(w, `{"choices": [{"message": {"role": "assistant", "content": "pong"}}]}`)
	}))
	defer srv.Close()

	c := NewClient(models.LLMConfig{APIKey: "sk-test", Model: "gpt-5-nano", BaseURL: srv.URL})
	out, err := c.Complete(context.Background(), "ping")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if out != "pong" {
		t.Errorf("Complete = %q, want %q", out, "pong")
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q, want /chat/completions", gotPath)
	}
	if gotReq.Model != "gpt-5-nano" || len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "ping" {
		t.Errorf("request body = %+v", gotReq)
	}
}

func TestClientCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(models.LLMConfig{APIKey: "sk-test", BaseURL: srv.URL})
	if _, err := c.Complete(context.Background(), "ping"); err == nil {
		t.Error("Complete succeeded on a 429 response")
	}
}

func TestClientCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	}))
	defer srv.Close()

	c := NewClient(models.LLMConfig{APIKey: "sk-test", BaseURL: srv.URL})
	if _, err := c.Complete(context.Background(), "ping"); err == nil {
		t.Error("Complete succeeded with no choices")
	}
}
