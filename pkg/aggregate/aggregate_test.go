package aggregate

import (
	"context"
	"errors"
	"io"
	"log/slog"
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

func pages(scores ...int) []models.PageResult {
	out := make([]models.PageResult, len(scores))
	for i, s := range scores {
		out[i] = models.PageResult{URL: "https://example.com", Score: s}
	}
	return out
}

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   int
	}{
		{"single page", []int{72}, 72},
		{"exact mean", []int{60, 70, 80}, 70},
		{"half rounds up", []int{60, 61}, 61},
		{"no pages", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageScore(pages(tt.scores...)); got != tt.want {
				t.Errorf("AverageScore(%v) = %d, want %d", tt.scores, got, tt.want)
			}
		})
	}
}

func TestNarrative(t *testing.T) {
	llm := &fakeCompleter{available: true, response: "The site answers questions well."}
	got := Narrative(context.Background(), llm, testLogger(),
		[]string{"page one summary", "page two summary"}, "https://example.com")
	if got != "The site answers questions well." {
		t.Errorf("Narrative = %q", got)
	}
	if !strings.Contains(llm.prompt, "https://example.com") {
		t.Error("prompt missing site URL")
	}
	if !strings.Contains(llm.prompt, "page one summary") || !strings.Contains(llm.prompt, "page two summary") {
		t.Error("prompt missing page summaries")
	}
}

func TestNarrativeUnavailable(t *testing.T) {
	got := Narrative(context.Background(), &fakeCompleter{available: false}, testLogger(),
		[]string{"summary"}, "https://example.com")
	if got != SummaryUnavailable {
		t.Errorf("Narrative with unavailable model = %q, want %q", got, SummaryUnavailable)
	}
	if got := Narrative(context.Background(), nil, testLogger(), []string{"summary"}, "https://example.com"); got != SummaryUnavailable {
		t.Errorf("Narrative with nil model = %q, want %q", got, SummaryUnavailable)
	}
}

func TestNarrativeNoSummaries(t *testing.T) {
	llm := &fakeCompleter{available: true, response: "should not be called"}
	got := Narrative(context.Background(), llm, testLogger(), nil, "https://example.com")
	if got != SummaryUnavailable {
		t.Errorf("Narrative with no summaries = %q, want %q", got, SummaryUnavailable)
	}
	if llm.prompt != "" {
		t.Error("model was called despite empty input")
	}
}

func TestNarrativeCallFailure(t *testing.T) {
	llm := &fakeCompleter{available: true, err: errors.New("timeout")}
	got := Narrative(context.Background(), llm, testLogger(), []string{"summary"}, "https://example.com")
	if got != SummaryFailed {
		t.Errorf("Narrative after call failure = %q, want %q", got, SummaryFailed)
	}

	llm = &fakeCompleter{available: true, response: ""}
	got = Narrative(context.Background(), llm, testLogger(), []string{"summary"}, "https://example.com")
	if got != SummaryFailed {
		t.Errorf("Narrative after empty response = %q, want %q", got, SummaryFailed)
	}
}
