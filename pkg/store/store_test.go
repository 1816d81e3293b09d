package store

import (
	"errors"
	"testing"

	"github.com/logicgraphy/zeo/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutAndGet(t *testing.T) {
	s := newTestStore(t)

	rec := &models.AnalysisRecord{
		ID:     "a1",
		URL:    "https://example.com",
		Status: models.StatusPending,
	}
	if err := s.Put(rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("Put did not stamp timestamps")
	}

	got, err := s.Get("a1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != "a1" || got.URL != "https://example.com" || got.Status != models.StatusPending {
		t.Errorf("Get = %+v", got)
	}
	if got.Result != nil || got.Report != nil {
		t.Error("fresh record carries result or report")
	}
}

func TestGetUnknownID(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateFields(t *testing.T) {
	s := newTestStore(t)
	if err := s.Put(&models.AnalysisRecord{ID: "a1", URL: "https://example.com", Status: models.StatusPending}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	err := s.Update("a1", Fields{
		Status:    String(models.StatusAnalyzing),
		URLsFound: Int(4),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := s.Get("a1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != models.StatusAnalyzing {
		t.Errorf("status = %q, want analyzing", got.Status)
	}
	if got.URLsFound != 4 {
		t.Errorf("urls_found = %d, want 4", got.URLsFound)
	}
	if got.Score != 0 || got.Summary != "" {
		t.Error("untouched fields changed")
	}
}

func TestUpdateResultAndReportRoundTrip(t *testing.T) {
	s := newTestStore(t)
	if err := s.Put(&models.AnalysisRecord{ID: "a1", URL: "https://example.com", Status: models.StatusSummarizing}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	result := &models.SiteResult{
		AverageScore: 72,
		Summary:      "site summary",
		PageResults: []models.PageResult{
			{
				URL:     "https://example.com",
				Score:   72,
				Summary: "page summary",
				Judge: &models.JudgeScore{Categories: map[string]models.CategoryScore{
					models.CategoryContentQuality: {Score: 4, Reason: "clear"},
				}},
			},
		},
		PrimaryLanguage: "en",
	}
	report := &models.Report{
		Meta:       models.ReportMeta{ReportTitle: "t", Scope: "https://example.com", AnalyzedAt: "2026-09-01T00:00:00Z", OverallScore: 72, Analyst: "AI", ToolVersion: "1.0"},
		BottomLine: "bottom line",
	}

	err := s.Update("a1", Fields{
		Status:  String(models.StatusCompleted),
		Score:   Int(72),
		Summary: String("site summary"),
		Result:  result,
		Report:  report,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := s.Get("a1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Result == nil {
		t.Fatal("result did not round-trip")
	}
	if got.Result.AverageScore != 72 || got.Result.PrimaryLanguage != "en" {
		t.Errorf("result = %+v", got.Result)
	}
	if len(got.Result.PageResults) != 1 || got.Result.PageResults[0].Judge == nil {
		t.Fatalf("page results = %+v", got.Result.PageResults)
	}
	if cs, ok := got.Result.PageResults[0].Judge.Category(models.CategoryContentQuality); !ok || cs.Score != 4 {
		t.Errorf("judge category = %+v (ok=%v)", cs, ok)
	}
	if got.Report == nil || got.Report.BottomLine != "bottom line" {
		t.Errorf("report = %+v", got.Report)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	s := newTestStore(t)
	err := s.Update("missing", Fields{Status: String(models.StatusFailed)})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateNoFieldsIsNoop(t *testing.T) {
	s := newTestStore(t)
	if err := s.Update("missing", Fields{}); err != nil {
		t.Errorf("empty Update returned %v, want nil", err)
	}
}

func TestPutDuplicateIDFails(t *testing.T) {
	s := newTestStore(t)
	rec := &models.AnalysisRecord{ID: "a1", URL: "https://example.com", Status: models.StatusPending}
	if err := s.Put(rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Put(rec); err == nil {
		t.Error("second Put with same id succeeded")
	}
}
