package models

import "time"

// Analysis status progression. A run moves pending -> crawling ->
// analyzing -> summarizing -> completed, or ends at failed.
const (
	StatusPending     = "pending"
	StatusCrawling    = "crawling"
	StatusAnalyzing   = "analyzing"
	StatusSummarizing = "summarizing"
	StatusCompleted   = "completed"
	StatusFailed      = "failed"
)

// PageResult is the scored outcome for one crawled page. Score is in
// [60,100]; Judge carries the raw judge verdict when one was produced.
type PageResult struct {
	URL     string      `json:"url"`
	Score   int         `json:"score"`
	Summary string      `json:"summary"`
	Judge   *JudgeScore `json:"judge,omitempty"`
}

// SiteResult aggregates page results for one analysis run. PageResults
// keeps crawl discovery order; it is immutable once persisted.
type SiteResult struct {
	AverageScore int          `json:"score"`
	Summary      string       `json:"summary"`
	PageResults  []PageResult `json:"page_results"`

	// PrimaryLanguage is the detected language of the start page, when
	// detection succeeded. Content records themselves are discarded
	// after scoring, so this is carried here for report defaults.
	PrimaryLanguage string `json:"language,omitempty"`
}

// AnalysisRecord is the persisted state of one analysis run, keyed by
// an opaque id generated at request time.
type AnalysisRecord struct {
	ID        string      `json:"analysis_id"`
	URL       string      `json:"url"`
	Status    string      `json:"status"`
	URLsFound int         `json:"urls_found"`
	Score     int         `json:"score"`
	Summary   string      `json:"summary"`
	Result    *SiteResult `json:"result,omitempty"`
	Report    *Report     `json:"report,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
