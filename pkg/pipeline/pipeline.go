// Package pipeline drives a full analysis run: crawl, per-page
// extraction and scoring, aggregation, and report formatting, with the
// analysis record persisted at each stage.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/logicgraphy/zeo/models"
	"github.com/logicgraphy/zeo/pkg/aggregate"
	"github.com/logicgraphy/zeo/pkg/crawler"
	"github.com/logicgraphy/zeo/pkg/extractor"
	"github.com/logicgraphy/zeo/pkg/heuristics"
	"github.com/logicgraphy/zeo/pkg/judge"
	"github.com/logicgraphy/zeo/pkg/metrics"
	"github.com/logicgraphy/zeo/pkg/report"
	"github.com/logicgraphy/zeo/pkg/scoring"
	"github.com/logicgraphy/zeo/pkg/store"
)

// ErrEmptyURL rejects structurally invalid input. This is the only
// input error the pipeline surfaces to callers; everything downstream
// degrades instead of failing.
var ErrEmptyURL = errors.New("url cannot be empty")

// Options tune a pipeline. Zero values fall back to the defaults used
// in production.
type Options struct {
	MaxPages int
	Workers  int
	Now      func() time.Time
}

type Pipeline struct {
	crawler   *crawler.Crawler
	extractor *extractor.Extractor
	llm       judge.Completer
	store     *store.Store
	logger    *slog.Logger
	maxPages  int
	workers   int
	now       func() time.Time
}

func New(c *crawler.Crawler, e *extractor.Extractor, llm judge.Completer, st *store.Store, logger *slog.Logger, opts Options) *Pipeline {
	if opts.MaxPages <= 0 {
		opts.MaxPages = 5
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{
		crawler:   c,
		extractor: e,
		llm:       llm,
		store:     st,
		logger:    logger,
		maxPages:  opts.MaxPages,
		workers:   opts.Workers,
		now:       opts.Now,
	}
}

// Analyze runs the whole pipeline for rawURL and returns the final
// analysis record. A site that yields zero extractable pages comes
// back as a failed-status record, not an error; only an empty URL or a
// storage failure returns one.
func (p *Pipeline) Analyze(ctx context.Context, rawURL string) (*models.AnalysisRecord, error) {
	startURL := crawler.Normalize(rawURL)
	if startURL == "" {
		return nil, ErrEmptyURL
	}

	started := time.Now()
	id := uuid.NewString()
	rec := &models.AnalysisRecord{
		ID:     id,
		URL:    startURL,
		Status: models.StatusPending,
	}
	if err := p.store.Put(rec); err != nil {
		return nil, err
	}

	p.update(id, store.Fields{Status: store.String(models.StatusCrawling)})
	urls := p.crawler.Crawl(ctx, startURL, p.maxPages)
	p.logger.Info("crawl finished", "analysis_id", id, "url", startURL, "pages", len(urls))

	p.update(id, store.Fields{
		Status:    store.String(models.StatusAnalyzing),
		URLsFound: store.Int(len(urls)),
	})
	pages, primaryLanguage := p.scorePages(ctx, urls)

	if len(pages) == 0 {
		p.logger.Warn("no pages could be analyzed", "analysis_id", id, "url", startURL)
		p.update(id, store.Fields{
			Status:  store.String(models.StatusFailed),
			Summary: store.String(aggregate.FailedMessage),
		})
		observeRun(models.StatusFailed, started)
		return p.store.Get(id)
	}

	p.update(id, store.Fields{Status: store.String(models.StatusSummarizing)})
	averageScore := aggregate.AverageScore(pages)
	summaries := make([]string, len(pages))
	for i, page := range pages {
		summaries[i] = page.Summary
	}
	narrative := aggregate.Narrative(ctx, p.llm, p.logger, summaries, startURL)

	site := &models.SiteResult{
		AverageScore:    averageScore,
		Summary:         narrative,
		PageResults:     pages,
		PrimaryLanguage: primaryLanguage,
	}
	doc := report.Format(ctx, p.llm, p.logger, site, startURL, p.now())

	p.update(id, store.Fields{
		Status:  store.String(models.StatusCompleted),
		Score:   store.Int(averageScore),
		Summary: store.String(narrative),
		Result:  site,
		Report:  doc,
	})
	p.logger.Info("analysis completed", "analysis_id", id, "url", startURL,
		"score", averageScore, "pages", len(pages))
	observeRun(models.StatusCompleted, started)

	return p.store.Get(id)
}

// GetReport loads the record for id; store.ErrNotFound propagates for
// unknown ids.
func (p *Pipeline) GetReport(id string) (*models.AnalysisRecord, error) {
	return p.store.Get(id)
}

type pageJob struct {
	index int
	url   string
}

type pageOutcome struct {
	result   *models.PageResult
	language string
}

// scorePages fans page work out over a bounded worker pool and
// reassembles results in crawl discovery order. Aggregation depends on
// that order, so outcomes are placed by index, never by completion.
func (p *Pipeline) scorePages(ctx context.Context, urls []string) ([]models.PageResult, string) {
	outcomes := make([]*pageOutcome, len(urls))
	jobs := make(chan pageJob)

	workers := p.workers
	if workers > len(urls) {
		workers = len(urls)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				outcomes[job.index] = p.scorePage(ctx, job.url)
			}
		}()
	}
	for i, u := range urls {
		jobs <- pageJob{index: i, url: u}
	}
	close(jobs)
	wg.Wait()

	var pages []models.PageResult
	primaryLanguage := ""
	for _, outcome := range outcomes {
		if outcome == nil || outcome.result == nil {
			continue
		}
		if primaryLanguage == "" {
			primaryLanguage = outcome.language
		}
		pages = append(pages, *outcome.result)
	}
	return pages, primaryLanguage
}

// scorePage extracts and scores one page. An unreachable page returns
// an empty outcome and is dropped from the result set.
func (p *Pipeline) scorePage(ctx context.Context, pageURL string) *pageOutcome {
	rec := p.extractor.Extract(ctx, pageURL)
	if rec == nil {
		return &pageOutcome{}
	}

	js := judge.Evaluate(ctx, p.llm, p.logger, rec)
	observeJudge(js)

	hs := heuristics.Score(rec)
	score := scoring.Fuse(js, hs.Total)
	summary := scoring.Summarize(pageURL, js, hs)

	if metrics.PagesAnalyzed != nil {
		metrics.PagesAnalyzed.Inc()
	}

	return &pageOutcome{
		result: &models.PageResult{
			URL:     pageURL,
			Score:   score,
			Summary: summary,
			Judge:   js,
		},
		language: rec.Language,
	}
}

// update applies a partial record update; failures are logged, not
// fatal, because a lost status transition must not abort a run.
func (p *Pipeline) update(id string, fields store.Fields) {
	if err := p.store.Update(id, fields); err != nil {
		p.logger.Warn("failed to update analysis record", "analysis_id", id, "error", err)
	}
}

func observeRun(status string, started time.Time) {
	if metrics.AnalysesTotal != nil {
		metrics.AnalysesTotal.WithLabelValues(status).Inc()
	}
	if metrics.AnalysisDuration != nil {
		metrics.AnalysisDuration.Observe(time.Since(started).Seconds())
	}
}

func observeJudge(js *models.JudgeScore) {
	if metrics.JudgeCallsTotal == nil {
		return
	}
	outcome := "scored"
	if js == nil {
		outcome = "absent"
	}
	metrics.JudgeCallsTotal.WithLabelValues(outcome).Inc()
}
