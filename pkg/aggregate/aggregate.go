// Package aggregate folds page-level results into the site-level
// score and narrative.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/logicgraphy/zeo/models"
	"github.com/logicgraphy/zeo/pkg/judge"
)

// Narrative sentinels returned when no model-written summary can be
// produced. The run still completes with these in place.
const (
	SummaryUnavailable = "Could not generate aggregate summary. Analysis may be incomplete."
	SummaryFailed      = "Failed to generate an aggregate summary."
)

// FailedMessage marks an analysis whose crawl produced zero
// extractable pages. This is a terminal state for the run.
const FailedMessage = "Could not analyze any pages."

// AverageScore returns the mean of page scores rounded to the nearest
// integer, ties rounding away from zero (math.Round). Callers must
// pass at least one page.
func AverageScore(pages []models.PageResult) int {
	if len(pages) == 0 {
		return 0
	}
	sum := 0
	for _, p := range pages {
		sum += p.Score
	}
	return int(math.Round(float64(sum) / float64(len(pages))))
}

// Narrative asks the model for one cohesive cross-page summary. Judge
// unavailability or empty input yields the sentinel text instead of an
// error; a failed call yields a distinct sentinel so operators can
// tell the two apart in stored results.
func Narrative(ctx context.Context, llm judge.Completer, logger *slog.Logger, summaries []string, siteURL string) string {
	if llm == nil || !llm.Available() || len(summaries) == 0 {
		return SummaryUnavailable
	}

	prompt := fmt.Sprintf(
		"You are an AEO (Answer Engine Optimization) analyst. "+
			"You have analyzed several pages from the website %s. "+
			"Below are the summaries for each page. "+
			"Create a single, cohesive summary of the entire site's AEO performance. "+
			"Identify common themes, strengths, and weaknesses.\n\n"+
			"Page Summaries:\n%s",
		siteURL, strings.Join(summaries, "\n\n"))

	response, err := llm.Complete(ctx, prompt)
	if err != nil {
		logger.Warn("aggregate summary call failed", "url", siteURL, "error", err)
		return SummaryFailed
	}
	if response == "" {
		return SummaryFailed
	}
	return response
}
