// Package scoring fuses the judge verdict with the structural signals
// into a single page score and renders the per-page summary.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/logicgraphy/zeo/models"
	"github.com/logicgraphy/zeo/pkg/heuristics"
)

// Fusion weights and bounds. The 60 floor keeps harsh near-zero scores
// away from users; low-signal pages come back as low-confidence
// results, not failures.
const (
	llmWeight        = 0.65
	structuralWeight = 0.35
	scoreFloor       = 60
	neutralLLMRatio  = 0.5
)

// Fuse combines the judge verdict and structural total into a page
// score in [60,100]. A nil or empty judge verdict contributes the
// neutral 0.5 ratio. The structural total is normalized against
// heuristics.MaxTotal; the legacy denominator of 4 from an earlier
// revision of this pipeline is deliberately not used.
func Fuse(js *models.JudgeScore, structuralTotal int) int {
	llmNormalized := neutralLLMRatio
	if values := js.Values(); len(values) > 0 {
		sum := 0
		for _, v := range values {
			sum += v
		}
		llmNormalized = float64(sum) / (float64(len(values)) * 5)
	}

	structuralNormalized := float64(structuralTotal) / float64(heuristics.MaxTotal)
	combined := llmWeight*llmNormalized + structuralWeight*structuralNormalized

	score := int(math.Round(combined * 100))
	if score < scoreFloor {
		score = scoreFloor
	}
	return score
}

// categoryLabels maps judge category keys to their display names, in
// summary order.
var categoryLabels = []struct {
	key   string
	label string
}{
	{models.CategoryContentQuality, "Content Quality"},
	{models.CategoryStructureOptimization, "Structure"},
	{models.CategoryAuthorityTrust, "Authority"},
	{models.CategoryAgentCompatibility, "AI Agent Compatibility"},
}

// Summarize renders the one-paragraph narrative for a page. The URL
// and structural total always appear; judge clauses appear only for
// categories the judge actually produced.
func Summarize(url string, js *models.JudgeScore, hs models.HeuristicScore) string {
	parts := []string{
		fmt.Sprintf("Analyzed page: %s.", url),
		fmt.Sprintf("Structural AI-optimization features score: %d/%d.", hs.Total, heuristics.MaxTotal),
	}

	var clauses []string
	for _, c := range categoryLabels {
		if cs, ok := js.Category(c.key); ok {
			clauses = append(clauses, fmt.Sprintf("%s: %d/5 - %s", c.label, cs.Score, cs.Reason))
		}
	}
	if len(clauses) > 0 {
		parts = append(parts, "AI-optimization review: "+strings.Join(clauses, "; "))
	}

	return strings.Join(parts, " ")
}
