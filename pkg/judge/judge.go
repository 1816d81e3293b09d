package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/logicgraphy/zeo/models"
)

// maxReasonLen bounds each category reason carried forward from the
// judge response.
const maxReasonLen = 140

var jsonBlobPattern = regexp.MustCompile(`\{[\s\S]*\}`)

// Evaluate sends rec to the model and parses its category scores. It
// returns nil when the model is unavailable or the response is
// unusable; callers must treat nil as "no judge verdict", never as a
// zero score.
func Evaluate(ctx context.Context, llm Completer, logger *slog.Logger, rec *models.ContentRecord) *models.JudgeScore {
	if llm == nil || !llm.Available() {
		return nil
	}

	raw, err := llm.Complete(ctx, buildPrompt(rec))
	if err != nil {
		logger.Warn("judge call failed", "url", rec.URL, "error", err)
		return nil
	}

	return ParseResponse(raw)
}

// buildPrompt renders the fixed evaluation prompt for one page.
func buildPrompt(rec *models.ContentRecord) string {
	return fmt.Sprintf(
		"You are an AEO (Answer Engine Optimization) auditor. "+
			"Given the following webpage content, return a strict JSON object with this shape: "+
			"{\n  \"scores\": {\n"+
			"    \"content_quality\": { \"score\": 1-5, \"reason\": string },\n"+
			"    \"structure_optimization\": { \"score\": 1-5, \"reason\": string },\n"+
			"    \"authority_trust\": { \"score\": 1-5, \"reason\": string },\n"+
			"    \"ai_agent_compatibility\": { \"score\": 1-5, \"reason\": string }\n"+
			"  }\n}\n"+
			"Rules: "+
			"- Use integers 1-5 only for scores."+
			"- Keep reasons under 140 characters each."+
			"- Return only JSON without backticks or extra text."+
			"\n\nTitle: %s\nHeadings: %v\nParagraphs: %v\nLists: %v\nMeta: %v\n",
		rec.Title, rec.Headings, rec.Paragraphs, rec.ListItems, rec.Meta)
}

// ParseResponse extracts a JudgeScore from raw model output. Direct
// JSON parsing is tried first, then the first {...} substring. Each
// category is decoded independently so one malformed entry does not
// discard the rest. Scores outside [1,5] are dropped. A response with
// no usable category yields nil.
func ParseResponse(raw string) *models.JudgeScore {
	data := ExtractJSON(raw)
	if data == nil {
		return nil
	}

	var envelope struct {
		Scores map[string]json.RawMessage `json:"scores"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.Scores == nil {
		return nil
	}

	categories := map[string]models.CategoryScore{}
	for _, key := range models.JudgeCategories {
		rawCategory, ok := envelope.Scores[key]
		if !ok {
			continue
		}
		var cs models.CategoryScore
		if err := json.Unmarshal(rawCategory, &cs); err != nil {
			continue
		}
		if cs.Score < 1 || cs.Score > 5 {
			continue
		}
		if len(cs.Reason) > maxReasonLen {
			cs.Reason = cs.Reason[:maxReasonLen]
		}
		categories[key] = cs
	}

	if len(categories) == 0 {
		return nil
	}
	return &models.JudgeScore{Categories: categories}
}

// ExtractJSON returns raw if it is valid JSON, otherwise the first
// top-level {...} substring if that parses, otherwise nil. Models
// asked for JSON-only output still wrap it in prose or fences often
// enough that this fallback earns its keep.
func ExtractJSON(raw string) []byte {
	if json.Valid([]byte(raw)) {
		return []byte(raw)
	}
	if match := jsonBlobPattern.FindString(raw); match != "" && json.Valid([]byte(match)) {
		return []byte(match)
	}
	return nil
}
