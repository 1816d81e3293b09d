// Package report formats an aggregated analysis into the
// schema-validated report document, reconciling model output against a
// fully-populated defaults document.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/logicgraphy/zeo/models"
	"github.com/logicgraphy/zeo/pkg/judge"
)

const (
	reportTitle = "AI-optimization Site Report"
	analystName = "AI"
	toolVersion = "1.0"
)

// Format builds the final report for site. It sends the raw text
// report to the model with the target schema, merges the parsed
// response over the defaults document, and validates the result. Any
// failure along that path returns the deterministic fallback, so the
// caller always receives a document that passes Validate.
func Format(ctx context.Context, llm judge.Completer, logger *slog.Logger, site *models.SiteResult, siteURL string, now time.Time) *models.Report {
	fallback := Defaults(site, siteURL, now)

	if llm == nil || !llm.Available() {
		return fallback
	}

	raw := BuildRawText(site, siteURL)
	response, err := llm.Complete(ctx, formatPrompt(raw))
	if err != nil {
		logger.Warn("report format call failed, using fallback", "url", siteURL, "error", err)
		return fallback
	}

	data := judge.ExtractJSON(response)
	if data == nil {
		logger.Warn("report format response is not JSON, using fallback", "url", siteURL)
		return fallback
	}

	var partial partialReport
	if err := json.Unmarshal(data, &partial); err != nil {
		logger.Warn("report format response does not match schema, using fallback", "url", siteURL, "error", err)
		return fallback
	}

	merged := Defaults(site, siteURL, now)
	overlay(merged, &partial)
	if len(merged.Recommendations) > models.MaxRecommendations {
		merged.Recommendations = merged.Recommendations[:models.MaxRecommendations]
	}

	if err := merged.Validate(); err != nil {
		logger.Warn("merged report failed validation, using fallback", "url", siteURL, "error", err)
		return fallback
	}
	return merged
}

// BuildRawText renders the plain-text report handed to the formatting
// model: overall score, site URL, per-page lines, aggregate narrative.
func BuildRawText(site *models.SiteResult, siteURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Overall Score: %d\n", site.AverageScore)
	fmt.Fprintf(&b, "URL: %s\n", siteURL)
	b.WriteString("\nPage Results:\n")
	for _, p := range site.PageResults {
		fmt.Fprintf(&b, "- %s - %d/100\n  %s\n", p.URL, p.Score, p.Summary)
	}
	b.WriteString("\nAggregate Summary:\n")
	b.WriteString(site.Summary)
	return b.String()
}

func formatPrompt(rawReport string) string {
	return "Format INPUT_REPORT into STRICT JSON matching SCHEMA. Return JSON ONLY.\n\n" +
		"INPUT_REPORT:\n" + rawReport + "\n\n" +
		"SCHEMA:\n" + schemaDescription +
		"\n\nRULES: Fill all fields concisely; infer briefly or []. Numbers must be in range. JSON only.\n"
}

const schemaDescription = `{
  "meta": {
    "report_title": "string",
    "scope": "string",
    "analyzed_at": "ISO 8601",
    "overall_score": "0-100",
    "analyst": "string",
    "tool_version": "string"
  },
  "executive_summary": {
    "summary_paragraph": "string",
    "highlights": ["string"]
  },
  "overall_findings": {
    "content_quality": { "score": 1-5, "notes": "string" },
    "structure": { "score": 1-5, "notes": "string" },
    "authority_signals": { "score": 1-5, "notes": "string" },
    "ai_agent_compatibility": { "score": 1-5, "notes": "string" },
    "impact": "string",
    "common_themes": ["string"]
  },
  "strengths": {
    "brand_domain_trust": ["string"],
    "navigation_layout": ["string"],
    "technical_signals": ["string"]
  },
  "weaknesses": {
    "content_depth": ["string"],
    "authority_trust": ["string"],
    "semantic_accessibility": ["string"],
    "ux_friction": ["string"]
  },
  "recommendations": [{
    "priority": "high|medium|long",
    "action": "string",
    "rationale": "string",
    "owner": "content|engineering|seo|design|product|analytics",
    "effort": "S|M|L",
    "impact": "S|M|L",
    "success_metrics": ["string"]
  }],
  "bottom_line": "string"
}`

// Defaults builds the fully-populated defaults document from
// already-known aggregator data. It doubles as the deterministic
// fallback whenever model formatting is unavailable or invalid, and it
// always passes Validate.
func Defaults(site *models.SiteResult, siteURL string, now time.Time) *models.Report {
	domain := siteURL
	if parsed, err := url.Parse(siteURL); err == nil && parsed.Hostname() != "" {
		domain = parsed.Hostname()
	}

	technicalSignals := []string{}
	if site.PrimaryLanguage != "" {
		technicalSignals = append(technicalSignals,
			fmt.Sprintf("Primary content language detected: %s", site.PrimaryLanguage))
	}

	return &models.Report{
		Meta: models.ReportMeta{
			ReportTitle:  reportTitle,
			Scope:        siteURL,
			AnalyzedAt:   now.UTC().Truncate(time.Second).Format(time.RFC3339),
			OverallScore: site.AverageScore,
			Analyst:      analystName,
			ToolVersion:  toolVersion,
		},
		ExecutiveSummary: models.ExecutiveSummary{
			SummaryParagraph: site.Summary,
			Highlights: []string{
				fmt.Sprintf("Average score: %d/100", site.AverageScore),
				fmt.Sprintf("Pages analyzed: %d", len(site.PageResults)),
				fmt.Sprintf("Domain: %s", domain),
			},
		},
		OverallFindings: models.OverallFindings{
			ContentQuality:     models.Finding{Score: 3, Notes: "Content depth varies across pages"},
			Structure:          models.Finding{Score: 3, Notes: "Heading and section usage is inconsistent"},
			AuthoritySignals:   models.Finding{Score: 3, Notes: "Explicit authorship/dates often missing"},
			AgentCompatibility: models.Finding{Score: 3, Notes: "Limited structured cues for agent parsing and actions"},
			Impact:             "Addressing metadata, structure, and trust signals should improve discoverability and trust",
			CommonThemes: []string{
				"Inconsistent content depth",
				"Missing meta descriptions/titles on some pages",
				"Variable heading structure",
			},
		},
		Strengths: models.Strengths{
			BrandDomainTrust: []string{fmt.Sprintf("Recognizable domain: %s", domain)},
			NavigationLayout: []string{},
			TechnicalSignals: technicalSignals,
		},
		Weaknesses: models.Weaknesses{
			ContentDepth:          []string{"Some pages are thin or purely functional"},
			AuthorityTrust:        []string{"Lack of explicit authorship or dates"},
			SemanticAccessibility: []string{"Headings and landmarks not consistently used"},
			UXFriction:            []string{"Limited guidance on utility/policy pages"},
		},
		Recommendations: []models.Recommendation{
			{
				Priority:  "high",
				Action:    "Add descriptive meta titles/descriptions and unique H1s",
				Rationale: "Improves clarity, CTR, and scannability",
				Owner:     "seo",
				Effort:    "S",
				Impact:    "M",
				SuccessMetrics: []string{
					"% pages with meta description",
					"% pages with unique H1",
				},
			},
		},
		BottomLine: site.Summary,
	}
}
