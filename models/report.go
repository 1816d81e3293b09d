package models

import "fmt"

// MaxRecommendations caps the recommendation list regardless of how
// many items the formatting model returned.
const MaxRecommendations = 3

// ReportMeta identifies a formatted report.
type ReportMeta struct {
	ReportTitle  string `json:"report_title"`
	Scope        string `json:"scope"`
	AnalyzedAt   string `json:"analyzed_at"`
	OverallScore int    `json:"overall_score"`
	Analyst      string `json:"analyst"`
	ToolVersion  string `json:"tool_version"`
}

// ExecutiveSummary opens the report.
type ExecutiveSummary struct {
	SummaryParagraph string   `json:"summary_paragraph"`
	Highlights       []string `json:"highlights"`
}

// Finding is one category verdict in the overall findings section.
type Finding struct {
	Score int    `json:"score"`
	Notes string `json:"notes"`
}

// OverallFindings holds per-category findings plus cross-cutting themes.
type OverallFindings struct {
	ContentQuality     Finding  `json:"content_quality"`
	Structure          Finding  `json:"structure"`
	AuthoritySignals   Finding  `json:"authority_signals"`
	AgentCompatibility Finding  `json:"ai_agent_compatibility"`
	Impact             string   `json:"impact"`
	CommonThemes       []string `json:"common_themes"`
}

// Strengths groups positive observations by fixed category.
type Strengths struct {
	BrandDomainTrust []string `json:"brand_domain_trust"`
	NavigationLayout []string `json:"navigation_layout"`
	TechnicalSignals []string `json:"technical_signals"`
}

// Weaknesses groups negative observations by fixed category.
type Weaknesses struct {
	ContentDepth          []string `json:"content_depth"`
	AuthorityTrust        []string `json:"authority_trust"`
	SemanticAccessibility []string `json:"semantic_accessibility"`
	UXFriction            []string `json:"ux_friction"`
}

// Recommendation is one prioritized action item.
type Recommendation struct {
	Priority       string   `json:"priority"`
	Action         string   `json:"action"`
	Rationale      string   `json:"rationale"`
	Owner          string   `json:"owner"`
	Effort         string   `json:"effort"`
	Impact         string   `json:"impact"`
	SuccessMetrics []string `json:"success_metrics"`
}

// Report is the externally visible, schema-validated analysis document.
// Every required field is always present; defaults fill gaps before a
// report leaves the formatter.
type Report struct {
	Meta             ReportMeta       `json:"meta"`
	ExecutiveSummary ExecutiveSummary `json:"executive_summary"`
	OverallFindings  OverallFindings  `json:"overall_findings"`
	Strengths        Strengths        `json:"strengths"`
	Weaknesses       Weaknesses       `json:"weaknesses"`
	Recommendations  []Recommendation `json:"recommendations"`
	BottomLine       string           `json:"bottom_line"`
}

// Validate is the final gate before a report is returned as a success.
// It checks that every required field is populated and every numeric
// field is in range.
func (r *Report) Validate() error {
	if r == nil {
		return fmt.Errorf("report is nil")
	}
	if r.Meta.ReportTitle == "" {
		return fmt.Errorf("meta.report_title is empty")
	}
	if r.Meta.Scope == "" {
		return fmt.Errorf("meta.scope is empty")
	}
	if r.Meta.AnalyzedAt == "" {
		return fmt.Errorf("meta.analyzed_at is empty")
	}
	if r.Meta.OverallScore < 0 || r.Meta.OverallScore > 100 {
		return fmt.Errorf("meta.overall_score %d out of range [0,100]", r.Meta.OverallScore)
	}
	if r.Meta.Analyst == "" {
		return fmt.Errorf("meta.analyst is empty")
	}
	if r.Meta.ToolVersion == "" {
		return fmt.Errorf("meta.tool_version is empty")
	}
	if r.ExecutiveSummary.SummaryParagraph == "" {
		return fmt.Errorf("executive_summary.summary_paragraph is empty")
	}
	if r.ExecutiveSummary.Highlights == nil {
		return fmt.Errorf("executive_summary.highlights is nil")
	}

	findings := map[string]Finding{
		"content_quality":        r.OverallFindings.ContentQuality,
		"structure":              r.OverallFindings.Structure,
		"authority_signals":      r.OverallFindings.AuthoritySignals,
		"ai_agent_compatibility": r.OverallFindings.AgentCompatibility,
	}
	for name, f := range findings {
		if f.Score < 1 || f.Score > 5 {
			return fmt.Errorf("overall_findings.%s.score %d out of range [1,5]", name, f.Score)
		}
		if f.Notes == "" {
			return fmt.Errorf("overall_findings.%s.notes is empty", name)
		}
	}
	if r.OverallFindings.Impact == "" {
		return fmt.Errorf("overall_findings.impact is empty")
	}
	if r.OverallFindings.CommonThemes == nil {
		return fmt.Errorf("overall_findings.common_themes is nil")
	}

	lists := map[string][]string{
		"strengths.brand_domain_trust":      r.Strengths.BrandDomainTrust,
		"strengths.navigation_layout":       r.Strengths.NavigationLayout,
		"strengths.technical_signals":       r.Strengths.TechnicalSignals,
		"weaknesses.content_depth":          r.Weaknesses.ContentDepth,
		"weaknesses.authority_trust":        r.Weaknesses.AuthorityTrust,
		"weaknesses.semantic_accessibility": r.Weaknesses.SemanticAccessibility,
		"weaknesses.ux_friction":            r.Weaknesses.UXFriction,
	}
	for name, list := range lists {
		if list == nil {
			return fmt.Errorf("%s is nil", name)
		}
	}

	if r.Recommendations == nil {
		return fmt.Errorf("recommendations is nil")
	}
	if len(r.Recommendations) > MaxRecommendations {
		return fmt.Errorf("recommendations has %d items, max %d", len(r.Recommendations), MaxRecommendations)
	}
	for i, rec := range r.Recommendations {
		if rec.Action == "" {
			return fmt.Errorf("recommendations[%d].action is empty", i)
		}
	}

	if r.BottomLine == "" {
		return fmt.Errorf("bottom_line is empty")
	}
	return nil
}
