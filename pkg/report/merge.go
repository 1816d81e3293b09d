package report

import "github.com/logicgraphy/zeo/models"

// The partial* types mirror the report shape with optional fields, so
// the merge works on field presence instead of string-keyed maps. A
// field the model omitted, left empty, or put out of range keeps its
// default.

type partialReport struct {
	Meta             *partialMeta             `json:"meta"`
	ExecutiveSummary *partialExecutiveSummary `json:"executive_summary"`
	OverallFindings  *partialOverallFindings  `json:"overall_findings"`
	Strengths        *partialStrengths        `json:"strengths"`
	Weaknesses       *partialWeaknesses       `json:"weaknesses"`
	Recommendations  []models.Recommendation  `json:"recommendations"`
	BottomLine       *string                  `json:"bottom_line"`
}

type partialMeta struct {
	ReportTitle  *string `json:"report_title"`
	Scope        *string `json:"scope"`
	AnalyzedAt   *string `json:"analyzed_at"`
	OverallScore *int    `json:"overall_score"`
	Analyst      *string `json:"analyst"`
	ToolVersion  *string `json:"tool_version"`
}

type partialExecutiveSummary struct {
	SummaryParagraph *string  `json:"summary_paragraph"`
	Highlights       []string `json:"highlights"`
}

type partialFinding struct {
	Score *int    `json:"score"`
	Notes *string `json:"notes"`
}

type partialOverallFindings struct {
	ContentQuality     *partialFinding `json:"content_quality"`
	Structure          *partialFinding `json:"structure"`
	AuthoritySignals   *partialFinding `json:"authority_signals"`
	AgentCompatibility *partialFinding `json:"ai_agent_compatibility"`
	Impact             *string         `json:"impact"`
	CommonThemes       []string        `json:"common_themes"`
}

type partialStrengths struct {
	BrandDomainTrust []string `json:"brand_domain_trust"`
	NavigationLayout []string `json:"navigation_layout"`
	TechnicalSignals []string `json:"technical_signals"`
}

type partialWeaknesses struct {
	ContentDepth          []string `json:"content_depth"`
	AuthorityTrust        []string `json:"authority_trust"`
	SemanticAccessibility []string `json:"semantic_accessibility"`
	UXFriction            []string `json:"ux_friction"`
}

// overlay applies every usable field of p over dst. dst starts as the
// fully-populated defaults document, so the result never has an empty
// required field regardless of how sparse p is.
func overlay(dst *models.Report, p *partialReport) {
	if p == nil {
		return
	}

	if p.Meta != nil {
		setString(&dst.Meta.ReportTitle, p.Meta.ReportTitle)
		setString(&dst.Meta.Scope, p.Meta.Scope)
		setString(&dst.Meta.AnalyzedAt, p.Meta.AnalyzedAt)
		setIntInRange(&dst.Meta.OverallScore, p.Meta.OverallScore, 0, 100)
		setString(&dst.Meta.Analyst, p.Meta.Analyst)
		setString(&dst.Meta.ToolVersion, p.Meta.ToolVersion)
	}

	if p.ExecutiveSummary != nil {
		setString(&dst.ExecutiveSummary.SummaryParagraph, p.ExecutiveSummary.SummaryParagraph)
		setList(&dst.ExecutiveSummary.Highlights, p.ExecutiveSummary.Highlights)
	}

	if p.OverallFindings != nil {
		overlayFinding(&dst.OverallFindings.ContentQuality, p.OverallFindings.ContentQuality)
		overlayFinding(&dst.OverallFindings.Structure, p.OverallFindings.Structure)
		overlayFinding(&dst.OverallFindings.AuthoritySignals, p.OverallFindings.AuthoritySignals)
		overlayFinding(&dst.OverallFindings.AgentCompatibility, p.OverallFindings.AgentCompatibility)
		setString(&dst.OverallFindings.Impact, p.OverallFindings.Impact)
		setList(&dst.OverallFindings.CommonThemes, p.OverallFindings.CommonThemes)
	}

	if p.Strengths != nil {
		setList(&dst.Strengths.BrandDomainTrust, p.Strengths.BrandDomainTrust)
		setList(&dst.Strengths.NavigationLayout, p.Strengths.NavigationLayout)
		setList(&dst.Strengths.TechnicalSignals, p.Strengths.TechnicalSignals)
	}

	if p.Weaknesses != nil {
		setList(&dst.Weaknesses.ContentDepth, p.Weaknesses.ContentDepth)
		setList(&dst.Weaknesses.AuthorityTrust, p.Weaknesses.AuthorityTrust)
		setList(&dst.Weaknesses.SemanticAccessibility, p.Weaknesses.SemanticAccessibility)
		setList(&dst.Weaknesses.UXFriction, p.Weaknesses.UXFriction)
	}

	if len(p.Recommendations) > 0 {
		dst.Recommendations = p.Recommendations
	}

	setString(&dst.BottomLine, p.BottomLine)
}

func overlayFinding(dst *models.Finding, p *partialFinding) {
	if p == nil {
		return
	}
	setIntInRange(&dst.Score, p.Score, 1, 5)
	setString(&dst.Notes, p.Notes)
}

func setString(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

func setIntInRange(dst *int, src *int, min, max int) {
	if src != nil && *src >= min && *src <= max {
		*dst = *src
	}
}

func setList(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = src
	}
}
