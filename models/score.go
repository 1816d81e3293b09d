package models

// HeuristicScore holds the fixed structural signal set computed from a
// ContentRecord. Binary signals are 0 or 1; SemanticMarkup and
// MetaQuality count up to 2 each, so Total ranges 0-10.
type HeuristicScore struct {
	FAQFormatting         int `json:"faq_formatting"`
	QAText                int `json:"qa_text"`
	StructuredData        int `json:"structured_data"`
	JSONLDSchema          int `json:"jsonld_schema"`
	AuthorMetadata        int `json:"author_metadata"`
	SemanticMarkup        int `json:"semantic_markup"`
	SupportingPagesLinked int `json:"supporting_pages_linked"`
	MetaQuality           int `json:"meta_quality"`
	Total                 int `json:"total_score"`
}

// Judge category keys, in presentation order.
const (
	CategoryContentQuality        = "content_quality"
	CategoryStructureOptimization = "structure_optimization"
	CategoryAuthorityTrust        = "authority_trust"
	CategoryAgentCompatibility    = "ai_agent_compatibility"
)

// JudgeCategories lists the fixed categories the judge scores.
var JudgeCategories = []string{
	CategoryContentQuality,
	CategoryStructureOptimization,
	CategoryAuthorityTrust,
	CategoryAgentCompatibility,
}

// CategoryScore is one judge category verdict: an integer 1-5 and a
// short reason.
type CategoryScore struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// JudgeScore holds per-category scores from the language-model judge.
// A nil category means the judge did not return that category in a
// usable form. A nil *JudgeScore means the judge was unavailable or its
// whole response was unparsable; fusion must treat that as the neutral
// default, not as zero.
type JudgeScore struct {
	Categories map[string]CategoryScore `json:"scores"`
}

// Category returns the score for key and whether it is present.
func (j *JudgeScore) Category(key string) (CategoryScore, bool) {
	if j == nil || j.Categories == nil {
		return CategoryScore{}, false
	}
	cs, ok := j.Categories[key]
	return cs, ok
}

// Values returns all present category scores in JudgeCategories order.
func (j *JudgeScore) Values() []int {
	var values []int
	for _, key := range JudgeCategories {
		if cs, ok := j.Category(key); ok {
			values = append(values, cs.Score)
		}
	}
	return values
}
