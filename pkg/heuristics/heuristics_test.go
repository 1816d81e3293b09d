package heuristics

import (
	"strings"
	"testing"

	"github.com/logicgraphy/zeo/models"
)

func record() *models.ContentRecord {
	return models.NewContentRecord("https://example.com")
}

func TestFAQFormatting(t *testing.T) {
	tests := []struct {
		name     string
		headings []string
		want     int
	}{
		{"faq heading", []string{"Frequently Asked Questions"}, 1},
		{"question heading", []string{"Top questions we get"}, 1},
		{"plain heading", []string{"About our company"}, 0},
		{"no headings", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := record()
			rec.Headings = tt.headings
			if got := Score(rec).FAQFormatting; got != tt.want {
				t.Errorf("FAQFormatting = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQAText(t *testing.T) {
	tests := []struct {
		name      string
		paragraph string
		want      int
	}{
		{"starts with what", "What is AEO?", 1},
		{"starts with how", "How do crawlers see your site", 1},
		{"starts with why", "Why structure matters a lot here", 1},
		{"ends with question mark", "Ready to get started?", 1},
		{"embedded what does not count", "Knowing what matters is key.", 0},
		{"plain statement", "We sell software.", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := record()
			rec.Paragraphs = []string{tt.paragraph}
			if got := Score(rec).QAText; got != tt.want {
				t.Errorf("QAText(%q) = %d, want %d", tt.paragraph, got, tt.want)
			}
		})
	}
}

func TestSemanticMarkupCounts(t *testing.T) {
	rec := record()
	if got := Score(rec).SemanticMarkup; got != 0 {
		t.Errorf("SemanticMarkup with no markup = %d, want 0", got)
	}

	rec.Headings = []string{"A heading"}
	if got := Score(rec).SemanticMarkup; got != 1 {
		t.Errorf("SemanticMarkup with headings only = %d, want 1", got)
	}

	rec.ListItems = []string{"an item"}
	if got := Score(rec).SemanticMarkup; got != 2 {
		t.Errorf("SemanticMarkup with headings and lists = %d, want 2", got)
	}
}

func TestAuthorMetadata(t *testing.T) {
	rec := record()
	rec.Paragraphs = []string{"Published on March 3 by our team."}
	if got := Score(rec).AuthorMetadata; got != 1 {
		t.Errorf("AuthorMetadata from paragraph = %d, want 1", got)
	}

	rec = record()
	rec.Meta = map[string]string{"article:author": "Jo"}
	if got := Score(rec).AuthorMetadata; got != 1 {
		t.Errorf("AuthorMetadata from meta key = %d, want 1", got)
	}
}

func TestStructuredDataSignal(t *testing.T) {
	rec := record()
	rec.Meta = map[string]string{"og:title": "x"}
	if got := Score(rec).StructuredData; got != 1 {
		t.Errorf("StructuredData from og: prefix = %d, want 1", got)
	}

	// Prefix match only: a key merely containing "og:" does not count.
	rec = record()
	rec.Meta = map[string]string{"blog:section": "x"}
	if got := Score(rec).StructuredData; got != 0 {
		t.Errorf("StructuredData from non-prefix key = %d, want 0", got)
	}

	rec = record()
	rec.Paragraphs = []string{"We embed schema.org markup everywhere."}
	if got := Score(rec).StructuredData; got != 1 {
		t.Errorf("StructuredData from paragraph mention = %d, want 1", got)
	}
}

func TestJSONLDSchema(t *testing.T) {
	rec := record()
	rec.LinkedDataTypes = []string{"WebSite", "FAQPage"}
	if got := Score(rec).JSONLDSchema; got != 1 {
		t.Errorf("JSONLDSchema with FAQPage = %d, want 1", got)
	}

	rec.LinkedDataTypes = []string{"WebSite", "Organization"}
	if got := Score(rec).JSONLDSchema; got != 0 {
		t.Errorf("JSONLDSchema without recognized type = %d, want 0", got)
	}
}

func TestMetaQuality(t *testing.T) {
	rec := record()
	rec.Title = "A descriptive title of reasonable length"
	rec.Meta = map[string]string{
		"Description": strings.Repeat("d", 80),
	}
	if got := Score(rec).MetaQuality; got != 2 {
		t.Errorf("MetaQuality = %d, want 2 (title and case-insensitive description)", got)
	}

	rec = record()
	rec.Title = "short"
	rec.Meta = map[string]string{"description": "too short"}
	if got := Score(rec).MetaQuality; got != 0 {
		t.Errorf("MetaQuality = %d, want 0", got)
	}
}

func TestSupportingPagesLinked(t *testing.T) {
	rec := record()
	rec.AnchorTexts = []string{"read our documentation"}
	if got := Score(rec).SupportingPagesLinked; got != 1 {
		t.Errorf("SupportingPagesLinked = %d, want 1", got)
	}

	rec.AnchorTexts = []string{"contact sales"}
	if got := Score(rec).SupportingPagesLinked; got != 0 {
		t.Errorf("SupportingPagesLinked = %d, want 0", got)
	}
}

func TestTotalIsSumOfSignals(t *testing.T) {
	rec := record()
	rec.Title = "A descriptive title of reasonable length"
	rec.Headings = []string{"Frequently Asked Questions"}
	rec.Paragraphs = []string{"What is AEO? Published by the author team using schema.org markup."}
	rec.ListItems = []string{"item"}
	rec.Meta = map[string]string{
		"description": strings.Repeat("d", 100),
		"og:type":     "article",
	}
	rec.LinkedDataTypes = []string{"FAQPage"}
	rec.AnchorTexts = []string{"visit the help center"}

	hs := Score(rec)
	sum := hs.FAQFormatting + hs.QAText + hs.StructuredData + hs.JSONLDSchema +
		hs.AuthorMetadata + hs.SemanticMarkup + hs.SupportingPagesLinked + hs.MetaQuality
	if hs.Total != sum {
		t.Errorf("Total = %d, want sum of signals %d", hs.Total, sum)
	}
	if hs.Total != MaxTotal {
		t.Errorf("Total = %d, want MaxTotal %d for a fully signalled record", hs.Total, MaxTotal)
	}
}

func TestScoreNilRecord(t *testing.T) {
	hs := Score(nil)
	if hs.Total != 0 {
		t.Errorf("Score(nil).Total = %d, want 0", hs.Total)
	}
}
