// Package heuristics computes the structural signal set from a
// ContentRecord. Scoring here is a pure function of the record, with
// no network or model involvement.
package heuristics

import (
	"regexp"
	"sort"
	"strings"

	"github.com/logicgraphy/zeo/models"
)

// MaxTotal is the highest reachable Total: six binary signals plus two
// signals counting up to 2. Fusion normalizes against this value.
const MaxTotal = 10

var faqKeywords = []string{"faq", "frequently asked", "question"}

var qaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*what\b`),
	regexp.MustCompile(`^\s*how\b`),
	regexp.MustCompile(`^\s*why\b`),
	regexp.MustCompile(`\?\s*$`),
}

// recognizedSchemaTypes are the linked-data types that directly mark
// answer-oriented content.
var recognizedSchemaTypes = map[string]bool{
	"FAQPage": true,
	"HowTo":   true,
	"Article": true,
}

var supportKeywords = []string{
	"faq", "blog", "help", "support", "guide", "knowledge", "docs", "documentation",
}

// Score computes all eight structural signals for rec and their sum.
func Score(rec *models.ContentRecord) models.HeuristicScore {
	var hs models.HeuristicScore
	if rec == nil {
		return hs
	}

	for _, h := range rec.Headings {
		low := strings.ToLower(h)
		for _, kw := range faqKeywords {
			if strings.Contains(low, kw) {
				hs.FAQFormatting = 1
				break
			}
		}
		if hs.FAQFormatting == 1 {
			break
		}
	}

	for _, p := range rec.Paragraphs {
		low := strings.ToLower(p)
		for _, pat := range qaPatterns {
			if pat.MatchString(low) {
				hs.QAText = 1
				break
			}
		}
		if hs.QAText == 1 {
			break
		}
	}

	if len(rec.Headings) > 0 {
		hs.SemanticMarkup++
	}
	if len(rec.ListItems) > 0 {
		hs.SemanticMarkup++
	}

	hs.AuthorMetadata = boolSignal(
		anyContains(rec.Paragraphs, "author", "published") ||
			anyKeyContains(rec.Meta, "author"))

	hs.StructuredData = boolSignal(
		anyContains(rec.Paragraphs, "schema.org", "json-ld") ||
			anyKeyHasPrefix(rec.Meta, "og:", "twitter:"))

	for _, t := range rec.LinkedDataTypes {
		if recognizedSchemaTypes[t] {
			hs.JSONLDSchema = 1
			break
		}
	}

	if n := len(rec.Title); n >= 20 && n <= models.MaxTitleLen {
		hs.MetaQuality++
	}
	if desc, ok := metaDescription(rec.Meta); ok {
		if n := len(desc); n >= 50 && n <= 320 {
			hs.MetaQuality++
		}
	}

	for _, text := range rec.AnchorTexts {
		for _, kw := range supportKeywords {
			if strings.Contains(text, kw) {
				hs.SupportingPagesLinked = 1
				break
			}
		}
		if hs.SupportingPagesLinked == 1 {
			break
		}
	}

	hs.Total = hs.FAQFormatting + hs.QAText + hs.StructuredData + hs.JSONLDSchema +
		hs.AuthorMetadata + hs.SemanticMarkup + hs.SupportingPagesLinked + hs.MetaQuality

	return hs
}

// metaDescription finds the first case-insensitive "description" meta
// entry. Keys are scanned in sorted order so the pick is stable.
func metaDescription(meta map[string]string) (string, bool) {
	if v, ok := meta["description"]; ok {
		return v, true
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.EqualFold(k, "description") {
			return meta[k], true
		}
	}
	return "", false
}

func anyContains(texts []string, substrings ...string) bool {
	for _, t := range texts {
		low := strings.ToLower(t)
		for _, sub := range substrings {
			if strings.Contains(low, sub) {
				return true
			}
		}
	}
	return false
}

func anyKeyContains(meta map[string]string, sub string) bool {
	for k := range meta {
		if strings.Contains(strings.ToLower(k), sub) {
			return true
		}
	}
	return false
}

func anyKeyHasPrefix(meta map[string]string, prefixes ...string) bool {
	for k := range meta {
		low := strings.ToLower(k)
		for _, p := range prefixes {
			if strings.HasPrefix(low, p) {
				return true
			}
		}
	}
	return false
}

func boolSignal(b bool) int {
	if b {
		return 1
	}
	return 0
}
