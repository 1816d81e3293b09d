// Package extractor turns a fetched page into a ContentRecord: the
// bounded, structured view of page content that scoring operates on.
package extractor

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"

	"github.com/logicgraphy/zeo/models"
	"github.com/logicgraphy/zeo/pkg/fetcher"
)

type Extractor struct {
	fetcher *fetcher.Fetcher
	logger  *slog.Logger
}

func New(f *fetcher.Fetcher, logger *slog.Logger) *Extractor {
	return &Extractor{fetcher: f, logger: logger}
}

// Extract fetches url and builds its ContentRecord. Each sub-extraction
// is best-effort: a malformed fragment leaves its field empty and the
// rest continue. Only a failed fetch yields nil, which callers swallow
// by dropping the page from the result set.
func (e *Extractor) Extract(ctx context.Context, pageURL string) *models.ContentRecord {
	resp, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		e.logger.Warn("failed to fetch page for extraction", "url", pageURL, "error", err)
		return nil
	}
	if !resp.OK() {
		e.logger.Warn("page returned error status", "url", pageURL, "status", resp.StatusCode)
		return nil
	}

	doc, err := resp.Document()
	if err != nil {
		e.logger.Warn("failed to parse page HTML", "url", pageURL, "error", err)
		return nil
	}

	rec := models.NewContentRecord(pageURL)

	rec.Title = truncate(normalizeText(doc.Find("title").First().Text()), models.MaxTitleLen)
	rec.Headings = collectText(doc, "h1,h2,h3,h4,h5,h6", models.MaxHeadings)
	rec.Paragraphs = collectText(doc, "p", models.MaxParagraphs)
	rec.ListItems = collectText(doc, "li", models.MaxListItems)
	rec.Meta = collectMeta(doc)
	rec.LinkedDataTypes = collectLinkedDataTypes(doc)
	rec.AnchorTexts = collectAnchorTexts(doc)

	e.enrich(rec, pageURL, string(resp.Body))

	return rec
}

// enrich adds readability metadata and a detected language. Both are
// optional extras; their absence leaves the record valid.
func (e *Extractor) enrich(rec *models.ContentRecord, pageURL, html string) {
	parsedURL, err := url.Parse(pageURL)
	if err == nil {
		parser := readability.NewParser()
		article, err := parser.Parse(strings.NewReader(html), parsedURL)
		if err == nil {
			rec.Author = normalizeText(article.Byline)
			rec.Excerpt = normalizeText(article.Excerpt)
			rec.SiteName = normalizeText(article.SiteName)
			if article.PublishedTime != nil {
				rec.Published = article.PublishedTime.Format("2006-01-02")
			}
		}
	}

	rec.Language = detectLanguage(strings.Join(rec.Paragraphs, " "))
}

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

// detectLanguage classifies text into an ISO-639-1 code, or returns ""
// when the text is too short or ambiguous. The detector is built once
// per process; loading language models is expensive.
func detectLanguage(text string) string {
	if len(text) < 40 {
		return ""
	}
	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English, lingua.Spanish, lingua.French,
				lingua.German, lingua.Portuguese, lingua.Italian,
				lingua.Dutch, lingua.Japanese,
			).
			Build()
	})
	language, ok := languageDetector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(language.IsoCode639_1().String())
}

// collectText gathers normalized element text for selector, keeping at
// most limit non-empty entries.
func collectText(doc *goquery.Document, selector string, limit int) []string {
	out := []string{}
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := normalizeText(s.Text())
		if text != "" {
			out = append(out, text)
		}
		return len(out) < limit
	})
	return out
}

// collectMeta maps meta name-or-property to content for tags that have
// both, capped at MaxMetaEntries. When the cap bites, entries are kept
// in sorted-key order so the result is stable across runs.
func collectMeta(doc *goquery.Document) map[string]string {
	all := map[string]string{}
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		key, ok := s.Attr("name")
		if !ok || key == "" {
			key, _ = s.Attr("property")
		}
		content, hasContent := s.Attr("content")
		if key == "" || !hasContent || content == "" {
			return
		}
		if _, seen := all[key]; !seen {
			all[key] = content
		}
	})

	if len(all) <= models.MaxMetaEntries {
		return all
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	capped := map[string]string{}
	for _, k := range keys[:models.MaxMetaEntries] {
		capped[k] = all[k]
	}
	return capped
}

// collectLinkedDataTypes parses every JSON-LD script block and gathers
// the @type values found anywhere in it, including nested @graph
// arrays. Malformed blocks are skipped. The result is deduplicated in
// first-seen order and capped.
func collectLinkedDataTypes(doc *goquery.Document) []string {
	types := []string{}
	seen := map[string]bool{}

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}
		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return
		}
		collectTypes(data, func(t string) {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		})
	})

	if len(types) > models.MaxLinkedDataTypes {
		types = types[:models.MaxLinkedDataTypes]
	}
	return types
}

// collectTypes walks decoded JSON-LD, emitting each @type string it
// finds. @type may be a string or an array of strings; @graph holds
// nested nodes.
func collectTypes(node any, emit func(string)) {
	switch n := node.(type) {
	case map[string]any:
		switch t := n["@type"].(type) {
		case string:
			emit(t)
		case []any:
			for _, item := range t {
				if s, ok := item.(string); ok {
					emit(s)
				}
			}
		}
		if graph, ok := n["@graph"].([]any); ok {
			for _, child := range graph {
				collectTypes(child, emit)
			}
		}
	case []any:
		for _, item := range n {
			collectTypes(item, emit)
		}
	}
}

// collectAnchorTexts gathers lower-cased anchor texts for supporting
// page detection, capped at MaxAnchorTexts.
func collectAnchorTexts(doc *goquery.Document) []string {
	out := []string{}
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := normalizeText(s.Text())
		if text != "" {
			out = append(out, strings.ToLower(text))
		}
		return len(out) < models.MaxAnchorTexts
	})
	return out
}

// normalizeText trims each line and collapses the result onto a single
// space-separated line.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

// truncate clips s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
