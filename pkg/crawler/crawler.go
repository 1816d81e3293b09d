// Package crawler discovers same-site pages with a bounded
// breadth-first traversal.
package crawler

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"

	"github.com/logicgraphy/zeo/pkg/fetcher"
)

// Normalize canonicalizes a user-supplied address into a fetchable URL.
// An empty input passes through unchanged; callers reject it
// separately. No other canonicalization happens here: trailing slashes
// and letter case are preserved because the crawler dedups on exact
// URL strings.
func Normalize(raw string) string {
	if raw == "" {
		return raw
	}
	u := strings.TrimSpace(raw)
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return u
}

// registrableDomain reduces a host to its registrable domain
// (eTLD+1), so www.example.com and blog.example.com count as the same
// site. Hosts the public-suffix list cannot resolve fall back to the
// bare host.
func registrableDomain(host string) string {
	host = strings.ToLower(host)
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}

type Crawler struct {
	fetcher *fetcher.Fetcher
	logger  *slog.Logger
}

func New(f *fetcher.Fetcher, logger *slog.Logger) *Crawler {
	return &Crawler{fetcher: f, logger: logger}
}

// Crawl walks the site breadth-first from startURL and returns the
// URLs of fetchable HTML pages in discovery order, at most maxPages of
// them. State is fresh per call. Individual request failures shrink
// the result set; a crawl that finds nothing degrades to the start URL
// alone so the pipeline never aborts here.
func (c *Crawler) Crawl(ctx context.Context, startURL string, maxPages int) []string {
	found := c.crawl(ctx, startURL, maxPages)
	if len(found) == 0 {
		c.logger.Warn("crawl found no reachable pages, degrading to start URL", "url", startURL)
		return []string{startURL}
	}
	return found
}

func (c *Crawler) crawl(ctx context.Context, startURL string, maxPages int) []string {
	start, err := url.Parse(startURL)
	if err != nil {
		return nil
	}
	site := registrableDomain(start.Hostname())

	frontier := []string{startURL}
	queued := map[string]bool{startURL: true}
	visited := map[string]bool{}
	var found []string

	for len(frontier) > 0 && len(found) < maxPages {
		current := frontier[0]
		frontier = frontier[1:]
		if visited[current] {
			continue
		}
		visited[current] = true

		resp, err := c.fetcher.Fetch(ctx, current)
		if err != nil {
			c.logger.Warn("page unreachable", "url", current, "error", err)
			continue
		}
		if !resp.OK() || !resp.IsHTML() {
			continue
		}

		found = append(found, current)

		doc, err := resp.Document()
		if err != nil {
			c.logger.Warn("failed to parse page for links", "url", current, "error", err)
			continue
		}

		base, err := url.Parse(current)
		if err != nil {
			continue
		}

		for _, href := range anchorHrefs(doc) {
			ref, err := url.Parse(href)
			if err != nil {
				continue
			}
			full := base.ResolveReference(ref)
			if full.Scheme != "http" && full.Scheme != "https" {
				continue
			}
			if registrableDomain(full.Hostname()) != site {
				continue
			}
			link := full.String()
			if visited[link] || queued[link] {
				continue
			}
			queued[link] = true
			frontier = append(frontier, link)
		}
	}

	return found
}

// anchorHrefs collects every non-empty href attribute on the page.
func anchorHrefs(doc *goquery.Document) []string {
	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && href != "" {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}
