// Package audit implements the one-shot analysis command.
package audit

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/logicgraphy/zeo/models"
	"github.com/logicgraphy/zeo/pkg/crawler"
	"github.com/logicgraphy/zeo/pkg/extractor"
	"github.com/logicgraphy/zeo/pkg/fetcher"
	"github.com/logicgraphy/zeo/pkg/judge"
	"github.com/logicgraphy/zeo/pkg/logger"
	"github.com/logicgraphy/zeo/pkg/pipeline"
	"github.com/logicgraphy/zeo/pkg/store"
)

// Action crawls and scores one site, printing the formatted report as
// indented JSON on stdout. The store lives in memory for the duration
// of the run.
func Action(c *cli.Context) error {
	rawURL := c.Args().First()
	if rawURL == "" {
		return fmt.Errorf("no URL provided; usage: zeo audit <url>")
	}

	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if n := c.Int("max-pages"); n > 0 {
		config.MaxPages = n
	}

	level := config.LogLevel
	if c.Bool("quiet") {
		level = "error"
	}
	log := logger.New(os.Stderr, level)

	st, err := store.Open(":memory:")
	if err != nil {
		return fmt.Errorf("failed to open analysis store: %w", err)
	}
	defer st.Close()

	llm := judge.NewClient(config.LLM)
	if !llm.Available() {
		log.Warn("LLM credential not configured, judge and formatting fall back to defaults")
	}

	crawl := crawler.New(fetcher.New(config.CrawlTimeout()), log)
	extract := extractor.New(fetcher.New(config.FetchTimeout()), log)
	p := pipeline.New(crawl, extract, llm, st, log, pipeline.Options{
		MaxPages: config.MaxPages,
		Workers:  config.WorkerCount,
	})

	rec, err := p.Analyze(c.Context, rawURL)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if rec.Report == nil {
		fmt.Fprintf(os.Stderr, "analysis %s: %s\n", rec.Status, rec.Summary)
		return fmt.Errorf("no report produced for %s", rec.URL)
	}

	out, err := json.MarshalIndent(rec.Report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
