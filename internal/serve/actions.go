// Package serve implements the HTTP server command.
package serve

import (
	"fmt"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/logicgraphy/zeo/internal/server"
	"github.com/logicgraphy/zeo/models"
	"github.com/logicgraphy/zeo/pkg/crawler"
	"github.com/logicgraphy/zeo/pkg/extractor"
	"github.com/logicgraphy/zeo/pkg/fetcher"
	"github.com/logicgraphy/zeo/pkg/judge"
	"github.com/logicgraphy/zeo/pkg/logger"
	"github.com/logicgraphy/zeo/pkg/metrics"
	"github.com/logicgraphy/zeo/pkg/pipeline"
	"github.com/logicgraphy/zeo/pkg/store"
)

func Action(c *cli.Context) error {
	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if addr := c.String("listen"); addr != "" {
		config.ListenAddr = addr
	}

	level := config.LogLevel
	if c.Bool("quiet") {
		level = "error"
	}
	log := logger.New(os.Stderr, level)

	metrics.Init()

	st, err := store.Open(config.StorePath)
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

	handler := server.NewHandler(p, log)
	router := server.NewRouter(handler, log)

	log.Info("starting server", "addr", config.ListenAddr, "max_pages", config.MaxPages)
	if err := http.ListenAndServe(config.ListenAddr, router); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
