package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/logicgraphy/zeo/internal/audit"
	"github.com/logicgraphy/zeo/internal/serve"
)

func main() {
	app := &cli.App{
		Name:  "zeo",
		Usage: "audit a website's answer-engine readiness",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to YAML config file (optional)",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the analysis HTTP API",
				Action: serve.Action,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen address, overrides config",
					},
				},
			},
			{
				Name:      "audit",
				Usage:     "analyze one site and print its report",
				ArgsUsage: "<url>",
				Action:    audit.Action,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max-pages",
						Usage: "page quota for the crawl, overrides config",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
