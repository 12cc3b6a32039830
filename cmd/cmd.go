// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// tuiCommand launches the interactive interface
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"ui"},
		Usage:   "Pick a mood and preview songs interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the interface is open",
				Value: "./tmp/moodtune-tui.log",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Don't record results in the history database",
			},
		},
		Action: r.TUI,
	}
}

// recommendCommand requests recommendations for one or more moods
func recommendCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "recommend",
		Aliases:   []string{"rec"},
		Usage:     "Get songs for one or more moods",
		ArgsUsage: "<mood> [mood...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "markdown",
				Usage: "Output Markdown",
			},
			&cli.BoolFlag{
				Name:  "text",
				Usage: "Output plain text",
			},
			&cli.StringFlag{
				Name:  "html",
				Usage: "Also write the song cards to an HTML file (single mood only)",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Requests per second when several moods are given (default from config)",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Don't record results in the history database",
			},
		},
		Action: r.Recommend,
	}
}

// presetsCommand lists preset moods
func presetsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "presets",
		Usage: "List preset moods",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Presets,
	}
}

// historyCommand handles saved recommendations
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Browse past recommendations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recent recommendations",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to show",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:      "show",
				Usage:     "Show the songs of a past recommendation",
				ArgsUsage: "<id|#>",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "markdown",
						Usage: "Output Markdown",
					},
				},
				Action: r.HistoryShow,
			},
			{
				Name:   "clear",
				Usage:  "Delete all saved recommendations",
				Action: r.HistoryClear,
			},
		},
	}
}

// previewCommand plays a single preview clip
func previewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     "Play a preview clip and wait for it to finish",
		ArgsUsage: "<preview-url>",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Action: r.Preview,
	}
}

// serveCommand runs the local replay backend
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Answer /recommend from saved history for offline use",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Address to listen on",
				Value: "127.0.0.1:8080",
			},
			&cli.StringFlag{
				Name:  "origin",
				Usage: "Allowed CORS origin for browser widgets (default any)",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand writes a config file and prepares the history database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a config file and initialize the history database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}
