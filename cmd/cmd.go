// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// enrichFlags are shared by the run and tui commands.
func enrichFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:    "sheet",
			Aliases: []string{"s"},
			Usage:   "Google Sheet ID (defaults to the configured spreadsheet)",
		},
		&cli.StringFlag{
			Name:    "session",
			Aliases: []string{"i"},
			Usage:   "Instagram session ID (defaults to INSTAGRAM_SESSION_ID)",
		},
		&cli.BoolFlag{
			Name:    "test",
			Aliases: []string{"t"},
			Usage:   "Test mode - process only first row",
		},
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"f"},
			Usage:   "Force update of already processed rows",
		},
	}
}

// runCommand is the main enrichment operation.
func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "run",
		Aliases: []string{"enrich"},
		Usage:   "Enrich spreadsheet rows with profile lookup data",
		Flags: append(enrichFlags(),
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write a run report (json, csv, text)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Report output path",
			},
		),
		Action: r.Enrich,
	}
}

// tuiCommand returns the top-level TUI command for interactive runs.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for an enrichment run",
		Flags:   enrichFlags(),
		Action:  r.EnrichTUI,
	}
}

// sheetCommand handles spreadsheet inspection operations.
func sheetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sheet",
		Usage: "Spreadsheet operations",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Dump the fetched rows for debugging",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.StringFlag{
						Name:    "sheet",
						Aliases: []string{"s"},
						Usage:   "Google Sheet ID",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SheetShow,
			},
		},
	}
}

// authCommand handles authentication operations.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Google authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Run the OAuth2 flow and print a refresh token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Local callback address",
						Value: "localhost:3000",
					},
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the consent URL instead of opening a browser",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "status",
				Usage: "Verify credentials against the spreadsheet",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.StringFlag{
						Name:    "sheet",
						Aliases: []string{"s"},
						Usage:   "Google Sheet ID",
					},
				},
				Action: r.AuthStatus,
			},
		},
	}
}

// setupCommand handles setup operations.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write config.toml from the embedded example",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}
