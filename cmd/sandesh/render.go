package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sonnes/sandesh/core"
	"github.com/urfave/cli/v3"
)

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Convert a chat export to a transcript",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Export format (telegram)",
				Value: "telegram",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "Path to a single export document",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Path to an export directory (all messages*.html files)",
			},
			&cli.StringFlag{
				Name:  "o",
				Usage: "Output format: terminal, json, html",
				Value: "terminal",
			},
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Show only messages matching this query",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a := newApp()

			r, err := a.reader(cmd.String("format"))
			if err != nil {
				return err
			}

			export, err := readExport(r, cmd)
			if err != nil {
				return err
			}

			if q := cmd.String("search"); q != "" {
				export.Messages = core.Filter(export.Messages, q)
			}

			if len(export.Messages) == 0 {
				fmt.Fprintln(os.Stderr, "no messages found")
				return nil
			}

			rnd, err := a.renderer(cmd.String("o"))
			if err != nil {
				return err
			}

			if err := rnd.Render(os.Stdout, export); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return nil
		},
	}
}
