package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sonnes/sandesh/linkmeta"
	"github.com/sonnes/sandesh/server"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a chat export for browsing in a local web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Export format (telegram)",
				Value: "telegram",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Path to an export directory",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "Path to a single export document",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
				Value: 8080,
			},
			&cli.BoolFlag{
				Name:  "no-preload",
				Usage: "Skip warming the link preview cache on startup",
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
			if len(export.Messages) == 0 {
				slog.Warn("export contains no messages", "name", export.Name)
			}

			// One cache per serve session; it dies with the process.
			cache := linkmeta.New(linkmeta.Config{})
			srv := server.New(export, cache)
			if !cmd.Bool("no-preload") {
				srv.Preload()
			}

			addr := fmt.Sprintf(":%d", cmd.Int("port"))
			slog.Info("serving", "addr", "http://localhost"+addr, "messages", len(export.Messages))
			return http.ListenAndServe(addr, srv.Handler())
		},
	}
}
