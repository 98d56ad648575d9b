package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	root := &cli.Command{
		Name:  "sandesh",
		Usage: "Browse Telegram chat exports as readable, searchable transcripts",
		Description: `
                     _         _
  ___ __ _ _ _  __| |___ ___| |_
 (_-</ _' | ' \/ _' / -_|_-< ' \
 /__/\__,_|_||_\__,_\___/__/_||_|

 The messenger of messages — turning chat exports into something readable.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log level: debug, info, warn, error",
				Value: "error",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			renderCmd(),
			serveCmd(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
