package main

import (
	"fmt"

	"github.com/sonnes/sandesh/core"
	"github.com/sonnes/sandesh/reader"
	"github.com/sonnes/sandesh/reader/telegram"
	"github.com/sonnes/sandesh/render"
	htmlrender "github.com/sonnes/sandesh/render/html"
	jsonrender "github.com/sonnes/sandesh/render/json"
	"github.com/sonnes/sandesh/render/terminal"
	"github.com/urfave/cli/v3"
)

// app holds reader and renderer registries used by CLI commands.
type app struct {
	readers   map[string]func() reader.Reader
	renderers map[string]func() render.Renderer
}

func newApp() *app {
	return &app{
		readers: map[string]func() reader.Reader{
			"telegram": func() reader.Reader { return &telegram.Reader{} },
		},
		renderers: map[string]func() render.Renderer{
			"terminal": func() render.Renderer { return terminal.New() },
			"json":     func() render.Renderer { return jsonrender.New() },
			"html":     func() render.Renderer { return htmlrender.New() },
		},
	}
}

func (a *app) reader(name string) (reader.Reader, error) {
	fn, ok := a.readers[name]
	if !ok {
		return nil, fmt.Errorf("unknown export format %q", name)
	}
	return fn(), nil
}

func (a *app) renderer(name string) (render.Renderer, error) {
	fn, ok := a.renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", name)
	}
	return fn(), nil
}

// readExport dispatches to the appropriate Reader method based on CLI flags.
// Exactly one of --file or --dir must be set.
func readExport(r reader.Reader, cmd *cli.Command) (*core.Export, error) {
	file := cmd.String("file")
	dir := cmd.String("dir")

	switch {
	case file != "" && dir != "":
		return nil, fmt.Errorf("only one of --file or --dir may be specified")
	case file != "":
		return r.ReadFile(file)
	case dir != "":
		return r.ReadDir(dir)
	default:
		return nil, fmt.Errorf("one of --file or --dir is required")
	}
}
