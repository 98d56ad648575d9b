package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	root := &cli.Command{Commands: []*cli.Command{renderCmd(), serveCmd()}}
	return root.Run(context.Background(), append([]string{"sandesh"}, args...))
}

func TestRenderCmdFlagValidation(t *testing.T) {
	err := run(t, "render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--file or --dir")

	err = run(t, "render", "--file", "a.html", "--dir", "export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only one")
}

func TestRenderCmdUnknownFormats(t *testing.T) {
	err := run(t, "render", "--file", "a.html", "--format", "whatsapp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown export format "whatsapp"`)
}

func TestAppRegistries(t *testing.T) {
	a := newApp()

	r, err := a.reader("telegram")
	require.NoError(t, err)
	assert.NotNil(t, r)

	for _, name := range []string{"terminal", "json", "html"} {
		rnd, err := a.renderer(name)
		require.NoError(t, err)
		assert.NotNil(t, rnd, name)
	}

	_, err = a.renderer("yaml")
	assert.Error(t, err)
}
