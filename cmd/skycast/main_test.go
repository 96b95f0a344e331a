package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestShellCompletionEnabled(t *testing.T) {
	app := newApp()
	assert.True(t, app.EnableShellCompletion, "Shell completion should be enabled")
}

func TestCommandsRegistered(t *testing.T) {
	app := newApp()

	names := make([]string, 0, len(app.Commands))
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t,
		[]string{"ui", "search", "current", "serve", "status", "clean", "init", "validate", "edit", "schema"},
		names)
}

func TestGlobalParams_FromEnv(t *testing.T) {
	t.Setenv("WEATHER_API_KEY", "from-env")
	t.Setenv("SKYCAST_API_URL", "http://example.test/v1/")

	var got string
	var url string
	app := newApp()
	app.Commands = []*cli.Command{{
		Name: "probe",
		Action: func(_ context.Context, cmd *cli.Command) error {
			p := globalParams(cmd)
			got = p.APIKey
			url = p.APIURL
			return nil
		},
	}}

	require.NoError(t, app.Run(context.Background(), []string{"skycast", "probe"}))
	assert.Equal(t, "from-env", got)
	assert.Equal(t, "http://example.test/v1/", url)
}

func TestSearch_RequiresText(t *testing.T) {
	err := newApp().Run(context.Background(), []string{"skycast", "search"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search text required")
}

func TestSchemaCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schema.json")

	require.NoError(t, newApp().Run(context.Background(), []string{"skycast", "schema", "-o", out}))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"autocomplete"`)
}

func TestInitAndValidateCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	require.NoError(t, newApp().Run(context.Background(), []string{"skycast", "--config", path, "init"}))
	require.FileExists(t, path)
	require.NoError(t, newApp().Run(context.Background(), []string{"skycast", "validate", path}))
}
