package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/skycast/internal/cache"
	"github.com/NikitaCOEUR/skycast/internal/config"
	"github.com/NikitaCOEUR/skycast/internal/logger"
	"github.com/NikitaCOEUR/skycast/internal/serrors"
)

func seedCache(t *testing.T) string {
	t.Helper()
	path := config.Default().CachePath()
	c, err := cache.New(path)
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, c.Put("search:car", []string{"Cart"}, now, time.Hour))
	require.NoError(t, c.Put("current:cart", map[string]string{"city": "Cart"}, now.Add(-2*time.Hour), time.Minute))
	return path
}

func TestClean_All(t *testing.T) {
	isolate(t)
	path := seedCache(t)

	out, err := captureOutput(t, func() error {
		return Clean(CleanParams{GlobalParams: GlobalParams{LogLevel: "error"}})
	})
	require.NoError(t, err)
	assert.Contains(t, out, "All cache entries cleared")

	c, err := cache.New(path)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestClean_CorruptCache(t *testing.T) {
	isolate(t)
	path := config.Default().CachePath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	out, err := captureOutput(t, func() error {
		return Clean(CleanParams{GlobalParams: GlobalParams{LogLevel: "error"}})
	})
	require.NoError(t, err)
	assert.Contains(t, out, "All cache entries cleared")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestUIOptions(t *testing.T) {
	cfg := config.Default()
	cfg.API.Timeout = 7 * time.Second
	cfg.Autocomplete.MaxVisible = 5

	opts := uiOptions(cfg, logger.Discard())
	assert.Equal(t, 7*time.Second, opts.Timeout)
	assert.Equal(t, 3, opts.Threshold)
	assert.Equal(t, 5, opts.MaxVisible)
	assert.NotNil(t, opts.Logger)
}

func TestClean_Expired(t *testing.T) {
	isolate(t)
	path := seedCache(t)

	out, err := captureOutput(t, func() error {
		return Clean(CleanParams{GlobalParams: GlobalParams{LogLevel: "error"}, Expired: true})
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 expired cache entries")

	c, err := cache.New(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	_, found := c.Get("search:car", time.Now())
	assert.True(t, found)
}

func TestStatus(t *testing.T) {
	isolate(t)
	seedCache(t)

	out, err := captureOutput(t, func() error {
		return Status(StatusParams{GlobalParams: GlobalParams{APIKey: "k"}})
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Version:")
	assert.Contains(t, out, "not found, using defaults")
	assert.Contains(t, out, "✓ Set")
	assert.Contains(t, out, "Total entries:")
	assert.Contains(t, out, "Expired entries:")
}

func TestSchema_PrintToStdout(t *testing.T) {
	out, err := captureOutput(t, func() error { return Schema("") })
	require.NoError(t, err)
	assert.Contains(t, out, `"autocomplete"`)
}

func TestSchema_WriteToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "skycast.schema.json")

	_, err := captureOutput(t, func() error { return Schema(outputFile) })
	require.NoError(t, err)

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	schemaStr := string(content)
	assert.Contains(t, schemaStr, `"$schema": "http://json-schema.org/draft-07/schema#"`)
	assert.Contains(t, schemaStr, `"title": "skycast configuration"`)
	assert.Contains(t, schemaStr, `"base_url"`)
	assert.Contains(t, schemaStr, `"threshold"`)
	assert.Contains(t, schemaStr, `"search_ttl"`)
}

func TestSchema_WriteToFile_InvalidPath(t *testing.T) {
	_, err := captureOutput(t, func() error { return Schema("/nonexistent/directory/schema.json") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write schema")
}

func TestValidate_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  key: abc\n  timeout: 5s\nautocomplete:\n  threshold: 3\n"), 0600))

	out, err := captureOutput(t, func() error { return Validate(path) })
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
}

func TestValidate_SemanticError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: text\ncache:\n  search_ttl: 0s\n"), 0600))

	out, err := captureOutput(t, func() error { return Validate(path) })
	require.Error(t, err)
	assert.Contains(t, out, "Configuration has errors")
	assert.Contains(t, out, "search_ttl")
}

func TestValidate_SchemaError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("autocomplete:\n  threshold: lots\n"), 0600))

	out, err := captureOutput(t, func() error { return Validate(path) })
	require.Error(t, err)
	assert.Contains(t, out, "Configuration has errors")
}

func TestValidate_Missing(t *testing.T) {
	err := Validate(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config file found")
}

func TestInit(t *testing.T) {
	dir := isolate(t)

	out, err := captureOutput(t, func() error { return Init("") })
	require.NoError(t, err)

	path := filepath.Join(dir, "config", "skycast", "config.yml")
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	err = Init("")
	require.Error(t, err)
	assert.Equal(t, "CONFIG_ERROR", serrors.CodeOf(err))
}

func TestEdit_CreatesAndOpens(t *testing.T) {
	dir := isolate(t)
	t.Setenv("EDITOR", "true")
	path := filepath.Join(dir, "edit.yml")

	out, err := captureOutput(t, func() error { return Edit(path) })
	require.NoError(t, err)
	assert.Contains(t, out, "Created new config")
	assert.FileExists(t, path)

	out, err = captureOutput(t, func() error { return Edit(path) })
	require.NoError(t, err)
	assert.Contains(t, out, "Opening config")
}

func TestServe_StopsWithContext(t *testing.T) {
	isolate(t)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := Serve(ctx, ServeParams{
		GlobalParams: GlobalParams{LogLevel: "error", APIKey: "k"},
		Addr:         "127.0.0.1:0",
	})
	assert.NoError(t, err)
}
