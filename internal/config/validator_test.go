package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Defaults(t *testing.T) {
	result := Check(Default())
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestCheck_Invalid(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "ftp://example.com"
	cfg.API.Timeout = 0
	cfg.API.Retries = -1
	cfg.Autocomplete.Threshold = 0
	cfg.Autocomplete.MaxVisible = 0
	cfg.Cache.SearchTTL = 0
	cfg.Cache.CurrentTTL = -1
	cfg.Log.Format = "xml"

	result := Check(cfg)
	assert.False(t, result.Valid)

	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{
		"api/base_url",
		"api/timeout",
		"api/retries",
		"autocomplete/threshold",
		"autocomplete/max_visible",
		"cache/search_ttl",
		"cache/current_ttl",
		"log/format",
	}, fields)
}

func TestValidate_FileNotFound(t *testing.T) {
	_, err := Validate(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestValidate_SyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("api: [oops"), 0644))

	result, err := Validate(path)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "syntax", result.Errors[0].Field)
}

func TestValidate_SemanticError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("autocomplete:\n  threshold: 0\n"), 0644))

	result, err := Validate(path)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "autocomplete/threshold", result.Errors[0].Field)
}
