package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/dwellkeys/internal/config"
	"github.com/aretw0/dwellkeys/internal/testutils"
	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, domain.DefaultSettings(), cfg.Settings())
	assert.Equal(t, language.Spanish, cfg.Tag())
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "dwellkeys.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := testutils.WriteFile(t, "dwellkeys.yaml", `
dwell: 1.5s
sound: false
suggestion_limit: 3
vocabulary:
  source: file
  path: words.yaml
  watch: true
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.Dwell)
	assert.Equal(t, domain.DefaultCooldown, cfg.Cooldown, "unset keys keep defaults")
	assert.False(t, cfg.Sound)
	assert.Equal(t, 3, cfg.SuggestionLimit)
	assert.Equal(t, config.VocabularyConfig{
		Source: config.SourceFile,
		Path:   "words.yaml",
		Watch:  true,
		Redis:  config.Default().Vocabulary.Redis,
	}, cfg.Vocabulary)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := testutils.WriteFile(t, "dwellkeys.yaml", "dwell: 1s\n")
	t.Setenv("DWELLKEYS_DWELL", "250ms")
	t.Setenv("DWELLKEYS_DWELL_ENABLED", "false")
	t.Setenv("DWELLKEYS_VOCABULARY_SOURCE", "redis")
	t.Setenv("DWELLKEYS_VOCABULARY_REDIS_ADDR", "redis:6380")
	t.Setenv("DWELLKEYS_HTTP_ADDR", ":9090")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Dwell)
	assert.False(t, cfg.DwellEnabled)
	assert.Equal(t, config.SourceRedis, cfg.Vocabulary.Source)
	assert.Equal(t, "redis:6380", cfg.Vocabulary.Redis.Addr)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "Negative dwell", content: "dwell: -1s"},
		{name: "Negative limit", content: "suggestion_limit: -2"},
		{name: "Bad language", content: "language: '!!'"},
		{name: "Unknown source", content: "vocabulary: {source: ftp}"},
		{name: "File without path", content: "vocabulary: {source: file}"},
		{name: "Malformed YAML", content: "dwell: [1"},
		{name: "Malformed env", content: "", env: map[string]string{"DWELLKEYS_COOLDOWN": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load(testutils.WriteFile(t, "dwellkeys.yaml", tt.content))
			assert.Error(t, err)
		})
	}
}
