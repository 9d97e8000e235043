package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWithoutOverridesReturnsDefaults(t *testing.T) {
	opts := Resolve(nil)

	assert.Equal(t, "suggestableUrl", opts.DataURLAttribute)
	assert.Equal(t, "suggestable-container", opts.ContainerClass)
	assert.Equal(t, "suggestable-item", opts.ItemClass)
	assert.Equal(t, "suggestable-item-active", opts.ItemActiveClass)
	assert.Equal(t, "suggestable-term", opts.TermClass)
	assert.Equal(t, "suggestable-suggest", opts.SuggestClass)
	assert.Equal(t, " — ", opts.DelimiterText)
	assert.Equal(t, "suggestable-delimiter", opts.DelimiterClass)
	assert.Equal(t, "suggestable-text", opts.TextClass)
	assert.Equal(t, 3, opts.TermMinLength)
	assert.Zero(t, opts.CacheSize)
	assert.Zero(t, opts.Timeout)
	assert.Empty(t, opts.Extra)
}

func TestResolveOverlaysSuppliedKeys(t *testing.T) {
	opts := Resolve(map[string]any{
		KeyItemClass:     "row",
		KeyTermMinLength: int64(1),
		KeyTimeout:       "250ms",
		KeyCacheSize:     2,
	})

	assert.Equal(t, "row", opts.ItemClass)
	assert.Equal(t, 1, opts.TermMinLength)
	assert.Equal(t, 250*time.Millisecond, opts.Timeout)
	assert.Equal(t, 2, opts.CacheSize)
	// untouched keys keep their defaults
	assert.Equal(t, "suggestable-term", opts.TermClass)
}

func TestResolvePreservesUnknownKeys(t *testing.T) {
	opts := Resolve(map[string]any{"animation": "fade"})
	assert.Equal(t, "fade", opts.Extra["animation"])
}

func TestResolveIgnoresWrongTypes(t *testing.T) {
	opts := Resolve(map[string]any{
		KeyTermMinLength: "five",
		KeyItemClass:     42,
	})

	assert.Equal(t, 3, opts.TermMinLength)
	assert.Equal(t, "suggestable-item", opts.ItemClass)
}

func TestResolveAcceptsLegacyDataURLKey(t *testing.T) {
	opts := Resolve(map[string]any{"data-url": "endpoint"})
	assert.Equal(t, "endpoint", opts.DataURLAttribute)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := NewConfigServiceAt(filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
version = 1

[widget]
term-min-length = 2
item-class = "row"

[log]
file = "x.log"
level = "debug"

[[field]]
id = "city"
label = "City"
url = "http://localhost:8080/suggest"
`), 0o644))

	cfg, err := NewConfigServiceAt(path).Load()
	require.NoError(t, err)

	opts := cfg.Options()
	assert.Equal(t, 2, opts.TermMinLength)
	assert.Equal(t, "row", opts.ItemClass)
	assert.Equal(t, "debug", cfg.Log.Level)
	require.Len(t, cfg.Fields, 1)
	assert.Equal(t, "city", cfg.Fields[0].ID)
	assert.Equal(t, "http://localhost:8080/suggest", cfg.Fields[0].URL)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: 1
widget:
  term-min-length: 4
  delimiter-text: " | "
field:
  - id: q
    url: http://example.test/s
`), 0o644))

	cfg, err := NewConfigServiceAt(path).Load()
	require.NoError(t, err)

	opts := cfg.Options()
	assert.Equal(t, 4, opts.TermMinLength)
	assert.Equal(t, " | ", opts.DelimiterText)
	require.Len(t, cfg.Fields, 1)
	assert.Equal(t, "q", cfg.Fields[0].ID)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigServiceAt(path)

	cfg := DefaultConfig()
	cfg.Fields = []Field{{ID: "q", Label: "Query", URL: "http://example.test/s"}}
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.Fields, loaded.Fields)
	assert.Equal(t, cfg.Log, loaded.Log)
}

func TestLoadFromPathRejectsBadSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = = 1"), 0o644))

	_, err := NewConfigServiceAt(path).LoadFromPath(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestParseField(t *testing.T) {
	f, err := ParseField("Home City = http://localhost:8080/suggest")
	require.NoError(t, err)
	assert.Equal(t, Field{ID: "home-city", Label: "Home City", URL: "http://localhost:8080/suggest"}, f)

	for _, bad := range []string{"", "city", "=http://x", "city="} {
		_, err := ParseField(bad)
		assert.Error(t, err, bad)
	}
}
