package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("COMBOBOX_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Fruit", cfg.Combobox.Label)
	require.False(t, cfg.Combobox.AutoSelectFirst)
	require.Equal(t, "list", cfg.Combobox.Autocomplete)
	require.Equal(t, SourceSQLite, cfg.Source.Kind)
	require.Equal(t, "fruit", cfg.Source.Collection)
	require.NotEmpty(t, cfg.Database.Path)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[combobox]
label = "Pick"
auto_select_first = true
autocomplete = "BOTH"

[source]
kind = "static"
items = ["Apple", "Banana"]
typo_distance = 1
`), 0o644))
	t.Setenv("COMBOBOX_CONFIG", path)
	t.Setenv("COMBOBOX_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Pick", cfg.Combobox.Label)
	require.True(t, cfg.Combobox.AutoSelectFirst)
	require.Equal(t, "both", cfg.Combobox.Autocomplete)
	require.Equal(t, []string{"Apple", "Banana"}, cfg.Source.Items)
	require.Equal(t, 1, cfg.Source.TypoDistance)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Config{
		Combobox: ComboboxConfig{Autocomplete: "inline"},
		Source:   SourceConfig{Kind: SourceStatic, TypoDistance: -1},
		Log:      LogConfig{Level: "loud"},
	}
	err := cfg.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 4)
	require.Contains(t, err.Error(), "combobox.autocomplete")
	require.Contains(t, err.Error(), "source.items")
	require.Contains(t, err.Error(), "source.typo_distance")
	require.Contains(t, err.Error(), "log.level")
}

func TestValidateSourceKinds(t *testing.T) {
	base := Config{Combobox: ComboboxConfig{Autocomplete: "list"}, Log: LogConfig{Level: "info"}}

	c := base
	c.Source = SourceConfig{Kind: SourceYAML}
	require.ErrorContains(t, c.Validate(), "source.file")

	c.Source = SourceConfig{Kind: SourceJSON, File: "fruit.json"}
	require.NoError(t, c.Validate())

	c.Source = SourceConfig{Kind: SourceSQLite}
	require.ErrorContains(t, c.Validate(), "database.path")

	c.Source = SourceConfig{Kind: "csv"}
	require.ErrorContains(t, c.Validate(), "unknown kind")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("COMBOBOX_CONFIG", path)

	want := Config{
		Combobox: ComboboxConfig{Label: "Fruit", AutoSelectFirst: true, Autocomplete: "both"},
		Source:   SourceConfig{Kind: SourceStatic, Items: []string{"Fig"}, Collection: "fruit"},
		Database: DatabaseConfig{Path: filepath.Join(t.TempDir(), "c.db")},
		Log:      LogConfig{Level: "warn"},
	}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, want.Combobox, got.Combobox)
	require.Equal(t, want.Source.Items, got.Source.Items)
	require.Equal(t, want.Database.Path, got.Database.Path)
	require.Equal(t, "warn", got.Log.Level)
}
