package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "texwatch"}
	InitFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadConfigs_Defaults(t *testing.T) {
	cfg, err := LoadConfigs(newCommand(t), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "pdflatex", cfg.Compiler)
	assert.Equal(t, "bibtex", cfg.Bibliography)
	assert.Equal(t, "pdf", cfg.OutputExt)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, "history", cfg.HistoryDir)
	assert.True(t, cfg.Notify)
	assert.Equal(t, "auto", cfg.Color)
}

func TestLoadConfigs_FileNextToSource(t *testing.T) {
	dir := t.TempDir()
	content := "compiler: lualatex -synctex=1\nbibliography: biber\npoll_interval: 250ms\nnotify: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "texwatch-config.yaml"), []byte(content), 0o644))

	cfg, err := LoadConfigs(newCommand(t), dir)
	require.NoError(t, err)

	assert.Equal(t, "lualatex -synctex=1", cfg.Compiler)
	assert.Equal(t, "biber", cfg.Bibliography)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.False(t, cfg.Notify)
}

func TestLoadConfigs_Precedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "texwatch-config.json"), []byte(`{"compiler": "xelatex", "theme": "monokai"}`), 0o644))
	t.Setenv("TEXWATCH_THEME", "github")
	t.Setenv("TEXWATCH_HISTORY_DIR", "snapshots")

	cfg, err := LoadConfigs(newCommand(t, "--compiler", "pdflatex -shell-escape"), dir)
	require.NoError(t, err)

	// flag beats file, env beats file
	assert.Equal(t, "pdflatex -shell-escape", cfg.Compiler)
	assert.Equal(t, "github", cfg.Theme)
	assert.Equal(t, "snapshots", cfg.HistoryDir)
}

func TestLoadConfigs_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("output_ext = \".dvi\"\ncompiler = \"latex\"\n"), 0o644))

	cfg, err := LoadConfigs(newCommand(t, "--config", path), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "dvi", cfg.OutputExt)
	assert.Equal(t, "latex", cfg.Compiler)
}

func TestLoadConfigs_Errors(t *testing.T) {
	_, err := LoadConfigs(newCommand(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")), t.TempDir())
	assert.ErrorContains(t, err, "error reading config file")

	_, err = LoadConfigs(newCommand(t, "--config", "settings.ini"), t.TempDir())
	assert.ErrorContains(t, err, "unsupported config file")

	_, err = LoadConfigs(newCommand(t, "--color", "rainbow"), t.TempDir())
	assert.ErrorContains(t, err, "invalid color value")

	_, err = LoadConfigs(newCommand(t, "--poll_interval", "0s"), t.TempDir())
	assert.ErrorContains(t, err, "poll_interval must be positive")
}

func TestGetConfigFileType(t *testing.T) {
	assert.Equal(t, "yaml", GetConfigFileType("a.yml"))
	assert.Equal(t, "yaml", GetConfigFileType("a.yaml"))
	assert.Equal(t, "json", GetConfigFileType("a.json"))
	assert.Equal(t, "toml", GetConfigFileType("a.toml"))
	assert.Equal(t, "", GetConfigFileType("a.ini"))
}
