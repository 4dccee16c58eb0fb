package cmd

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, strings.NewReader(""), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeSource(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "paper.tex")
	require.NoError(t, os.WriteFile(path, []byte("\\documentclass{article}\n\\begin{document}hi\\end{document}\n"), 0o644))
	return path
}

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

func TestExecute_MissingSourceIsUsageError(t *testing.T) {
	code, _, stderr := run(t)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "missing source file")
	assert.Contains(t, stderr, "Usage:")
}

func TestExecute_TooManyArguments(t *testing.T) {
	code, _, stderr := run(t, "a.tex", "out", "extra")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "at most 2 arguments")
}

func TestExecute_SourceNotFound(t *testing.T) {
	code, _, stderr := run(t, filepath.Join(t.TempDir(), "nope.tex"))

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "not found")
	assert.NotContains(t, stderr, "Usage:")
}

func TestExecute_SourceIsDirectory(t *testing.T) {
	code, _, stderr := run(t, t.TempDir())

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "is a directory")
}

func TestExecute_Version(t *testing.T) {
	code, stdout, _ := run(t, "--version")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "texwatch version")
}

func TestResolveTarget_DefaultsAndCreatesOutputDir(t *testing.T) {
	source := writeSource(t)

	target, err := resolveTarget(afero.NewOsFs(), []string{source})
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(source), target.OutputDirectory)

	out := filepath.Join(t.TempDir(), "build", "pdf")
	target, err = resolveTarget(afero.NewOsFs(), []string{source, out})
	require.NoError(t, err)
	assert.Equal(t, out, target.OutputDirectory)
	assert.DirExists(t, out)
}

func TestSnapshotCommand(t *testing.T) {
	source := writeSource(t)

	code, stdout, stderr := run(t, "snapshot", source, "--color", "off")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Saved snapshot:")
	assert.NotContains(t, stdout, "Saved output:")

	entries, err := os.ReadDir(filepath.Join(filepath.Dir(source), "history"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "paper_"))
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".tex"))
}

func TestCompileCommand_Success(t *testing.T) {
	requireTool(t, "true")
	source := writeSource(t)

	code, stdout, stderr := run(t, "compile", source, "--compiler", "true", "--bibliography", "true", "--color", "off")

	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "PDF updated in")
}

func TestCompileCommand_FailureExitsNonZero(t *testing.T) {
	requireTool(t, "false")
	source := writeSource(t)

	code, stdout, _ := run(t, "compile", source, "--compiler", "false", "--bibliography", "true", "--color", "off")

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "false exited with status 1")
	assert.NotContains(t, stdout, "PDF updated")
}

func TestWatchCommand_StopsOnCancel(t *testing.T) {
	requireTool(t, "true")
	source := writeSource(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	code := Execute(ctx, []string{source, "--compiler", "true", "--bibliography", "true", "--notify=false", "--color", "off"}, strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Watching paper.tex for changes")
	assert.Contains(t, stdout.String(), "Stopped.")
	assert.Contains(t, stdout.String(), "Compiles: 0")
	assert.DirExists(t, filepath.Join(filepath.Dir(source), "history"))
}
