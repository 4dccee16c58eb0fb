package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchTarget_Paths(t *testing.T) {
	target := WatchTarget{SourcePath: "/home/me/thesis/paper.tex", OutputDirectory: "/tmp/out"}

	assert.Equal(t, "paper", target.BaseName())
	assert.Equal(t, ".tex", target.SourceExt())
	assert.Equal(t, "/home/me/thesis", target.SourceDir())
	assert.Equal(t, "/tmp/out/paper.aux", target.AuxPath())
	assert.Equal(t, "/tmp/out/paper.pdf", target.OutputPath("pdf"))
	assert.Equal(t, "/tmp/out/paper.pdf", target.OutputPath(".pdf"))
}

func TestRawOutput_Failed(t *testing.T) {
	assert.False(t, RawOutput{Tool: "pdflatex"}.Failed())
	assert.True(t, RawOutput{Tool: "pdflatex", ExitCode: 1}.Failed())
	assert.Equal(t, "pdflatex exited with status 1", RawOutput{Tool: "pdflatex", ExitCode: 1}.Status())
	assert.Equal(t, "a\nb", RawOutput{Stdout: "a\n", Stderr: "b"}.Combined())
}
