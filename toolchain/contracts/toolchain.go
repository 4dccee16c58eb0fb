package contracts

import (
	"context"

	"github.com/morler/texwatch/toolchain/models"
)

// IExecutor runs an external process in dir and captures its output.
// It must not return until the process has exited.
type IExecutor interface {
	Run(ctx context.Context, dir string, name string, args ...string) models.RawOutput
}

// IToolchainRunner drives the compiler and bibliography processor.
type IToolchainRunner interface {
	RunCompilePass(ctx context.Context, target models.WatchTarget) models.RawOutput
	RunBibliographyPass(ctx context.Context, target models.WatchTarget) models.RawOutput
	RunFullCycle(ctx context.Context, target models.WatchTarget) models.CompileCycle
}
