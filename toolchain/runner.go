package toolchain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/shlex"
	"github.com/morler/texwatch/diagnostics"
	diag_models "github.com/morler/texwatch/diagnostics/models"
	"github.com/morler/texwatch/logger"
	"github.com/morler/texwatch/toolchain/contracts"
	"github.com/morler/texwatch/toolchain/models"
	"github.com/spf13/afero"
)

const (
	nonInteractiveFlag = "-interaction=nonstopmode"
	outputDirFlag      = "-output-directory"
)

// Options configures a toolchain Runner.
type Options struct {
	// Compiler is a shell-style command line such as "pdflatex" or "pdflatex -synctex=1".
	Compiler string
	// Bibliography is the bibliography processor command line, e.g. "bibtex".
	Bibliography string
	Executor     contracts.IExecutor
	// Fs is used to look for the cross-reference file between passes.
	Fs afero.Fs
	// Now defaults to time.Now.
	Now func() time.Time
}

type runner struct {
	compiler     []string
	bibliography []string
	executor     contracts.IExecutor
	fs           afero.Fs
	now          func() time.Time
}

// NewRunner validates the configured commands and returns a toolchain runner.
func NewRunner(opts Options) (contracts.IToolchainRunner, error) {
	compiler, err := splitCommand("compiler", opts.Compiler)
	if err != nil {
		return nil, err
	}
	bibliography, err := splitCommand("bibliography", opts.Bibliography)
	if err != nil {
		return nil, err
	}
	if opts.Executor == nil {
		return nil, fmt.Errorf("toolchain runner requires an executor")
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &runner{
		compiler:     compiler,
		bibliography: bibliography,
		executor:     opts.Executor,
		fs:           fs,
		now:          now,
	}, nil
}

func splitCommand(what string, command string) ([]string, error) {
	words, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("invalid %s command %q: %w", what, command, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%s command is empty", what)
	}
	return words, nil
}

// RunCompilePass runs the compiler once against the source file. It runs from the
// source directory so relative \input and \includegraphics paths resolve.
func (r *runner) RunCompilePass(ctx context.Context, target models.WatchTarget) models.RawOutput {
	args := append([]string{}, r.compiler[1:]...)
	args = append(args, nonInteractiveFlag, outputDirFlag, target.OutputDirectory, target.SourcePath)

	return r.executor.Run(ctx, target.SourceDir(), r.compiler[0], args...)
}

// RunBibliographyPass runs the bibliography processor on the base name from inside
// the output directory, where the compiler left the .aux file.
func (r *runner) RunBibliographyPass(ctx context.Context, target models.WatchTarget) models.RawOutput {
	args := append([]string{}, r.bibliography[1:]...)
	args = append(args, target.BaseName())

	return r.executor.Run(ctx, target.OutputDirectory, r.bibliography[0], args...)
}

// RunFullCycle runs compile, bibliography (only when the .aux file exists), and
// then compiles again until cross-references settle: three compiler passes with a
// bibliography pass, two without.
func (r *runner) RunFullCycle(ctx context.Context, target models.WatchTarget) models.CompileCycle {
	cycle := models.CompileCycle{Trigger: r.now()}

	compile := func() {
		cycle.Passes = append(cycle.Passes, models.Pass{Kind: models.PassCompile, Output: r.RunCompilePass(ctx, target)})
	}

	compile()

	if r.auxExists(target) && ctx.Err() == nil {
		cycle.Passes = append(cycle.Passes, models.Pass{Kind: models.PassBibliography, Output: r.RunBibliographyPass(ctx, target)})
		if ctx.Err() == nil {
			compile()
		}
		if ctx.Err() == nil {
			compile()
		}
	} else if ctx.Err() == nil {
		compile()
	}

	cycle.Diagnostics = collectDiagnostics(cycle.Passes)
	cycle.Duration = r.now().Sub(cycle.Trigger)

	logger.WithField("passes", len(cycle.Passes)).Debugf("cycle finished in %s", cycle.Duration)
	return cycle
}

func (r *runner) auxExists(target models.WatchTarget) bool {
	ok, err := afero.Exists(r.fs, target.AuxPath())
	if err != nil {
		logger.WithError(err).Warnf("checking %s", target.AuxPath())
		return false
	}
	return ok
}

// collectDiagnostics parses the bibliography pass and the final compile pass.
// Earlier compile passes are skipped: their undefined-reference warnings are
// resolved by the later passes.
func collectDiagnostics(passes []models.Pass) []diag_models.Diagnostic {
	var diags []diag_models.Diagnostic

	for _, p := range passes {
		if p.Kind == models.PassBibliography {
			diags = append(diags, passDiagnostics(p, diag_models.SevWarning)...)
		}
	}

	for i := len(passes) - 1; i >= 0; i-- {
		if passes[i].Kind == models.PassCompile {
			diags = append(diags, passDiagnostics(passes[i], diag_models.SevError)...)
			break
		}
	}

	return diags
}

// passDiagnostics parses one pass and, if the tool failed without printing an
// error marker, adds a diagnostic describing the failure at the given severity.
func passDiagnostics(p models.Pass, failure diag_models.Severity) []diag_models.Diagnostic {
	diags := diagnostics.Parse(p.Output.Combined())

	if p.Output.Failed() && !diagnostics.HasErrors(diags) {
		diags = append(diags, diag_models.Diagnostic{
			Severity: failure,
			Message:  p.Output.Status(),
		})
	}
	return diags
}
