package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/morler/texwatch/constants/lipgloss"
	"github.com/morler/texwatch/diagnostics"
	"github.com/spf13/cobra"
)

// ErrCompileFailed is returned by the compile command when the document has errors.
var ErrCompileFailed = errors.New("compilation reported errors")

func newCompileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compile <path/to/file.tex> [<path/to/output/directory>]",
		Short: "Run the full toolchain once and report diagnostics.",
		Long: `The 'compile' subcommand runs the same compile, bibliography and compile passes
as the watcher, prints the errors and warnings, and exits with status 1 if the
compiler reported any error. Useful in scripts and CI.`,
		Args: targetArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDependencies, err := handleRootCommand(cmd, args)
			if err != nil {
				return err
			}
			return handleCompileCommand(cmd.Context(), rootDependencies)
		},
	}
}

func handleCompileCommand(parent context.Context, rootDependencies *RootDependencies) error {
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	out := rootDependencies.Out
	fmt.Fprintln(out, "Compiling...")

	cycle := rootDependencies.Runner.RunFullCycle(ctx, rootDependencies.Target)
	if err := ctx.Err(); err != nil {
		fmt.Fprintln(out, lipgloss.Yellow.Render("Stopped."))
		return nil
	}

	diagnostics.Render(out, cycle.Diagnostics, rootDependencies.Render)

	if diagnostics.HasErrors(cycle.Diagnostics) {
		return ErrCompileFailed
	}

	fmt.Fprintln(out, lipgloss.Green.Render(fmt.Sprintf("%s updated in %s (%s)",
		strings.ToUpper(rootDependencies.Config.OutputExt), rootDependencies.Target.OutputDirectory, cycle.Duration.Round(time.Millisecond))))
	return nil
}
