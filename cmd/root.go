package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/morler/texwatch/config"
	"github.com/morler/texwatch/constants/lipgloss"
	"github.com/morler/texwatch/diagnostics"
	"github.com/morler/texwatch/logger"
	"github.com/morler/texwatch/session_stats"
	stats_contracts "github.com/morler/texwatch/session_stats/contracts"
	"github.com/morler/texwatch/snapshot"
	"github.com/morler/texwatch/toolchain"
	"github.com/morler/texwatch/toolchain/contracts"
	"github.com/morler/texwatch/toolchain/models"
	"github.com/morler/texwatch/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ErrUsage marks command-line mistakes; the caller prints usage and exits 1.
var ErrUsage = errors.New("usage error")

// RootDependencies is everything a command needs once arguments and configuration are resolved.
type RootDependencies struct {
	Config     *config.Config
	Target     models.WatchTarget
	HistoryDir string
	Runner     contracts.IToolchainRunner
	Snapshots  *snapshot.Manager
	Stats      stats_contracts.ISessionStats
	Fs         afero.Fs
	Out        io.Writer
	// Interactive is true when stdout is a terminal; it enables the spinner.
	Interactive bool
	Render      diagnostics.RenderOptions
}

// NewRootCommand builds the texwatch command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "texwatch <path/to/file.tex> [<path/to/output/directory>]",
		Short: "Recompile a LaTeX document whenever it changes.",
		Long: `texwatch watches a LaTeX source file and reruns pdflatex and bibtex every time
the file is saved, so the PDF in the output directory is always current. Errors and
warnings from the compiler are shown after every run.

While watching, type 's' and press Enter to save a timestamped copy of the source
and the current PDF into the 'history' directory next to the source file.`,
		Version:       config.DefaultConfig.Version,
		Args:          targetArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDependencies, err := handleRootCommand(cmd, args)
			if err != nil {
				return err
			}
			return handleWatchCommand(cmd.Context(), cmd.InOrStdin(), rootDependencies)
		},
	}

	config.InitFlags(rootCmd)

	rootCmd.AddCommand(newCompileCommand())
	rootCmd.AddCommand(newSnapshotCommand())

	return rootCmd
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	executed, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	if errors.Is(err, ErrUsage) {
		if executed == nil {
			executed = rootCmd
		}
		fmt.Fprintln(stderr, lipgloss.Red.Render(err.Error()))
		fmt.Fprint(stderr, executed.UsageString())
		return 1
	}
	if !errors.Is(err, ErrCompileFailed) {
		fmt.Fprintln(stderr, lipgloss.Red.Render(fmt.Sprintf("Error: %v", err)))
	}
	return 1
}

// targetArgs accepts a source path and an optional output directory.
func targetArgs(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) < 1:
		return fmt.Errorf("%w: missing source file", ErrUsage)
	case len(args) > 2:
		return fmt.Errorf("%w: expected at most 2 arguments, got %d", ErrUsage, len(args))
	}
	return nil
}

// handleRootCommand resolves the watch target, loads configuration and wires
// the toolchain and snapshot collaborators.
func handleRootCommand(cmd *cobra.Command, args []string) (*RootDependencies, error) {
	fs := afero.NewOsFs()

	target, err := resolveTarget(fs, args)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfigs(cmd, target.SourceDir())
	if err != nil {
		return nil, err
	}
	logger.SetVerbose(cfg.Verbose)

	interactive := utils.IsTerminal(os.Stdout)
	colors := cfg.Color == "on" || (cfg.Color == "auto" && interactive)
	if !colors {
		lipgloss.DisableColors()
	}

	historyDir := cfg.HistoryDir
	if !filepath.IsAbs(historyDir) {
		historyDir = filepath.Join(target.SourceDir(), historyDir)
	}
	if err := fs.MkdirAll(historyDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	runner, err := toolchain.NewRunner(toolchain.Options{
		Compiler:     cfg.Compiler,
		Bibliography: cfg.Bibliography,
		Executor:     utils.NewCommandExecutor(),
		Fs:           fs,
	})
	if err != nil {
		return nil, err
	}

	return &RootDependencies{
		Config:      cfg,
		Target:      target,
		HistoryDir:  historyDir,
		Runner:      runner,
		Snapshots:   snapshot.NewManager(fs, cfg.OutputExt, nil),
		Stats:       session_stats.NewSessionStats(),
		Fs:          fs,
		Out:         cmd.OutOrStdout(),
		Interactive: interactive,
		Render: diagnostics.RenderOptions{
			Highlight: colors,
			Theme:     cfg.Theme,
		},
	}, nil
}

// resolveTarget turns the positional arguments into absolute paths, creating
// an explicitly given output directory if needed.
func resolveTarget(fs afero.Fs, args []string) (models.WatchTarget, error) {
	sourcePath, err := filepath.Abs(args[0])
	if err != nil {
		return models.WatchTarget{}, fmt.Errorf("invalid source path %q: %w", args[0], err)
	}

	info, err := fs.Stat(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.WatchTarget{}, fmt.Errorf("file '%s' not found", args[0])
		}
		return models.WatchTarget{}, fmt.Errorf("cannot access '%s': %w", args[0], err)
	}
	if info.IsDir() {
		return models.WatchTarget{}, fmt.Errorf("'%s' is a directory, not a source file", args[0])
	}

	outputDir := filepath.Dir(sourcePath)
	if len(args) > 1 {
		outputDir, err = filepath.Abs(args[1])
		if err != nil {
			return models.WatchTarget{}, fmt.Errorf("invalid output directory %q: %w", args[1], err)
		}
		if err := fs.MkdirAll(outputDir, 0o755); err != nil {
			return models.WatchTarget{}, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	return models.WatchTarget{SourcePath: sourcePath, OutputDirectory: outputDir}, nil
}
