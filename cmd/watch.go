package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/morler/texwatch/constants/lipgloss"
	"github.com/morler/texwatch/logger"
	"github.com/morler/texwatch/utils"
	"github.com/morler/texwatch/watcher"
)

func handleWatchCommand(parent context.Context, stdin io.Reader, rootDependencies *RootDependencies) error {
	// Create a context with cancel function
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	out := rootDependencies.Out
	target := rootDependencies.Target

	fmt.Fprintln(out, lipgloss.Info.Render(fmt.Sprintf("Output directory '%s'", target.OutputDirectory)))
	fmt.Fprintf(out, "Watching %s for changes... (Ctrl+C to quit)\n", filepath.Base(target.SourcePath))
	fmt.Fprintln(out, lipgloss.Gray.Render("Press 's' + Enter at any time to save a history snapshot."))

	var wake <-chan struct{}
	if rootDependencies.Config.Notify {
		notifier, err := watcher.NewNotifier(target.SourcePath)
		if err != nil {
			logger.WithError(err).Warnf("file notifications unavailable, polling only")
		} else {
			defer notifier.Close()
			wake = notifier.Wake()
		}
	}

	loop, err := watcher.NewLoop(watcher.Options{
		Target:       target,
		HistoryDir:   rootDependencies.HistoryDir,
		OutputExt:    rootDependencies.Config.OutputExt,
		PollInterval: rootDependencies.Config.PollInterval,
		Runner:       rootDependencies.Runner,
		Snapshots:    rootDependencies.Snapshots,
		Stats:        rootDependencies.Stats,
		Fs:           rootDependencies.Fs,
		Input:        utils.InputLines(ctx, stdin),
		Wake:         wake,
		Out:          out,
		Spinner:      rootDependencies.Interactive,
		Render:       rootDependencies.Render,
	})
	if err != nil {
		return err
	}

	if err := loop.Run(ctx); err != nil {
		return err
	}

	rootDependencies.Stats.DisplayStats(out)
	return nil
}
