package cmd

import (
	"fmt"

	"github.com/morler/texwatch/constants/lipgloss"
	"github.com/spf13/cobra"
)

func newSnapshotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <path/to/file.tex> [<path/to/output/directory>]",
		Short: "Save a timestamped copy of the source and its output, then exit.",
		Args:  targetArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDependencies, err := handleRootCommand(cmd, args)
			if err != nil {
				return err
			}

			snap, err := rootDependencies.Snapshots.TakeSnapshot(rootDependencies.Target, rootDependencies.HistoryDir)
			if err != nil {
				return err
			}

			out := rootDependencies.Out
			fmt.Fprintln(out, lipgloss.Green.Render(fmt.Sprintf("Saved snapshot: %s", snap.SourceCopy)))
			if snap.OutputCopy != "" {
				fmt.Fprintln(out, lipgloss.Green.Render(fmt.Sprintf("Saved output: %s", snap.OutputCopy)))
			}
			fmt.Fprintln(out, lipgloss.Gray.Render(fmt.Sprintf("xxh3 %s", snap.Checksum)))
			return nil
		},
	}
}
