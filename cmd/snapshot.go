package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSnapshotCommand creates the snapshot command with its subcommands.
func NewSnapshotCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect and reload the meeting snapshot",
	}

	cmd.AddCommand(newSnapshotInfoCommand(deps))
	cmd.AddCommand(newSnapshotReloadCommand(deps))

	return cmd
}

func newSnapshotInfoCommand(deps *Deps) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show counts for the loaded snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, eng, err := deps.loadAndBuild()
			if err != nil {
				return err
			}

			info := eng.Info(cmd.Context())

			format := resolveFormat(cfg, outputFormat)
			return output(deps.Out, format, info, func() error {
				w := deps.Out
				fmt.Fprintf(w, "Snapshot: %s\n\n", cfg.SnapshotPath)
				fmt.Fprintf(w, "  Meetings:    %d\n", info.Meetings)
				fmt.Fprintf(w, "  Documents:   %d\n", info.Documents)
				fmt.Fprintf(w, "  Transcripts: %d\n", info.Transcripts)
				fmt.Fprintf(w, "  Loaded:      %s\n", displayTime(cfg, info.LastUpdated))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "output format: text, json, yaml")
	return cmd
}

func newSnapshotReloadCommand(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Reload the snapshot from disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, eng, err := deps.loadAndBuild()
			if err != nil {
				return err
			}

			eng.Reload()
			info := eng.Info(cmd.Context())
			fmt.Fprintf(deps.Out, "Snapshot reloaded: %d meetings, %d transcripts\n",
				info.Meetings, info.Transcripts)
			return nil
		},
	}
}
