// Package main provides the mintel CLI entry point.
// mintel queries a point-in-time meeting snapshot: search, per-meeting
// lookups, and pattern analyses.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/otherjamesbrown/mintel-cli/cmd"
	"github.com/otherjamesbrown/mintel-cli/config"
	"github.com/otherjamesbrown/mintel-cli/pkg/buildinfo"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mintel",
	Short: "Meeting intelligence from your snapshot exports",
	Long: `mintel answers questions about your recorded meetings.

It loads a point-in-time snapshot export, normalizes the meetings,
documents, and transcripts inside it, and runs searches and analyses
over the result. The snapshot is read-only; reload picks up a newer
export.

COMMON WORKFLOWS:
  Find meetings:     mintel search "this week"  |  mintel search "budget"
  Inspect one:       mintel meeting show <id>  →  mintel meeting transcript <id>
  Spot patterns:     mintel analyze participants  |  mintel analyze frequency
  Check the data:    mintel snapshot info

Commands support --output json for structured output. Run
'mintel <command> --help' for flags and examples.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionOutputJSON bool

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := buildinfo.Get("mintel-cli")
		if versionOutputJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}
		fmt.Printf("mintel %s\n", buildinfo.String())
		fmt.Printf("go: %s\n", info.GoVersion)
		return nil
	},
}

// configCmd groups configuration subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mintel configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(cfg)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with current defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if err := config.SaveConfig(cfg); err != nil {
			return err
		}
		path, _ := config.ConfigPath()
		fmt.Printf("Config written to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cmd.NewSearchCommand(nil))
	rootCmd.AddCommand(cmd.NewAnalyzeCommand(nil))
	rootCmd.AddCommand(cmd.NewMeetingCommand(nil))
	rootCmd.AddCommand(cmd.NewResolveCommand(nil))
	rootCmd.AddCommand(cmd.NewSnapshotCommand(nil))
	rootCmd.AddCommand(cmd.NewAuthCommand(nil))

	versionCmd.Flags().BoolVar(&versionOutputJSON, "output-json", false, "Output as JSON")
	rootCmd.AddCommand(versionCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
