package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// NewResolveCommand creates the resolve command.
func NewResolveCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	var outputFormat string

	cmd := &cobra.Command{
		Use:   "resolve <phrase>",
		Short: "Resolve a date phrase into a concrete interval",
		Long: `Resolve a natural-language date phrase into a concrete interval
without running a search.

Examples:
  mintel resolve "this week"
  mintel resolve "november 2025"
  mintel resolve yesterday -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, eng, err := deps.loadAndBuild()
			if err != nil {
				return err
			}

			phrase := strings.Join(args, " ")
			interval, ok := eng.Resolver().Resolve(phrase)
			if !ok {
				fmt.Fprintf(deps.Out, "No date phrase recognized in %q\n", phrase)
				return nil
			}

			resolved := struct {
				Phrase string    `json:"phrase"`
				Start  time.Time `json:"start"`
				End    time.Time `json:"end"`
			}{Phrase: phrase, Start: interval.Start, End: interval.End}

			format := resolveFormat(cfg, outputFormat)
			return output(deps.Out, format, resolved, func() error {
				fmt.Fprintf(deps.Out, "%q resolves to:\n", phrase)
				fmt.Fprintf(deps.Out, "  Start: %s\n", interval.Start.Format(time.RFC3339Nano))
				fmt.Fprintf(deps.Out, "  End:   %s\n", interval.End.Format(time.RFC3339Nano))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "output format: text, json, yaml")
	return cmd
}
