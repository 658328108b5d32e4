package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/mintel-cli/config"
	"github.com/otherjamesbrown/mintel-cli/pkg/engine"
)

// NewSearchCommand creates the search command.
func NewSearchCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	var (
		limit        int
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search meetings by keywords or date phrases",
		Long: `Search meetings from the loaded snapshot.

Queries containing a date phrase filter by date and sort newest first:
  this week, last week, today, yesterday, november 2025, 2024

Other queries match keywords against meeting titles, participants, and
transcripts, ranked by relevance.

Examples:
  # Meetings this week, split into past and upcoming
  mintel search "this week"

  # Meetings from a specific month
  mintel search "november 2025"

  # Keyword search across titles, participants, and transcripts
  mintel search "budget review"

  # JSON output for scripting
  mintel search "roadmap" -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, eng, err := deps.loadAndBuild()
			if err != nil {
				return err
			}

			if limit <= 0 {
				limit = cfg.SearchLimit
			}

			out, err := eng.Search(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}

			format := resolveFormat(cfg, outputFormat)
			return output(deps.Out, format, out, func() error {
				return renderSearchText(deps, cfg, out)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum results (default from config)")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "output format: text, json, yaml")

	return cmd
}

func renderSearchText(deps *Deps, cfg *config.CLIConfig, out *engine.SearchOutput) error {
	w := deps.Out

	if len(out.Results) == 0 && len(out.Upcoming) == 0 {
		fmt.Fprintf(w, "No meetings found matching %q\n", out.Query)
		return nil
	}

	if len(out.Upcoming) > 0 {
		fmt.Fprintf(w, "Upcoming (%d):\n\n", len(out.Upcoming))
		for _, r := range out.Upcoming {
			renderResult(deps, cfg, r)
		}
		if len(out.Results) > 0 {
			fmt.Fprintln(w)
		}
	}

	if len(out.Results) > 0 {
		if out.Interval != nil {
			header := "Meetings"
			if len(out.Upcoming) > 0 {
				header = "Past"
			}
			fmt.Fprintf(w, "%s (%d):\n\n", header, len(out.Results))
		} else {
			fmt.Fprintf(w, "Found %d meeting(s) matching %q:\n\n", len(out.Results), out.Query)
		}
		for _, r := range out.Results {
			renderResult(deps, cfg, r)
		}
	}

	return nil
}

func renderResult(deps *Deps, cfg *config.CLIConfig, r engine.Result) {
	w := deps.Out
	fmt.Fprintf(w, "  %s [%s]\n", r.Meeting.Title, r.Meeting.Source)
	if r.Meeting.Source != "calendar" {
		fmt.Fprintf(w, "    ID: %s\n", r.Meeting.ID)
	}
	fmt.Fprintf(w, "    Date: %s\n", displayTime(cfg, r.Meeting.Date))
	if len(r.Meeting.Participants) > 0 {
		fmt.Fprintf(w, "    Participants: %s\n", strings.Join(r.Meeting.Participants, ", "))
	}
	fmt.Fprintln(w)
}
