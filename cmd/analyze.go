package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/mintel-cli/pkg/engine"
	mterrors "github.com/otherjamesbrown/mintel-cli/pkg/errors"
)

// dateFlagLayout is the accepted format for --from/--to.
const dateFlagLayout = "2006-01-02"

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	var (
		fromFlag     string
		toFlag       string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "analyze <participants|frequency|topics>",
		Short: "Analyze patterns across meetings",
		Long: `Analyze patterns across all meetings in the snapshot.

Kinds:
  participants  Most active participants by meeting count
  frequency     Meetings per calendar month with the monthly average
  topics        Most common significant words from meeting titles

Examples:
  mintel analyze participants
  mintel analyze frequency --from 2025-01-01 --to 2025-06-30
  mintel analyze topics -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, eng, err := deps.loadAndBuild()
			if err != nil {
				return err
			}

			window, err := parseAnalysisRange(fromFlag, toFlag)
			if err != nil {
				return err
			}

			report, err := eng.Analyze(cmd.Context(), engine.AnalysisKind(args[0]), window)
			if mterrors.IsNoMeetings(err) {
				fmt.Fprintln(deps.Out, "No meetings match.")
				return nil
			}
			if err != nil {
				return err
			}

			format := resolveFormat(cfg, outputFormat)
			return output(deps.Out, format, report, func() error {
				return renderAnalysisText(deps, report)
			})
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&toFlag, "to", "", "end date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "output format: text, json, yaml")

	return cmd
}

// parseAnalysisRange converts date flags into an inclusive UTC window.
func parseAnalysisRange(from, to string) (engine.AnalysisRange, error) {
	var window engine.AnalysisRange

	if from != "" {
		t, err := time.Parse(dateFlagLayout, from)
		if err != nil {
			return window, fmt.Errorf("parsing --from: %w", err)
		}
		window.From = &t
	}
	if to != "" {
		t, err := time.Parse(dateFlagLayout, to)
		if err != nil {
			return window, fmt.Errorf("parsing --to: %w", err)
		}
		// Inclusive end: cover the whole named day.
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		window.To = &end
	}
	return window, nil
}

func renderAnalysisText(deps *Deps, report *engine.AnalysisReport) error {
	w := deps.Out

	switch report.Kind {
	case engine.AnalysisParticipants:
		fmt.Fprintf(w, "Participant Analysis (%d meetings)\n\n", report.MeetingCount)
		if len(report.Participants) == 0 {
			fmt.Fprintln(w, "No participant data found.")
			return nil
		}
		for _, p := range report.Participants {
			fmt.Fprintf(w, "  %-30s %d meetings\n", p.Name, p.Meetings)
		}

	case engine.AnalysisFrequency:
		fmt.Fprintf(w, "Meeting Frequency (%d meetings)\n\n", report.MeetingCount)
		for _, m := range report.Frequency {
			fmt.Fprintf(w, "  %s  %d meetings\n", m.Month, m.Count)
		}
		fmt.Fprintf(w, "\nAverage per month: %.1f\n", report.AveragePerMonth)

	case engine.AnalysisTopics:
		fmt.Fprintf(w, "Topic Analysis (%d meetings)\n\n", report.MeetingCount)
		if len(report.Topics) == 0 {
			fmt.Fprintln(w, "No significant topics found in meeting titles.")
			return nil
		}
		for _, topic := range report.Topics {
			fmt.Fprintf(w, "  %-30s %d mentions\n", topic.Topic, topic.Mentions)
		}
	}

	return nil
}
