package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewMeetingCommand creates the meeting command with its subcommands.
func NewMeetingCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "meeting",
		Short: "Inspect individual meetings",
		Long: `Inspect a single meeting: its details, transcript, or documents.

Examples:
  mintel meeting show 3b241101-e2bb-4255-8caf-4136c566a962
  mintel meeting transcript 3b241101-e2bb-4255-8caf-4136c566a962
  mintel meeting documents 3b241101-e2bb-4255-8caf-4136c566a962 -o json`,
	}

	cmd.AddCommand(newMeetingShowCommand(deps))
	cmd.AddCommand(newMeetingTranscriptCommand(deps))
	cmd.AddCommand(newMeetingDocumentsCommand(deps))

	return cmd
}

func newMeetingShowCommand(deps *Deps) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show <meeting-id>",
		Short: "Show meeting details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, eng, err := deps.loadAndBuild()
			if err != nil {
				return err
			}

			details, err := eng.MeetingByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			format := resolveFormat(cfg, outputFormat)
			return output(deps.Out, format, details, func() error {
				w := deps.Out
				m := details.Meeting
				fmt.Fprintf(w, "Meeting: %s\n\n", m.Title)
				fmt.Fprintf(w, "  ID: %s\n", m.ID)
				fmt.Fprintf(w, "  Date: %s\n", displayTime(cfg, m.Date))
				if len(m.Participants) > 0 {
					fmt.Fprintf(w, "  Participants: %s\n", strings.Join(m.Participants, ", "))
				}
				fmt.Fprintf(w, "  Type: %s\n", m.MeetingType)
				fmt.Fprintf(w, "  Source: %s\n", m.Source)
				if details.DocumentCount > 0 {
					fmt.Fprintf(w, "  Documents: %d\n", details.DocumentCount)
				}
				if details.HasTranscript {
					fmt.Fprintln(w, "  Transcript: available")
				}
				if len(details.Categories) > 0 {
					fmt.Fprintf(w, "  Categories: %s\n", strings.Join(details.Categories, ", "))
				}
				if len(details.Related) > 0 {
					fmt.Fprintf(w, "  Related: %s\n", strings.Join(details.Related, ", "))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "output format: text, json, yaml")
	return cmd
}

func newMeetingTranscriptCommand(deps *Deps) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "transcript <meeting-id>",
		Short: "Show a meeting's transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, eng, err := deps.loadAndBuild()
			if err != nil {
				return err
			}

			tr, err := eng.TranscriptByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			format := resolveFormat(cfg, outputFormat)
			return output(deps.Out, format, tr, func() error {
				w := deps.Out
				fmt.Fprintf(w, "Transcript for meeting %s\n\n", tr.MeetingID)
				if len(tr.Speakers) > 0 {
					fmt.Fprintf(w, "Speakers: %s\n", strings.Join(tr.Speakers, ", "))
				}
				if tr.Language != "" {
					fmt.Fprintf(w, "Language: %s\n", tr.Language)
				}
				if tr.Confidence != nil {
					fmt.Fprintf(w, "Confidence: %.0f%%\n", *tr.Confidence*100)
				}
				fmt.Fprintf(w, "\n%s\n", tr.Content)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "output format: text, json, yaml")
	return cmd
}

func newMeetingDocumentsCommand(deps *Deps) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "documents <meeting-id>",
		Short: "Show a meeting's documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, eng, err := deps.loadAndBuild()
			if err != nil {
				return err
			}

			docs, err := eng.DocumentsByMeeting(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			format := resolveFormat(cfg, outputFormat)
			return output(deps.Out, format, docs, func() error {
				w := deps.Out
				fmt.Fprintf(w, "Found %d document(s):\n\n", len(docs))
				for _, doc := range docs {
					fmt.Fprintf(w, "## %s\n", doc.Title)
					fmt.Fprintf(w, "Type: %s\n", doc.DocumentType)
					fmt.Fprintf(w, "Created: %s\n", displayTime(cfg, doc.CreatedAt))
					if len(doc.Tags) > 0 {
						fmt.Fprintf(w, "Tags: %s\n", strings.Join(doc.Tags, ", "))
					}
					if doc.Content != "" {
						fmt.Fprintf(w, "\n%s\n", doc.Content)
					} else {
						fmt.Fprintln(w, "\n(no content)")
					}
					fmt.Fprintln(w)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "output format: text, json, yaml")
	return cmd
}
