package cmd

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otherjamesbrown/mintel-cli/config"
	"github.com/otherjamesbrown/mintel-cli/pkg/dataset"
	mterrors "github.com/otherjamesbrown/mintel-cli/pkg/errors"
	"github.com/otherjamesbrown/mintel-cli/pkg/engine"
	"github.com/otherjamesbrown/mintel-cli/pkg/temporal"
)

func testDataset() *dataset.Dataset {
	ds := dataset.NewDataset()
	ds.Add(
		dataset.MeetingRecord{
			ID:           "m1",
			Title:        "Budget review",
			Date:         time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC),
			Participants: []string{"Ada", "Grace"},
			MeetingType:  "meeting",
			Source:       "granola",
		},
		dataset.DocumentRecord{
			ID: "m1", MeetingID: "m1", Title: "Budget review",
			Content:      "Overview: spending is flat",
			DocumentType: "meeting_notes",
			CreatedAt:    time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC),
		},
		&dataset.TranscriptRecord{MeetingID: "m1", Content: "numbers look fine", Speakers: []string{"microphone"}},
	)
	ds.Add(
		dataset.MeetingRecord{
			ID:          "m2",
			Title:       "Roadmap sync",
			Date:        time.Date(2025, 10, 20, 14, 0, 0, 0, time.UTC),
			MeetingType: "meeting",
			Source:      "granola",
		},
		dataset.DocumentRecord{ID: "m2", MeetingID: "m2", Title: "Roadmap sync"},
		nil,
	)
	ds.LastUpdated = time.Date(2025, 11, 12, 8, 0, 0, 0, time.UTC)
	return ds
}

func testDeps(t *testing.T, ds *dataset.Dataset) (*Deps, *bytes.Buffer) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.SnapshotPath = "/tmp/snapshot.json"
	cfg.Timezone = "UTC"

	var buf bytes.Buffer
	deps := &Deps{
		LoadConfig: func() (*config.CLIConfig, error) { return cfg, nil },
		NewEngine: func(cfg *config.CLIConfig) *engine.Engine {
			return engine.New(engine.Options{
				Cache:    dataset.NewCache(func(ctx context.Context) *dataset.Dataset { return ds }),
				Resolver: temporal.NewResolver(time.UTC),
			})
		},
		Out: &buf,
	}
	return deps, &buf
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func TestSearchCommandKeyword(t *testing.T) {
	deps, buf := testDeps(t, testDataset())

	err := execute(t, NewSearchCommand(deps), "budget")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Budget review")
	assert.Contains(t, out, "m1")
	assert.Contains(t, out, "Ada, Grace")
	assert.NotContains(t, out, "Roadmap sync")
}

func TestSearchCommandNoResults(t *testing.T) {
	deps, buf := testDeps(t, testDataset())

	err := execute(t, NewSearchCommand(deps), "kubernetes")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No meetings found")
}

func TestSearchCommandJSONOutput(t *testing.T) {
	deps, buf := testDeps(t, testDataset())

	err := execute(t, NewSearchCommand(deps), "budget", "-o", "json")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"query": "budget"`)
	assert.Contains(t, out, `"score": 2`)
}

func TestSearchCommandDateQuery(t *testing.T) {
	deps, buf := testDeps(t, testDataset())

	err := execute(t, NewSearchCommand(deps), "november", "2025")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Budget review")
}

func TestAnalyzeCommandParticipants(t *testing.T) {
	deps, buf := testDeps(t, testDataset())

	err := execute(t, NewAnalyzeCommand(deps), "participants")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Participant Analysis (2 meetings)")
	assert.Contains(t, out, "Ada")
}

func TestAnalyzeCommandFrequency(t *testing.T) {
	deps, buf := testDeps(t, testDataset())

	err := execute(t, NewAnalyzeCommand(deps), "frequency")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2025-10  1 meetings")
	assert.Contains(t, out, "2025-11  1 meetings")
	assert.Contains(t, out, "Average per month: 1.0")
}

func TestAnalyzeCommandNoMeetingsMessage(t *testing.T) {
	deps, buf := testDeps(t, dataset.NewDataset())

	err := execute(t, NewAnalyzeCommand(deps), "topics")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No meetings match.")
}

func TestAnalyzeCommandRangeFlags(t *testing.T) {
	deps, buf := testDeps(t, testDataset())

	err := execute(t, NewAnalyzeCommand(deps), "frequency", "--from", "2025-11-01", "--to", "2025-11-30")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2025-11")
	assert.NotContains(t, out, "2025-10")
}

func TestAnalyzeCommandBadDateFlag(t *testing.T) {
	deps, _ := testDeps(t, testDataset())

	err := execute(t, NewAnalyzeCommand(deps), "frequency", "--from", "not-a-date")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from")
}

func TestAnalyzeCommandUnknownKind(t *testing.T) {
	deps, _ := testDeps(t, testDataset())

	err := execute(t, NewAnalyzeCommand(deps), "velocity")
	assert.True(t, mterrors.IsUnknownAnalysisKind(err))
}

func TestMeetingShowCommand(t *testing.T) {
	deps, buf := testDeps(t, testDataset())

	err := execute(t, NewMeetingCommand(deps), "show", "m1")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Meeting: Budget review")
	assert.Contains(t, out, "Transcript: available")
}

func TestMeetingShowNotFound(t *testing.T) {
	deps, _ := testDeps(t, testDataset())

	err := execute(t, NewMeetingCommand(deps), "show", "ghost")
	assert.True(t, mterrors.IsNotFound(err))
}

func TestMeetingTranscriptCommand(t *testing.T) {
	deps, buf := testDeps(t, testDataset())

	err := execute(t, NewMeetingCommand(deps), "transcript", "m1")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "numbers look fine")
	assert.Contains(t, out, "microphone")
}

func TestMeetingDocumentsCommand(t *testing.T) {
	deps, buf := testDeps(t, testDataset())

	err := execute(t, NewMeetingCommand(deps), "documents", "m1")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Overview: spending is flat")
}

func TestResolveCommand(t *testing.T) {
	deps, buf := testDeps(t, testDataset())

	err := execute(t, NewResolveCommand(deps), "november", "2025")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2025-11-01T00:00:00Z")
	assert.Contains(t, out, "2025-11-30T23:59:59.999999Z")
}

func TestResolveCommandNoPhrase(t *testing.T) {
	deps, buf := testDeps(t, testDataset())

	err := execute(t, NewResolveCommand(deps), "roadmap")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No date phrase recognized")
}

func TestSnapshotInfoCommand(t *testing.T) {
	deps, buf := testDeps(t, testDataset())

	err := execute(t, NewSnapshotCommand(deps), "info")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Meetings:    2")
	assert.Contains(t, out, "Transcripts: 1")
}

func TestSnapshotReloadCommand(t *testing.T) {
	deps, buf := testDeps(t, testDataset())

	err := execute(t, NewSnapshotCommand(deps), "reload")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Snapshot reloaded: 2 meetings")
}
