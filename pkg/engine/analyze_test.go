package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otherjamesbrown/mintel-cli/pkg/dataset"
	mterrors "github.com/otherjamesbrown/mintel-cli/pkg/errors"
)

func TestAnalyzeParticipants(t *testing.T) {
	ds := dataset.NewDataset()
	addMeeting(ds, "m1", "a", testNow, "Ada", "Grace")
	addMeeting(ds, "m2", "b", testNow, "Ada")
	addMeeting(ds, "m3", "c", testNow, "Ada", "Grace", "Edsger")

	e := testEngine(t, ds, Options{})

	report, err := e.Analyze(context.Background(), AnalysisParticipants, AnalysisRange{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.MeetingCount)
	require.Len(t, report.Participants, 3)
	assert.Equal(t, ParticipantStat{Name: "Ada", Meetings: 3}, report.Participants[0])
	assert.Equal(t, ParticipantStat{Name: "Grace", Meetings: 2}, report.Participants[1])
	assert.Equal(t, ParticipantStat{Name: "Edsger", Meetings: 1}, report.Participants[2])
}

func TestAnalyzeParticipantsTieKeepsFirstSeenOrder(t *testing.T) {
	ds := dataset.NewDataset()
	addMeeting(ds, "m1", "a", testNow, "Zed")
	addMeeting(ds, "m2", "b", testNow, "Amy")

	e := testEngine(t, ds, Options{})

	report, err := e.Analyze(context.Background(), AnalysisParticipants, AnalysisRange{})
	require.NoError(t, err)

	// Equal counts stay in first-seen order, not alphabetical.
	require.Len(t, report.Participants, 2)
	assert.Equal(t, "Zed", report.Participants[0].Name)
	assert.Equal(t, "Amy", report.Participants[1].Name)
}

func TestAnalyzeParticipantsTopTen(t *testing.T) {
	ds := dataset.NewDataset()
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	addMeeting(ds, "m1", "crowded", testNow, names...)

	e := testEngine(t, ds, Options{})

	report, err := e.Analyze(context.Background(), AnalysisParticipants, AnalysisRange{})
	require.NoError(t, err)
	assert.Len(t, report.Participants, 10)
}

func TestAnalyzeFrequency(t *testing.T) {
	ds := dataset.NewDataset()
	jan := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	addMeeting(ds, "j1", "a", jan)
	addMeeting(ds, "j2", "b", jan.AddDate(0, 0, 5))
	addMeeting(ds, "m1", "c", mar)
	addMeeting(ds, "m2", "d", mar.AddDate(0, 0, 1))
	addMeeting(ds, "m3", "e", mar.AddDate(0, 0, 2))
	addMeeting(ds, "m4", "f", mar.AddDate(0, 0, 3))

	e := testEngine(t, ds, Options{})

	report, err := e.Analyze(context.Background(), AnalysisFrequency, AnalysisRange{})
	require.NoError(t, err)

	// Months ascending; gaps are not zero-filled.
	require.Len(t, report.Frequency, 2)
	assert.Equal(t, MonthStat{Month: "2025-01", Count: 2}, report.Frequency[0])
	assert.Equal(t, MonthStat{Month: "2025-03", Count: 4}, report.Frequency[1])
	assert.InDelta(t, 3.0, report.AveragePerMonth, 1e-9)
}

func TestAnalyzeTopics(t *testing.T) {
	ds := dataset.NewDataset()
	addMeeting(ds, "m1", "Budget meeting with finance", testNow)
	addMeeting(ds, "m2", "Budget sync", testNow)
	addMeeting(ds, "m3", "Q1 call", testNow)

	e := testEngine(t, ds, Options{})

	report, err := e.Analyze(context.Background(), AnalysisTopics, AnalysisRange{})
	require.NoError(t, err)

	// "meeting", "sync", "call", "with" are stopwords; "q1" is too short.
	require.Len(t, report.Topics, 2)
	assert.Equal(t, TopicStat{Topic: "budget", Mentions: 2}, report.Topics[0])
	assert.Equal(t, TopicStat{Topic: "finance", Mentions: 1}, report.Topics[1])
}

func TestAnalyzeTopicsTieKeepsFirstSeenOrder(t *testing.T) {
	ds := dataset.NewDataset()
	addMeeting(ds, "m1", "zebra audit", testNow)

	e := testEngine(t, ds, Options{})

	report, err := e.Analyze(context.Background(), AnalysisTopics, AnalysisRange{})
	require.NoError(t, err)

	require.Len(t, report.Topics, 2)
	assert.Equal(t, "zebra", report.Topics[0].Topic)
	assert.Equal(t, "audit", report.Topics[1].Topic)
}

func TestAnalyzeTopicsCaseFolding(t *testing.T) {
	ds := dataset.NewDataset()
	addMeeting(ds, "m1", "BUDGET review", testNow)
	addMeeting(ds, "m2", "budget Review", testNow)

	e := testEngine(t, ds, Options{})

	report, err := e.Analyze(context.Background(), AnalysisTopics, AnalysisRange{})
	require.NoError(t, err)

	require.Len(t, report.Topics, 2)
	assert.Equal(t, 2, report.Topics[0].Mentions)
	assert.Equal(t, "budget", report.Topics[0].Topic)
}

func TestAnalyzeRangeFilter(t *testing.T) {
	ds := dataset.NewDataset()
	addMeeting(ds, "old", "archive", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "Ada")
	addMeeting(ds, "new", "current", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), "Grace")

	e := testEngine(t, ds, Options{})

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	report, err := e.Analyze(context.Background(), AnalysisParticipants, AnalysisRange{From: &from})
	require.NoError(t, err)

	assert.Equal(t, 1, report.MeetingCount)
	require.Len(t, report.Participants, 1)
	assert.Equal(t, "Grace", report.Participants[0].Name)
}

func TestAnalyzeNoMeetings(t *testing.T) {
	e := testEngine(t, dataset.NewDataset(), Options{})

	for _, kind := range []AnalysisKind{AnalysisParticipants, AnalysisFrequency, AnalysisTopics} {
		_, err := e.Analyze(context.Background(), kind, AnalysisRange{})
		assert.True(t, mterrors.IsNoMeetings(err), string(kind))
	}
}

func TestAnalyzeRangeExcludesEverything(t *testing.T) {
	ds := dataset.NewDataset()
	addMeeting(ds, "m1", "a", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	e := testEngine(t, ds, Options{})

	to := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := e.Analyze(context.Background(), AnalysisFrequency, AnalysisRange{To: &to})
	assert.True(t, mterrors.IsNoMeetings(err))
}

func TestAnalyzeUnknownKind(t *testing.T) {
	e := testEngine(t, dataset.NewDataset(), Options{})

	_, err := e.Analyze(context.Background(), AnalysisKind("velocity"), AnalysisRange{})
	assert.True(t, mterrors.IsUnknownAnalysisKind(err))
}
