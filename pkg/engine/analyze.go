package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/otherjamesbrown/mintel-cli/pkg/dataset"
	mterrors "github.com/otherjamesbrown/mintel-cli/pkg/errors"
	"github.com/otherjamesbrown/mintel-cli/pkg/observability"
)

// AnalysisKind selects which pattern analysis to run.
type AnalysisKind string

const (
	AnalysisParticipants AnalysisKind = "participants"
	AnalysisFrequency    AnalysisKind = "frequency"
	AnalysisTopics       AnalysisKind = "topics"
)

// Caps on analysis output sizes.
const (
	topParticipants = 10
	topTopics       = 15
)

// monthKeyLayout formats dates into frequency bucket keys.
const monthKeyLayout = "2006-01"

// topicStopwords are title words too generic to count as topics.
var topicStopwords = map[string]struct{}{
	"meeting": {},
	"call":    {},
	"sync":    {},
	"with":    {},
}

// minTopicLength discards short tokens; a topic word must be longer.
const minTopicLength = 3

// AnalysisRange optionally bounds an analysis to a date window. Nil
// bounds are open.
type AnalysisRange struct {
	From *time.Time
	To   *time.Time
}

// contains reports whether t falls inside the range.
func (r AnalysisRange) contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// ParticipantStat is one row of a participants analysis.
type ParticipantStat struct {
	Name     string `json:"name"`
	Meetings int    `json:"meetings"`
}

// MonthStat is one row of a frequency analysis.
type MonthStat struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// TopicStat is one row of a topics analysis.
type TopicStat struct {
	Topic    string `json:"topic"`
	Mentions int    `json:"mentions"`
}

// AnalysisReport is the structured result of one analysis run. Only
// the fields for the requested kind are populated.
type AnalysisReport struct {
	Kind         AnalysisKind `json:"kind"`
	MeetingCount int          `json:"meeting_count"`

	Participants []ParticipantStat `json:"participants,omitempty"`

	Frequency       []MonthStat `json:"frequency,omitempty"`
	AveragePerMonth float64     `json:"average_per_month"`

	Topics []TopicStat `json:"topics,omitempty"`
}

// Analyze runs a pattern analysis over meetings inside the range.
// Returns ErrUnknownAnalysisKind for unsupported kinds and
// ErrNoMeetings when the range matches nothing.
func (e *Engine) Analyze(ctx context.Context, kind AnalysisKind, window AnalysisRange) (*AnalysisReport, error) {
	ctx, _ = e.requestContext(ctx)
	ctx, span := observability.StartSpan(ctx, "engine.analyze",
		attribute.String("kind", string(kind)),
	)
	defer span.End()

	switch kind {
	case AnalysisParticipants, AnalysisFrequency, AnalysisTopics:
	default:
		e.countAnalysis(kind, "error")
		return nil, fmt.Errorf("kind %q: %w", kind, mterrors.ErrUnknownAnalysisKind)
	}

	ds := e.cache.Get(ctx)
	var meetings []dataset.MeetingRecord
	for _, m := range ds.MeetingsInOrder() {
		if window.contains(m.Date) {
			meetings = append(meetings, m)
		}
	}

	if len(meetings) == 0 {
		e.countAnalysis(kind, "empty")
		return nil, fmt.Errorf("analyze %s: %w", kind, mterrors.ErrNoMeetings)
	}

	report := &AnalysisReport{Kind: kind, MeetingCount: len(meetings)}
	switch kind {
	case AnalysisParticipants:
		report.Participants = analyzeParticipants(meetings)
	case AnalysisFrequency:
		report.Frequency, report.AveragePerMonth = analyzeFrequency(meetings)
	case AnalysisTopics:
		report.Topics = analyzeTopics(meetings)
	}

	e.countAnalysis(kind, "ok")
	return report, nil
}

func (e *Engine) countAnalysis(kind AnalysisKind, status string) {
	if e.metrics != nil {
		e.metrics.AnalysesTotal.WithLabelValues(string(kind), status).Inc()
	}
}

// analyzeParticipants counts meetings per participant and keeps the
// top entries. Ties keep first-seen order.
func analyzeParticipants(meetings []dataset.MeetingRecord) []ParticipantStat {
	counts := make(map[string]int)
	var order []string
	for _, m := range meetings {
		for _, p := range m.Participants {
			if _, seen := counts[p]; !seen {
				order = append(order, p)
			}
			counts[p]++
		}
	}

	stats := make([]ParticipantStat, 0, len(order))
	for _, name := range order {
		stats = append(stats, ParticipantStat{Name: name, Meetings: counts[name]})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Meetings > stats[j].Meetings
	})

	if len(stats) > topParticipants {
		stats = stats[:topParticipants]
	}
	return stats
}

// analyzeFrequency buckets meetings by calendar month, ascending, and
// computes the arithmetic mean per active month.
func analyzeFrequency(meetings []dataset.MeetingRecord) ([]MonthStat, float64) {
	counts := make(map[string]int)
	for _, m := range meetings {
		counts[m.Date.Format(monthKeyLayout)]++
	}

	months := make([]string, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Strings(months)

	stats := make([]MonthStat, 0, len(months))
	for _, month := range months {
		stats = append(stats, MonthStat{Month: month, Count: counts[month]})
	}

	avg := float64(len(meetings)) / float64(len(counts))
	return stats, avg
}

// analyzeTopics counts significant title words. Short tokens and
// generic meeting words drop out; ties keep first-seen order.
func analyzeTopics(meetings []dataset.MeetingRecord) []TopicStat {
	counts := make(map[string]int)
	var order []string
	for _, m := range meetings {
		for _, word := range strings.Fields(fold(m.Title)) {
			if len(word) <= minTopicLength {
				continue
			}
			if _, stop := topicStopwords[word]; stop {
				continue
			}
			if _, seen := counts[word]; !seen {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	stats := make([]TopicStat, 0, len(order))
	for _, topic := range order {
		stats = append(stats, TopicStat{Topic: topic, Mentions: counts[topic]})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Mentions > stats[j].Mentions
	})

	if len(stats) > topTopics {
		stats = stats[:topTopics]
	}
	return stats
}
