package dataset

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meeting(id, title string) MeetingRecord {
	return MeetingRecord{
		ID:     id,
		Title:  title,
		Date:   time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC),
		Source: "granola",
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	ds := NewDataset()
	ds.Add(meeting("c", "third"), DocumentRecord{ID: "doc-c", MeetingID: "c"}, nil)
	ds.Add(meeting("a", "first"), DocumentRecord{ID: "doc-a", MeetingID: "a"}, nil)
	ds.Add(meeting("b", "second"), DocumentRecord{ID: "doc-b", MeetingID: "b"}, nil)

	assert.Equal(t, []string{"c", "a", "b"}, ds.IDs)

	ordered := ds.MeetingsInOrder()
	require.Len(t, ordered, 3)
	assert.Equal(t, "third", ordered[0].Title)
	assert.Equal(t, "first", ordered[1].Title)
	assert.Equal(t, "second", ordered[2].Title)
}

func TestAddDuplicateReplacesWithoutReordering(t *testing.T) {
	ds := NewDataset()
	ds.Add(meeting("a", "original"), DocumentRecord{ID: "doc-a"}, nil)
	ds.Add(meeting("b", "other"), DocumentRecord{ID: "doc-b"}, nil)
	ds.Add(meeting("a", "replaced"), DocumentRecord{ID: "doc-a2"}, nil)

	assert.Equal(t, []string{"a", "b"}, ds.IDs)
	assert.Equal(t, "replaced", ds.Meetings["a"].Title)
	assert.Equal(t, 2, ds.Len())
}

func TestAddTranscript(t *testing.T) {
	ds := NewDataset()
	tr := &TranscriptRecord{MeetingID: "a", Content: "hello", Speakers: []string{"microphone"}}
	ds.Add(meeting("a", "with transcript"), DocumentRecord{ID: "doc-a"}, tr)
	ds.Add(meeting("b", "without"), DocumentRecord{ID: "doc-b"}, nil)

	_, hasA := ds.Transcripts["a"]
	_, hasB := ds.Transcripts["b"]
	assert.True(t, hasA)
	assert.False(t, hasB)
}

func TestCacheLoadsOnce(t *testing.T) {
	var calls int
	cache := NewCache(func(ctx context.Context) *Dataset {
		calls++
		ds := NewDataset()
		ds.Add(meeting("a", "cached"), DocumentRecord{ID: "doc-a"}, nil)
		return ds
	})

	ctx := context.Background()
	first := cache.Get(ctx)
	second := cache.Get(ctx)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	assert.False(t, cache.LoadedAt().IsZero())
}

func TestCacheInvalidateForcesReload(t *testing.T) {
	var calls int
	cache := NewCache(func(ctx context.Context) *Dataset {
		calls++
		return NewDataset()
	})

	ctx := context.Background()
	cache.Get(ctx)
	cache.Invalidate()
	assert.True(t, cache.LoadedAt().IsZero())

	cache.Get(ctx)
	assert.Equal(t, 2, calls)
}

func TestCacheConcurrentGet(t *testing.T) {
	var calls int
	cache := NewCache(func(ctx context.Context) *Dataset {
		calls++
		return NewDataset()
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Get(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
}
