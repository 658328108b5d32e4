package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/otherjamesbrown/mintel-cli/pkg/dataset"
	mterrors "github.com/otherjamesbrown/mintel-cli/pkg/errors"
	"github.com/otherjamesbrown/mintel-cli/pkg/logging"
	"github.com/otherjamesbrown/mintel-cli/pkg/observability"
)

// Loader reads a snapshot export file and normalizes it into a Dataset.
//
// Load never returns an error: a missing or corrupt snapshot yields an
// empty Dataset so queries degrade to "no results" instead of failing.
type Loader struct {
	path    string
	log     logging.Logger
	metrics *observability.QueryMetrics
	now     func() time.Time
}

// NewLoader creates a Loader for the snapshot at path. Metrics may be nil.
func NewLoader(path string, log logging.Logger, metrics *observability.QueryMetrics) *Loader {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Loader{
		path:    path,
		log:     log,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Load reads, unwraps, and normalizes the snapshot.
func (l *Loader) Load(ctx context.Context) *dataset.Dataset {
	ctx, span := observability.StartSpan(ctx, "snapshot.load")
	defer span.End()

	start := time.Now()

	raw, err := l.read()
	if err != nil {
		l.log.WithContext(ctx).Warn("snapshot unreadable, using empty dataset",
			logging.F("path", l.path),
			logging.Err(err),
		)
		l.observeLoad("error", 0, time.Since(start))
		ds := dataset.NewDataset()
		ds.LastUpdated = l.now()
		return ds
	}

	ds := l.normalize(ctx, raw)
	ds.LastUpdated = l.now()

	l.log.WithContext(ctx).Debug("snapshot loaded",
		logging.F("path", l.path),
		logging.F("meetings", ds.Len()),
		logging.F("transcripts", len(ds.Transcripts)),
	)
	l.observeLoad("ok", ds.Len(), time.Since(start))
	return ds
}

func (l *Loader) observeLoad(status string, meetings int, elapsed time.Duration) {
	if l.metrics == nil {
		return
	}
	l.metrics.SnapshotLoadsTotal.WithLabelValues(status).Inc()
	l.metrics.SnapshotLoadSeconds.Observe(elapsed.Seconds())
	l.metrics.SnapshotMeetings.Set(float64(meetings))
}

// rawSnapshot is the unwrapped export: documents in insertion order
// plus transcripts keyed by meeting id.
type rawSnapshot struct {
	documentIDs []string
	documents   map[string]json.RawMessage
	transcripts map[string]json.RawMessage
}

// read loads the snapshot file and unwraps its nesting. Exports wrap
// the real payload twice: the top-level "cache" key holds a JSON
// string, and the object inside that string holds the root under
// "state". Unwrapped exports (the root object directly) also load.
func (l *Loader) read() (*rawSnapshot, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mterrors.ErrSnapshotUnreadable, err)
	}

	var outer map[string]json.RawMessage
	if err := json.Unmarshal(data, &outer); err != nil {
		return nil, fmt.Errorf("%w: %v", mterrors.ErrSnapshotUnreadable, err)
	}

	root := data
	if cacheRaw, ok := outer["cache"]; ok {
		var encoded string
		if err := json.Unmarshal(cacheRaw, &encoded); err == nil {
			var inner map[string]json.RawMessage
			if err := json.Unmarshal([]byte(encoded), &inner); err != nil {
				return nil, fmt.Errorf("%w: decoding cache payload: %v", mterrors.ErrSnapshotUnreadable, err)
			}
			if stateRaw, ok := inner["state"]; ok {
				root = stateRaw
			} else {
				root = []byte(encoded)
			}
		}
	}

	var rootObj map[string]json.RawMessage
	if err := json.Unmarshal(root, &rootObj); err != nil {
		return nil, fmt.Errorf("%w: %v", mterrors.ErrSnapshotUnreadable, err)
	}

	snap := &rawSnapshot{
		documents:   make(map[string]json.RawMessage),
		transcripts: make(map[string]json.RawMessage),
	}

	if docsRaw, ok := rootObj["documents"]; ok {
		ids, docs, err := decodeOrderedObject(docsRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: decoding documents: %v", mterrors.ErrSnapshotUnreadable, err)
		}
		snap.documentIDs = ids
		snap.documents = docs
	}

	if trRaw, ok := rootObj["transcripts"]; ok {
		if err := json.Unmarshal(trRaw, &snap.transcripts); err != nil {
			return nil, fmt.Errorf("%w: decoding transcripts: %v", mterrors.ErrSnapshotUnreadable, err)
		}
	}

	return snap, nil
}

// decodeOrderedObject decodes a JSON object preserving key order.
// Go maps randomize iteration; token-level decoding keeps the export's
// insertion order so query results are stable across runs.
func decodeOrderedObject(data []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	var ids []string
	values := make(map[string]json.RawMessage)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key, got %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}

		if _, dup := values[key]; !dup {
			ids = append(ids, key)
		}
		values[key] = value
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}

	return ids, values, nil
}
