package schema

import (
	"bytes"
	"encoding/json"
	"time"

	orderedmap "github.com/elliotchance/orderedmap/v2"
)

// Snapshot is the final inferred-schema artifact for one run. The
// collections map preserves visit order so the emitted report lists
// parents before their sub-collections and stays byte-stable across
// runs against the same data.
type Snapshot struct {
	TargetIdentity string
	CollectedAt    time.Time
	Collections    *orderedmap.OrderedMap[string, *CollectionReport]
}

// NewSnapshot creates an empty snapshot for the given target,
// stamped with the current time.
func NewSnapshot(target string) *Snapshot {
	return &Snapshot{
		TargetIdentity: target,
		CollectedAt:    time.Now().UTC(),
		Collections:    orderedmap.NewOrderedMap[string, *CollectionReport](),
	}
}

// Add records a completed report under its collection path.
func (s *Snapshot) Add(collectionPath string, report *CollectionReport) {
	s.Collections.Set(collectionPath, report)
}

// Len returns the number of collection reports recorded so far.
func (s *Snapshot) Len() int {
	return s.Collections.Len()
}

// MarshalJSON emits the persisted report layout: targetIdentity,
// collectedAt as an ISO-8601 string, and collections in visit order.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"targetIdentity":`)
	if err := writeJSON(&buf, s.TargetIdentity); err != nil {
		return nil, err
	}

	buf.WriteString(`,"collectedAt":`)
	if err := writeJSON(&buf, s.CollectedAt.Format(time.RFC3339)); err != nil {
		return nil, err
	}

	buf.WriteString(`,"collections":{`)
	first := true
	for el := s.Collections.Front(); el != nil; el = el.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeJSON(&buf, el.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, el.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteString("}}")

	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
