package progress

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/abhisek/questmap/internal/report"
)

// MalformedError describes why a progress payload was rejected.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return "malformed progress payload: " + e.Reason
}

// Snapshot is the read-only set of progress entries for a page. The zero
// value is an empty snapshot.
type Snapshot struct {
	entries []Entry
}

// NewSnapshot copies entries into a Snapshot.
func NewSnapshot(entries []Entry) Snapshot {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return Snapshot{entries: cp}
}

// Len returns the number of entries.
func (s Snapshot) Len() int {
	return len(s.entries)
}

// Entries returns a copy of all entries in payload order.
func (s Snapshot) Entries() []Entry {
	cp := make([]Entry, len(s.entries))
	copy(cp, s.entries)
	return cp
}

// ForMap returns the entries drawn on mapType, in payload order.
func (s Snapshot) ForMap(mapType MapType) []Entry {
	var out []Entry
	for _, e := range s.entries {
		if e.MapType == mapType {
			out = append(out, e)
		}
	}
	return out
}

// MapTypes returns the distinct map types in first-seen order.
func (s Snapshot) MapTypes() []MapType {
	seen := make(map[MapType]bool)
	var out []MapType
	for _, e := range s.entries {
		if !seen[e.MapType] {
			seen[e.MapType] = true
			out = append(out, e.MapType)
		}
	}
	return out
}

// Load parses the embedded progress payload. It never fails: an absent or
// malformed payload yields an empty Snapshot and a MalformedInput
// diagnostic on r.
func Load(raw string, present bool, r report.Reporter) Snapshot {
	if r == nil {
		r = report.Discard
	}
	if !present {
		r.Diagnose(report.Diagnostic{
			Kind:   report.KindMalformedInput,
			Detail: "progress payload not found on page",
		})
		return Snapshot{}
	}

	snap, skipped, err := Parse(raw)
	if err != nil {
		r.Diagnose(report.Diagnostic{Kind: report.KindMalformedInput, Err: err})
		return Snapshot{}
	}
	if skipped > 0 {
		r.Diagnose(report.Diagnostic{
			Kind:   report.KindMalformedInput,
			Detail: fmt.Sprintf("skipped %d unusable progress records", skipped),
		})
	}
	return snap
}

// Parse decodes a JSON array of progress records. Records that are not
// objects or have no quest id are skipped and counted.
func Parse(raw string) (Snapshot, int, error) {
	if strings.TrimSpace(raw) == "" {
		return Snapshot{}, 0, &MalformedError{Reason: "empty payload"}
	}
	if !gjson.Valid(raw) {
		return Snapshot{}, 0, &MalformedError{Reason: "invalid JSON"}
	}

	doc := gjson.Parse(raw)
	if !doc.IsArray() {
		return Snapshot{}, 0, &MalformedError{Reason: fmt.Sprintf("expected an array, got %s", describe(doc))}
	}

	var (
		entries []Entry
		skipped int
	)
	doc.ForEach(func(_, rec gjson.Result) bool {
		e, ok := parseEntry(rec)
		if !ok {
			skipped++
			return true
		}
		entries = append(entries, e)
		return true
	})

	return Snapshot{entries: entries}, skipped, nil
}

func parseEntry(rec gjson.Result) (Entry, bool) {
	if !rec.IsObject() {
		return Entry{}, false
	}

	id := rec.Get("quest_id")
	switch id.Type {
	case gjson.String, gjson.Number:
	default:
		return Entry{}, false
	}
	// quest ids are opaque; only blank ones are rejected
	questID := id.String()
	if strings.TrimSpace(questID) == "" {
		return Entry{}, false
	}

	attempts := 0
	if a := rec.Get("attempts"); a.Type == gjson.Number || a.Type == gjson.String {
		attempts = int(a.Int())
	}
	if attempts < 0 {
		attempts = 0
	}

	return Entry{
		QuestID:  questID,
		MapType:  MapType(rec.Get("map_type").String()),
		Attempts: attempts,
	}, true
}

func describe(r gjson.Result) string {
	switch {
	case r.IsObject():
		return "an object"
	case r.Type == gjson.String:
		return "a string"
	case r.Type == gjson.Number:
		return "a number"
	case r.Type == gjson.True, r.Type == gjson.False:
		return "a boolean"
	case r.Type == gjson.Null:
		return "null"
	default:
		return "an unknown value"
	}
}
