package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Private extended-property names attached to every event this tool
// creates. SourceProperty marks the event as ours; SyncKeyProperty holds
// the deterministic identity key used for later selective cleanup.
const (
	SourceProperty  = "swimsyncSource"
	SourceName      = "swimsync"
	SyncKeyProperty = "swimsyncKey"
)

// EventTemplate is one fully specified recurring event, ready to be
// previewed or inserted. StartLocal/EndLocal are the first occurrence's
// wall-clock times in Timezone; the remote store materializes UTC from
// the zone identifier, not from an embedded offset.
type EventTemplate struct {
	Summary     string
	Description string
	Place       string
	WeekdayCode string
	StartLocal  time.Time
	EndLocal    time.Time
	Timezone    string
	Location    string
	ColorID     string
	Recurrence  string
	SyncKey     string
}

// RemoteEvent is the read-only view of an event already in the remote
// store. RecurringSeriesID is set when the event is one materialized
// occurrence of a recurring series.
type RemoteEvent struct {
	ID                string
	Summary           string
	Start             time.Time
	End               time.Time
	RecurringSeriesID string
}

// Window is a half-open time window [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Tag is a single key=value private-property filter.
type Tag struct {
	Key   string
	Value string
}

// ParseTag parses a "key=value" filter expression.
func ParseTag(s string) (Tag, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" || value == "" {
		return Tag{}, fmt.Errorf("invalid tag filter %q, expected key=value", s)
	}
	return Tag{Key: key, Value: value}, nil
}

func (t Tag) String() string {
	return t.Key + "=" + t.Value
}
