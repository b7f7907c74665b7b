package schedule

import (
	"regexp"
	"strconv"
	"strings"
)

// Clock is a wall-clock time of day in 24-hour form.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return pad2(c.Hour) + ":" + pad2(c.Minute)
}

func pad2(n int) string {
	s := strconv.Itoa(n)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// TimeRange is a start/end pair of wall-clock times. Cross-midnight
// ranges are not supported.
type TimeRange struct {
	Start Clock
	End   Clock
}

// Validate checks that both clock values are fully resolved 24-hour
// wall-clock times.
func (r TimeRange) Validate() error {
	for _, c := range []Clock{r.Start, r.End} {
		if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
			return &MalformedInputError{Value: c.String(), Reason: "time of day out of range"}
		}
	}
	return nil
}

var timeRangePattern = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*-\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)

// ParseTimeRange parses a human time-range string such as "6:30-7:30am"
// or "18:00-19:00" into 24-hour clock values. The am/pm suffix is
// optional, case-insensitive, and applies to the whole range.
//
// With a "pm" suffix an end hour of 12 means noon and is left as-is, so
// "11-12pm" resolves to 11:00-12:00 rather than 23:00-24:00. Schedules
// phrase late-morning ranges that end at noon this way, so the rule must
// stay asymmetric.
func ParseTimeRange(s string) (TimeRange, error) {
	m := timeRangePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return TimeRange{}, &MalformedInputError{Value: s, Reason: "unparsable time range"}
	}

	startHour, _ := strconv.Atoi(m[1])
	endHour, _ := strconv.Atoi(m[3])
	startMinute := 0
	if m[2] != "" {
		startMinute, _ = strconv.Atoi(m[2])
	}
	endMinute := 0
	if m[4] != "" {
		endMinute, _ = strconv.Atoi(m[4])
	}

	switch strings.ToLower(m[5]) {
	case "am":
		if startHour == 12 {
			startHour = 0
		}
		if endHour == 12 {
			endHour = 0
		}
	case "pm":
		// an end hour of 12 means the range runs up to noon, so both
		// hours keep their late-morning reading and nothing shifts
		if endHour != 12 {
			if startHour != 12 {
				startHour += 12
			}
			endHour += 12
		}
	}

	tr := TimeRange{
		Start: Clock{Hour: startHour, Minute: startMinute},
		End:   Clock{Hour: endHour, Minute: endMinute},
	}
	if err := tr.Validate(); err != nil {
		return TimeRange{}, &MalformedInputError{Value: s, Reason: "time of day out of range"}
	}
	return tr, nil
}
