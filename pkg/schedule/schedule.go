package schedule

import (
	"fmt"
	"strings"
	"time"
)

// MalformedInputError reports schedule text that could not be interpreted,
// together with the offending value.
type MalformedInputError struct {
	Value  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("malformed schedule input: %s", e.Reason)
	}
	return fmt.Sprintf("malformed schedule input: %s: %q", e.Reason, e.Value)
}

// Weekday pairs the display name of a day with its two-letter
// recurrence-rule code and the corresponding time.Weekday.
type Weekday struct {
	Name string
	Code string
	Day  time.Weekday
}

var weekdays = []Weekday{
	{Name: "Monday", Code: "MO", Day: time.Monday},
	{Name: "Tuesday", Code: "TU", Day: time.Tuesday},
	{Name: "Wednesday", Code: "WE", Day: time.Wednesday},
	{Name: "Thursday", Code: "TH", Day: time.Thursday},
	{Name: "Friday", Code: "FR", Day: time.Friday},
	{Name: "Saturday", Code: "SA", Day: time.Saturday},
	{Name: "Sunday", Code: "SU", Day: time.Sunday},
}

// WeekdayByName matches a weekday display name case-insensitively.
func WeekdayByName(name string) (Weekday, bool) {
	for _, day := range weekdays {
		if strings.EqualFold(day.Name, name) {
			return day, true
		}
	}
	return Weekday{}, false
}

// WeekdayByCode matches a two-letter recurrence-rule weekday code.
func WeekdayByCode(code string) (Weekday, bool) {
	for _, day := range weekdays {
		if strings.EqualFold(day.Code, code) {
			return day, true
		}
	}
	return Weekday{}, false
}

// Season is the inclusive date range over which recurring events are
// generated. Both bounds are calendar dates without time of day.
type Season struct {
	Start time.Time
	End   time.Time
}

// Row is one normalized schedule entry. Place and Weekday are always
// populated, even when the source cell was blank and the value was
// inherited from a preceding row.
type Row struct {
	Place   string
	Weekday Weekday
	Times   TimeRange
	Label   string
}

// Schedule is the parsed form of one schedule file.
type Schedule struct {
	Season Season
	Rows   []Row
}
