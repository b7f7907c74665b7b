package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"Start,9/2/2025",
		"End,12/21/2025",
		"Pool,Day,Time,Program",
		"Gellert,Monday,6:30-7:30am,Adult",
		",,8-9am,Masters",
		",Tuesday,11-12pm,Lap",
		",,,",
		"Balboa,Wednesday,1-2pm,Family",
	}, "\n")

	parsed, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), parsed.Season.Start)
	assert.Equal(t, time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC), parsed.Season.End)

	require.Len(t, parsed.Rows, 4)

	// first row is fully specified
	assert.Equal(t, "Gellert", parsed.Rows[0].Place)
	assert.Equal(t, "Monday", parsed.Rows[0].Weekday.Name)
	assert.Equal(t, "MO", parsed.Rows[0].Weekday.Code)
	assert.Equal(t, TimeRange{Start: Clock{6, 30}, End: Clock{7, 30}}, parsed.Rows[0].Times)
	assert.Equal(t, "Adult", parsed.Rows[0].Label)

	// second row inherits pool and day
	assert.Equal(t, "Gellert", parsed.Rows[1].Place)
	assert.Equal(t, "Monday", parsed.Rows[1].Weekday.Name)
	assert.Equal(t, "Masters", parsed.Rows[1].Label)

	// third row inherits pool only
	assert.Equal(t, "Gellert", parsed.Rows[2].Place)
	assert.Equal(t, "Tuesday", parsed.Rows[2].Weekday.Name)
	assert.Equal(t, TimeRange{Start: Clock{11, 0}, End: Clock{12, 0}}, parsed.Rows[2].Times)

	// the fully blank row is skipped and does not disturb carry-forward
	assert.Equal(t, "Balboa", parsed.Rows[3].Place)
	assert.Equal(t, "Wednesday", parsed.Rows[3].Weekday.Name)
}

func TestParse_SeasonRowsInAnyOrder(t *testing.T) {
	input := strings.Join([]string{
		"End,2025-12-21",
		"Start,2025-09-02",
		"Pool,Day,Time,Program",
		"Gellert,Friday,7-8pm,Evening",
	}, "\n")

	parsed, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), parsed.Season.Start)
	assert.Equal(t, time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC), parsed.Season.End)
}

func TestParse_Malformed(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		reason string
	}{
		{
			name:   "empty input",
			input:  "",
			reason: "schedule is empty",
		},
		{
			name: "missing Start row",
			input: strings.Join([]string{
				"End,2025-12-21",
				"Pool,Day,Time,Program",
				"Gellert,Monday,6:30-7:30am,Adult",
			}, "\n"),
			reason: "Start row",
		},
		{
			name: "missing End row",
			input: strings.Join([]string{
				"Start,2025-09-02",
				"Pool,Day,Time,Program",
				"Gellert,Monday,6:30-7:30am,Adult",
			}, "\n"),
			reason: "End row",
		},
		{
			name: "missing header row",
			input: strings.Join([]string{
				"Start,2025-09-02",
				"End,2025-12-21",
				"Gellert,Monday,6:30-7:30am,Adult",
			}, "\n"),
			reason: "header row",
		},
		{
			name: "unrecognized weekday",
			input: strings.Join([]string{
				"Start,2025-09-02",
				"End,2025-12-21",
				"Pool,Day,Time,Program",
				"Gellert,Moonday,6:30-7:30am,Adult",
			}, "\n"),
			reason: "unrecognized weekday",
		},
		{
			name: "unparsable season date",
			input: strings.Join([]string{
				"Start,sometime",
				"End,2025-12-21",
				"Pool,Day,Time,Program",
				"Gellert,Monday,6:30-7:30am,Adult",
			}, "\n"),
			reason: "unparsable date",
		},
		{
			name: "row with no time range",
			input: strings.Join([]string{
				"Start,2025-09-02",
				"End,2025-12-21",
				"Pool,Day,Time,Program",
				"Gellert,Monday,,Adult",
			}, "\n"),
			reason: "no time range",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			var malformed *MalformedInputError
			assert.ErrorAs(t, err, &malformed)
			assert.Contains(t, err.Error(), tc.reason)
		})
	}
}

func TestWeekdayByName(t *testing.T) {
	day, ok := WeekdayByName("friday")
	assert.True(t, ok)
	assert.Equal(t, "FR", day.Code)
	assert.Equal(t, time.Friday, day.Day)

	_, ok = WeekdayByName("someday")
	assert.False(t, ok)
}
