package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeRange(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  TimeRange
	}{
		{
			name:  "morning range with minutes",
			input: "6:30-7:30am",
			want:  TimeRange{Start: Clock{6, 30}, End: Clock{7, 30}},
		},
		{
			name:  "range ending at noon keeps the late-morning reading",
			input: "11-12pm",
			want:  TimeRange{Start: Clock{11, 0}, End: Clock{12, 0}},
		},
		{
			name:  "afternoon range",
			input: "1-2pm",
			want:  TimeRange{Start: Clock{13, 0}, End: Clock{14, 0}},
		},
		{
			name:  "pm range not touching noon shifts both hours",
			input: "4:15-5:45pm",
			want:  TimeRange{Start: Clock{16, 15}, End: Clock{17, 45}},
		},
		{
			name:  "pm range starting at noon only shifts the end",
			input: "12-1pm",
			want:  TimeRange{Start: Clock{12, 0}, End: Clock{13, 0}},
		},
		{
			name:  "pm range with minutes ending at noon shifts nothing",
			input: "10:15-12pm",
			want:  TimeRange{Start: Clock{10, 15}, End: Clock{12, 0}},
		},
		{
			name:  "midnight is hour zero with am",
			input: "12-1am",
			want:  TimeRange{Start: Clock{0, 0}, End: Clock{1, 0}},
		},
		{
			name:  "24-hour form without suffix",
			input: "18:00-19:00",
			want:  TimeRange{Start: Clock{18, 0}, End: Clock{19, 0}},
		},
		{
			name:  "suffix is case-insensitive",
			input: "6:30-7:30AM",
			want:  TimeRange{Start: Clock{6, 30}, End: Clock{7, 30}},
		},
		{
			name:  "whitespace around the dash",
			input: "6:30 - 7:30am",
			want:  TimeRange{Start: Clock{6, 30}, End: Clock{7, 30}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTimeRange(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseTimeRange_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"6:30",
		"six-seven",
		"6:30-7:30xm",
		"25-26",
		"6:75-7:30am",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTimeRange(input)
			var malformed *MalformedInputError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "06:30", Clock{6, 30}.String())
	assert.Equal(t, "13:05", Clock{13, 5}.String())
}
