package schedule

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// The header row must name these four columns, case-insensitively and in
// this order.
var headerColumns = []string{"pool", "day", "time", "program"}

var dateFormats = []string{
	"2006-01-02",
	"1/2/2006",
	"1/2/06",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Parse reads tabular schedule text into a Season and its normalized
// rows. The input carries a "Start,<date>" and an "End,<date>" row in
// any order before the header row; everything after the header is
// schedule data. Blank pool/day cells inherit the nearest preceding
// non-blank value.
func Parse(r io.Reader) (*Schedule, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &MalformedInputError{Value: err.Error(), Reason: "unreadable schedule data"}
	}
	if len(records) == 0 {
		return nil, &MalformedInputError{Reason: "schedule is empty"}
	}

	var season Season
	var haveStart, haveEnd bool
	headerIdx := -1
	for i, record := range records {
		if isHeaderRow(record) {
			headerIdx = i
			break
		}
		if len(record) < 2 {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(record[0])) {
		case "start":
			season.Start, err = parseDate(record[1])
			if err != nil {
				return nil, err
			}
			haveStart = true
		case "end":
			season.End, err = parseDate(record[1])
			if err != nil {
				return nil, err
			}
			haveEnd = true
		}
	}
	if !haveStart {
		return nil, &MalformedInputError{Reason: "season Start row not found"}
	}
	if !haveEnd {
		return nil, &MalformedInputError{Reason: "season End row not found"}
	}
	if headerIdx < 0 {
		return nil, &MalformedInputError{Reason: fmt.Sprintf("header row (%s) not found", strings.Join(headerColumns, ","))}
	}

	rows, err := foldRows(records[headerIdx+1:])
	if err != nil {
		return nil, err
	}
	log.Debugf("parsed schedule: season %s - %s, %d row(s)",
		season.Start.Format("2006-01-02"), season.End.Format("2006-01-02"), len(rows))

	return &Schedule{Season: season, Rows: rows}, nil
}

func isHeaderRow(record []string) bool {
	if len(record) < len(headerColumns) {
		return false
	}
	for i, name := range headerColumns {
		if !strings.EqualFold(strings.TrimSpace(record[i]), name) {
			return false
		}
	}
	return true
}

func parseDate(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	for _, format := range dateFormats {
		if date, err := time.Parse(format, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, &MalformedInputError{Value: value, Reason: "unparsable date"}
}

// carried is the accumulator threaded through the row fold: the last
// non-blank pool and day cells, inherited by subsequent blank cells.
type carried struct {
	place   string
	weekday string
}

func foldRows(records [][]string) ([]Row, error) {
	rows := make([]Row, 0, len(records))
	var last carried
	for _, record := range records {
		if isBlankRow(record) {
			// fully blank rows separate sections and do not reset carry-forward
			continue
		}
		cells := padRecord(record, len(headerColumns))

		place := strings.TrimSpace(cells[0])
		if place == "" {
			place = last.place
		}
		weekdayName := strings.TrimSpace(cells[1])
		if weekdayName == "" {
			weekdayName = last.weekday
		}
		if place == "" {
			return nil, &MalformedInputError{Value: strings.Join(record, ","), Reason: "row has no pool and none to inherit"}
		}
		weekday, ok := WeekdayByName(weekdayName)
		if !ok {
			return nil, &MalformedInputError{Value: weekdayName, Reason: "unrecognized weekday"}
		}

		timeText := strings.TrimSpace(cells[2])
		if timeText == "" {
			return nil, &MalformedInputError{Value: strings.Join(record, ","), Reason: "row has no time range"}
		}
		times, err := ParseTimeRange(timeText)
		if err != nil {
			return nil, err
		}

		rows = append(rows, Row{
			Place:   place,
			Weekday: weekday,
			Times:   times,
			Label:   strings.TrimSpace(cells[3]),
		})
		last = carried{place: place, weekday: weekdayName}
	}
	return rows, nil
}

func isBlankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func padRecord(record []string, size int) []string {
	if len(record) >= size {
		return record
	}
	padded := make([]string, size)
	copy(padded, record)
	return padded
}
