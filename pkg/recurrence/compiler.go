package recurrence

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/teambition/rrule-go"

	"github.com/swimsync/swimsync/pkg/calendar"
	"github.com/swimsync/swimsync/pkg/schedule"
)

// Place carries the per-place venue overrides.
type Place struct {
	Location string
	ColorID  string
}

// Config resolves a schedule row into calendar-ready values: the zone
// the season lives in plus the location/color fallback chain.
type Config struct {
	Timezone        string
	DefaultLocation string
	DefaultColorID  string
	Places          map[string]Place
}

// defaultColorID is the platform's default color token, used when
// neither the place nor the global config names one.
const defaultColorID = "1"

var ruleWeekdays = map[string]rrule.Weekday{
	"MO": rrule.MO,
	"TU": rrule.TU,
	"WE": rrule.WE,
	"TH": rrule.TH,
	"FR": rrule.FR,
	"SA": rrule.SA,
	"SU": rrule.SU,
}

// Compile turns one schedule row plus the season window into a weekly
// recurring event template.
func Compile(row schedule.Row, season schedule.Season, cfg Config) ([]calendar.EventTemplate, error) {
	return CompileDays(row, []schedule.Weekday{row.Weekday}, season, cfg)
}

// CompileDays compiles one template per target weekday. Rows carry
// exactly one weekday today; the set form exists for schedules that list
// several days against one time slot.
func CompileDays(row schedule.Row, days []schedule.Weekday, season schedule.Season, cfg Config) ([]calendar.EventTemplate, error) {
	if cfg.Timezone == "" {
		return nil, fmt.Errorf("no timezone configured")
	}
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("could not load location for timezone %s: %w", cfg.Timezone, err)
	}
	if err := row.Times.Validate(); err != nil {
		return nil, err
	}

	templates := make([]calendar.EventTemplate, 0, len(days))
	for _, day := range days {
		template, err := compileDay(row, day, season, cfg, location)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	return templates, nil
}

func compileDay(row schedule.Row, day schedule.Weekday, season schedule.Season, cfg Config, location *time.Location) (calendar.EventTemplate, error) {
	ruleDay, ok := ruleWeekdays[day.Code]
	if !ok {
		return calendar.EventTemplate{}, &schedule.MalformedInputError{Value: day.Code, Reason: "unrecognized weekday code"}
	}

	first := firstOnOrAfter(season.Start, day.Day)
	startLocal := time.Date(first.Year(), first.Month(), first.Day(),
		row.Times.Start.Hour, row.Times.Start.Minute, 0, 0, location)
	endLocal := time.Date(first.Year(), first.Month(), first.Day(),
		row.Times.End.Hour, row.Times.End.Minute, 0, 0, location)

	// The recurrence bound is the only instant the wire format mandates
	// in UTC. It is converted through the season end date's own zone
	// offset, so a season crossing a DST transition keeps its last day.
	until := time.Date(season.End.Year(), season.End.Month(), season.End.Day(),
		23, 59, 59, 0, location)
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{ruleDay},
		Dtstart:   startLocal,
		Until:     until.UTC(),
	})
	if err != nil {
		return calendar.EventTemplate{}, fmt.Errorf("could not build recurrence rule: %w", err)
	}

	venue, colorID := resolvePlace(row.Place, cfg)
	summary := row.Label
	if summary == "" {
		summary = row.Place
	}

	template := calendar.EventTemplate{
		Summary:     summary,
		Description: fmt.Sprintf("%s at %s, every %s %s-%s", summary, row.Place, day.Name, row.Times.Start, row.Times.End),
		Place:       row.Place,
		WeekdayCode: day.Code,
		StartLocal:  startLocal,
		EndLocal:    endLocal,
		Timezone:    cfg.Timezone,
		Location:    venue,
		ColorID:     colorID,
		Recurrence:  "RRULE:" + rule.OrigOptions.RRuleString(),
		SyncKey:     syncKey(summary, row, day, season),
	}
	log.Debugf("compiled %q: first occurrence %s, rule %s",
		template.Summary, startLocal.Format("2006-01-02 15:04"), template.Recurrence)
	return template, nil
}

// firstOnOrAfter returns the first calendar date on or after start that
// falls on the given weekday. The forward scan never wraps past 6 days.
func firstOnOrAfter(start time.Time, day time.Weekday) time.Time {
	offset := (int(day) - int(start.Weekday()) + 7) % 7
	return start.AddDate(0, 0, offset)
}

func resolvePlace(place string, cfg Config) (venue, colorID string) {
	venue = cfg.DefaultLocation
	colorID = cfg.DefaultColorID
	if override, ok := cfg.Places[place]; ok {
		if override.Location != "" {
			venue = override.Location
		}
		if override.ColorID != "" {
			colorID = override.ColorID
		}
	}
	if colorID == "" {
		colorID = defaultColorID
	}
	return venue, colorID
}

// syncKey builds the deterministic identity key for one compiled event.
// Recompiling the same inputs must yield a byte-identical key; it is the
// only link between import and later cleanup.
func syncKey(summary string, row schedule.Row, day schedule.Weekday, season schedule.Season) string {
	return strings.Join([]string{
		summary,
		row.Place,
		day.Code,
		row.Times.Start.String(),
		row.Times.End.String(),
		season.Start.Format("2006-01-02"),
		season.End.Format("2006-01-02"),
	}, "|")
}
