package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"github.com/swimsync/swimsync/pkg/calendar"
)

// EventStore implements calendar.EventStore on top of the Google
// Calendar API.
type EventStore struct {
	service *gcal.Service
}

func NewEventStore(service *gcal.Service) *EventStore {
	return &EventStore{service: service}
}

// localDateTimeFormat renders a wall-clock datetime with no UTC offset;
// the zone goes into the separate TimeZone field so Google materializes
// occurrences in the event's own zone.
const localDateTimeFormat = "2006-01-02T15:04:05"

func (s *EventStore) Events(calendarID string, window calendar.Window, tag *calendar.Tag) calendar.Pager {
	return &eventPager{store: s, calendarID: calendarID, window: window, tag: tag}
}

type eventPager struct {
	store      *EventStore
	calendarID string
	window     calendar.Window
	tag        *calendar.Tag
	pageToken  string
	done       bool
}

func (p *eventPager) Next(ctx context.Context) ([]calendar.RemoteEvent, error) {
	if p.done {
		return nil, calendar.ErrDone
	}
	call := p.store.service.Events.List(p.calendarID).
		Context(ctx).
		TimeMin(p.window.Start.Format(time.RFC3339)).
		TimeMax(p.window.End.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")
	if p.tag != nil {
		call = call.PrivateExtendedProperty(p.tag.String())
	}
	if p.pageToken != "" {
		call = call.PageToken(p.pageToken)
	}

	result, err := call.Do()
	if err != nil {
		err := storeError("list", err)
		log.Error(err)
		return nil, err
	}

	events := make([]calendar.RemoteEvent, 0, len(result.Items))
	for _, item := range result.Items {
		events = append(events, toRemoteEvent(item))
	}
	p.pageToken = result.NextPageToken
	if p.pageToken == "" {
		p.done = true
	}
	return events, nil
}

func (s *EventStore) Insert(ctx context.Context, calendarID string, template calendar.EventTemplate) (calendar.RemoteEvent, error) {
	log.Debugf("inserting %q (%s %s) into calendar %s",
		template.Summary, template.WeekdayCode, template.StartLocal.Format("15:04"), calendarID)

	event := &gcal.Event{
		Summary:     template.Summary,
		Description: template.Description,
		Location:    template.Location,
		ColorId:     template.ColorID,
		Start: &gcal.EventDateTime{
			DateTime: template.StartLocal.Format(localDateTimeFormat),
			TimeZone: template.Timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: template.EndLocal.Format(localDateTimeFormat),
			TimeZone: template.Timezone,
		},
		Recurrence: []string{template.Recurrence},
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: map[string]string{
				calendar.SourceProperty:  calendar.SourceName,
				calendar.SyncKeyProperty: template.SyncKey,
			},
		},
	}

	result, err := s.service.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		err := storeError("insert", err)
		log.Error(err)
		return calendar.RemoteEvent{}, err
	}
	return toRemoteEvent(result), nil
}

func (s *EventStore) Delete(ctx context.Context, calendarID string, eventID string) error {
	err := s.service.Events.Delete(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return storeError("delete", err)
	}
	return nil
}

// CalendarItem is one entry of the authorized account's calendar list.
type CalendarItem struct {
	ID      string
	Summary string
}

// ListCalendars returns the calendars visible to the authorized account.
func ListCalendars(ctx context.Context, service *gcal.Service) ([]CalendarItem, error) {
	list, err := service.CalendarList.List().Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve calendars from Google Calendar: %v", err)
		log.Error(err)
		return nil, err
	}
	items := make([]CalendarItem, 0, len(list.Items))
	for _, item := range list.Items {
		items = append(items, CalendarItem{ID: item.Id, Summary: item.Summary})
	}
	return items, nil
}

func toRemoteEvent(item *gcal.Event) calendar.RemoteEvent {
	event := calendar.RemoteEvent{
		ID:                item.Id,
		Summary:           item.Summary,
		RecurringSeriesID: item.RecurringEventId,
	}
	if item.Start != nil {
		event.Start = parseEventTime(item.Start)
	}
	if item.End != nil {
		event.End = parseEventTime(item.End)
	}
	return event
}

func parseEventTime(t *gcal.EventDateTime) time.Time {
	if t.DateTime != "" {
		parsed, _ := time.Parse(time.RFC3339, t.DateTime)
		return parsed
	}
	// all-day events carry a bare date
	parsed, _ := time.Parse("2006-01-02", t.Date)
	return parsed
}

// storeError maps an API failure onto the closed set of store error
// kinds. Rate limiting and server-side errors are transient; a missing
// event is not an error to a deleter; everything else is permanent.
func storeError(op string, err error) *calendar.StoreError {
	storeErr := &calendar.StoreError{Op: op, Kind: calendar.KindPermanent, Err: err}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return storeErr
	}
	storeErr.Status = apiErr.Code
	switch apiErr.Code {
	case http.StatusNotFound, http.StatusGone:
		storeErr.Kind = calendar.KindNotFound
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		storeErr.Kind = calendar.KindTransient
	case http.StatusForbidden:
		for _, detail := range apiErr.Errors {
			if detail.Reason == "rateLimitExceeded" || detail.Reason == "userRateLimitExceeded" {
				storeErr.Kind = calendar.KindTransient
			}
		}
	}
	return storeErr
}
