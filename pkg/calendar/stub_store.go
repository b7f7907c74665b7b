package calendar

import (
	"context"
)

// StubEventStore is an in-memory EventStore for tests.
type StubEventStore struct {
	Remote   []RemoteEvent
	TagsByID map[string]map[string]string
	PageSize int

	Inserted []EventTemplate
	Deleted  []string
	// DeleteErrs queues errors to return from Delete per event id before
	// the call finally succeeds.
	DeleteErrs map[string][]error

	ListCalls   int
	DeleteCalls int
}

func (s *StubEventStore) Events(calendarID string, window Window, tag *Tag) Pager {
	s.ListCalls++
	return &stubPager{store: s, window: window, tag: tag}
}

func (s *StubEventStore) Insert(ctx context.Context, calendarID string, template EventTemplate) (RemoteEvent, error) {
	s.Inserted = append(s.Inserted, template)
	return RemoteEvent{ID: template.SyncKey, Summary: template.Summary}, nil
}

func (s *StubEventStore) Delete(ctx context.Context, calendarID string, eventID string) error {
	s.DeleteCalls++
	if queued := s.DeleteErrs[eventID]; len(queued) > 0 {
		err := queued[0]
		s.DeleteErrs[eventID] = queued[1:]
		return err
	}
	s.Deleted = append(s.Deleted, eventID)
	return nil
}

type stubPager struct {
	store  *StubEventStore
	window Window
	tag    *Tag
	offset int
	done   bool
}

func (p *stubPager) Next(ctx context.Context) ([]RemoteEvent, error) {
	if p.done {
		return nil, ErrDone
	}
	matching := p.matching()
	pageSize := p.store.PageSize
	if pageSize <= 0 {
		pageSize = len(matching)
	}
	if p.offset >= len(matching) {
		p.done = true
		return nil, ErrDone
	}
	end := p.offset + pageSize
	if end >= len(matching) {
		end = len(matching)
		p.done = true
	}
	page := matching[p.offset:end]
	p.offset = end
	return page, nil
}

func (p *stubPager) matching() []RemoteEvent {
	matching := make([]RemoteEvent, 0, len(p.store.Remote))
	for _, event := range p.store.Remote {
		if event.Start.Before(p.window.Start) || !event.Start.Before(p.window.End) {
			continue
		}
		if p.tag != nil && p.store.TagsByID[event.ID][p.tag.Key] != p.tag.Value {
			continue
		}
		matching = append(matching, event)
	}
	return matching
}
