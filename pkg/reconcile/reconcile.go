package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"

	"github.com/swimsync/swimsync/pkg/calendar"
)

// Plan is the result of classifying remote events in a window. An id
// appears in exactly one of the two sets.
type Plan struct {
	InstanceIDs []string
	SeriesIDs   []string
}

// Options selects what to reconcile and how far to go. Confirm gates
// any store mutation; DeleteSeries escalates matched occurrences of a
// recurring series to deletion of the whole series.
type Options struct {
	CalendarID   string
	Window       calendar.Window
	Tag          *calendar.Tag
	Confirm      bool
	DeleteSeries bool
}

// Engine lists remote events in a window, classifies them, and executes
// the resulting deletion plan.
type Engine struct {
	store      calendar.EventStore
	newBackOff func() backoff.BackOff
}

func NewEngine(store calendar.EventStore) *Engine {
	return &Engine{store: store, newBackOff: deleteBackOff}
}

// maxDeleteRetries is the number of additional delete attempts after
// the first failure.
const maxDeleteRetries = 5

func deleteBackOff() backoff.BackOff {
	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = time.Second
	exponential.Multiplier = 2
	exponential.MaxInterval = 10 * time.Second
	exponential.RandomizationFactor = 0
	exponential.MaxElapsedTime = 0
	return backoff.WithMaxRetries(exponential, maxDeleteRetries)
}

// BuildPlan lists all events overlapping the window (optionally limited
// to one tag) and classifies each as a bare instance or, with
// DeleteSeries set, as its recurring series. A series contributes once
// no matter how many of its occurrences fall in the window.
func (e *Engine) BuildPlan(ctx context.Context, opts Options) (*Plan, error) {
	plan := &Plan{}
	seenInstances := make(map[string]bool)
	seenSeries := make(map[string]bool)

	pager := e.store.Events(opts.CalendarID, opts.Window, opts.Tag)
	for {
		events, err := pager.Next(ctx)
		if errors.Is(err, calendar.ErrDone) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not list events: %w", err)
		}
		for _, event := range events {
			if opts.DeleteSeries && event.RecurringSeriesID != "" {
				if !seenSeries[event.RecurringSeriesID] {
					seenSeries[event.RecurringSeriesID] = true
					plan.SeriesIDs = append(plan.SeriesIDs, event.RecurringSeriesID)
				}
				continue
			}
			if !seenInstances[event.ID] {
				seenInstances[event.ID] = true
				plan.InstanceIDs = append(plan.InstanceIDs, event.ID)
			}
		}
	}
	return plan, nil
}

// Run builds the plan and, when Confirm is set, executes it. Deletions
// are best effort: one failed id is logged and the rest of the batch
// still runs.
func (e *Engine) Run(ctx context.Context, opts Options) (*Plan, error) {
	plan, err := e.BuildPlan(ctx, opts)
	if err != nil {
		return nil, err
	}

	if !opts.Confirm {
		log.Infof("dry run: would delete %d event instance(s) and %d recurring series",
			len(plan.InstanceIDs), len(plan.SeriesIDs))
		return plan, nil
	}

	for _, id := range plan.InstanceIDs {
		e.deleteOne(ctx, opts.CalendarID, id, "instance")
	}
	for _, id := range plan.SeriesIDs {
		e.deleteOne(ctx, opts.CalendarID, id, "series")
	}
	log.Infof("deleted %d event instance(s) and %d recurring series",
		len(plan.InstanceIDs), len(plan.SeriesIDs))
	return plan, nil
}

// deleteOne deletes a single id with bounded exponential backoff.
// Transient store failures are retried; a missing object counts as
// already deleted.
func (e *Engine) deleteOne(ctx context.Context, calendarID, id, kind string) {
	operation := func() error {
		err := e.store.Delete(ctx, calendarID, id)
		if err == nil {
			return nil
		}
		if calendar.IsNotFound(err) {
			log.Debugf("%s %s is already gone", kind, id)
			return nil
		}
		if calendar.IsTransient(err) {
			log.Warnf("transient failure deleting %s %s, will retry: %v", kind, id, err)
			return err
		}
		return backoff.Permanent(err)
	}
	if err := backoff.Retry(operation, backoff.WithContext(e.newBackOff(), ctx)); err != nil {
		log.Errorf("failed to delete %s %s: %v", kind, id, err)
	}
}
