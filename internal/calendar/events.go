package calendar

import (
	"context"
	"fmt"
	"io"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/Godley/take-a-break/internal/logger"
)

// Event is the part of a calendar item the listing prints.
type Event struct {
	ID        string
	Summary   string
	Start     string // dateTime when present, otherwise the all-day date
	StartTime time.Time
	IsAllDay  bool
}

// EventLister issues the read-only "next events" query.
type EventLister struct {
	CalendarID string
	MaxResults int64
	Out        io.Writer

	// Endpoint overrides the Calendar API base URL.
	Endpoint string
	Now      func() time.Time
}

func NewEventLister(out io.Writer) *EventLister {
	return &EventLister{
		CalendarID: PrimaryCalendarID,
		MaxResults: DefaultMaxResults,
		Out:        out,
		Now:        time.Now,
	}
}

// ListUpcoming fetches single-instance events starting from now, ordered by
// start time, and prints one "<start> - <summary>" line per event.
func (l *EventLister) ListUpcoming(ctx context.Context, client *AuthorizedClient) error {
	events, err := l.Fetch(ctx, client)
	if err != nil {
		logger.Error("The API returned an error", "error", err)
		return err
	}

	if len(events) == 0 {
		fmt.Fprintln(l.Out, MsgNoEvents)
		return nil
	}

	fmt.Fprintf(l.Out, msgUpcomingEvents, l.MaxResults)
	for _, event := range events {
		fmt.Fprintf(l.Out, "%s - %s\n", event.Start, event.Summary)
	}
	return nil
}

// Fetch runs the events.list call and converts its items.
func (l *EventLister) Fetch(ctx context.Context, client *AuthorizedClient) ([]Event, error) {
	srv, err := newService(ctx, client, l.Endpoint)
	if err != nil {
		return nil, err
	}

	now := time.Now
	if l.Now != nil {
		now = l.Now
	}

	logger.Debug("fetching upcoming events", "calendar_id", l.CalendarID, "max_results", l.MaxResults)

	resp, err := srv.Events.List(l.CalendarID).
		TimeMin(now().Format(time.RFC3339)).
		MaxResults(l.MaxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, NewFlowError(RemoteQueryFailure, "list_events", "unable to retrieve events").WithCause(err)
	}

	events := make([]Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		events = append(events, convertToEvent(item))
	}

	logger.Info("fetched upcoming events", "calendar_id", l.CalendarID, "event_count", len(events))
	return events, nil
}

func convertToEvent(item *gcal.Event) Event {
	event := Event{
		ID:      item.Id,
		Summary: item.Summary,
	}
	if item.Start == nil {
		return event
	}

	if item.Start.DateTime != "" {
		event.Start = item.Start.DateTime
		if t, err := time.Parse(time.RFC3339, item.Start.DateTime); err == nil {
			event.StartTime = t
		}
	} else if item.Start.Date != "" {
		event.Start = item.Start.Date
		event.IsAllDay = true
		if t, err := time.Parse("2006-01-02", item.Start.Date); err == nil {
			event.StartTime = t
		}
	}

	return event
}

func newService(ctx context.Context, client *AuthorizedClient, endpoint string) (*gcal.Service, error) {
	opts := []option.ClientOption{option.WithHTTPClient(client.HTTP)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	srv, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, NewFlowError(RemoteQueryFailure, "new_service", "failed to create calendar service").WithCause(err)
	}
	return srv, nil
}
